package model

import (
	"time"

	"github.com/google/uuid"
)

// PlanTemplate is a reusable named bundle of items (a typical kitchen set,
// a laundry corner) that can be instantiated into a RoomPlan for any room.
type PlanTemplate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Items       []ItemSpec `json:"items"`
}

// NewPlanTemplate creates a template from the given items.
func NewPlanTemplate(name, description string, items []ItemSpec) PlanTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return PlanTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(items),
	}
}

// Instantiate copies this template's items into a plan with the given room
// geometry. Items get fresh IDs so they are independent of the template.
func (t PlanTemplate) Instantiate(plan RoomPlan) RoomPlan {
	items := make([]ItemSpec, len(t.Items))
	for i, it := range t.Items {
		items[i] = NewItemSpec(it.Name, it.Length, it.Width)
		items[i].Kind = it.Kind
	}
	plan.Items = items
	if plan.Name == "" {
		plan.Name = t.Name
	}
	return plan
}

// TemplateStore holds a collection of plan templates.
type TemplateStore struct {
	Templates []PlanTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []PlanTemplate{}}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t PlanTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Upsert replaces the items of the template with the given name, or adds a
// new template when none exists yet. An existing template keeps its ID and
// creation time; only the items, description and update time change.
func (ts *TemplateStore) Upsert(name, description string, items []ItemSpec) PlanTemplate {
	if t := ts.FindByName(name); t != nil {
		t.Items = copyItems(items)
		if description != "" {
			t.Description = description
		}
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return *t
	}
	t := NewPlanTemplate(name, description, items)
	ts.Add(t)
	return t
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *PlanTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyItems(items []ItemSpec) []ItemSpec {
	if items == nil {
		return []ItemSpec{}
	}
	cp := make([]ItemSpec, len(items))
	copy(cp, items)
	return cp
}
