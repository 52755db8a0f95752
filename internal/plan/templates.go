package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/roomfit/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.roomfit/templates.json.
func DefaultTemplatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".roomfit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.json"), nil
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.PlanTemplate{}
	}
	for i := range store.Templates {
		normalizeTemplateItems(store.Templates[i].Items)
	}
	return store, nil
}

// normalizeTemplateItems repairs hand-edited template files: a swapped
// length/width pair is reordered and an omitted kind is resolved from the
// item name, the same way plan parsing resolves it.
func normalizeTemplateItems(items []model.ItemSpec) {
	for i, it := range items {
		if it.Width > it.Length {
			items[i].Length, items[i].Width = it.Width, it.Length
		}
		if it.Kind == model.ItemStandard {
			items[i].Kind = model.KindFromName(it.Name)
		}
	}
}

// ApplyTemplate replaces the plan's items with a fresh instantiation of the
// named template. The room geometry is left untouched.
func ApplyTemplate(store model.TemplateStore, name string, p model.RoomPlan) (model.RoomPlan, error) {
	tpl := store.FindByName(name)
	if tpl == nil {
		if names := store.Names(); len(names) > 0 {
			return model.RoomPlan{}, fmt.Errorf("template %q not found (have: %s)", name, strings.Join(names, ", "))
		}
		return model.RoomPlan{}, fmt.Errorf("template %q not found: store is empty", name)
	}
	return tpl.Instantiate(p), nil
}

// LoadDefaultTemplates loads templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

// SaveDefaultTemplates saves templates to the default path.
func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}
