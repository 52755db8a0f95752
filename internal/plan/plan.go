// Package plan reads and writes room-plan documents and everything the
// application persists around them: solve results, templates, app config
// and backups.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"

	"github.com/piwi3910/roomfit/internal/model"
)

// document mirrors the on-disk plan format. algoToPlace is kept raw so the
// item order of the source document can be recovered: a plain map would
// randomize it and with it the solve order.
type document struct {
	Boundary     [][2]float64    `json:"boundary"`
	Door         [][2]float64    `json:"door"`
	IsOpenInward bool            `json:"isOpenInward"`
	AlgoToPlace  json.RawMessage `json:"algoToPlace"`
}

// Parse decodes a plan document. Item order follows the key order of the
// algoToPlace object in the source bytes.
func Parse(data []byte, name string) (model.RoomPlan, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.RoomPlan{}, fmt.Errorf("failed to parse plan document: %w", err)
	}
	if len(doc.Door) != 2 {
		return model.RoomPlan{}, fmt.Errorf("door needs exactly 2 endpoints, got %d", len(doc.Door))
	}

	boundary := make([]orb.Point, len(doc.Boundary))
	for i, pt := range doc.Boundary {
		boundary[i] = orb.Point{pt[0], pt[1]}
	}

	items, err := parseItems(doc.AlgoToPlace)
	if err != nil {
		return model.RoomPlan{}, err
	}

	plan := model.RoomPlan{
		Name:     name,
		Boundary: boundary,
		Door: model.Door{
			A:           orb.Point{doc.Door[0][0], doc.Door[0][1]},
			B:           orb.Point{doc.Door[1][0], doc.Door[1][1]},
			OpensInward: doc.IsOpenInward,
		},
		Items: items,
	}
	if err := plan.Validate(); err != nil {
		return model.RoomPlan{}, err
	}
	return plan, nil
}

// parseItems walks the algoToPlace object token by token so that items come
// out in document order.
func parseItems(raw json.RawMessage) ([]model.ItemSpec, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("plan document has no algoToPlace object")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse algoToPlace: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("algoToPlace must be an object")
	}

	var items []model.ItemSpec
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse algoToPlace: %w", err)
		}
		name := keyTok.(string)
		var dims []float64
		if err := dec.Decode(&dims); err != nil {
			return nil, fmt.Errorf("item %q: dimensions must be a number array: %w", name, err)
		}
		if len(dims) != 2 {
			return nil, fmt.Errorf("item %q: expected 2 dimensions, got %d", name, len(dims))
		}
		items = append(items, model.NewItemSpec(name, dims[0], dims[1]))
	}
	return items, nil
}

// Load reads and parses a plan document from disk. The plan name is the
// file name without its extension.
func Load(path string) (model.RoomPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RoomPlan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, name)
}

// Save writes a plan back to disk in the document format. Item order is
// preserved, so a saved plan solves identically to the original.
func Save(path string, p model.RoomPlan) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes a plan as a document. The algoToPlace object is built by
// hand because encoding/json sorts map keys.
func Marshal(p model.RoomPlan) ([]byte, error) {
	var algo bytes.Buffer
	algo.WriteByte('{')
	for i, it := range p.Items {
		if i > 0 {
			algo.WriteByte(',')
		}
		key, err := json.Marshal(it.Name)
		if err != nil {
			return nil, err
		}
		algo.Write(key)
		fmt.Fprintf(&algo, ":[%g,%g]", it.Length, it.Width)
	}
	algo.WriteByte('}')

	doc := document{
		Boundary:     make([][2]float64, len(p.Boundary)),
		Door:         [][2]float64{{p.Door.A[0], p.Door.A[1]}, {p.Door.B[0], p.Door.B[1]}},
		IsOpenInward: p.Door.OpensInward,
		AlgoToPlace:  algo.Bytes(),
	}
	for i, pt := range p.Boundary {
		doc.Boundary[i] = [2]float64{pt[0], pt[1]}
	}
	return json.MarshalIndent(doc, "", "  ")
}
