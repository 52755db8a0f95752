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

// resultEntry is the on-disk shape of one item's outcome.
type resultEntry struct {
	Placed   bool        `json:"placed"`
	Center   *[2]float64 `json:"center,omitempty"`
	Rotation *float64    `json:"rotation,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// MarshalResult encodes a result set as a name-keyed object, preserving
// the placement order of the entries.
func MarshalResult(rs model.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, e := range rs.Entries {
		entry := resultEntry{Placed: e.Placed}
		if e.Placed {
			center := [2]float64{e.Center[0], e.Center[1]}
			rotation := e.Rotation
			entry.Center = &center
			entry.Rotation = &rotation
		} else {
			entry.Error = e.Err
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// UnmarshalResult decodes a result document, preserving key order.
func UnmarshalResult(data []byte) (model.ResultSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return model.ResultSet{}, fmt.Errorf("failed to parse result document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return model.ResultSet{}, fmt.Errorf("result document must be an object")
	}

	var rs model.ResultSet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return model.ResultSet{}, err
		}
		name := keyTok.(string)
		var raw resultEntry
		if err := dec.Decode(&raw); err != nil {
			return model.ResultSet{}, fmt.Errorf("result entry %q: %w", name, err)
		}
		entry := model.ResultEntry{Name: name, Placed: raw.Placed, Err: raw.Error}
		if raw.Center != nil {
			entry.Center = orb.Point{raw.Center[0], raw.Center[1]}
		}
		if raw.Rotation != nil {
			entry.Rotation = *raw.Rotation
		}
		rs.Entries = append(rs.Entries, entry)
	}
	return rs, nil
}

// SaveResult writes a result document next to the given path.
func SaveResult(path string, rs model.ResultSet) error {
	data, err := MarshalResult(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResultPath derives the result file path from a plan file path:
// room.json becomes room_result.json in the same directory.
func ResultPath(planPath string) string {
	ext := filepath.Ext(planPath)
	base := strings.TrimSuffix(filepath.Base(planPath), ext)
	if ext == "" {
		ext = ".json"
	}
	return filepath.Join(filepath.Dir(planPath), base+"_result"+ext)
}
