package schematic

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MarshalText renders an InstanceRef in its canonical "module:seg/seg"
// form, letting InstanceRef serve directly as a JSON object key.
func (r InstanceRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the canonical "module:seg/seg" form produced by
// MarshalText.
func (r *InstanceRef) UnmarshalText(data []byte) error {
	s := string(data)
	idx := strings.Index(s, ":")
	if idx < 0 {
		return fmt.Errorf("invalid instance ref %q: missing module separator", s)
	}
	r.Module = s[:idx]
	r.Path = s[idx+1:]
	return nil
}

// LoadJSON reads a flat Schematic (§3's data model) from a JSON file
// produced by an upstream evaluator. Parsing the source DSL that
// produces this value is out of scope here; this is the boundary
// format the core accepts it in.
func LoadJSON(path string) (*Schematic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schematic file: %w", err)
	}
	var s Schematic
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schematic JSON: %w", err)
	}
	if s.Instances == nil {
		s.Instances = make(map[InstanceRef]*Instance)
	}
	if s.Nets == nil {
		s.Nets = make(map[string]*Net)
	}
	return &s, nil
}

// SaveJSON writes s to path as indented JSON, the inverse of LoadJSON.
func SaveJSON(s *Schematic, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schematic JSON: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
