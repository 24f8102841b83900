package formdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDefinitionNotFound is returned when a store lookup misses.
var ErrDefinitionNotFound = errors.New("formdef: definition not found")

// Store indexes loaded definitions by entity name.
type Store struct {
	definitions map[string]Definition
}

// Definition returns the definition for an entity.
func (s *Store) Definition(entity string) (Definition, error) {
	if s == nil || len(s.definitions) == 0 {
		return Definition{}, fmt.Errorf("%w: %q", ErrDefinitionNotFound, entity)
	}
	def, ok := s.definitions[entity]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrDefinitionNotFound, entity)
	}
	return def, nil
}

// Entities lists the loaded entity names, sorted.
func (s *Store) Entities() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Add validates and registers a definition, replacing any existing one for
// the same entity.
func (s *Store) Add(def Definition) error {
	if err := Validate(def); err != nil {
		return err
	}
	if s.definitions == nil {
		s.definitions = make(map[string]Definition)
	}
	s.definitions[def.Entity] = def
	return nil
}

// LoadFS walks a filesystem and parses every JSON/YAML definition document.
// Files may hold a single definition or a list under a "forms" key. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		defs, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if _, exists := store.definitions[def.Entity]; exists {
				return fmt.Errorf("formdef: duplicate entity %q (file %s)", def.Entity, path)
			}
			if err := Validate(def); err != nil {
				return fmt.Errorf("formdef: file %s: %w", path, err)
			}
			store.definitions[def.Entity] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Validate checks the structural invariants of a definition.
func Validate(def Definition) error {
	if strings.TrimSpace(def.Entity) == "" {
		return errors.New("formdef: entity name is required")
	}
	if len(def.Fields) == 0 {
		return fmt.Errorf("formdef: entity %q declares no fields", def.Entity)
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for _, f := range def.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("formdef: entity %q has a field without a name", def.Entity)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("formdef: entity %q declares field %q twice", def.Entity, name)
		}
		seen[name] = struct{}{}
		if f.Type == FieldTypeEnum && len(f.Enum) == 0 {
			return fmt.Errorf("formdef: enum field %q of %q lists no values", name, def.Entity)
		}
	}
	for _, ordering := range def.Rules.DateOrderings {
		if _, ok := def.Field(ordering.Field); !ok {
			return fmt.Errorf("formdef: date ordering references unknown field %q", ordering.Field)
		}
		if _, ok := def.Field(ordering.Other); !ok {
			return fmt.Errorf("formdef: date ordering references unknown field %q", ordering.Other)
		}
	}
	for _, field := range def.Rules.DatesAfterToday {
		if _, ok := def.Field(field); !ok {
			return fmt.Errorf("formdef: after-today rule references unknown field %q", field)
		}
	}
	return nil
}

type definitionDocument struct {
	Forms []Definition `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, path string) ([]Definition, error) {
	ext := strings.ToLower(filepath.Ext(path))

	// Try the multi-definition envelope first, then a bare definition.
	var doc definitionDocument
	var single Definition
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err == nil && len(doc.Forms) > 0 {
			return doc.Forms, nil
		}
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("formdef: parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Forms) > 0 {
			return doc.Forms, nil
		}
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("formdef: parse %s: %w", path, err)
		}
	}
	return []Definition{single}, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
