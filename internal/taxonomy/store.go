package taxonomy

import (
	"fmt"
	"os"

	"spendscope/internal/logging"

	"gopkg.in/yaml.v3"
)

// Store loads custom category overrides from a YAML file. Two layouts are
// accepted, mirroring how category files have historically been written:
//
//	categories:
//	  - name: pets
//	    keywords: [vet, petco]
//
// or a plain mapping:
//
//	pets: [vet, petco]
//	dining: [tapas]
//
// Loading is lenient: malformed entries are skipped with a warning and never
// fail the pipeline.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a Store for the given override file path.
func NewStore(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{path: path, logger: logger}
}

// categoriesFile is the structured layout with a top-level categories key.
type categoriesFile struct {
	Categories []yaml.Node `yaml:"categories"`
}

// Load reads the override file and returns the well-formed entries in file
// order. A missing file yields no overrides and no error; unreadable or
// unparseable files yield a warning and no overrides.
func (s *Store) Load() ([]Category, error) {
	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, s.path).Warn("Custom categories file not found")
			return nil, nil
		}
		return nil, fmt.Errorf("error reading custom categories file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		s.logger.WithError(err).WithField(logging.FieldFile, s.path).Warn("Failed to parse custom categories, ignoring file")
		return nil, nil
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]

	// Structured layout first.
	var structured categoriesFile
	if err := doc.Decode(&structured); err == nil && len(structured.Categories) > 0 {
		return s.decodeList(structured.Categories), nil
	}

	// Fall back to the plain-mapping layout.
	if doc.Kind == yaml.MappingNode {
		return s.decodeMapping(doc), nil
	}

	s.logger.WithField(logging.FieldFile, s.path).Warn("Custom categories file has an unrecognized layout, ignoring")
	return nil, nil
}

// decodeList decodes `categories:` entries, skipping malformed ones.
func (s *Store) decodeList(nodes []yaml.Node) []Category {
	var out []Category
	for i := range nodes {
		var c Category
		if err := nodes[i].Decode(&c); err != nil || c.Name == "" {
			s.logger.WithField("entry", i).Warn("Skipping malformed custom category entry")
			continue
		}
		out = append(out, c)
	}
	return out
}

// decodeMapping decodes the plain `name: [keywords]` layout, preserving
// document order so appended categories keep a deterministic position.
func (s *Store) decodeMapping(doc *yaml.Node) []Category {
	var out []Category
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode := doc.Content[i]
		valNode := doc.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil || name == "" {
			s.logger.Warn("Skipping custom category with unreadable name")
			continue
		}

		var keywords []string
		if err := valNode.Decode(&keywords); err != nil {
			s.logger.WithField(logging.FieldCategory, name).Warn("Custom category value is not a list of strings, skipping")
			continue
		}
		out = append(out, Category{Name: name, Keywords: keywords})
	}
	return out
}

// Load builds the effective taxonomy: the defaults merged with any overrides
// found at path. It never fails; problems degrade to the defaults with a
// logged warning.
func Load(path string, logger logging.Logger) Taxonomy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	base := Default()
	if path == "" {
		return base
	}

	overrides, err := NewStore(path, logger).Load()
	if err != nil {
		logger.WithError(err).Warn("Failed to load custom categories, using defaults")
		return base
	}
	if len(overrides) == 0 {
		return base
	}

	logger.WithField(logging.FieldCount, len(overrides)).Debug("Merged custom category overrides")
	return base.Merge(overrides)
}
