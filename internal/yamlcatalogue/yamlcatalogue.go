// Package yamlcatalogue implements interfaces.CatalogueStore by reading a
// flat YAML list of module definitions. No database or remote catalogue
// service appears anywhere in the example pack, and gopkg.in/yaml.v3 is
// already the pack's own config-file library, so a YAML file is the
// stdlib-adjacent shell adapter cmd/chassign wires in by default.
package yamlcatalogue

import (
	"os"

	"gopkg.in/yaml.v3"

	"chassign/internal/interfaces"
	"chassign/pkg/errors"
)

// entry mirrors interfaces.ModuleDefinition with YAML tags. sub_channels is
// a per-kind map (e.g. {AI: 4, DI: 8} for a CPU's onboard IO), not a single
// scalar — a CPU module can expose channels of more than one kind.
type entry struct {
	Model         string         `yaml:"model"`
	Kind          string         `yaml:"kind"`
	TotalChannels int            `yaml:"total_channels"`
	SubChannels   map[string]int `yaml:"sub_channels"`
	IsMaster      bool           `yaml:"is_master"`
	SlotRequired  bool           `yaml:"slot_required"`
}

// document is the top-level shape of a catalogue file.
type document struct {
	Modules []entry `yaml:"modules"`
}

// Store is a YAML-file-backed interfaces.CatalogueStore.
type Store struct {
	byModel map[string]interfaces.ModuleDefinition
	all     []interfaces.ModuleDefinition
}

// Load reads path and builds a Store from its module list.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrFileNotFound(path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ErrMalformedConfig(path, "catalogue", err)
	}

	s := &Store{byModel: make(map[string]interfaces.ModuleDefinition, len(doc.Modules))}
	for _, e := range doc.Modules {
		def := interfaces.ModuleDefinition{
			Model:         e.Model,
			Kind:          e.Kind,
			TotalChannels: e.TotalChannels,
			SubChannels:   e.SubChannels,
			IsMaster:      e.IsMaster,
			SlotRequired:  e.SlotRequired,
		}
		s.byModel[e.Model] = def
		s.all = append(s.all, def)
	}
	if len(s.all) == 0 {
		return nil, errors.ErrEmptyCatalogue()
	}
	return s, nil
}

// Lookup resolves a module model against the loaded entries.
func (s *Store) Lookup(model string) (*interfaces.ModuleDefinition, bool) {
	if def, ok := s.byModel[model]; ok {
		return &def, true
	}
	return nil, false
}

// All returns every loaded entry.
func (s *Store) All() []interfaces.ModuleDefinition {
	return s.all
}
