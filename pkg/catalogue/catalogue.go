// Package catalogue is the owned, caller-constructed module catalogue: a
// lookup from module model string to its channel-layout definition, with a
// kind-by-prefix fallback for models the caller's backing store doesn't
// carry. There is no package-level cache and no lazy load — a Store is built
// once by the CLI shell and passed by reference into Rack Model
// construction.
package catalogue

import (
	"chassign/internal/interfaces"
	"chassign/pkg/types"
)

// prefixRule is one row of the kind-by-prefix inference table. Prefixes may
// overlap between series; declaration order is the tie-break (first match
// wins), matching pickPrefixRule below.
type prefixRule struct {
	prefix string
	kind   types.Kind
}

// prefixTable is exposed as data, not hidden logic, so operators can extend
// or reorder it without touching Lookup.
var prefixTable = []prefixRule{
	{"LK41", types.KindAI},
	{"LE5611", types.KindAI},
	{"LE531", types.KindAI},
	{"LE534", types.KindAI},
	{"LK51", types.KindAO},
	{"LE5621", types.KindAO},
	{"LE532", types.KindAO},
	{"LE533", types.KindMixedAIAO},
	{"LK61", types.KindDI},
	{"LE5610", types.KindDI},
	{"LE521", types.KindDI},
	{"LK71", types.KindDO},
	{"LE5620", types.KindDO},
	{"LE522", types.KindDO},
	{"LE523", types.KindMixedDIDO},
	{"LK81", types.KindDP},
	{"LK82", types.KindDP},
	{"PROFIBUS-DP", types.KindDP},
	{"LK117", types.KindBackplane},
	{"LE5118", types.KindCPU},
}

// Store is an in-memory module catalogue. The zero value is not usable;
// construct with NewStore or NewStoreFromExternal.
type Store struct {
	entries map[string]types.ModuleDefinition
}

// NewStore builds a Store from an explicit, caller-owned entry list.
func NewStore(entries []types.ModuleDefinition) *Store {
	s := &Store{entries: make(map[string]types.ModuleDefinition, len(entries))}
	for _, e := range entries {
		s.entries[e.Model] = e
	}
	return s
}

// NewStoreFromExternal snapshots an external interfaces.CatalogueStore into
// an owned Store. The external store is read exactly once, here; nothing in
// this module retains a reference to it afterward.
func NewStoreFromExternal(src interfaces.CatalogueStore) *Store {
	all := src.All()
	entries := make([]types.ModuleDefinition, 0, len(all))
	for _, e := range all {
		var sub map[types.Kind]int
		if len(e.SubChannels) > 0 {
			sub = make(map[types.Kind]int, len(e.SubChannels))
			for k, v := range e.SubChannels {
				sub[types.Kind(k)] = v
			}
		}
		entries = append(entries, types.ModuleDefinition{
			Model:         e.Model,
			Kind:          types.Kind(e.Kind),
			TotalChannels: e.TotalChannels,
			SubChannels:   sub,
			IsMaster:      e.IsMaster,
			SlotRequired:  e.SlotRequired,
		})
	}
	return NewStore(entries)
}

// Lookup resolves a module model to its definition. If the model is not in
// the owned entry set, Lookup falls back to the kind-by-prefix inference
// table and returns a best-effort definition with only Model and Kind
// populated. Lookup reports false only when neither the entry set nor the
// prefix table recognizes the model.
func (s *Store) Lookup(model string) (types.ModuleDefinition, bool) {
	if def, ok := s.entries[model]; ok {
		return def, true
	}
	if rule, ok := pickPrefixRule(model); ok {
		return types.ModuleDefinition{Model: model, Kind: rule.kind}, true
	}
	return types.ModuleDefinition{}, false
}

// pickPrefixRule returns the first prefixTable row whose prefix matches the
// start of model. First-in-declaration-order wins when multiple prefixes
// match, per the Design Notes' tie-breaking decision.
func pickPrefixRule(model string) (prefixRule, bool) {
	for _, rule := range prefixTable {
		if hasPrefix(model, rule.prefix) {
			return rule, true
		}
	}
	return prefixRule{}, false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
