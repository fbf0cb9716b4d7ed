package catalogue_test

import (
	"testing"

	"chassign/internal/interfaces"
	"chassign/pkg/catalogue"
	"chassign/pkg/types"
)

func TestLookupExactEntry(t *testing.T) {
	store := catalogue.NewStore([]types.ModuleDefinition{
		{Model: "LK411", Kind: types.KindAI, TotalChannels: 8},
	})

	def, ok := store.Lookup("LK411")
	if !ok {
		t.Fatal("expected LK411 to resolve")
	}
	if def.Kind != types.KindAI || def.TotalChannels != 8 {
		t.Errorf("unexpected definition: %+v", def)
	}
}

func TestLookupFallsBackToPrefixTable(t *testing.T) {
	store := catalogue.NewStore(nil)

	tests := []struct {
		model string
		kind  types.Kind
	}{
		{"LK411", types.KindAI},
		{"LE5611B", types.KindAI},
		{"LK512", types.KindAO},
		{"LE533X", types.KindMixedAIAO},
		{"LK612", types.KindDI},
		{"LK712", types.KindDO},
		{"LE523Z", types.KindMixedDIDO},
		{"LK811", types.KindDP},
		{"PROFIBUS-DP1", types.KindDP},
		{"LK117A", types.KindBackplane},
		{"LE5118", types.KindCPU},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			def, ok := store.Lookup(tt.model)
			if !ok {
				t.Fatalf("expected %s to resolve via prefix table", tt.model)
			}
			if def.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, def.Kind)
			}
		})
	}
}

func TestLookupUnknownModelFails(t *testing.T) {
	store := catalogue.NewStore(nil)
	if _, ok := store.Lookup("ZZZ999"); ok {
		t.Error("expected lookup of an unrecognized model to fail")
	}
}

func TestLookupPrefersExactEntryOverPrefixInference(t *testing.T) {
	store := catalogue.NewStore([]types.ModuleDefinition{
		{Model: "LK411", Kind: types.KindAI, TotalChannels: 16, IsMaster: false, SlotRequired: true},
	})
	def, ok := store.Lookup("LK411")
	if !ok {
		t.Fatal("expected exact entry to resolve")
	}
	if def.TotalChannels != 16 || !def.SlotRequired {
		t.Errorf("expected exact catalogue entry to win over prefix inference, got %+v", def)
	}
}

type fakeExternalStore struct {
	entries []interfaces.ModuleDefinition
}

func (f fakeExternalStore) Lookup(model string) (*interfaces.ModuleDefinition, bool) {
	for _, e := range f.entries {
		if e.Model == model {
			return &e, true
		}
	}
	return nil, false
}

func (f fakeExternalStore) All() []interfaces.ModuleDefinition {
	return f.entries
}

func TestNewStoreFromExternalSnapshotsOnce(t *testing.T) {
	ext := fakeExternalStore{entries: []interfaces.ModuleDefinition{
		{Model: "LK411", Kind: "AI", TotalChannels: 8},
	}}
	store := catalogue.NewStoreFromExternal(ext)

	def, ok := store.Lookup("LK411")
	if !ok {
		t.Fatal("expected snapshotted entry to resolve")
	}
	if def.Kind != types.KindAI {
		t.Errorf("expected kind AI, got %s", def.Kind)
	}
}
