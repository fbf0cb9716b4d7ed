package rack_test

import (
	"testing"

	"chassign/pkg/rack"
	"chassign/pkg/types"
)

func twoModuleConfig() types.SystemConfiguration {
	return types.SystemConfiguration{
		SystemType: types.SystemClassicSerial,
		Racks: []types.Rack{
			{
				RackID:     1,
				TotalSlots: 11,
				SystemType: types.SystemClassicSerial,
				Modules: []types.Module{
					{ID: "DP-1", Kind: types.KindDP, RackID: 1, SlotID: 1},
					{ID: "AI-1", Kind: types.KindAI, TotalChannels: 4, RackID: 1, SlotID: 2},
					{ID: "AI-2", Kind: types.KindAI, TotalChannels: 4, RackID: 1, SlotID: 3},
				},
			},
			{
				RackID:     2,
				TotalSlots: 11,
				SystemType: types.SystemClassicSerial,
				Modules: []types.Module{
					{ID: "DP-2", Kind: types.KindDP, RackID: 2, SlotID: 1},
					{ID: "AI-3", Kind: types.KindAI, TotalChannels: 4, RackID: 2, SlotID: 2},
				},
			},
		},
	}
}

func TestIndexExcludesNonAssignableModules(t *testing.T) {
	idx := rack.NewIndex(twoModuleConfig())
	if got := idx.IterChannels(types.KindDP); len(got) != 0 {
		t.Errorf("expected 0 DP channels indexed (DP is not assignable), got %d", len(got))
	}
}

func TestIndexDeterministicOrder(t *testing.T) {
	idx := rack.NewIndex(twoModuleConfig())
	free := idx.IterChannels(types.KindAI)
	if len(free) != 12 {
		t.Fatalf("expected 12 free AI channels, got %d", len(free))
	}

	for i := 1; i < len(free); i++ {
		a, b := free[i-1], free[i]
		if a.RackID > b.RackID {
			t.Fatalf("channels not ordered by rack ascending at index %d", i)
		}
		if a.RackID == b.RackID && a.SlotID > b.SlotID {
			t.Fatalf("channels not ordered by slot ascending at index %d", i)
		}
	}

	if free[0].ModuleID != "AI-1" {
		t.Errorf("expected first channel from AI-1, got %s", free[0].ModuleID)
	}
	if free[len(free)-1].ModuleID != "AI-3" {
		t.Errorf("expected last channel from AI-3, got %s", free[len(free)-1].ModuleID)
	}
}

func TestIndexTakeRemovesChannelFromFurtherIteration(t *testing.T) {
	idx := rack.NewIndex(twoModuleConfig())
	free := idx.IterChannels(types.KindAI)
	first := free[0]

	if ok := idx.Take(first); !ok {
		t.Fatal("expected first Take to succeed")
	}
	if ok := idx.Take(first); ok {
		t.Fatal("expected second Take of the same channel to fail")
	}

	after := idx.IterChannels(types.KindAI)
	if len(after) != len(free)-1 {
		t.Fatalf("expected %d free channels after Take, got %d", len(free)-1, len(after))
	}
	for _, c := range after {
		if c == first {
			t.Fatal("taken channel still present in IterChannels")
		}
	}
}

func TestIndexChannelsByModuleGrouping(t *testing.T) {
	idx := rack.NewIndex(twoModuleConfig())
	groups := idx.ChannelsByModule(types.KindAI)
	if len(groups) != 3 {
		t.Fatalf("expected 3 module groups, got %d", len(groups))
	}
	for _, g := range groups {
		for i := 1; i < len(g); i++ {
			if g[i].Number <= g[i-1].Number {
				t.Errorf("expected ascending channel numbers within a module group, got %d then %d", g[i-1].Number, g[i].Number)
			}
		}
	}
}

func TestIndexIterChannelsInRackAndModule(t *testing.T) {
	idx := rack.NewIndex(twoModuleConfig())

	inRack1 := idx.IterChannelsInRack(1, types.KindAI)
	if len(inRack1) != 8 {
		t.Errorf("expected 8 AI channels in rack 1, got %d", len(inRack1))
	}

	inModule := idx.IterChannelsInModule("AI-2", types.KindAI)
	if len(inModule) != 4 {
		t.Errorf("expected 4 AI channels in module AI-2, got %d", len(inModule))
	}
}
