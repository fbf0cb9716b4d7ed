package assigner_test

import (
	"testing"

	"chassign/pkg/assigner"
	"chassign/pkg/rack"
	"chassign/pkg/types"
)

func aiModule(id string, rackID, slotID, channels int) types.Module {
	return types.Module{ID: id, Model: "LK411", Kind: types.KindAI, TotalChannels: channels, RackID: rackID, SlotID: slotID}
}

func diModule(id string, rackID, slotID, channels int) types.Module {
	return types.Module{ID: id, Model: "LK611", Kind: types.KindDI, TotalChannels: channels, RackID: rackID, SlotID: slotID}
}

func doModule(id string, rackID, slotID, channels int) types.Module {
	return types.Module{ID: id, Model: "LK711", Kind: types.KindDO, TotalChannels: channels, RackID: rackID, SlotID: slotID}
}

func cfg(modules ...types.Module) types.SystemConfiguration {
	return types.SystemConfiguration{
		SystemType: types.SystemClassicSerial,
		Racks:      []types.Rack{{RackID: 1, TotalSlots: 8, SystemType: types.SystemClassicSerial, Modules: modules}},
	}
}

func group(deviceID string, points ...types.Point) types.DeviceGroup {
	return types.DeviceGroup{DeviceID: deviceID, Points: points}
}

func pt(id string, kind types.Kind) types.Point {
	return types.Point{ID: id, InstrumentTag: id, Kind: kind}
}

func TestAssignFillsModuleContiguously(t *testing.T) {
	idx := rack.NewIndex(cfg(aiModule("m1", 1, 2, 4)))
	groups := []types.DeviceGroup{
		group("D1", pt("p1", types.KindAI), pt("p2", types.KindAI)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	if result.Assigned != 2 || result.Failed != 0 {
		t.Fatalf("expected 2 assigned, 0 failed, got %d/%d", result.Assigned, result.Failed)
	}
	if result.Assignments["p1"].String() != "1_1_AI_0" {
		t.Errorf("expected p1 at 1_1_AI_0, got %s", result.Assignments["p1"])
	}
	if result.Assignments["p2"].String() != "1_1_AI_1" {
		t.Errorf("expected p2 at 1_1_AI_1, got %s", result.Assignments["p2"])
	}
}

func TestAssignMovesToNextModuleOnExhaustion(t *testing.T) {
	idx := rack.NewIndex(cfg(
		aiModule("m1", 1, 2, 2),
		aiModule("m2", 1, 3, 2),
	))
	groups := []types.DeviceGroup{
		group("D1", pt("p1", types.KindAI), pt("p2", types.KindAI), pt("p3", types.KindAI)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	if result.Assigned != 3 {
		t.Fatalf("expected 3 assigned, got %d", result.Assigned)
	}
	if result.Assignments["p3"].String() != "1_2_AI_0" {
		t.Errorf("expected p3 to roll over to module 2, got %s", result.Assignments["p3"])
	}
}

func TestAssignReportsShortfallPerPoint(t *testing.T) {
	idx := rack.NewIndex(cfg(aiModule("m1", 1, 2, 1)))
	groups := []types.DeviceGroup{
		group("D1", pt("p1", types.KindAI), pt("p2", types.KindAI)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	if result.Assigned != 1 || result.Failed != 1 {
		t.Fatalf("expected 1 assigned, 1 failed, got %d/%d", result.Assigned, result.Failed)
	}
	if len(result.Unassigned) != 1 || result.Unassigned[0].PointID != "p2" {
		t.Fatalf("expected p2 in the unassigned list, got %+v", result.Unassigned)
	}
}

func TestAssignOrdersKindsAIThenDIThenDOThenAO(t *testing.T) {
	idx := rack.NewIndex(cfg(
		aiModule("ai1", 1, 2, 1),
		diModule("di1", 1, 3, 1),
		doModule("do1", 1, 4, 1),
	))
	groups := []types.DeviceGroup{
		group("D1", pt("do", types.KindDO), pt("di", types.KindDI), pt("ai", types.KindAI)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	if result.Failed != 0 {
		t.Fatalf("expected all three points assigned, got %d failures", result.Failed)
	}
	if result.Assignments["ai"].String() != "1_1_AI_0" {
		t.Errorf("expected ai at AI module, got %s", result.Assignments["ai"])
	}
}

func TestAssignExcludesCommunicationAndUnknownPoints(t *testing.T) {
	idx := rack.NewIndex(cfg(aiModule("m1", 1, 2, 1)))
	groups := []types.DeviceGroup{
		group("D1", pt("p1", types.KindCommunication)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	if result.Attempted != 0 {
		t.Errorf("expected excluded point to never be attempted, got %d", result.Attempted)
	}
}

func TestAssignNeverDuplicatesAnAddress(t *testing.T) {
	idx := rack.NewIndex(cfg(aiModule("m1", 1, 2, 2)))
	groups := []types.DeviceGroup{
		group("D1", pt("p1", types.KindAI), pt("p2", types.KindAI)),
	}

	result := assigner.Assign(groups, idx, assigner.Options{})

	seen := make(map[string]bool)
	for _, addr := range result.Assignments {
		if seen[addr.String()] {
			t.Fatalf("duplicate address %s", addr)
		}
		seen[addr.String()] = true
	}
}

func TestAssignPairedRackPrepassPlacesDIAndDOInSameRack(t *testing.T) {
	idx := rack.NewIndex(cfg(
		diModule("di1", 1, 2, 2),
		doModule("do1", 1, 3, 2),
	))
	groups := []types.DeviceGroup{
		{
			DeviceID:        "XV100",
			IsPairedDigital: true,
			Points:          []types.Point{pt("di_p", types.KindDI), pt("do_p", types.KindDO)},
		},
	}

	result := assigner.Assign(groups, idx, assigner.Options{EnablePairedRackPrepass: true})

	if result.Failed != 0 {
		t.Fatalf("expected both paired points assigned, got %d failures", result.Failed)
	}
	diAddr := result.Assignments["di_p"]
	doAddr := result.Assignments["do_p"]
	if diAddr.RackID != doAddr.RackID {
		t.Errorf("expected both paired points in the same rack, got %s and %s", diAddr, doAddr)
	}
}
