// Package rack constructs the Rack Model (which backplane topology, which
// modules sit in which slot) from a flat device list and a module
// catalogue, and exposes the Channel Index that the Assigner draws from.
package rack

import (
	"sort"
	"strconv"

	"chassign/pkg/catalogue"
	"chassign/pkg/errors"
	"chassign/pkg/types"
)

// cpuCentricModel is the source-level token identifying the CPU-centric
// system's CPU module.
const cpuCentricModel = "LE5118"

// backplaneModel is the source-level token identifying a classic-serial
// backplane instance.
const backplaneModel = "LK117"

// DeviceInput is one line of the input device list: a module model and how
// many physical instances of it are present.
type DeviceInput struct {
	Model string
	Count int
}

// Build constructs the SystemConfiguration for a device list, resolving
// each model through store and sizing racks to slotsPerRack. reservedSlots
// lists internal slot indices that never receive a user-configurable
// module, in addition to the slots reserved by the topology rules below
// (slot 0 on a classic-serial rack, slot 1's DP master).
func Build(devices []DeviceInput, store *catalogue.Store, slotsPerRack int, reservedSlots []int) (types.SystemConfiguration, error) {
	instances := expand(devices)

	if containsModel(instances, cpuCentricModel) {
		return buildCPUCentric(instances, store, slotsPerRack, reservedSlots)
	}
	return buildClassicSerial(instances, store, slotsPerRack, reservedSlots)
}

func expand(devices []DeviceInput) []string {
	var instances []string
	for _, d := range devices {
		for i := 0; i < d.Count; i++ {
			instances = append(instances, d.Model)
		}
	}
	return instances
}

func containsModel(instances []string, model string) bool {
	for _, m := range instances {
		if m == model {
			return true
		}
	}
	return false
}

func buildCPUCentric(instances []string, store *catalogue.Store, slotsPerRack int, reservedSlots []int) (types.SystemConfiguration, error) {
	cpuDef, ok := store.Lookup(cpuCentricModel)
	if !ok {
		return types.SystemConfiguration{}, errors.NewConfigurationError(errors.CodeUnresolvedModule, "CPU-centric system detected but catalogue has no entry for "+cpuCentricModel)
	}

	r := types.Rack{RackID: 1, TotalSlots: slotsPerRack, SystemType: types.SystemCPUCentric}
	r.Modules = append(r.Modules, moduleFromDefinition(cpuDef, r.RackID, 0))

	reserved := reservedSlotSet(reservedSlots)
	userModels := without(instances, cpuCentricModel)

	slotID := 1
	for _, model := range userModels {
		slotID = nextOpenSlot(slotID, slotsPerRack, reserved)
		if slotID >= slotsPerRack {
			return types.SystemConfiguration{}, errors.NewConfigurationError(errors.CodeUnresolvedModule, "no free slot for module "+model)
		}
		def, ok := store.Lookup(model)
		if !ok {
			return types.SystemConfiguration{}, errors.NewConfigurationError(errors.CodeUnresolvedModule, "unresolved module model "+model)
		}
		r.Modules = append(r.Modules, moduleFromDefinition(def, r.RackID, slotID))
		slotID++
	}

	return types.SystemConfiguration{SystemType: types.SystemCPUCentric, Racks: []types.Rack{r}}, nil
}

func buildClassicSerial(instances []string, store *catalogue.Store, slotsPerRack int, reservedSlots []int) (types.SystemConfiguration, error) {
	backplaneCount := countModel(instances, backplaneModel)
	userModels := without(instances, backplaneModel)

	rackCount := backplaneCount
	if rackCount == 0 && len(userModels) > 0 {
		rackCount = 1
	}
	if rackCount == 0 {
		return types.SystemConfiguration{SystemType: types.SystemClassicSerial}, nil
	}

	racks := make([]types.Rack, rackCount)
	for i := range racks {
		racks[i] = types.Rack{RackID: i + 1, TotalSlots: slotsPerRack, SystemType: types.SystemClassicSerial}
	}

	for i := range racks {
		racks[i].Modules = append(racks[i].Modules, types.Module{
			ID:     "DP-" + strconv.Itoa(racks[i].RackID),
			Model:  "DP",
			Kind:   types.KindDP,
			RackID: racks[i].RackID,
			SlotID: 1,
		})
	}

	reserved := reservedSlotSet(reservedSlots)
	rackIdx, slotID := 0, 2

	for _, model := range userModels {
		for {
			if rackIdx >= len(racks) {
				return types.SystemConfiguration{}, errors.NewConfigurationError(errors.CodeUnresolvedModule, "no free slot for module "+model+": all racks full")
			}
			slotID = nextOpenSlot(slotID, slotsPerRack, reserved)
			if slotID >= slotsPerRack {
				rackIdx++
				slotID = 2
				continue
			}
			break
		}
		def, ok := store.Lookup(model)
		if !ok {
			return types.SystemConfiguration{}, errors.NewConfigurationError(errors.CodeUnresolvedModule, "unresolved module model "+model)
		}
		racks[rackIdx].Modules = append(racks[rackIdx].Modules, moduleFromDefinition(def, racks[rackIdx].RackID, slotID))
		slotID++
	}

	sort.Slice(racks, func(i, j int) bool { return racks[i].RackID < racks[j].RackID })
	return types.SystemConfiguration{SystemType: types.SystemClassicSerial, Racks: racks}, nil
}

func nextOpenSlot(from, slotsPerRack int, reserved map[int]bool) int {
	s := from
	for s < slotsPerRack && reserved[s] {
		s++
	}
	return s
}

func reservedSlotSet(slots []int) map[int]bool {
	m := make(map[int]bool, len(slots))
	for _, s := range slots {
		m[s] = true
	}
	return m
}

func countModel(instances []string, model string) int {
	n := 0
	for _, m := range instances {
		if m == model {
			n++
		}
	}
	return n
}

func without(instances []string, model string) []string {
	out := make([]string, 0, len(instances))
	for _, m := range instances {
		if m != model {
			out = append(out, m)
		}
	}
	return out
}

// moduleFromDefinition converts a catalogue entry into a placed Module. For
// mixed-kind modules (AI/AO, DI/DO) the total channel count is split evenly
// between the two kinds since the catalogue can't name per-kind widths for
// those; a CPU's onboard sub-channels carry their own per-kind map straight
// through from the catalogue entry.
func moduleFromDefinition(def types.ModuleDefinition, rackID, slotID int) types.Module {
	m := types.Module{
		ID:            def.Model + "@" + strconv.Itoa(rackID) + "." + strconv.Itoa(slotID),
		Model:         def.Model,
		Kind:          def.Kind,
		TotalChannels: def.TotalChannels,
		RackID:        rackID,
		SlotID:        slotID,
	}

	switch def.Kind {
	case types.KindMixedAIAO:
		half := def.TotalChannels / 2
		m.SubChannels = map[types.Kind]int{types.KindAI: half, types.KindAO: def.TotalChannels - half}
	case types.KindMixedDIDO:
		half := def.TotalChannels / 2
		m.SubChannels = map[types.Kind]int{types.KindDI: half, types.KindDO: def.TotalChannels - half}
	case types.KindCPU:
		if len(def.SubChannels) > 0 {
			m.SubChannels = def.SubChannels
		}
	}
	return m
}
