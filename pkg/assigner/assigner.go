// Package assigner implements the core contiguous-pass channel assignment
// algorithm: walking each bulk kind's free channels module by module and
// handing them out to points in arrival order.
package assigner

import (
	"sort"

	"chassign/pkg/errors"
	"chassign/pkg/rack"
	"chassign/pkg/types"
)

// Unassigned records why one point could not be placed.
type Unassigned struct {
	PointID string
	Tag     string
	Kind    types.Kind
	Reason  string
}

// Result is the outcome of one assignment run.
type Result struct {
	Assignments map[string]types.ChannelAddress
	Unassigned  []Unassigned
	Attempted   int
	Assigned    int
	Failed      int
	Excluded    int
}

// Options tunes the algorithm beyond its definitive contiguous pass.
type Options struct {
	// EnablePairedRackPrepass turns on the optional best-effort pass that
	// tries to place a paired-digital group's DI and DO points inside the
	// same rack before the main pass runs.
	EnablePairedRackPrepass bool
}

// Assign places every non-excluded point from groups onto a channel drawn
// from idx, consuming idx destructively. Points are visited kind by kind in
// the fixed order AI, DI, DO, AO; within a kind, groups and their points
// appear in the order Group produced them.
func Assign(groups []types.DeviceGroup, idx *rack.Index, opts Options) Result {
	result := Result{Assignments: make(map[string]types.ChannelAddress)}

	byKind := make(map[types.Kind][]types.Point)
	for _, g := range groups {
		for _, p := range g.Points {
			if p.Excluded() {
				result.Excluded++
				continue
			}
			byKind[p.Kind] = append(byKind[p.Kind], p)
		}
	}

	if opts.EnablePairedRackPrepass {
		runPairedRackPrepass(groups, idx, &result)
	}

	for _, kind := range types.BulkKinds {
		points := byKind[kind]
		assignKind(points, idx, &result)
	}

	return result
}

// assignKind consumes idx's free channels of one kind, module by module, and
// allocates them to points in order. Points beyond the last free channel are
// recorded as unassigned with a per-point reason.
func assignKind(points []types.Point, idx *rack.Index, result *Result) {
	pending := make([]types.Point, 0, len(points))
	for _, p := range points {
		if _, already := result.Assignments[p.ID]; !already {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return
	}

	groups := idx.ChannelsByModule(pending[0].Kind)

	pointIndex := 0
	for _, module := range groups {
		for _, ch := range module {
			if pointIndex >= len(pending) {
				break
			}
			assignOne(pending[pointIndex], ch, idx, result)
			pointIndex++
		}
		if pointIndex >= len(pending) {
			break
		}
	}

	for ; pointIndex < len(pending); pointIndex++ {
		recordShortfall(pending[pointIndex], result)
	}
}

func assignOne(p types.Point, ch rack.Channel, idx *rack.Index, result *Result) {
	result.Attempted++
	if !idx.Take(ch) {
		recordShortfall(p, result)
		return
	}
	result.Assignments[p.ID] = ch.Address()
	result.Assigned++
}

func recordShortfall(p types.Point, result *Result) {
	result.Attempted++
	result.Failed++
	result.Unassigned = append(result.Unassigned, Unassigned{
		PointID: p.ID,
		Tag:     p.InstrumentTag,
		Kind:    p.Kind,
		Reason:  errors.ErrNoFreeChannel(p.InstrumentTag, p.Kind.String()).Error(),
	})
}

// runPairedRackPrepass reserves, for each paired-digital group with both DI
// and DO points, a same-rack contiguous sub-range of each kind when one
// exists. Groups that can't fit in a single rack are left untouched for the
// main pass.
func runPairedRackPrepass(groups []types.DeviceGroup, idx *rack.Index, result *Result) {
	for _, g := range groups {
		if !g.IsPairedDigital {
			continue
		}

		var diPoints, doPoints []types.Point
		for _, p := range g.Points {
			switch p.Kind {
			case types.KindDI:
				diPoints = append(diPoints, p)
			case types.KindDO:
				doPoints = append(doPoints, p)
			}
		}
		if len(diPoints) == 0 || len(doPoints) == 0 {
			continue
		}

		_, diChannels, doChannels, ok := findPairedRack(idx, len(diPoints), len(doPoints))
		if !ok {
			continue
		}

		for i, p := range diPoints {
			assignOne(p, diChannels[i], idx, result)
		}
		for i, p := range doPoints {
			assignOne(p, doChannels[i], idx, result)
		}
	}
}

// findPairedRack looks for a single rack whose free DI and DO channels can
// each supply a contiguous module-ordered run of the requested length.
func findPairedRack(idx *rack.Index, diNeeded, doNeeded int) (int, []rack.Channel, []rack.Channel, bool) {
	seen := make(map[int]bool)
	var rackIDs []int
	for _, c := range idx.IterChannels(types.KindDI) {
		if !seen[c.RackID] {
			seen[c.RackID] = true
			rackIDs = append(rackIDs, c.RackID)
		}
	}
	sort.Ints(rackIDs)

	for _, rackID := range rackIDs {
		diChannels := idx.IterChannelsInRack(rackID, types.KindDI)
		doChannels := idx.IterChannelsInRack(rackID, types.KindDO)
		if len(diChannels) >= diNeeded && len(doChannels) >= doNeeded {
			return rackID, diChannels[:diNeeded], doChannels[:doNeeded], true
		}
	}
	return 0, nil, nil, false
}
