package rack

import (
	"sort"

	"chassign/pkg/types"
)

// Channel is one physical channel slot exposed by an assignable module.
type Channel struct {
	RackID   int
	SlotID   int // internal 0-based slot index
	ModuleID string
	Kind     types.Kind
	Number   int // 0-based channel number within the module
}

// Address renders this channel's canonical ChannelAddress.
func (c Channel) Address() types.ChannelAddress {
	return types.NewChannelAddress(c.RackID, c.SlotID, c.Kind, c.Number)
}

type channelKey struct {
	rackID, slotID, number int
	kind                   types.Kind
}

func (c Channel) key() channelKey {
	return channelKey{c.RackID, c.SlotID, c.Number, c.Kind}
}

// Index is the Channel Index: every channel exposed by the assignable
// modules of a SystemConfiguration, queryable in deterministic order and
// consumable one at a time via Take.
type Index struct {
	byKind map[types.Kind][]Channel
	taken  map[channelKey]bool
}

// NewIndex enumerates every assignable channel in cfg. Modules that are not
// Assignable() contribute no entries; their channels are visible only
// through the SystemConfiguration itself.
func NewIndex(cfg types.SystemConfiguration) *Index {
	idx := &Index{
		byKind: make(map[types.Kind][]Channel),
		taken:  make(map[channelKey]bool),
	}

	for _, r := range cfg.Racks {
		for _, m := range r.Modules {
			if !m.Assignable() {
				continue
			}
			for _, k := range types.BulkKinds {
				n := m.ChannelsOfKind(k)
				for i := 0; i < n; i++ {
					idx.byKind[k] = append(idx.byKind[k], Channel{
						RackID:   m.RackID,
						SlotID:   m.SlotID,
						ModuleID: m.ID,
						Kind:     k,
						Number:   i,
					})
				}
			}
		}
	}

	for k := range idx.byKind {
		sortChannels(idx.byKind[k])
	}

	return idx
}

// sortChannels orders channels rack ascending, slot ascending, channel
// ascending — the deterministic order every Iter* method preserves.
func sortChannels(cs []Channel) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.RackID != b.RackID {
			return a.RackID < b.RackID
		}
		if a.SlotID != b.SlotID {
			return a.SlotID < b.SlotID
		}
		return a.Number < b.Number
	})
}

// IterChannels returns every free channel of kind k, in deterministic order.
func (idx *Index) IterChannels(k types.Kind) []Channel {
	var out []Channel
	for _, c := range idx.byKind[k] {
		if !idx.taken[c.key()] {
			out = append(out, c)
		}
	}
	return out
}

// IterChannelsInRack returns the free channels of kind k within one rack.
func (idx *Index) IterChannelsInRack(rackID int, k types.Kind) []Channel {
	var out []Channel
	for _, c := range idx.IterChannels(k) {
		if c.RackID == rackID {
			out = append(out, c)
		}
	}
	return out
}

// IterChannelsInModule returns the free channels of kind k within one
// module.
func (idx *Index) IterChannelsInModule(moduleID string, k types.Kind) []Channel {
	var out []Channel
	for _, c := range idx.IterChannels(k) {
		if c.ModuleID == moduleID {
			out = append(out, c)
		}
	}
	return out
}

// ChannelsByModule groups the free channels of kind k by module, each group
// sorted by channel number ascending, groups sorted by (rack_id, slot_id) —
// the exact walk order the Assigner's contiguous pass requires.
func (idx *Index) ChannelsByModule(k types.Kind) [][]Channel {
	free := idx.IterChannels(k)

	var groups [][]Channel
	var current []Channel
	for i, c := range free {
		if i > 0 && c.ModuleID != free[i-1].ModuleID {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Take consumes a channel, removing it from future Iter* results. It
// reports false if the channel was already taken.
func (idx *Index) Take(c Channel) bool {
	key := c.key()
	if idx.taken[key] {
		return false
	}
	idx.taken[key] = true
	return true
}
