package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ChannelAddress is the canonical external address string:
// "{rack}_{slot0}_{kind}_{channel}".
//
// slot0 is NOT the internal 0-based slot index verbatim: slot 0 stays 0,
// but slot n >= 1 is emitted as n-1. This means slot 0 and slot 1 both
// render as "0" in the address string — a one-way quirk required for
// bit-compatibility with downstream tools. Parse recovers the literal
// DisplaySlot component, not the original internal slot; there is no
// general inverse.
type ChannelAddress struct {
	RackID      int
	DisplaySlot int
	Kind        Kind
	Channel     int
}

// NewChannelAddress builds a ChannelAddress from a 1-based rack id, the
// module's internal 0-based slot index, a kind, and a channel number,
// applying the slot-display quirk.
func NewChannelAddress(rackID, internalSlotID int, kind Kind, channel int) ChannelAddress {
	display := internalSlotID
	if internalSlotID >= 1 {
		display = internalSlotID - 1
	}
	return ChannelAddress{
		RackID:      rackID,
		DisplaySlot: display,
		Kind:        kind,
		Channel:     channel,
	}
}

// String renders the canonical address string.
func (a ChannelAddress) String() string {
	return fmt.Sprintf("%d_%d_%s_%d", a.RackID, a.DisplaySlot, a.Kind, a.Channel)
}

// ParseChannelAddress parses the canonical address string. It returns the
// literal fields present in the string; DisplaySlot is not converted back
// to an internal slot index since the mapping is not invertible.
func ParseChannelAddress(s string) (ChannelAddress, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 4 {
		return ChannelAddress{}, fmt.Errorf("malformed channel address %q: expected 4 fields, got %d", s, len(parts))
	}

	rackID, err := strconv.Atoi(parts[0])
	if err != nil {
		return ChannelAddress{}, fmt.Errorf("malformed channel address %q: invalid rack id: %w", s, err)
	}

	displaySlot, err := strconv.Atoi(parts[1])
	if err != nil {
		return ChannelAddress{}, fmt.Errorf("malformed channel address %q: invalid slot: %w", s, err)
	}

	kind := Kind(parts[2])
	if !kind.Valid() {
		return ChannelAddress{}, fmt.Errorf("malformed channel address %q: unrecognized kind %q", s, parts[2])
	}

	channel, err := strconv.Atoi(parts[3])
	if err != nil {
		return ChannelAddress{}, fmt.Errorf("malformed channel address %q: invalid channel: %w", s, err)
	}

	return ChannelAddress{
		RackID:      rackID,
		DisplaySlot: displaySlot,
		Kind:        kind,
		Channel:     channel,
	}, nil
}
