package types_test

import (
	"testing"

	"chassign/pkg/types"
)

func TestNewChannelAddressSlotQuirk(t *testing.T) {
	tests := []struct {
		name           string
		internalSlotID int
		expectedSlot   int
	}{
		{"slot 0 stays 0", 0, 0},
		{"slot 1 becomes 0", 1, 0},
		{"slot 2 becomes 1", 2, 1},
		{"slot 5 becomes 4", 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := types.NewChannelAddress(1, tt.internalSlotID, types.KindAI, 0)
			if addr.DisplaySlot != tt.expectedSlot {
				t.Errorf("expected display slot %d, got %d", tt.expectedSlot, addr.DisplaySlot)
			}
		})
	}
}

func TestChannelAddressString(t *testing.T) {
	addr := types.NewChannelAddress(2, 3, types.KindDI, 5)
	expected := "2_2_DI_5"
	if addr.String() != expected {
		t.Errorf("expected %s, got %s", expected, addr.String())
	}
}

func TestParseChannelAddressRoundTrip(t *testing.T) {
	addr := types.NewChannelAddress(1, 0, types.KindAI, 0)
	parsed, err := types.ParseChannelAddress(addr.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != addr {
		t.Errorf("expected %+v, got %+v", addr, parsed)
	}
}

func TestParseChannelAddressRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"1_2_AI",
		"1_2_AI_x",
		"x_2_AI_0",
		"1_2_BOGUS_0",
	}
	for _, c := range cases {
		if _, err := types.ParseChannelAddress(c); err == nil {
			t.Errorf("expected error parsing %q", c)
		}
	}
}

func TestParseChannelAddressSlotAsymmetry(t *testing.T) {
	// Slot 0 and slot 1 both render with DisplaySlot 0; Parse cannot
	// recover which internal slot produced the string, by design.
	fromSlot0 := types.NewChannelAddress(1, 0, types.KindAI, 0)
	fromSlot1 := types.NewChannelAddress(1, 1, types.KindAI, 0)
	if fromSlot0.String() != fromSlot1.String() {
		t.Fatalf("expected slot 0 and slot 1 to render identically, got %s and %s", fromSlot0.String(), fromSlot1.String())
	}
}
