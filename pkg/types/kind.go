package types

// Kind identifies the signal or channel category a Point, Module, or
// ChannelAddress belongs to. It is a closed set; Valid reports whether a
// value is one this module recognizes.
type Kind string

const (
	KindAI Kind = "AI"
	KindAO Kind = "AO"
	KindDI Kind = "DI"
	KindDO Kind = "DO"

	// KindCommunication marks a point that rides a fieldbus/communication
	// channel rather than a physical IO channel. Excluded from assignment.
	KindCommunication Kind = "communication"

	// KindUnknown marks a point the Classifier could not place and a
	// section-heading row the Classifier excludes.
	KindUnknown Kind = "unknown"

	// Mixed module kinds: a single module carrying two channel kinds,
	// partitioned internally via Module.SubChannels.
	KindMixedAIAO Kind = "AI/AO"
	KindMixedDIDO Kind = "DI/DO"

	// Non-assignable rack infrastructure kinds.
	KindCPU        Kind = "CPU"
	KindDP         Kind = "DP"
	KindCOM        Kind = "COM"
	KindBackplane  Kind = "rack-backplane"
)

// BulkKinds are the four channel kinds subject to module-interior
// contiguity (I3) and module-fill ordering (I4) during assignment. Order
// matters: it is the definitive allocation order (§4.6).
var BulkKinds = []Kind{KindAI, KindDI, KindDO, KindAO}

// Valid reports whether k is one of this module's recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAI, KindAO, KindDI, KindDO, KindCommunication, KindUnknown,
		KindMixedAIAO, KindMixedDIDO, KindCPU, KindDP, KindCOM, KindBackplane:
		return true
	default:
		return false
	}
}

// Assignable reports whether channels of this kind are ever handed out by
// the Assigner. COM, DP, CPU and backplane channels are reported to the
// user but never assigned.
func (k Kind) Assignable() bool {
	switch k {
	case KindAI, KindAO, KindDI, KindDO:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
