package types

// Point is one logical signal extracted from an engineering document.
// Created by the Extractor; immutable thereafter except for Kind (set by
// the Classifier) and AssignedAddress (set after assignment).
type Point struct {
	ID            string
	InstrumentTag string
	Description   string
	Kind          Kind

	RangeLow  string
	RangeHigh string
	Units     string

	PowerSupply string
	Wiring      string

	// Third-party setpoints. Empty string means not present on the sheet.
	SLL string
	SL  string
	SH  string
	SHH string

	// AssignedAddress is empty until the Assigner places this point.
	AssignedAddress string
}

// Excluded reports whether this point must not consume a physical channel.
func (p Point) Excluded() bool {
	return p.Kind == KindCommunication || p.Kind == KindUnknown
}
