// Package headermap maps the header row of an ingested table to the
// semantic fields a Point is built from, tolerating synonym, cross-language,
// and positional variation across source documents.
package headermap

// Field is one semantic column a header row may expose.
type Field string

const (
	FieldInstrumentTag Field = "instrument_tag"
	FieldDescription   Field = "description"
	FieldSignalRange   Field = "signal_range"
	FieldDataRange     Field = "data_range"
	FieldSignalType    Field = "signal_type"
	FieldUnits         Field = "units"
	FieldPowerSupply   Field = "power_supply"
	FieldIsolation     Field = "isolation"
	FieldRemarks       Field = "remarks"
)

// KnownFields lists every field Detect ever assigns, in the order the
// synonym table is walked — used by the Extractor's header-row scan to
// count how many known keywords a candidate row contains.
var KnownFields = []Field{
	FieldInstrumentTag,
	FieldDescription,
	FieldSignalRange,
	FieldDataRange,
	FieldSignalType,
	FieldUnits,
	FieldPowerSupply,
	FieldIsolation,
	FieldRemarks,
}
