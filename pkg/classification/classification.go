// Package classification turns one raw extracted row into a typed Point:
// deciding first whether the row is a communication soft-point or section
// heading that must be excluded from channel assignment, then inferring its
// signal kind when the source document doesn't state one directly.
package classification

import (
	"strings"

	"chassign/pkg/errors"
	"chassign/pkg/extractor"
	"chassign/pkg/headermap"
	"chassign/pkg/types"
)

// communicationTypes are the fieldbus/communication protocol names that mark
// a row as a soft point riding a communication channel rather than a
// physical IO channel.
var communicationTypes = []string{
	"RS485", "TCP/IP", "MODBUS", "PROFIBUS", "CAN", "HART",
	"ETHERNET", "FIELDBUS", "DEVICENET", "FOUNDATION",
}

// communicationTagPrefixes mark an instrument tag as a communication point
// regardless of its signal_type cell.
var communicationTagPrefixes = []string{"RS-", "GT-", "COMM-", "NET-"}

// sectionHeadingTags are group-header rows (a sheet's section divider) that
// carry no description and must be excluded rather than treated as points.
var sectionHeadingTags = map[string]bool{
	"BPCS": true, "ESD": true, "DCS": true, "SIS": true, "F&G": true,
}

// kindKeywords infers a Point's Kind from the concatenated tag/description/
// signal_type text when signal_type itself isn't a canonical kind. Both the
// Chinese and English keyword tiers the source carries are kept verbatim.
var kindKeywords = map[types.Kind][]string{
	types.KindAI: {
		"压力", "温度", "流量", "液位", "4-20mA", "0-10V",
		"pressure", "temperature", "flow", "level",
	},
	types.KindDI: {
		"状态", "故障", "报警", "开关", "干接点", "开关量",
		"state", "fault", "alarm", "switch", "dry-contact",
	},
	types.KindDO: {
		"控制", "启动", "停止", "阀门", "继电器", "0/24VDC",
		"control", "start", "stop", "valve", "relay",
	},
	types.KindAO: {
		"设定", "输出", "调节", "4-20mA输出", "0-10V输出",
		"setpoint", "output", "0-10v out",
	},
}

// Classify builds a Point from a raw row. It never returns an excluded
// sentinel distinct from Point — an excluded row comes back as a Point whose
// Kind is KindCommunication or KindUnknown; callers test Point.Excluded().
// It fails only when both instrument_tag and description are empty.
func Classify(row extractor.RawRow) (types.Point, error) {
	tag := row[headermap.FieldInstrumentTag]
	description := row[headermap.FieldDescription]

	if tag == "" && description == "" {
		return types.Point{}, errors.NewInputError(errors.CodeAmbiguousRow, "row has neither an instrument tag nor a description")
	}

	signalType := strings.ToUpper(strings.TrimSpace(row[headermap.FieldSignalType]))

	// Wiring (2-wire/3-wire/normally-open/...) has no source column in the
	// input document: it is a downstream IO-sheet field the Validator
	// checks, not something the header map ever resolves. Leaving it unset
	// here, rather than reusing the isolation-hardware column, avoids
	// flagging every non-reserved row with a spurious wiring-value finding.
	p := types.Point{
		InstrumentTag: tag,
		Description:   description,
		RangeLow:      row[headermap.FieldDataRange],
		RangeHigh:     row[headermap.FieldSignalRange],
		Units:         row[headermap.FieldUnits],
		PowerSupply:   row[headermap.FieldPowerSupply],
	}

	if isCommunicationPoint(tag, signalType) {
		p.Kind = types.KindCommunication
		return p, nil
	}

	if isSectionHeading(tag, description) {
		p.Kind = types.KindUnknown
		return p, nil
	}

	p.Kind = inferKind(signalType, tag, description)
	return p, nil
}

func isCommunicationPoint(tag, signalType string) bool {
	for _, ct := range communicationTypes {
		if signalType == ct || strings.Contains(signalType, ct) {
			return true
		}
	}
	upperTag := strings.ToUpper(tag)
	for _, prefix := range communicationTagPrefixes {
		if strings.HasPrefix(upperTag, prefix) {
			return true
		}
	}
	return false
}

func isSectionHeading(tag, description string) bool {
	return description == "" && sectionHeadingTags[strings.ToUpper(tag)]
}

// inferKind resolves a Point's Kind. A canonical signal_type cell is used
// directly; otherwise the concatenated tag/description/signal_type text is
// matched against the keyword table. No match yields KindUnknown.
func inferKind(signalType, tag, description string) types.Kind {
	if canonical := types.Kind(signalType); canonical.Assignable() {
		return canonical
	}

	haystack := strings.ToLower(tag + " " + description + " " + signalType)
	for _, k := range types.BulkKinds {
		for _, kw := range kindKeywords[k] {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return k
			}
		}
	}
	return types.KindUnknown
}
