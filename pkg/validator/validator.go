// Package validator is a rule engine for the filled-in IO point sheet and
// its sibling third-party device sheets. Rules never stop the run early;
// every row is checked against every applicable rule and all findings are
// returned together.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"chassign/pkg/types"
)

// DataType is a third-party sheet's declared variable type.
type DataType string

const (
	DataTypeReal    DataType = "REAL"
	DataTypeBool    DataType = "BOOL"
	DataTypeUnknown DataType = ""
)

// Row is one data row of either the main IO sheet or a third-party sheet,
// already flattened out of whatever spreadsheet representation produced it.
type Row struct {
	Sheet    string
	ExcelRow int

	// Main IO sheet columns.
	HMIName     string
	Description string
	PowerSupply string
	Wiring      string
	ModuleKind  types.Kind
	RangeLow    string
	RangeHigh   string

	// Third-party sheet columns.
	VariableName string
	DataType     DataType

	// Setpoint columns, shared by both sheet shapes.
	SLL string
	SL  string
	SH  string
	SHH string
}

// allowedPowerSupply are the only legal power_supply values.
var allowedPowerSupply = map[string]bool{"active": true, "passive": true}

// allowedWiringAIAO covers both the English names and their source aliases.
var allowedWiringAIAO = map[string]bool{
	"2-wire": true, "3-wire": true, "4-wire": true,
	"2线制": true, "两线制": true, "3线制": true, "4线制": true,
}

var allowedWiringDIDO = map[string]bool{
	"normally-open": true, "normally-closed": true,
}

// Context carries one row plus the values rules repeatedly need, computed
// once per row instead of on every rule invocation.
type Context struct {
	Row Row

	hmiPresent         bool
	descriptionPresent bool
}

// NewContext builds a Context from a Row.
func NewContext(row Row) *Context {
	return &Context{
		Row:                row,
		hmiPresent:         isPresent(row.HMIName),
		descriptionPresent: isPresent(row.Description),
	}
}

// IsReserved reports whether this main-sheet row is a reserved (unused)
// slot: one with no HMI name.
func (c *Context) IsReserved() bool {
	return !c.hmiPresent
}

// ModuleKind returns the row's declared module kind.
func (c *Context) ModuleKind() types.Kind {
	return c.Row.ModuleKind
}

// DataType returns the row's third-party data type.
func (c *Context) DataType() DataType {
	return c.Row.DataType
}

func isPresent(s string) bool {
	return strings.TrimSpace(s) != ""
}

func isNumeric(s string) bool {
	if !isPresent(s) {
		return true
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// Finding is one validation failure, formatted per the canonical error
// string the downstream tooling expects.
type Finding struct {
	Sheet    string
	ExcelRow int
	Point    string
	Column   string
	Value    string
	Message  string
}

func (f Finding) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, `validation failed (sheet:"%s", excel_row:%d`, f.Sheet, f.ExcelRow)
	if f.Point != "" {
		fmt.Fprintf(&b, `, point:"%s"`, f.Point)
	}
	if f.Column != "" {
		fmt.Fprintf(&b, `, column:"%s"`, f.Column)
	}
	if f.Value != "" {
		fmt.Fprintf(&b, `, value:"%s"`, truncate(f.Value, 50))
	}
	fmt.Fprintf(&b, "): %s", f.Message)
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func newFinding(ctx *Context, column, value, message string) Finding {
	return Finding{
		Sheet:    ctx.Row.Sheet,
		ExcelRow: ctx.Row.ExcelRow,
		Point:    ctx.Row.VariableName,
		Column:   column,
		Value:    value,
		Message:  message,
	}
}

// Rule is one independent validation check against a row.
type Rule interface {
	Validate(ctx *Context) []error
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(ctx *Context) []error

func (f RuleFunc) Validate(ctx *Context) []error { return f(ctx) }

// MainSheetRules are applied to every row of the main IO point sheet.
var MainSheetRules = []Rule{
	RuleFunc(hmiDescriptionConsistency),
	reservedEmptyRule("power_supply", func(r Row) string { return r.PowerSupply }),
	reservedEmptyRule("wiring", func(r Row) string { return r.Wiring }),
	reservedAIEmptyRule("range_low", func(r Row) string { return r.RangeLow }),
	reservedAIEmptyRule("range_high", func(r Row) string { return r.RangeHigh }),
	reservedAIEmptyRule("SLL", func(r Row) string { return r.SLL }),
	reservedAIEmptyRule("SL", func(r Row) string { return r.SL }),
	reservedAIEmptyRule("SH", func(r Row) string { return r.SH }),
	reservedAIEmptyRule("SHH", func(r Row) string { return r.SHH }),
	requiredWhenNotReserved("power_supply", func(r Row) string { return r.PowerSupply }),
	requiredWhenNotReserved("wiring", func(r Row) string { return r.Wiring }),
	RuleFunc(powerSupplyValueRule),
	RuleFunc(wiringValueRule),
	RuleFunc(rangeRequiredForAI),
	numericAIRule("range_low", func(r Row) string { return r.RangeLow }),
	numericAIRule("range_high", func(r Row) string { return r.RangeHigh }),
	numericAIRule("SLL", func(r Row) string { return r.SLL }),
	numericAIRule("SL", func(r Row) string { return r.SL }),
	numericAIRule("SH", func(r Row) string { return r.SH }),
	numericAIRule("SHH", func(r Row) string { return r.SHH }),
}

// ThirdPartySheetRules are applied to every row of a sibling third-party
// device sheet.
var ThirdPartySheetRules = []Rule{
	RuleFunc(realSetpointExclusivity),
	RuleFunc(boolSetpointAbsence),
}

func hmiDescriptionConsistency(ctx *Context) []error {
	if ctx.hmiPresent == ctx.descriptionPresent {
		return nil
	}
	return []error{newFinding(ctx, "", "",
		"hmi_name and description must both be filled or both be empty")}
}

func reservedEmptyRule(column string, get func(Row) string) Rule {
	return RuleFunc(func(ctx *Context) []error {
		if !ctx.IsReserved() {
			return nil
		}
		value := get(ctx.Row)
		if !isPresent(value) {
			return nil
		}
		return []error{newFinding(ctx, column, value,
			fmt.Sprintf("reserved slot must leave %q empty", column))}
	})
}

func reservedAIEmptyRule(column string, get func(Row) string) Rule {
	return RuleFunc(func(ctx *Context) []error {
		if !ctx.IsReserved() || ctx.ModuleKind() != types.KindAI {
			return nil
		}
		value := get(ctx.Row)
		if !isPresent(value) {
			return nil
		}
		return []error{newFinding(ctx, column, value,
			fmt.Sprintf("reserved AI slot must leave %q empty", column))}
	})
}

func requiredWhenNotReserved(column string, get func(Row) string) Rule {
	return RuleFunc(func(ctx *Context) []error {
		if ctx.IsReserved() {
			return nil
		}
		value := get(ctx.Row)
		if isPresent(value) {
			return nil
		}
		return []error{newFinding(ctx, column, "",
			fmt.Sprintf("%q is required for a non-reserved row", column))}
	})
}

func powerSupplyValueRule(ctx *Context) []error {
	if ctx.IsReserved() {
		return nil
	}
	value := strings.TrimSpace(ctx.Row.PowerSupply)
	if !isPresent(value) || allowedPowerSupply[value] {
		return nil
	}
	return []error{newFinding(ctx, "power_supply", value,
		"power_supply must be one of: active, passive")}
}

func wiringValueRule(ctx *Context) []error {
	if ctx.IsReserved() {
		return nil
	}
	value := strings.TrimSpace(ctx.Row.Wiring)
	if !isPresent(value) {
		return nil
	}

	switch ctx.ModuleKind() {
	case types.KindAI, types.KindAO:
		if !allowedWiringAIAO[value] {
			return []error{newFinding(ctx, "wiring", value,
				"wiring must be one of: 2-wire, 3-wire, 4-wire (or their Chinese aliases) for AI/AO rows")}
		}
	case types.KindDI, types.KindDO:
		if !allowedWiringDIDO[value] {
			return []error{newFinding(ctx, "wiring", value,
				"wiring must be one of: normally-open, normally-closed for DI/DO rows")}
		}
	}
	return nil
}

func rangeRequiredForAI(ctx *Context) []error {
	if ctx.IsReserved() || ctx.ModuleKind() != types.KindAI {
		return nil
	}
	var findings []error
	if !isPresent(ctx.Row.RangeLow) {
		findings = append(findings, newFinding(ctx, "range_low", "", fmt.Sprintf("%q is required for a non-reserved AI row", "range_low")))
	}
	if !isPresent(ctx.Row.RangeHigh) {
		findings = append(findings, newFinding(ctx, "range_high", "", fmt.Sprintf("%q is required for a non-reserved AI row", "range_high")))
	}
	return findings
}

func numericAIRule(column string, get func(Row) string) Rule {
	return RuleFunc(func(ctx *Context) []error {
		if ctx.IsReserved() || ctx.ModuleKind() != types.KindAI {
			return nil
		}
		value := get(ctx.Row)
		if isNumeric(value) {
			return nil
		}
		return []error{newFinding(ctx, column, value,
			fmt.Sprintf("%q must be a number", column))}
	})
}

func realSetpointExclusivity(ctx *Context) []error {
	if ctx.DataType() != DataTypeReal {
		return nil
	}
	names := []string{"SLL", "SL", "SH", "SHH"}
	var present []string
	for i, v := range []string{ctx.Row.SLL, ctx.Row.SL, ctx.Row.SH, ctx.Row.SHH} {
		if isPresent(v) {
			present = append(present, names[i])
		}
	}
	if len(present) <= 1 {
		return nil
	}
	return []error{newFinding(ctx, "", "", fmt.Sprintf(
		"a REAL-typed row may have at most one of SLL/SL/SH/SHH set; multiple values in %s",
		strings.Join(present, ", ")))}
}

func boolSetpointAbsence(ctx *Context) []error {
	if ctx.DataType() != DataTypeBool {
		return nil
	}
	var findings []error
	columns := []struct {
		name  string
		value string
	}{
		{"SLL", ctx.Row.SLL}, {"SL", ctx.Row.SL}, {"SH", ctx.Row.SH}, {"SHH", ctx.Row.SHH},
	}
	for _, c := range columns {
		if isPresent(c.value) {
			findings = append(findings, newFinding(ctx, c.name, c.value,
				"a BOOL-typed row must leave all of SLL/SL/SH/SHH empty"))
		}
	}
	return findings
}

// ValidateSheet runs rules against every row and then, for the main IO
// sheet, the cross-row HMI-name uniqueness check.
func ValidateSheet(mainRows []Row, thirdPartyRows []Row) []error {
	var findings []error

	for _, row := range mainRows {
		ctx := NewContext(row)
		for _, rule := range MainSheetRules {
			findings = append(findings, rule.Validate(ctx)...)
		}
	}
	findings = append(findings, hmiNameUniqueness(mainRows)...)

	for _, row := range thirdPartyRows {
		ctx := NewContext(row)
		for _, rule := range ThirdPartySheetRules {
			findings = append(findings, rule.Validate(ctx)...)
		}
	}

	return findings
}

// hmiNameUniqueness flags any non-empty hmi_name value shared by more than
// one row of the main IO sheet.
func hmiNameUniqueness(rows []Row) []error {
	seenAt := make(map[string]Row)
	var findings []error
	for _, row := range rows {
		name := strings.TrimSpace(row.HMIName)
		if name == "" {
			continue
		}
		if first, seen := seenAt[name]; seen {
			findings = append(findings, Finding{
				Sheet:    row.Sheet,
				ExcelRow: row.ExcelRow,
				Column:   "hmi_name",
				Value:    name,
				Message:  fmt.Sprintf("hmi_name %q duplicates the one used at excel_row %d", name, first.ExcelRow),
			})
			continue
		}
		seenAt[name] = row
	}
	return findings
}
