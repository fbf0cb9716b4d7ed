package classification_test

import (
	"testing"

	"chassign/pkg/classification"
	"chassign/pkg/extractor"
	"chassign/pkg/headermap"
	"chassign/pkg/types"
)

func row(tag, description, signalType string) extractor.RawRow {
	return extractor.RawRow{
		headermap.FieldInstrumentTag: tag,
		headermap.FieldDescription:   description,
		headermap.FieldSignalType:    signalType,
	}
}

func TestClassifyCanonicalSignalType(t *testing.T) {
	p, err := classification.Classify(row("FT101", "流量变送器", "AI"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != types.KindAI {
		t.Errorf("expected AI, got %s", p.Kind)
	}
}

func TestClassifyExcludesCommunicationBySignalType(t *testing.T) {
	p, err := classification.Classify(row("PLC01", "PLC通讯点", "MODBUS"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != types.KindCommunication || !p.Excluded() {
		t.Errorf("expected excluded communication point, got kind %s", p.Kind)
	}
}

func TestClassifyExcludesCommunicationByTagPrefix(t *testing.T) {
	p, err := classification.Classify(row("RS-100", "serial link", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != types.KindCommunication {
		t.Errorf("expected communication kind for RS- prefixed tag, got %s", p.Kind)
	}
}

func TestClassifyExcludesSectionHeading(t *testing.T) {
	p, err := classification.Classify(row("BPCS", "", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != types.KindUnknown || !p.Excluded() {
		t.Errorf("expected excluded section heading, got kind %s", p.Kind)
	}
}

func TestClassifyInfersKindByKeyword(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        types.Kind
	}{
		{"pressure", "压力变送器", types.KindAI},
		{"alarm switch", "故障报警开关", types.KindDI},
		{"valve control", "阀门控制", types.KindDO},
		{"setpoint", "设定输出", types.KindAO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := classification.Classify(row("PT"+tt.name, tt.description, ""))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, p.Kind)
			}
		})
	}
}

func TestClassifyUnrecognizedYieldsUnknown(t *testing.T) {
	p, err := classification.Classify(row("XX1", "something unremarkable", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != types.KindUnknown {
		t.Errorf("expected unknown kind, got %s", p.Kind)
	}
}

func TestClassifyAmbiguousRowFails(t *testing.T) {
	_, err := classification.Classify(row("", "", ""))
	if err == nil {
		t.Fatal("expected an error for a row with no tag and no description")
	}
}
