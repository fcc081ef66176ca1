package models

import (
	"encoding/json"
	"testing"

	"gsep-planner/internal/idgen"
)

func TestNewProjectDefaults(t *testing.T) {
	gen := idgen.New()
	p := NewProject(gen, "Main St Renewal")

	if p.ID != 1 {
		t.Errorf("project id = %d, want 1", p.ID)
	}
	if p.ProjectType != DefaultProjectType {
		t.Errorf("projectType = %q, want %q", p.ProjectType, DefaultProjectType)
	}
	if p.AnnualHDD != 5800 {
		t.Errorf("annualHDD = %v, want 5800", p.AnnualHDD)
	}
	if len(p.Streets) != 1 || p.NumberOfStreets != 1 {
		t.Fatalf("streets = %d (mirror %d), want 1", len(p.Streets), p.NumberOfStreets)
	}
	st := p.Streets[0]
	if st.ID != 2 {
		t.Errorf("street id = %d, want 2", st.ID)
	}
	if st.MainSegments == nil || st.AdvancedLeakDetectionEvaluation.SeiNotUsedReasons == nil {
		t.Error("new street has nil child lists")
	}
}

func TestNewServiceCopiesStreetName(t *testing.T) {
	svc := NewService(idgen.New(), "Elm St")
	if svc.StreetName != "Elm St" {
		t.Errorf("streetName = %q, want %q", svc.StreetName, "Elm St")
	}
	if svc.Meters == nil || svc.NumberOfMeters != 0 {
		t.Errorf("meters = %v (mirror %d), want empty", svc.Meters, svc.NumberOfMeters)
	}
}

func TestServicePatchNullableMembers(t *testing.T) {
	d := 2.0
	svc := &Service{Diameter: &d, Length: &d, Material: "Bare Steel"}

	var patch ServicePatch
	if err := json.Unmarshal([]byte(`{"diameter": null, "material": "Cast Iron"}`), &patch); err != nil {
		t.Fatalf("unmarshal patch: %v", err)
	}
	patch.Apply(svc)

	if svc.Diameter != nil {
		t.Errorf("diameter = %v, want nil", *svc.Diameter)
	}
	if svc.Length == nil || *svc.Length != 2 {
		t.Errorf("length changed by absent member: %v", svc.Length)
	}
	if svc.Material != "Cast Iron" {
		t.Errorf("material = %q, want %q", svc.Material, "Cast Iron")
	}
}

func TestMeterPatchSetsValue(t *testing.T) {
	m := &Meter{}
	MeterPatch{UddUsage: Val(120.5)}.Apply(m)
	if m.UddUsage == nil || *m.UddUsage != 120.5 {
		t.Fatalf("uddUsage = %v, want 120.5", m.UddUsage)
	}
	MeterPatch{UddUsage: Null[float64]()}.Apply(m)
	if m.UddUsage != nil {
		t.Errorf("uddUsage = %v, want nil", *m.UddUsage)
	}
}

func TestCloneIsDeep(t *testing.T) {
	gen := idgen.New()
	p := NewProject(gen, "P")
	seg := NewMainSegment(gen)
	svc := NewService(gen, "")
	svc.Meters = append(svc.Meters, NewMeter(gen))
	seg.Services = append(seg.Services, svc)
	p.Streets[0].MainSegments = append(p.Streets[0].MainSegments, seg)
	p.Streets[0].AdvancedLeakDetectionEvaluation.CisbotNotUsedReasons = []string{"a"}

	c := p.Clone()
	c.Streets[0].Name = "changed"
	c.Streets[0].MainSegments[0].Services[0].Meters[0].MeterNumber = "M-1"
	c.Streets[0].AdvancedLeakDetectionEvaluation.CisbotNotUsedReasons[0] = "b"

	if p.Streets[0].Name != "" {
		t.Error("street name leaked into original")
	}
	if p.Streets[0].MainSegments[0].Services[0].Meters[0].MeterNumber != "" {
		t.Error("meter number leaked into original")
	}
	if p.Streets[0].AdvancedLeakDetectionEvaluation.CisbotNotUsedReasons[0] != "a" {
		t.Error("reason list shared with clone")
	}
}

func TestNormalizeRewritesMirrors(t *testing.T) {
	p := &Project{
		NumberOfStreets: 7,
		Streets: []*Street{{
			NumberOfMainSegments: 3,
			MainSegments:         []*MainSegment{{NumberOfServices: 9}},
		}},
	}
	p.Normalize()

	st := p.Streets[0]
	if p.NumberOfStreets != 1 || st.NumberOfMainSegments != 1 || st.MainSegments[0].NumberOfServices != 0 {
		t.Errorf("mirrors = %d/%d/%d, want 1/1/0", p.NumberOfStreets, st.NumberOfMainSegments, st.MainSegments[0].NumberOfServices)
	}
	if st.MainSegments[0].Services == nil || st.AdvancedLeakDetectionEvaluation.KeyholeNotUsedReasons == nil {
		t.Error("nil lists not normalised")
	}
}

func TestDiameterReductionLabel(t *testing.T) {
	if l, ok := DiameterReductionLabel("8_to_6"); !ok || l != `8" to 6"` {
		t.Errorf("label = %q (%v), want 8\" to 6\"", l, ok)
	}
	if l, ok := DiameterReductionLabel("custom"); ok || l != "custom" {
		t.Errorf("label = %q (%v), want passthrough", l, ok)
	}
}
