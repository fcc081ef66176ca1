package models

// EssentialStatus classifies a main segment as essential or non-essential.
type EssentialStatus string

const (
	EssentialStatusUnset        EssentialStatus = ""
	EssentialStatusEssential    EssentialStatus = "essential"
	EssentialStatusNonEssential EssentialStatus = "nonEssential"
)

// MainSegment is one run of existing main pipe on a street together with
// its planned replacement and the services it feeds.
type MainSegment struct {
	ID                          int64           `json:"id"`
	FromLocation                string          `json:"fromLocation"`
	ToLocation                  string          `json:"toLocation"`
	Diameter                    *float64        `json:"diameter"`
	Material                    string          `json:"material"`
	Length                      *float64        `json:"length"`
	MainID                      string          `json:"mainId"`
	DimpRiskScore               *float64        `json:"dimpRiskScore"`
	Maop                        string          `json:"maop"`
	EssentialStatus             EssentialStatus `json:"essentialStatus"`
	LengthToBeReplaced          *float64        `json:"lengthToBeReplaced"`
	ReplacementPipeDiameter     *float64        `json:"replacementPipeDiameter"`
	ReplacementPipeMaterial     string          `json:"replacementPipeMaterial"`
	ReplacementPipeMethod       string          `json:"replacementPipeMethod"`
	ReplacementPipeMaop         string          `json:"replacementPipeMaop"`
	NumberOfServices            int             `json:"numberOfServices"`
	Services                    []*Service      `json:"services"`
	PrimaryPurpose              string          `json:"primaryPurpose"`
	PrimaryPurposeOtherReason   string          `json:"primaryPurposeOtherReason"`
	PrimaryPurposeExplanation   string          `json:"primaryPurposeExplanation"`
	SecondaryPurpose            string          `json:"secondaryPurpose"`
	SecondaryPurposeOtherReason string          `json:"secondaryPurposeOtherReason"`
	SecondaryPurposeExplanation string          `json:"secondaryPurposeExplanation"`
	DiameterReduction           string          `json:"diameterReduction"`
}

// SegmentPatch carries the editable main segment fields.
type SegmentPatch struct {
	FromLocation                *string           `json:"fromLocation,omitempty"`
	ToLocation                  *string           `json:"toLocation,omitempty"`
	Diameter                    Nullable[float64] `json:"diameter"`
	Material                    *string           `json:"material,omitempty"`
	Length                      Nullable[float64] `json:"length"`
	MainID                      *string           `json:"mainId,omitempty"`
	DimpRiskScore               Nullable[float64] `json:"dimpRiskScore"`
	Maop                        *string           `json:"maop,omitempty"`
	EssentialStatus             *EssentialStatus  `json:"essentialStatus,omitempty"`
	LengthToBeReplaced          Nullable[float64] `json:"lengthToBeReplaced"`
	ReplacementPipeDiameter     Nullable[float64] `json:"replacementPipeDiameter"`
	ReplacementPipeMaterial     *string           `json:"replacementPipeMaterial,omitempty"`
	ReplacementPipeMethod       *string           `json:"replacementPipeMethod,omitempty"`
	ReplacementPipeMaop         *string           `json:"replacementPipeMaop,omitempty"`
	PrimaryPurpose              *string           `json:"primaryPurpose,omitempty"`
	PrimaryPurposeOtherReason   *string           `json:"primaryPurposeOtherReason,omitempty"`
	PrimaryPurposeExplanation   *string           `json:"primaryPurposeExplanation,omitempty"`
	SecondaryPurpose            *string           `json:"secondaryPurpose,omitempty"`
	SecondaryPurposeOtherReason *string           `json:"secondaryPurposeOtherReason,omitempty"`
	SecondaryPurposeExplanation *string           `json:"secondaryPurposeExplanation,omitempty"`
	DiameterReduction           *string           `json:"diameterReduction,omitempty"`
}

// Apply copies every present member of the patch onto s.
func (p SegmentPatch) Apply(s *MainSegment) {
	setIf(p.FromLocation, &s.FromLocation)
	setIf(p.ToLocation, &s.ToLocation)
	p.Diameter.applyTo(&s.Diameter)
	setIf(p.Material, &s.Material)
	p.Length.applyTo(&s.Length)
	setIf(p.MainID, &s.MainID)
	p.DimpRiskScore.applyTo(&s.DimpRiskScore)
	setIf(p.Maop, &s.Maop)
	setIf(p.EssentialStatus, &s.EssentialStatus)
	p.LengthToBeReplaced.applyTo(&s.LengthToBeReplaced)
	p.ReplacementPipeDiameter.applyTo(&s.ReplacementPipeDiameter)
	setIf(p.ReplacementPipeMaterial, &s.ReplacementPipeMaterial)
	setIf(p.ReplacementPipeMethod, &s.ReplacementPipeMethod)
	setIf(p.ReplacementPipeMaop, &s.ReplacementPipeMaop)
	setIf(p.PrimaryPurpose, &s.PrimaryPurpose)
	setIf(p.PrimaryPurposeOtherReason, &s.PrimaryPurposeOtherReason)
	setIf(p.PrimaryPurposeExplanation, &s.PrimaryPurposeExplanation)
	setIf(p.SecondaryPurpose, &s.SecondaryPurpose)
	setIf(p.SecondaryPurposeOtherReason, &s.SecondaryPurposeOtherReason)
	setIf(p.SecondaryPurposeExplanation, &s.SecondaryPurposeExplanation)
	setIf(p.DiameterReduction, &s.DiameterReduction)
}

func (s *MainSegment) Clone() *MainSegment {
	c := *s
	c.Diameter = cloneFloat(s.Diameter)
	c.Length = cloneFloat(s.Length)
	c.DimpRiskScore = cloneFloat(s.DimpRiskScore)
	c.LengthToBeReplaced = cloneFloat(s.LengthToBeReplaced)
	c.ReplacementPipeDiameter = cloneFloat(s.ReplacementPipeDiameter)
	c.Services = make([]*Service, len(s.Services))
	for i, svc := range s.Services {
		c.Services[i] = svc.Clone()
	}
	return &c
}
