package models

// Service is a service line branching off a main segment toward a building.
// ParentServiceID is a weak reference to a sibling service in the same
// segment: when set, this service is a branch of that service.
type Service struct {
	ID                  int64    `json:"id"`
	StreetName          string   `json:"streetName"`
	StreetNumber        string   `json:"streetNumber"`
	ServiceID           string   `json:"serviceId"`
	Diameter            *float64 `json:"diameter"`
	Material            string   `json:"material"`
	Length              *float64 `json:"length"`
	IsBranchService     bool     `json:"isBranchService"`
	ParentServiceID     *int64   `json:"parentServiceId"`
	WorkType            string   `json:"workType"`
	StructureType       string   `json:"structureType"`
	StructureTypeOther  string   `json:"structureTypeOther"`
	NumberOfMeters      int      `json:"numberOfMeters"`
	Meters              []*Meter `json:"meters"`
	ReplacementDiameter *float64 `json:"replacementDiameter"`
	ReplacementMaterial string   `json:"replacementMaterial"`
	ReplacementLength   *float64 `json:"replacementLength"`
	ReplacementMethod   string   `json:"replacementMethod"`
}

// IsBranch reports whether the service hangs off another service.
func (s *Service) IsBranch() bool {
	return s.ParentServiceID != nil
}

// ServicePatch carries the editable service fields. The parent reference
// and the meter list are owned by the store and cannot be patched.
type ServicePatch struct {
	StreetName          *string           `json:"streetName,omitempty"`
	StreetNumber        *string           `json:"streetNumber,omitempty"`
	ServiceID           *string           `json:"serviceId,omitempty"`
	Diameter            Nullable[float64] `json:"diameter"`
	Material            *string           `json:"material,omitempty"`
	Length              Nullable[float64] `json:"length"`
	IsBranchService     *bool             `json:"isBranchService,omitempty"`
	WorkType            *string           `json:"workType,omitempty"`
	StructureType       *string           `json:"structureType,omitempty"`
	StructureTypeOther  *string           `json:"structureTypeOther,omitempty"`
	ReplacementDiameter Nullable[float64] `json:"replacementDiameter"`
	ReplacementMaterial *string           `json:"replacementMaterial,omitempty"`
	ReplacementLength   Nullable[float64] `json:"replacementLength"`
	ReplacementMethod   *string           `json:"replacementMethod,omitempty"`
}

// Apply copies every present member of the patch onto s.
func (p ServicePatch) Apply(s *Service) {
	setIf(p.StreetName, &s.StreetName)
	setIf(p.StreetNumber, &s.StreetNumber)
	setIf(p.ServiceID, &s.ServiceID)
	p.Diameter.applyTo(&s.Diameter)
	setIf(p.Material, &s.Material)
	p.Length.applyTo(&s.Length)
	setIf(p.IsBranchService, &s.IsBranchService)
	setIf(p.WorkType, &s.WorkType)
	setIf(p.StructureType, &s.StructureType)
	setIf(p.StructureTypeOther, &s.StructureTypeOther)
	p.ReplacementDiameter.applyTo(&s.ReplacementDiameter)
	setIf(p.ReplacementMaterial, &s.ReplacementMaterial)
	p.ReplacementLength.applyTo(&s.ReplacementLength)
	setIf(p.ReplacementMethod, &s.ReplacementMethod)
}

func (s *Service) Clone() *Service {
	c := *s
	c.Diameter = cloneFloat(s.Diameter)
	c.Length = cloneFloat(s.Length)
	c.ParentServiceID = cloneInt64(s.ParentServiceID)
	c.ReplacementDiameter = cloneFloat(s.ReplacementDiameter)
	c.ReplacementLength = cloneFloat(s.ReplacementLength)
	c.Meters = make([]*Meter, len(s.Meters))
	for i, m := range s.Meters {
		c.Meters[i] = m.Clone()
	}
	return &c
}
