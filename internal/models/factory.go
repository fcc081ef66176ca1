package models

// IDSource issues process-unique entity ids.
type IDSource interface {
	Next() int64
}

const (
	DefaultProjectType    = "GSEP (Gas System Enhancement Plan)"
	DefaultAnnualHDD      = 5800
	DefaultAnnualHDDBasis = "(Based on 2020–2025 Average for Worcester Massachusetts)"
)

func NewMeter(ids IDSource) *Meter {
	return &Meter{ID: ids.Next()}
}

// NewService returns an empty service pre-filled with the given street name.
func NewService(ids IDSource, streetName string) *Service {
	return &Service{
		ID:         ids.Next(),
		StreetName: streetName,
		Meters:     []*Meter{},
	}
}

func NewMainSegment(ids IDSource) *MainSegment {
	return &MainSegment{
		ID:       ids.Next(),
		Services: []*Service{},
	}
}

func NewStreet(ids IDSource) *Street {
	return &Street{
		ID:           ids.Next(),
		MainSegments: []*MainSegment{},
		AdvancedLeakDetectionEvaluation: LeakDetectionEvaluation{
			CisbotNotUsedReasons:   []string{},
			ReliningNotUsedReasons: []string{},
			KeyholeNotUsedReasons:  []string{},
			SeiNotUsedReasons:      []string{},
		},
	}
}

// NewProject returns a project named name holding one empty street.
func NewProject(ids IDSource, name string) *Project {
	p := &Project{
		ID:             ids.Next(),
		ProjectName:    name,
		ProjectType:    DefaultProjectType,
		AnnualHDD:      DefaultAnnualHDD,
		AnnualHDDBasis: DefaultAnnualHDDBasis,
	}
	p.Streets = []*Street{NewStreet(ids)}
	p.NumberOfStreets = 1
	return p
}

// Normalize replaces nil child lists with empty ones and rewrites every
// count mirror from the list lengths. Used after decoding external data.
func (p *Project) Normalize() {
	if p.Streets == nil {
		p.Streets = []*Street{}
	}
	p.NumberOfStreets = len(p.Streets)
	for _, st := range p.Streets {
		ev := &st.AdvancedLeakDetectionEvaluation
		for _, l := range []*[]string{&ev.CisbotNotUsedReasons, &ev.ReliningNotUsedReasons, &ev.KeyholeNotUsedReasons, &ev.SeiNotUsedReasons} {
			if *l == nil {
				*l = []string{}
			}
		}
		if st.MainSegments == nil {
			st.MainSegments = []*MainSegment{}
		}
		st.NumberOfMainSegments = len(st.MainSegments)
		for _, seg := range st.MainSegments {
			if seg.Services == nil {
				seg.Services = []*Service{}
			}
			seg.NumberOfServices = len(seg.Services)
			for _, svc := range seg.Services {
				if svc.Meters == nil {
					svc.Meters = []*Meter{}
				}
				svc.NumberOfMeters = len(svc.Meters)
			}
		}
	}
}
