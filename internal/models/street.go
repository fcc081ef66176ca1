package models

// LeakDetectionEvaluation records, per advanced leak detection / repair
// method, the reasons the method was not used on a street.
type LeakDetectionEvaluation struct {
	CisbotNotUsedReasons   []string `json:"cisbotNotUsedReasons"`
	ReliningNotUsedReasons []string `json:"reliningNotUsedReasons"`
	KeyholeNotUsedReasons  []string `json:"keyholeNotUsedReasons"`
	SeiNotUsedReasons      []string `json:"seiNotUsedReasons"`
}

// Empty reports whether no reason has been recorded for any method.
func (e LeakDetectionEvaluation) Empty() bool {
	return len(e.CisbotNotUsedReasons) == 0 &&
		len(e.ReliningNotUsedReasons) == 0 &&
		len(e.KeyholeNotUsedReasons) == 0 &&
		len(e.SeiNotUsedReasons) == 0
}

func (e LeakDetectionEvaluation) clone() LeakDetectionEvaluation {
	return LeakDetectionEvaluation{
		CisbotNotUsedReasons:   cloneStrings(e.CisbotNotUsedReasons),
		ReliningNotUsedReasons: cloneStrings(e.ReliningNotUsedReasons),
		KeyholeNotUsedReasons:  cloneStrings(e.KeyholeNotUsedReasons),
		SeiNotUsedReasons:      cloneStrings(e.SeiNotUsedReasons),
	}
}

// Street groups the main segments of one street within a project.
// NumberOfMainSegments mirrors len(MainSegments); writing it through a
// StreetPatch resizes the segment list.
type Street struct {
	ID                              int64                   `json:"id"`
	Name                            string                  `json:"name"`
	NumberOfMainSegments            int                     `json:"numberOfMainSegments"`
	MainSegments                    []*MainSegment          `json:"mainSegments"`
	AdvancedLeakDetectionEvaluation LeakDetectionEvaluation `json:"advancedLeakDetectionEvaluation"`
}

// StreetPatch carries the editable street fields.
type StreetPatch struct {
	Name                   *string   `json:"name,omitempty"`
	NumberOfMainSegments   *int      `json:"numberOfMainSegments,omitempty"`
	CisbotNotUsedReasons   *[]string `json:"cisbotNotUsedReasons,omitempty"`
	ReliningNotUsedReasons *[]string `json:"reliningNotUsedReasons,omitempty"`
	KeyholeNotUsedReasons  *[]string `json:"keyholeNotUsedReasons,omitempty"`
	SeiNotUsedReasons      *[]string `json:"seiNotUsedReasons,omitempty"`
}

// Apply copies the plain fields of the patch onto s. NumberOfMainSegments is
// not applied here; resizing is owned by the store.
func (p StreetPatch) Apply(s *Street) {
	setIf(p.Name, &s.Name)
	ev := &s.AdvancedLeakDetectionEvaluation
	if p.CisbotNotUsedReasons != nil {
		ev.CisbotNotUsedReasons = cloneStrings(*p.CisbotNotUsedReasons)
	}
	if p.ReliningNotUsedReasons != nil {
		ev.ReliningNotUsedReasons = cloneStrings(*p.ReliningNotUsedReasons)
	}
	if p.KeyholeNotUsedReasons != nil {
		ev.KeyholeNotUsedReasons = cloneStrings(*p.KeyholeNotUsedReasons)
	}
	if p.SeiNotUsedReasons != nil {
		ev.SeiNotUsedReasons = cloneStrings(*p.SeiNotUsedReasons)
	}
}

func (s *Street) Clone() *Street {
	c := *s
	c.AdvancedLeakDetectionEvaluation = s.AdvancedLeakDetectionEvaluation.clone()
	c.MainSegments = make([]*MainSegment, len(s.MainSegments))
	for i, seg := range s.MainSegments {
		c.MainSegments[i] = seg.Clone()
	}
	return &c
}
