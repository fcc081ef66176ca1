package report

import "gsep-planner/internal/models"

// Recalc rewrites the two total caches of p: the replaced main length and
// the annual usage of every meter. Unknown values count as zero.
func Recalc(p *models.Project) {
	var replaced, usage float64
	for _, st := range p.Streets {
		for _, seg := range st.MainSegments {
			replaced += valueOrZero(seg.LengthToBeReplaced)
			for _, svc := range seg.Services {
				for _, m := range svc.Meters {
					usage += valueOrZero(m.UddUsage)
				}
			}
		}
	}
	p.TotalReplacedLength = &replaced
	p.TotalAnnualUsage = &usage
}

// StreetTotals is the replaced footage of one street split by
// classification.
type StreetTotals struct {
	Essential    float64 `json:"essential"`
	NonEssential float64 `json:"nonEssential"`
	// ByDiameterReduction is keyed by reduction code and only holds codes
	// with a positive replaced length.
	ByDiameterReduction map[string]float64 `json:"byDiameterReduction"`
}

func TotalsForStreet(st *models.Street) StreetTotals {
	out := StreetTotals{ByDiameterReduction: map[string]float64{}}
	for _, seg := range st.MainSegments {
		l := valueOrZero(seg.LengthToBeReplaced)
		switch seg.EssentialStatus {
		case models.EssentialStatusEssential:
			out.Essential += l
		case models.EssentialStatusNonEssential:
			out.NonEssential += l
		}
		if seg.DiameterReduction != "" && l != 0 {
			out.ByDiameterReduction[seg.DiameterReduction] += l
		}
	}
	return out
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
