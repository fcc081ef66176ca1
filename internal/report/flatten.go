// Package report derives totals and flat or grouped renderings of a
// project tree. Nothing in here mutates the tree except Recalc, which
// rewrites the total caches.
package report

import (
	"strconv"
	"strings"

	"gsep-planner/internal/models"
)

var headers = []string{
	"Project Name", "Project Number", "Revision Number", "Revision Date", "Project Start Date", "Project End Date",
	"Project Type", "Town/City", "EJ Community", "Eliminates District Regulator Station",
	"Contributes to District Regulator Elimination", "Comments regarding District Regulator Station",
	"Project Description", "Street Name", "Main ID", "Main From Location", "Main To Location", "Existing Diameter",
	"Existing Material", "Existing Length", "DIMP Risk", "MAOP", "Essential Status", "Length To Be Replaced",
	"New Diameter", "New Material", "Replacement Method", "New MAOP", "Primary Purpose", "Primary Purpose Other",
	"Primary Purpose Explanation", "Secondary Purpose", "Secondary Purpose Other", "Secondary Purpose Explanation",
	"Diameter Reduction for Cost", "CISBOT - Not Used Reasons", "Internal Relining - Not Used Reasons",
	"Targeted Keyhole Repair - Not Used Reasons", "Targeted SEI Repair - Not Used Reasons", "Service Address",
	"Service ID", "Parent Service ID", "Existing Service Diameter", "Existing Service Material",
	"Existing Service Length", "Replacement Service Diameter", "Replacement Service Material",
	"Replacement Service Length", "Replacement Service Method", "Work Type", "Structure Type",
	"Structure Type Other", "Meter Number", "Customer Account Number", "Unit Identifier",
	"Annual Usage (therms/yr)", "Base Usage (therms/mo)",
}

// Headers returns the fixed column list of the flat report.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// Flatten returns one row per meter of p. A level with no children still
// yields one row with the deeper columns empty, so every street, segment
// and service appears at least once. A project without streets yields a
// single placeholder row.
func Flatten(p *models.Project) [][]string {
	if len(p.Streets) == 0 {
		return [][]string{buildRow(p, &models.Street{Name: "N/A"}, nil, nil, nil)}
	}
	var rows [][]string
	for _, st := range p.Streets {
		if len(st.MainSegments) == 0 {
			rows = append(rows, buildRow(p, st, nil, nil, nil))
			continue
		}
		for _, seg := range st.MainSegments {
			if len(seg.Services) == 0 {
				rows = append(rows, buildRow(p, st, seg, nil, nil))
				continue
			}
			for _, svc := range seg.Services {
				if len(svc.Meters) == 0 {
					rows = append(rows, buildRow(p, st, seg, svc, nil))
					continue
				}
				for _, m := range svc.Meters {
					rows = append(rows, buildRow(p, st, seg, svc, m))
				}
			}
		}
	}
	return rows
}

func buildRow(p *models.Project, st *models.Street, seg *models.MainSegment, svc *models.Service, m *models.Meter) []string {
	row := make([]string, 0, len(headers))
	row = append(row,
		p.ProjectName, num(p.ProjectNumber), p.RevisionNumber, str(p.RevisionDate),
		str(p.ProjectStartDate), str(p.ProjectEndDate), p.ProjectType, p.TownCity,
		yesNo(p.IsEJCommunity, ""), yesNo(p.EliminatesRegulatorStation, ""),
		yesNo(p.ContributesToRegulatorStationElimination, ""),
		p.RegulatorStationComments, p.ProjectDescription, st.Name,
	)

	if seg != nil {
		reduction := ""
		if seg.DiameterReduction != "" {
			reduction, _ = models.DiameterReductionLabel(seg.DiameterReduction)
		}
		row = append(row,
			seg.MainID, seg.FromLocation, seg.ToLocation, num(seg.Diameter), seg.Material, num(seg.Length),
			num(seg.DimpRiskScore), seg.Maop, string(seg.EssentialStatus), num(seg.LengthToBeReplaced),
			num(seg.ReplacementPipeDiameter), seg.ReplacementPipeMaterial, seg.ReplacementPipeMethod, seg.ReplacementPipeMaop,
			seg.PrimaryPurpose, seg.PrimaryPurposeOtherReason, seg.PrimaryPurposeExplanation,
			seg.SecondaryPurpose, seg.SecondaryPurposeOtherReason, seg.SecondaryPurposeExplanation,
			reduction,
		)
	} else {
		row = append(row, make([]string, 21)...)
	}

	ev := st.AdvancedLeakDetectionEvaluation
	row = append(row,
		strings.Join(ev.CisbotNotUsedReasons, "; "),
		strings.Join(ev.ReliningNotUsedReasons, "; "),
		strings.Join(ev.KeyholeNotUsedReasons, "; "),
		strings.Join(ev.SeiNotUsedReasons, "; "),
	)

	if svc != nil {
		row = append(row,
			serviceAddress(svc), svc.ServiceID, id(svc.ParentServiceID), num(svc.Diameter), svc.Material, num(svc.Length),
			num(svc.ReplacementDiameter), svc.ReplacementMaterial, num(svc.ReplacementLength), svc.ReplacementMethod,
			svc.WorkType, svc.StructureType, svc.StructureTypeOther,
		)
	} else {
		row = append(row, make([]string, 13)...)
	}

	if m != nil {
		row = append(row, m.MeterNumber, m.CustomerAccountNumber, m.UnitIdentifier, num(m.UddUsage), num(m.BaseUsage))
	} else {
		row = append(row, make([]string, 5)...)
	}
	return row
}

// CSV renders the header and the flattened rows of p, rows separated by a
// single newline with no trailing one.
func CSV(p *models.Project) string {
	var b strings.Builder
	writeCSVRow(&b, headers)
	for _, row := range Flatten(p) {
		b.WriteByte('\n')
		writeCSVRow(&b, row)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, row []string) {
	for i, cell := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvEscape(cell))
	}
}

// csvEscape quotes a cell only when it holds a comma, quote, CR or LF.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func serviceAddress(svc *models.Service) string {
	return strings.TrimSpace(svc.StreetNumber + " " + svc.StreetName)
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func id(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(v *bool, unknown string) string {
	switch {
	case v == nil:
		return unknown
	case *v:
		return "Yes"
	default:
		return "No"
	}
}
