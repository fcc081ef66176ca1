package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"gsep-planner/internal/models"
)

const notAvailable = "N/A"

var tableTmpl = template.Must(template.New("table").Parse(`<div class="report-table-wrapper">
<table class="report-table">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
</div>`))

// TableMarkup renders the flattened rows of p as an HTML table.
func TableMarkup(p *models.Project) (string, error) {
	var buf bytes.Buffer
	err := tableTmpl.Execute(&buf, struct {
		Headers []string
		Rows    [][]string
	}{headers, Flatten(p)})
	if err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return buf.String(), nil
}

var summaryTmpl = template.Must(template.New("summary").Parse(`
{{- define "fields"}}<div class="report-grid">{{range .}}{{template "field" .}}{{end}}</div>{{end}}
{{- define "field"}}<div class="report-field{{if .Full}} report-value-full{{end}}"><div class="report-label">{{.Label}}</div><div class="report-value">{{.Value}}</div></div>{{end}}
{{- define "service"}}<div class="report-service{{if .Branch}} report-branch{{end}}">
<h6>{{.Title}}</h6>
{{template "fields" .Fields}}
{{- range .Meters}}
<div class="report-meter"><strong>{{.Title}}</strong>{{template "fields" .Fields}}</div>
{{- end}}
</div>{{end -}}
<div class="report-section">
<h3>Project: {{.Title}}</h3>
{{template "fields" .Fields}}
{{range .Notes}}{{template "field" .}}{{end}}
</div>
<div class="report-section">
<h3>Project Totals &amp; Assumptions</h3>
{{template "fields" .Totals}}
</div>
{{- range .Streets}}
<div class="report-section">
<h3>{{.Title}}</h3>
{{- if .Reasons}}
<h5>Advanced Leak Detection Evaluation (Reasons for Non-Use)</h5>
{{- range .Reasons}}
<h6>{{.Title}}</h6><ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- end}}
{{- range .Segments}}
<div class="report-segment">
<h4>{{.Title}}</h4>
<h5>Existing Main Details</h5>
{{template "fields" .Existing}}
<h5>Replacement Main Details</h5>
{{template "fields" .Replacement}}
<h5>Purpose</h5>
{{range .Purpose}}{{template "field" .}}{{end}}
{{- if .Services}}
<h5>Services</h5>
{{- range .Services}}
{{template "service" .}}
{{- end}}
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
`))

type field struct {
	Label string
	Value string
	Full  bool
}

type reasonGroup struct {
	Title string
	Items []string
}

type meterView struct {
	Title  string
	Fields []field
}

type serviceView struct {
	Title  string
	Branch bool
	Fields []field
	Meters []meterView
}

type segmentView struct {
	Title       string
	Existing    []field
	Replacement []field
	Purpose     []field
	Services    []serviceView
}

type streetView struct {
	Title    string
	Reasons  []reasonGroup
	Segments []segmentView
}

type summaryView struct {
	Title   string
	Fields  []field
	Notes   []field
	Totals  []field
	Streets []streetView
}

// SummaryMarkup renders p as grouped HTML sections. Unknown values show as
// N/A. Services are listed parent first, each followed by its branches.
// The total caches are rendered as stored; callers run Recalc first.
func SummaryMarkup(p *models.Project) (string, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, buildSummary(p)); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

func buildSummary(p *models.Project) summaryView {
	v := summaryView{Title: orDefault(p.ProjectName, "Untitled Project")}
	v.Fields = []field{
		{Label: "Project Number", Value: numNA(p.ProjectNumber)},
		{Label: "Project Type", Value: p.ProjectType},
		{Label: "Revision Number", Value: p.RevisionNumber},
		{Label: "Revision Date", Value: strNA(p.RevisionDate)},
		{Label: "Start Date", Value: strNA(p.ProjectStartDate)},
		{Label: "End Date", Value: strNA(p.ProjectEndDate)},
		{Label: "Estimated Cost ($)", Value: grouped(p.ProjectCost)},
		{Label: "Town/City", Value: p.TownCity},
		{Label: "EJ Community", Value: yesNo(p.IsEJCommunity, notAvailable)},
		{Label: "Eliminates District Regulator Station", Value: yesNo(p.EliminatesRegulatorStation, notAvailable)},
		{Label: "Contributes to District Regulator Elimination", Value: yesNo(p.ContributesToRegulatorStationElimination, notAvailable)},
	}
	v.Notes = []field{
		{Label: "Description", Value: p.ProjectDescription, Full: true},
		{Label: "EJ Information", Value: p.EJInformation, Full: true},
		{Label: "EJ Summary", Value: p.EJSummary, Full: true},
		{Label: "Comments regarding District Regulator Station", Value: p.RegulatorStationComments, Full: true},
	}
	v.Totals = []field{
		{Label: "Total Abandoned Main Length (ft)", Value: grouped(p.TotalAbandonedLength)},
		{Label: "Total Replaced Main Length (ft)", Value: grouped(p.TotalReplacedLength)},
		{Label: "Total Annual Usage (therms)", Value: grouped(p.TotalAnnualUsage)},
		{Label: "Annual HDD", Value: strconv.FormatFloat(p.AnnualHDD, 'f', -1, 64)},
		{Label: "Annual HDD Basis", Value: p.AnnualHDDBasis},
	}
	for i, st := range p.Streets {
		v.Streets = append(v.Streets, buildStreet(i, st))
	}
	return v
}

func buildStreet(i int, st *models.Street) streetView {
	sv := streetView{Title: fmt.Sprintf("Street #%d: %s", i+1, orDefault(st.Name, "Unnamed Street"))}
	ev := st.AdvancedLeakDetectionEvaluation
	for _, g := range []reasonGroup{
		{"CISBOT", ev.CisbotNotUsedReasons},
		{"Internal Relining / Sleeving", ev.ReliningNotUsedReasons},
		{"Targeted Keyhole Leak Repair", ev.KeyholeNotUsedReasons},
		{"Targeted SEI Leak Repair", ev.SeiNotUsedReasons},
	} {
		if len(g.Items) > 0 {
			sv.Reasons = append(sv.Reasons, g)
		}
	}
	for j, seg := range st.MainSegments {
		sv.Segments = append(sv.Segments, buildSegment(j, seg))
	}
	return sv
}

func buildSegment(j int, seg *models.MainSegment) segmentView {
	sv := segmentView{Title: fmt.Sprintf("Main Segment #%d", j+1)}
	sv.Existing = []field{
		{Label: "Main ID", Value: seg.MainID},
		{Label: "From", Value: seg.FromLocation},
		{Label: "To", Value: seg.ToLocation},
		{Label: "Diameter", Value: inches(seg.Diameter)},
		{Label: "Material", Value: seg.Material},
		{Label: "Length (ft)", Value: numNA(seg.Length)},
		{Label: "MAOP", Value: seg.Maop},
		{Label: "DIMP Risk Score", Value: numNA(seg.DimpRiskScore)},
		{Label: "Essential Status", Value: string(seg.EssentialStatus)},
	}
	sv.Replacement = []field{
		{Label: "Length to be Replaced (ft)", Value: numNA(seg.LengthToBeReplaced)},
		{Label: "New Diameter", Value: inches(seg.ReplacementPipeDiameter)},
		{Label: "New Material", Value: seg.ReplacementPipeMaterial},
		{Label: "New MAOP", Value: seg.ReplacementPipeMaop},
		{Label: "Replacement Method", Value: seg.ReplacementPipeMethod},
	}
	if label, ok := models.DiameterReductionLabel(seg.DiameterReduction); ok {
		sv.Replacement = append(sv.Replacement, field{Label: "Diameter Reduction", Value: label})
	}
	sv.Purpose = []field{
		{Label: "Primary Purpose", Value: purpose(seg.PrimaryPurpose, seg.PrimaryPurposeOtherReason), Full: true},
		{Label: "Primary Purpose Explanation", Value: seg.PrimaryPurposeExplanation, Full: true},
		{Label: "Secondary Purpose", Value: purpose(seg.SecondaryPurpose, seg.SecondaryPurposeOtherReason), Full: true},
		{Label: "Secondary Purpose Explanation", Value: seg.SecondaryPurposeExplanation, Full: true},
	}
	sv.Services = groupServices(seg.Services)
	return sv
}

// groupServices orders the services of a segment for display: every
// top-level service followed by its branches, depth first. A service whose
// parent is not in the segment is shown as top level, and anything left
// unvisited (a parent cycle) is appended at the end.
func groupServices(services []*models.Service) []serviceView {
	present := make(map[int64]bool, len(services))
	for _, svc := range services {
		present[svc.ID] = true
	}
	children := make(map[int64][]*models.Service)
	var top []*models.Service
	for _, svc := range services {
		if pid := svc.ParentServiceID; pid != nil && *pid != svc.ID && present[*pid] {
			children[*pid] = append(children[*pid], svc)
			continue
		}
		top = append(top, svc)
	}

	var out []serviceView
	visited := make(map[int64]bool, len(services))
	var walk func(svc *models.Service)
	walk = func(svc *models.Service) {
		for j, br := range children[svc.ID] {
			if visited[br.ID] {
				continue
			}
			visited[br.ID] = true
			out = append(out, buildService(br, fmt.Sprintf("Branch Service #%d", j+1), true))
			walk(br)
		}
	}
	n := 0
	for _, svc := range top {
		n++
		visited[svc.ID] = true
		out = append(out, buildService(svc, topTitle(n, svc), false))
		walk(svc)
	}
	for _, svc := range services {
		if !visited[svc.ID] {
			n++
			visited[svc.ID] = true
			out = append(out, buildService(svc, topTitle(n, svc), false))
			walk(svc)
		}
	}
	return out
}

func topTitle(n int, svc *models.Service) string {
	return strings.TrimSpace(fmt.Sprintf("Service #%d: %s", n, serviceAddress(svc)))
}

func buildService(svc *models.Service, title string, branch bool) serviceView {
	sv := serviceView{Title: title, Branch: branch}
	structure := svc.StructureType
	if structure == models.StructureTypeOther {
		structure = fmt.Sprintf("%s (%s)", structure, svc.StructureTypeOther)
	}
	sv.Fields = []field{
		{Label: "Service ID", Value: svc.ServiceID},
		{Label: "Work Type", Value: svc.WorkType},
		{Label: "Structure Type", Value: structure},
		{Label: "Existing Diameter", Value: inches(svc.Diameter)},
		{Label: "Existing Material", Value: svc.Material},
		{Label: "Existing Length (ft)", Value: numNA(svc.Length)},
	}
	switch svc.WorkType {
	case models.WorkTypeFullReplacement, models.WorkTypePartialReplacement:
		sv.Fields = append(sv.Fields,
			field{Label: "Replacement Diameter", Value: inches(svc.ReplacementDiameter)},
			field{Label: "Replacement Material", Value: svc.ReplacementMaterial},
			field{Label: "Replacement Length (ft)", Value: numNA(svc.ReplacementLength)},
		)
	}
	switch svc.WorkType {
	case models.WorkTypeFullReplacement, models.WorkTypeAbandonmentOnly:
		sv.Fields = append(sv.Fields, field{Label: "Replacement Method", Value: svc.ReplacementMethod})
	}
	hasBranches := "No"
	if svc.IsBranchService {
		hasBranches = "Yes"
	}
	sv.Fields = append(sv.Fields, field{Label: "Has Branch Services", Value: hasBranches})

	for k, m := range svc.Meters {
		sv.Meters = append(sv.Meters, meterView{
			Title: fmt.Sprintf("Meter #%d", k+1),
			Fields: []field{
				{Label: "Meter Number", Value: m.MeterNumber},
				{Label: "Customer Account Number", Value: m.CustomerAccountNumber},
				{Label: "Unit Identifier", Value: m.UnitIdentifier},
				{Label: "Annual Usage (therms/yr)", Value: numNA(m.UddUsage)},
				{Label: "Base Usage (therms/mo)", Value: numNA(m.BaseUsage)},
			},
		})
	}
	return sv
}

func purpose(p, other string) string {
	if p == models.PurposeOther {
		return fmt.Sprintf("%s (%s)", p, other)
	}
	return p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func numNA(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return num(v)
}

func strNA(v *string) string {
	if v == nil {
		return notAvailable
	}
	return *v
}

func inches(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return num(v) + `"`
}

// grouped formats a number with thousands separators.
func grouped(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return humanize.Commaf(*v)
}
