package report

import (
	"strings"
	"testing"

	"gsep-planner/internal/models"
)

func f(v float64) *float64 { return &v }

func treeProject() *models.Project {
	yes := true
	parent := int64(40)
	return &models.Project{
		ID:            1,
		ProjectName:   "Elm, Phase 1",
		ProjectType:   models.DefaultProjectType,
		IsEJCommunity: &yes,
		AnnualHDD:     5800,
		Streets: []*models.Street{{
			ID:   2,
			Name: "Elm St",
			AdvancedLeakDetectionEvaluation: models.LeakDetectionEvaluation{
				CisbotNotUsedReasons: []string{"too small", "cracked"},
			},
			MainSegments: []*models.MainSegment{
				{
					ID: 3, MainID: "M-1", LengthToBeReplaced: f(100), DiameterReduction: "8_to_6",
					EssentialStatus: models.EssentialStatusEssential,
					Services: []*models.Service{
						{ID: parent, StreetNumber: "12", StreetName: "Elm St", Meters: []*models.Meter{
							{ID: 50, MeterNumber: "A", UddUsage: f(10)},
							{ID: 51, MeterNumber: "B", UddUsage: f(20)},
						}},
						{ID: 41, ParentServiceID: &parent, StreetName: "Elm St"},
					},
				},
				{ID: 4, LengthToBeReplaced: nil},
				{ID: 5, LengthToBeReplaced: f(50), EssentialStatus: models.EssentialStatusNonEssential, DiameterReduction: "8_to_6"},
			},
		}},
	}
}

func TestRecalc(t *testing.T) {
	p := treeProject()
	Recalc(p)
	if got := *p.TotalReplacedLength; got != 150 {
		t.Errorf("totalReplacedLength = %v, want 150", got)
	}
	if got := *p.TotalAnnualUsage; got != 30 {
		t.Errorf("totalAnnualUsage = %v, want 30", got)
	}
}

func TestTotalsForStreet(t *testing.T) {
	got := TotalsForStreet(treeProject().Streets[0])
	if got.Essential != 100 || got.NonEssential != 50 {
		t.Errorf("essential/non-essential = %v/%v, want 100/50", got.Essential, got.NonEssential)
	}
	if got.ByDiameterReduction["8_to_6"] != 150 || len(got.ByDiameterReduction) != 1 {
		t.Errorf("byDiameterReduction = %v, want 8_to_6:150", got.ByDiameterReduction)
	}
}

func TestHeadersCount(t *testing.T) {
	h := Headers()
	if len(h) != 57 {
		t.Fatalf("headers = %d, want 57", len(h))
	}
	if h[0] != "Project Name" || h[56] != "Base Usage (therms/mo)" {
		t.Errorf("first/last header = %q/%q", h[0], h[56])
	}
}

func TestFlattenRowsPerLeaf(t *testing.T) {
	rows := Flatten(treeProject())
	// two meters, one meterless branch, two serviceless segments
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	for i, r := range rows {
		if len(r) != len(headers) {
			t.Fatalf("row %d has %d cells, want %d", i, len(r), len(headers))
		}
	}
	col := func(name string) int {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
		t.Fatalf("no header %q", name)
		return -1
	}
	first := rows[0]
	if got := first[col("Service Address")]; got != "12 Elm St" {
		t.Errorf("service address = %q", got)
	}
	if got := first[col("Diameter Reduction for Cost")]; got != `8" to 6"` {
		t.Errorf("diameter reduction = %q", got)
	}
	if got := first[col("CISBOT - Not Used Reasons")]; got != "too small; cracked" {
		t.Errorf("cisbot reasons = %q", got)
	}
	if got := first[col("EJ Community")]; got != "Yes" {
		t.Errorf("EJ community = %q, want Yes", got)
	}
	if got := first[col("Eliminates District Regulator Station")]; got != "" {
		t.Errorf("unknown tri-state = %q, want empty", got)
	}
	if got := rows[2][col("Parent Service ID")]; got != "40" {
		t.Errorf("parent service id = %q, want 40", got)
	}
	if got := rows[3][col("Main ID")]; got != "" || rows[3][col("Length To Be Replaced")] != "" {
		t.Errorf("null length rendered as %q", rows[3][col("Length To Be Replaced")])
	}
}

func TestFlattenServiceWithoutMeters(t *testing.T) {
	p := &models.Project{ProjectName: "P", Streets: []*models.Street{{
		Name:         "Oak",
		MainSegments: []*models.MainSegment{{MainID: "M", Services: []*models.Service{{ServiceID: "S-1"}}}},
	}}}
	rows := Flatten(p)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r[0] != "P" || r[13] != "Oak" || r[14] != "M" || r[40] != "S-1" {
		t.Errorf("ancestor cells = %q %q %q %q", r[0], r[13], r[14], r[40])
	}
	for i := 52; i < 57; i++ {
		if r[i] != "" {
			t.Errorf("meter cell %d = %q, want empty", i, r[i])
		}
	}
}

func TestFlattenProjectWithoutStreets(t *testing.T) {
	rows := Flatten(&models.Project{ProjectName: "Empty"})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][13] != "N/A" {
		t.Errorf("street name = %q, want N/A", rows[0][13])
	}
}

func TestCSV(t *testing.T) {
	out := CSV(treeProject())
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6", len(lines))
	}
	if lines[0] != strings.Join(headers, ",") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Elm, Phase 1",,`) {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[1], `"8"" to 6"""`) {
		t.Errorf("quotes not doubled in %q", lines[1])
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newline")
	}
}

func TestCSVEscape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"", ""},
		{" leading space", " leading space"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{"cr\rhere", "\"cr\rhere\""},
	}
	for _, tt := range tests {
		if got := csvEscape(tt.in); got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableMarkup(t *testing.T) {
	out, err := TableMarkup(&models.Project{ProjectName: "<b>x</b>"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "<th>") != 57 {
		t.Errorf("th count = %d, want 57", strings.Count(out, "<th>"))
	}
	if strings.Contains(out, "<b>x</b>") {
		t.Error("cell content not escaped")
	}
}

func TestSummaryMarkupGroupsBranches(t *testing.T) {
	p := treeProject()
	orphanParent := int64(999)
	seg := p.Streets[0].MainSegments[0]
	seg.Services = append([]*models.Service{{ID: 42, ParentServiceID: &orphanParent, StreetNumber: "7", StreetName: "Ash"}}, seg.Services...)
	Recalc(p)

	out, err := SummaryMarkup(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Project: Elm, Phase 1",
		"Street #1: Elm St",
		"<li>too small</li>",
		"Service #1: 7 Ash",
		"Service #2: 12 Elm St",
		"Branch Service #1",
		"Meter #2",
		">150<",
		">N/A<",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if strings.Index(out, "Service #2: 12 Elm St") > strings.Index(out, "Branch Service #1") {
		t.Error("branch rendered before its parent")
	}
}

func TestGroupServicesCycle(t *testing.T) {
	a, b := int64(1), int64(2)
	views := groupServices([]*models.Service{
		{ID: a, ParentServiceID: &b},
		{ID: b, ParentServiceID: &a},
	})
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if views[0].Branch || !views[1].Branch {
		t.Errorf("branch flags = %v/%v, want false/true", views[0].Branch, views[1].Branch)
	}
}

func TestGroupedNumbers(t *testing.T) {
	if got := grouped(f(1234567.5)); got != "1,234,567.5" {
		t.Errorf("grouped = %q", got)
	}
	if got := grouped(nil); got != "N/A" {
		t.Errorf("grouped(nil) = %q", got)
	}
}
