package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gsep-planner/internal/models"
	"gsep-planner/internal/planfile"
	"gsep-planner/internal/report"

	"github.com/dustin/go-humanize"
)

type finding struct {
	Level   string // WARN or INFO
	Path    string
	Message string
}

type counts struct {
	streets, segments, services, meters int
}

func countTree(projects []*models.Project) counts {
	var c counts
	for _, p := range projects {
		c.streets += len(p.Streets)
		for _, st := range p.Streets {
			c.segments += len(st.MainSegments)
			for _, seg := range st.MainSegments {
				c.services += len(seg.Services)
				for _, svc := range seg.Services {
					c.meters += len(svc.Meters)
				}
			}
		}
	}
	return c
}

// checkRequired lists empty required fields and branch services whose
// parent is not in the same segment.
func checkRequired(projects []*models.Project) []finding {
	var out []finding
	for i, p := range projects {
		path := fmt.Sprintf("projects[%d]", i)
		if strings.TrimSpace(p.ProjectName) == "" {
			out = append(out, finding{"WARN", path + ".projectName", "project name is required"})
		}
		for j, st := range p.Streets {
			for k, seg := range st.MainSegments {
				ids := make(map[int64]bool, len(seg.Services))
				for _, svc := range seg.Services {
					ids[svc.ID] = true
				}
				for l, svc := range seg.Services {
					if svc.ParentServiceID == nil || ids[*svc.ParentServiceID] {
						continue
					}
					out = append(out, finding{
						"INFO",
						fmt.Sprintf("%s.streets[%d].mainSegments[%d].services[%d]", path, j, k, l),
						fmt.Sprintf("branch of service %d, which is not in this segment; shown as a top-level service", *svc.ParentServiceID),
					})
				}
			}
		}
	}
	return out
}

func printFindings(w io.Writer, projects []*models.Project, findings []finding) {
	warns := 0
	for _, f := range findings {
		if f.Level == "WARN" {
			warns++
		}
		fmt.Fprintf(w, "  [%s] %s\n    -> %s\n", f.Level, f.Message, f.Path)
	}
	if len(findings) > 0 {
		fmt.Fprintln(w)
	}

	c := countTree(projects)
	summary := fmt.Sprintf("%d projects, %d streets, %d segments, %d services, %d meters, max id %d",
		len(projects), c.streets, c.segments, c.services, c.meters, planfile.MaxID(projects))
	if warns > 0 {
		fmt.Fprintf(w, "Result: OPENS WITH %d WARNINGS (%s)\n", warns, summary)
		return
	}
	fmt.Fprintf(w, "Result: VALID (%s)\n", summary)
}

func printProjectTotals(w io.Writer, p *models.Project) {
	fmt.Fprintf(w, "%s (id %d)\n", p.ProjectName, p.ID)
	fmt.Fprintf(w, "  Total replaced length:  %s ft\n", humanize.Commaf(deref(p.TotalReplacedLength)))
	fmt.Fprintf(w, "  Total annual usage:     %s therms/yr\n", humanize.Commaf(deref(p.TotalAnnualUsage)))
	for _, st := range p.Streets {
		t := report.TotalsForStreet(st)
		name := st.Name
		if name == "" {
			name = "(unnamed street)"
		}
		fmt.Fprintf(w, "  %s: essential %s ft, non-essential %s ft\n", name, humanize.Commaf(t.Essential), humanize.Commaf(t.NonEssential))

		codes := make([]string, 0, len(t.ByDiameterReduction))
		for code := range t.ByDiameterReduction {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			label, _ := models.DiameterReductionLabel(code)
			fmt.Fprintf(w, "    %s: %s ft\n", label, humanize.Commaf(t.ByDiameterReduction[code]))
		}
	}
	fmt.Fprintln(w)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
