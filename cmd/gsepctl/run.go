package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gsep-planner/internal/models"
	"gsep-planner/internal/planfile"
	"gsep-planner/internal/report"

	"gopkg.in/yaml.v3"
)

// loadPlan reads and decodes a plan file and refreshes its totals.
func loadPlan(path string) ([]*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	projects, err := planfile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, p := range projects {
		report.Recalc(p)
	}
	return projects, nil
}

// selectProjects picks projects by id or exact name. An empty selector
// keeps them all.
func selectProjects(projects []*models.Project, selector string) ([]*models.Project, error) {
	if selector == "" {
		return projects, nil
	}
	id, idErr := strconv.ParseInt(selector, 10, 64)
	var out []*models.Project
	for _, p := range projects {
		if (idErr == nil && p.ID == id) || p.ProjectName == selector {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no project matches %q", selector)
	}
	return out, nil
}

func render(p *models.Project, format string) (string, string, error) {
	switch format {
	case "csv":
		return report.CSV(p), planfile.ReportFilename(p.ProjectName), nil
	case "table":
		html, err := report.TableMarkup(p)
		return html, reportBase(p) + "_table.html", err
	case "summary":
		html, err := report.SummaryMarkup(p)
		return html, reportBase(p) + "_summary.html", err
	default:
		return "", "", fmt.Errorf("unknown format %q (want csv, table or summary)", format)
	}
}

func reportBase(p *models.Project) string {
	return strings.TrimSuffix(planfile.ReportFilename(p.ProjectName), ".csv")
}

func runReport(w io.Writer, path, selector, format, outDir string) error {
	projects, err := loadPlan(path)
	if err != nil {
		return err
	}
	projects, err = selectProjects(projects, selector)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", outDir, err)
		}
	}
	for i, p := range projects {
		body, name, err := render(p, format)
		if err != nil {
			return err
		}
		if outDir == "" {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, body)
			continue
		}
		target := filepath.Join(outDir, name)
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		fmt.Fprintf(w, "wrote %s\n", target)
	}
	return nil
}

func runTotals(w io.Writer, path string) error {
	projects, err := loadPlan(path)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(w, "plan holds no projects")
		return nil
	}
	for _, p := range projects {
		printProjectTotals(w, p)
	}
	return nil
}

func runValidate(w io.Writer, path string) error {
	projects, err := loadPlan(path)
	if err != nil {
		return err
	}
	findings := checkRequired(projects)
	printFindings(w, projects, findings)
	return nil
}

func runSchema(w io.Writer, format, table string, template bool) error {
	if template {
		if table == "" {
			return fmt.Errorf("--template needs --table")
		}
		line, ok := planfile.CSVTemplate(table)
		if !ok {
			return fmt.Errorf("unknown table %q", table)
		}
		fmt.Fprintln(w, line)
		return nil
	}

	schemas := planfile.Schemas()
	if table != "" {
		var picked []planfile.Schema
		for _, s := range schemas {
			if strings.EqualFold(s.Name, table) || strings.EqualFold(s.Title, table) {
				picked = append(picked, s)
			}
		}
		if len(picked) == 0 {
			return fmt.Errorf("unknown table %q", table)
		}
		schemas = picked
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schemas); err != nil {
			return fmt.Errorf("encoding schema: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schemas)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
