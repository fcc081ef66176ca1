// Package planfile reads and writes saved plans: the versioned JSON
// envelope around a project list.
package planfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gsep-planner/internal/models"
)

const (
	Version  = 1
	Filename = "gsep_plan.json"
)

// ErrInvalidFormat is wrapped by every FormatError.
var ErrInvalidFormat = errors.New("invalid plan file")

// FormatError describes why a plan file was rejected. Reason is meant for
// the person who picked the file.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid file format: %s: %v", e.Reason, e.Err)
	}
	return "Invalid file format: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

func formatErr(reason string, err error) error {
	return &FormatError{Reason: reason, Err: err}
}

// Envelope is the on-disk layout of a saved plan.
type Envelope struct {
	Version    int               `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	Projects   []*models.Project `json:"projects"`
}

// Export encodes projects as an indented envelope stamped with now.
func Export(projects []*models.Project, now time.Time) ([]byte, error) {
	if projects == nil {
		projects = []*models.Project{}
	}
	env := Envelope{
		Version:    Version,
		ExportedAt: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Projects:   projects,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return b, nil
}

// Decode parses a saved plan. Both the envelope and a bare project array
// are accepted. The first project must carry "id" and "projectName".
// Missing child lists are replaced with empty ones and the count mirrors
// are rewritten. Every failure is a *FormatError.
func Decode(data []byte) ([]*models.Project, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, formatErr("file is not valid JSON", nil)
	}

	var list json.RawMessage
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		list = trimmed
	case len(trimmed) > 0 && trimmed[0] == '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, formatErr("file is not valid JSON", err)
		}
		list = bytes.TrimSpace(env["projects"])
	}
	if len(list) == 0 || list[0] != '[' {
		return nil, formatErr(`"projects" array not found`, nil)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(list, &raw); err != nil {
		return nil, formatErr(`"projects" array not found`, err)
	}
	if len(raw) > 0 {
		var first map[string]json.RawMessage
		if err := json.Unmarshal(raw[0], &first); err != nil {
			return nil, formatErr("project #1 is not an object", err)
		}
		_, hasID := first["id"]
		_, hasName := first["projectName"]
		if !hasID || !hasName {
			return nil, formatErr(`Projects are missing required fields like "id" or "projectName"`, nil)
		}
	}

	projects := make([]*models.Project, 0, len(raw))
	for i, r := range raw {
		var p models.Project
		if err := json.Unmarshal(r, &p); err != nil {
			return nil, formatErr(fmt.Sprintf("project #%d", i+1), err)
		}
		projects = append(projects, &p)
	}
	if err := checkTree(projects); err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Normalize()
	}
	return projects, nil
}

// checkTree rejects null entries in any child list and ids used twice.
func checkTree(projects []*models.Project) error {
	seen := make(map[int64]bool)
	claim := func(kind string, id int64) error {
		if seen[id] {
			return formatErr(fmt.Sprintf("duplicate id %d (%s)", id, kind), nil)
		}
		seen[id] = true
		return nil
	}
	for i, p := range projects {
		if p == nil {
			return formatErr(fmt.Sprintf("project #%d is null", i+1), nil)
		}
		if err := claim("project", p.ID); err != nil {
			return err
		}
		for _, st := range p.Streets {
			if st == nil {
				return formatErr(fmt.Sprintf("project %d has a null street", p.ID), nil)
			}
			if err := claim("street", st.ID); err != nil {
				return err
			}
			for _, seg := range st.MainSegments {
				if seg == nil {
					return formatErr(fmt.Sprintf("street %d has a null main segment", st.ID), nil)
				}
				if err := claim("main segment", seg.ID); err != nil {
					return err
				}
				for _, svc := range seg.Services {
					if svc == nil {
						return formatErr(fmt.Sprintf("main segment %d has a null service", seg.ID), nil)
					}
					if err := claim("service", svc.ID); err != nil {
						return err
					}
					for _, m := range svc.Meters {
						if m == nil {
							return formatErr(fmt.Sprintf("service %d has a null meter", svc.ID), nil)
						}
						if err := claim("meter", m.ID); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	return nil
}

// MaxID returns the largest id anywhere in projects, or 0.
func MaxID(projects []*models.Project) int64 {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	for _, p := range projects {
		bump(p.ID)
		for _, st := range p.Streets {
			bump(st.ID)
			for _, seg := range st.MainSegments {
				bump(seg.ID)
				for _, svc := range seg.Services {
					bump(svc.ID)
					for _, m := range svc.Meters {
						bump(m.ID)
					}
				}
			}
		}
	}
	return max
}

var whitespace = regexp.MustCompile(`\s+`)

// ReportFilename is the download name of a project's CSV report.
func ReportFilename(projectName string) string {
	return whitespace.ReplaceAllString(projectName, "_") + "_report.csv"
}
