package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gsep-planner/internal/blob/core"
	"gsep-planner/internal/planfile"
	"gsep-planner/internal/report"
	"gsep-planner/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PlanPrefix   = "plans/"
	ReportPrefix = "reports/"

	planContentType   = "application/json"
	reportContentType = "text/csv; charset=utf-8"
)

// ErrBlobsDisabled is returned by snapshot operations when no blob store is
// configured.
var ErrBlobsDisabled = errors.New("export storage not configured")

// ErrNotAPlan is returned when a key outside the plan prefix is opened.
var ErrNotAPlan = errors.New("not a saved plan")

// Download is a named file produced at the export boundary.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportCSV renders the CSV report of any project.
func (s *PlannerService) ReportCSV(projectID int64) (*Download, error) {
	var out *Download
	err := s.do("report_csv", func() error {
		p, err := s.store.Project(projectID)
		if err != nil {
			return err
		}
		out = &Download{
			Filename:    planfile.ReportFilename(p.ProjectName),
			ContentType: reportContentType,
			Body:        []byte(report.CSV(p)),
		}
		return nil
	})
	return out, err
}

// ReportMarkup renders a project's report in the given view. An empty mode
// uses the mode currently selected in the report dialog.
func (s *PlannerService) ReportMarkup(projectID int64, mode store.ViewMode) (string, error) {
	var out string
	err := s.do("report_markup", func() error {
		if mode == "" {
			mode = s.store.UI().ReportViewMode
		}
		p, err := s.store.Project(projectID)
		if err != nil {
			return err
		}
		switch mode {
		case store.ViewSummary:
			out, err = report.SummaryMarkup(p)
		case store.ViewTable:
			out, err = report.TableMarkup(p)
		default:
			return store.ErrInvalidViewMode
		}
		return err
	})
	return out, err
}

// ExportPlan encodes every project as a saved plan file.
func (s *PlannerService) ExportPlan() (*Download, error) {
	var out *Download
	err := s.do("export_plan", func() error {
		b, err := planfile.Export(s.store.Projects(), s.now())
		if err != nil {
			return err
		}
		out = &Download{Filename: planfile.Filename, ContentType: planContentType, Body: b}
		return nil
	})
	return out, err
}

// ImportPlan replaces the workspace with a saved plan. The file is decoded
// and validated before the lock is taken; on any failure the workspace is
// untouched.
func (s *PlannerService) ImportPlan(data []byte) (State, error) {
	projects, err := planfile.Decode(data)
	if err != nil {
		s.metrics.Observe("import_plan", false, 0)
		s.logr.Warn("plan import rejected", zap.Error(err))
		return State{}, err
	}

	var (
		out   State
		maxID int64
	)
	err = s.apply("import_plan", func() error {
		s.store.ReplaceAll(projects)
		return nil
	}, func() {
		out = s.snapshot()
		maxID = planfile.MaxID(s.store.Projects())
	})
	if err == nil {
		s.logr.Info("plan imported", zap.Int("projects", len(out.Projects)), zap.Int64("max_id", maxID))
	}
	return out, err
}

func (s *PlannerService) blobKey(prefix, filename string) string {
	return fmt.Sprintf("%s%s_%s_%s", prefix, s.now().UTC().Format("20060102T150405Z"), uuid.NewString(), filename)
}

func (s *PlannerService) put(ctx context.Context, op, key string, d *Download, meta map[string]string) (core.Info, error) {
	start := time.Now()
	info, err := s.blobs.Put(ctx, key, bytes.NewReader(d.Body), core.PutOptions{
		ContentType: d.ContentType,
		Metadata:    meta,
	})
	s.metrics.Observe(op, err == nil, time.Since(start))
	if err != nil {
		s.logr.Error("blob put failed", zap.String("key", key), zap.String("driver", string(s.blobs.Driver())), zap.Error(err))
		return core.Info{}, fmt.Errorf("store %s: %w", key, err)
	}
	s.logr.Info("blob stored", zap.String("key", key), zap.Int64("size", info.Size))
	return info, nil
}

// SaveSnapshot writes the current plan to the export store under plans/.
func (s *PlannerService) SaveSnapshot(ctx context.Context) (core.Info, error) {
	if s.blobs == nil {
		return core.Info{}, ErrBlobsDisabled
	}
	d, err := s.ExportPlan()
	if err != nil {
		return core.Info{}, err
	}
	var count int
	_ = s.do("count_projects", func() error {
		count = len(s.store.Projects())
		return nil
	})
	return s.put(ctx, "save_snapshot", s.blobKey(PlanPrefix, d.Filename), d, map[string]string{
		"version":  fmt.Sprint(planfile.Version),
		"projects": fmt.Sprint(count),
	})
}

// ArchiveReport writes a project's CSV report under reports/.
func (s *PlannerService) ArchiveReport(ctx context.Context, projectID int64) (core.Info, error) {
	if s.blobs == nil {
		return core.Info{}, ErrBlobsDisabled
	}
	d, err := s.ReportCSV(projectID)
	if err != nil {
		return core.Info{}, err
	}
	return s.put(ctx, "archive_report", s.blobKey(ReportPrefix, d.Filename), d, map[string]string{
		"projectId": fmt.Sprint(projectID),
	})
}

// ListSnapshots lists saved plans, oldest first.
func (s *PlannerService) ListSnapshots(ctx context.Context) ([]core.Info, error) {
	return s.list(ctx, PlanPrefix)
}

// ListReports lists archived CSV reports, oldest first.
func (s *PlannerService) ListReports(ctx context.Context) ([]core.Info, error) {
	return s.list(ctx, ReportPrefix)
}

func (s *PlannerService) list(ctx context.Context, prefix string) ([]core.Info, error) {
	if s.blobs == nil {
		return nil, ErrBlobsDisabled
	}
	items, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return items, nil
}

// OpenSnapshot loads a saved plan through the same validation as ImportPlan.
func (s *PlannerService) OpenSnapshot(ctx context.Context, key string) (State, error) {
	if s.blobs == nil {
		return State{}, ErrBlobsDisabled
	}
	if !strings.HasPrefix(key, PlanPrefix) {
		return State{}, ErrNotAPlan
	}
	_, rc, err := s.blobs.Get(ctx, key)
	if err != nil {
		return State{}, fmt.Errorf("open %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return State{}, fmt.Errorf("read %s: %w", key, err)
	}
	return s.ImportPlan(data)
}

// FetchBlob returns a stored plan or report as a download.
func (s *PlannerService) FetchBlob(ctx context.Context, key string) (*Download, error) {
	if s.blobs == nil {
		return nil, ErrBlobsDisabled
	}
	info, rc, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	name := key[strings.LastIndex(key, "/")+1:]
	return &Download{Filename: name, ContentType: info.ContentType, Body: body}, nil
}

// BlobURL returns a time-limited link to a stored blob where the backend
// supports one.
func (s *PlannerService) BlobURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.blobs == nil {
		return "", ErrBlobsDisabled
	}
	return s.blobs.PresignURL(ctx, key, core.SignedURLOptions{Method: "GET", Expiry: ttl})
}

// DeleteBlob removes a stored plan or report.
func (s *PlannerService) DeleteBlob(ctx context.Context, key string) error {
	if s.blobs == nil {
		return ErrBlobsDisabled
	}
	ok, err := s.blobs.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("delete %s: %w", key, core.ErrNotFound)
	}
	return nil
}
