package services

import (
	"sync"
	"time"

	"gsep-planner/internal/blob/core"
	"gsep-planner/internal/logger"
	"gsep-planner/internal/metrics"
	"gsep-planner/internal/models"
	"gsep-planner/internal/report"
	"gsep-planner/internal/store"

	"go.uber.org/zap"
)

// PlannerService serialises access to the tree store. Every call runs under
// one mutex and hands back deep copies, so callers never share memory with
// the live tree.
type PlannerService struct {
	mu      sync.Mutex
	store   *store.Store
	blobs   core.Store
	metrics *metrics.Recorder
	logr    *logger.Logger
	now     func() time.Time
}

// State is the full workspace as seen by a client.
type State struct {
	Projects        []*models.Project `json:"projects"`
	ActiveProjectID *int64            `json:"activeProjectId"`
	UI              store.UIState     `json:"ui"`
}

func NewPlannerService(st *store.Store, blobs core.Store, rec *metrics.Recorder, logr *logger.Logger) *PlannerService {
	if st == nil {
		st = store.New(nil)
	}
	return &PlannerService{
		store:   st,
		blobs:   blobs,
		metrics: rec,
		logr:    logr,
		now:     time.Now,
	}
}

// do runs fn as one operation. Totals are refreshed after every successful
// operation so snapshots never carry stale caches.
func (s *PlannerService) do(op string, fn func() error) error {
	return s.apply(op, fn, nil)
}

// apply is do with a view step: after fn succeeds and totals are refreshed,
// view runs under the same lock to copy out whatever the caller returns.
func (s *PlannerService) apply(op string, fn func() error, view func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := fn()
	if err == nil {
		for _, p := range s.store.Projects() {
			report.Recalc(p)
		}
		if view != nil {
			view()
		}
	}
	s.metrics.Observe(op, err == nil, time.Since(start))
	s.metrics.SetProjects(len(s.store.Projects()))
	if err != nil {
		s.logr.Debug("planner operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

func (s *PlannerService) snapshot() State {
	return State{
		Projects:        models.CloneProjects(s.store.Projects()),
		ActiveProjectID: s.store.ActiveProjectID(),
		UI:              s.store.UI(),
	}
}

// State returns a copy of the whole workspace.
func (s *PlannerService) State() State {
	var out State
	_ = s.do("state", func() error {
		out = s.snapshot()
		return nil
	})
	return out
}

// UI returns the dialog state.
func (s *PlannerService) UI() store.UIState {
	var out store.UIState
	_ = s.do("ui", func() error {
		out = s.store.UI()
		return nil
	})
	return out
}

func (s *PlannerService) Projects() []*models.Project {
	var out []*models.Project
	_ = s.do("list_projects", func() error {
		out = models.CloneProjects(s.store.Projects())
		return nil
	})
	return out
}

func (s *PlannerService) Project(id int64) (*models.Project, error) {
	var out *models.Project
	err := s.do("get_project", func() error {
		p, err := s.store.Project(id)
		if err != nil {
			return err
		}
		out = p.Clone()
		return nil
	})
	return out, err
}

func (s *PlannerService) ActiveProject() (*models.Project, error) {
	var out *models.Project
	err := s.do("get_active_project", func() error {
		p, err := s.store.ActiveProject()
		if err != nil {
			return err
		}
		out = p.Clone()
		return nil
	})
	return out, err
}

func (s *PlannerService) CreateProject(name string) (*models.Project, error) {
	var p, out *models.Project
	err := s.apply("create_project", func() error {
		p = s.store.CreateProject(name)
		return nil
	}, func() { out = p.Clone() })
	if err == nil {
		s.logr.Info("project created", zap.Int64("project_id", out.ID), zap.String("name", name))
	}
	return out, err
}

func (s *PlannerService) SelectProject(id int64) error {
	return s.do("select_project", func() error {
		return s.store.SelectProject(id)
	})
}

func (s *PlannerService) DeleteProject(id int64) error {
	err := s.do("delete_project", func() error {
		return s.store.DeleteProject(id)
	})
	if err == nil {
		s.logr.Info("project deleted", zap.Int64("project_id", id))
	}
	return err
}

// UpdateProject patches the active project and returns it.
func (s *PlannerService) UpdateProject(patch models.ProjectPatch) (*models.Project, error) {
	return s.updateActive("update_project", func() error {
		return s.store.UpdateProject(patch)
	})
}

// UpdateDataVars patches the admin-only heating degree day settings.
func (s *PlannerService) UpdateDataVars(patch models.DataVarsPatch) (*models.Project, error) {
	return s.updateActive("update_data_vars", func() error {
		return s.store.UpdateDataVars(patch)
	})
}

func (s *PlannerService) updateActive(op string, fn func() error) (*models.Project, error) {
	var p, out *models.Project
	err := s.apply(op, func() error {
		if err := fn(); err != nil {
			return err
		}
		var err error
		p, err = s.store.ActiveProject()
		return err
	}, func() { out = p.Clone() })
	return out, err
}

// StreetTotals reports the replaced-length breakdown of one street.
func (s *PlannerService) StreetTotals(streetID int64) (report.StreetTotals, error) {
	var out report.StreetTotals
	err := s.do("street_totals", func() error {
		st, err := s.store.Street(streetID)
		if err != nil {
			return err
		}
		out = report.TotalsForStreet(st)
		return nil
	})
	return out, err
}
