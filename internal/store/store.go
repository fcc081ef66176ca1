// Package store holds the in-memory project tree together with the
// selection and dialog state of the planner. A Store is not safe for
// concurrent use; callers serialise access.
package store

import (
	"gsep-planner/internal/idgen"
	"gsep-planner/internal/models"
)

type Store struct {
	ids      *idgen.Generator
	projects []*models.Project
	activeID *int64

	index    map[int64]*location
	branches map[int64][]int64

	ui UIState
}

// New returns an empty store issuing ids from gen. A nil gen gets a fresh
// generator.
func New(gen *idgen.Generator) *Store {
	if gen == nil {
		gen = idgen.New()
	}
	return &Store{
		ids:      gen,
		projects: []*models.Project{},
		index:    make(map[int64]*location),
		branches: make(map[int64][]int64),
		ui:       UIState{ReportViewMode: ViewSummary, CreatingNewProject: true},
	}
}

// IDs exposes the generator backing the store.
func (s *Store) IDs() *idgen.Generator {
	return s.ids
}

// Projects returns the live project list. Callers must not mutate it.
func (s *Store) Projects() []*models.Project {
	return s.projects
}

// ActiveProjectID returns the selected project id, or nil.
func (s *Store) ActiveProjectID() *int64 {
	if s.activeID == nil {
		return nil
	}
	id := *s.activeID
	return &id
}

// Project returns any project by id.
func (s *Store) Project(id int64) (*models.Project, error) {
	loc, ok := s.index[id]
	if !ok || loc.kind != KindProject {
		return nil, notFound(KindProject, id)
	}
	return loc.project, nil
}

// ActiveProject returns the selected project.
func (s *Store) ActiveProject() (*models.Project, error) {
	if s.activeID == nil {
		return nil, ErrNoActiveProject
	}
	p, err := s.Project(*s.activeID)
	if err != nil {
		return nil, ErrNoActiveProject
	}
	return p, nil
}

// resolve looks id up in the index and checks that it is an entity of the
// given kind belonging to the active project.
func (s *Store) resolve(kind Kind, id int64) (*location, error) {
	active, err := s.ActiveProject()
	if err != nil {
		return nil, err
	}
	loc, ok := s.index[id]
	if !ok || loc.kind != kind || loc.project != active {
		return nil, notFound(kind, id)
	}
	return loc, nil
}

func (s *Store) setActive(id *int64) {
	if id == nil {
		s.activeID = nil
		return
	}
	v := *id
	s.activeID = &v
}

// CreateProject appends a new project and selects it.
func (s *Store) CreateProject(name string) *models.Project {
	p := models.NewProject(s.ids, name)
	s.projects = append(s.projects, p)
	s.indexProject(p, len(s.projects)-1)
	s.setActive(&p.ID)
	s.ui.CreatingNewProject = false
	s.ui.NewProjectModalOpen = false
	return p
}

func (s *Store) SelectProject(id int64) error {
	if _, err := s.Project(id); err != nil {
		return err
	}
	s.setActive(&id)
	return nil
}

// DeleteProject removes a project and its subtree. When the active project
// is removed the previous one in list order (or the first) becomes active,
// or none when the list is empty.
func (s *Store) DeleteProject(id int64) error {
	loc, ok := s.index[id]
	if !ok || loc.kind != KindProject {
		return notFound(KindProject, id)
	}
	k := loc.pos
	p := loc.project

	s.projects = append(s.projects[:k], s.projects[k+1:]...)
	delete(s.index, p.ID)
	for _, st := range p.Streets {
		s.unindexStreet(st)
	}
	s.repositionProjects(k)

	if s.activeID != nil && *s.activeID == id {
		if len(s.projects) == 0 {
			s.activeID = nil
		} else {
			next := k - 1
			if next < 0 {
				next = 0
			}
			s.setActive(&s.projects[next].ID)
		}
	}
	if s.ui.ReportProjectID != nil && *s.ui.ReportProjectID == id {
		s.CloseReport()
	}
	return nil
}

func (s *Store) UpdateProject(patch models.ProjectPatch) error {
	p, err := s.ActiveProject()
	if err != nil {
		return err
	}
	patch.Apply(p)
	return nil
}

// UpdateDataVars edits the heating-degree-day assumptions of the active
// project.
func (s *Store) UpdateDataVars(patch models.DataVarsPatch) error {
	p, err := s.ActiveProject()
	if err != nil {
		return err
	}
	patch.Apply(p)
	return nil
}

// ReplaceAll swaps in a whole project list, as after opening a plan file.
// The index and branch relation are rebuilt, the id generator is moved
// past every loaded id, and the first project becomes active.
func (s *Store) ReplaceAll(projects []*models.Project) {
	if projects == nil {
		projects = []*models.Project{}
	}
	s.projects = projects
	s.index = make(map[int64]*location)
	s.branches = make(map[int64][]int64)

	var max int64
	for i, p := range projects {
		p.Normalize()
		if id := s.indexProject(p, i); id > max {
			max = id
		}
	}
	s.ids.AdvanceTo(max)

	if len(projects) > 0 {
		s.setActive(&projects[0].ID)
	} else {
		s.activeID = nil
	}
	s.ui.CreatingNewProject = len(projects) == 0
	if s.ui.ReportProjectID != nil {
		if _, err := s.Project(*s.ui.ReportProjectID); err != nil {
			s.CloseReport()
		}
	}
	s.ui.DeleteConfirmOpen, s.ui.ProjectToDeleteID = false, nil
	s.ui.MoveStreetOpen, s.ui.StreetToMoveID = false, nil
}
