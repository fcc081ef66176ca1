package store

// ViewMode selects how the report dialog renders a project.
type ViewMode string

const (
	ViewSummary ViewMode = "summary"
	ViewTable   ViewMode = "table"
)

// Dialog names a plain open/closed dialog. Dialogs that carry a target
// (report, delete confirm, move street) have their own operations.
type Dialog string

const (
	DialogAdminPanel Dialog = "adminPanel"
	DialogPasscode   Dialog = "passcode"
	DialogNewProject Dialog = "newProject"
	DialogDataVars   Dialog = "dataVars"
	DialogSchema     Dialog = "schema"
	DialogAbout      Dialog = "about"
)

// UIState is the selection and dialog state shown next to the tree.
type UIState struct {
	CreatingNewProject bool `json:"creatingNewProject"`

	AdminPanelOpen      bool `json:"adminPanelOpen"`
	PasscodeModalOpen   bool `json:"passcodeModalOpen"`
	NewProjectModalOpen bool `json:"newProjectModalOpen"`
	DataVarsModalOpen   bool `json:"dataVarsModalOpen"`
	SchemaModalOpen     bool `json:"schemaModalOpen"`
	AboutModalOpen      bool `json:"aboutModalOpen"`

	DeleteConfirmOpen bool   `json:"deleteConfirmOpen"`
	ProjectToDeleteID *int64 `json:"projectToDeleteId"`

	MoveStreetOpen bool   `json:"moveStreetOpen"`
	StreetToMoveID *int64 `json:"streetToMoveId"`

	ReportOpen      bool     `json:"reportOpen"`
	ReportProjectID *int64   `json:"reportProjectId"`
	ReportViewMode  ViewMode `json:"reportViewMode"`
}

// UI returns a copy of the dialog state.
func (s *Store) UI() UIState {
	u := s.ui
	u.ProjectToDeleteID = cloneID(s.ui.ProjectToDeleteID)
	u.StreetToMoveID = cloneID(s.ui.StreetToMoveID)
	u.ReportProjectID = cloneID(s.ui.ReportProjectID)
	return u
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *Store) dialogFlag(d Dialog) (*bool, error) {
	switch d {
	case DialogAdminPanel:
		return &s.ui.AdminPanelOpen, nil
	case DialogPasscode:
		return &s.ui.PasscodeModalOpen, nil
	case DialogNewProject:
		return &s.ui.NewProjectModalOpen, nil
	case DialogDataVars:
		return &s.ui.DataVarsModalOpen, nil
	case DialogSchema:
		return &s.ui.SchemaModalOpen, nil
	case DialogAbout:
		return &s.ui.AboutModalOpen, nil
	}
	return nil, ErrUnknownDialog
}

func (s *Store) OpenDialog(d Dialog) error {
	flag, err := s.dialogFlag(d)
	if err != nil {
		return err
	}
	*flag = true
	return nil
}

func (s *Store) CloseDialog(d Dialog) error {
	flag, err := s.dialogFlag(d)
	if err != nil {
		return err
	}
	*flag = false
	return nil
}

// OpenReport shows the report of a project, starting in summary view.
func (s *Store) OpenReport(projectID int64) error {
	if _, err := s.Project(projectID); err != nil {
		return err
	}
	s.ui.ReportOpen = true
	s.ui.ReportProjectID = &projectID
	s.ui.ReportViewMode = ViewSummary
	return nil
}

func (s *Store) CloseReport() {
	s.ui.ReportOpen = false
	s.ui.ReportProjectID = nil
}

func (s *Store) SetReportViewMode(mode ViewMode) error {
	if mode != ViewSummary && mode != ViewTable {
		return ErrInvalidViewMode
	}
	s.ui.ReportViewMode = mode
	return nil
}

func (s *Store) OpenDeleteConfirm(projectID int64) error {
	if _, err := s.Project(projectID); err != nil {
		return err
	}
	s.ui.DeleteConfirmOpen = true
	s.ui.ProjectToDeleteID = &projectID
	return nil
}

func (s *Store) CancelDelete() {
	s.ui.DeleteConfirmOpen = false
	s.ui.ProjectToDeleteID = nil
}

// ConfirmDelete deletes the project the confirmation dialog was opened for
// and closes the dialog. A target that disappeared meanwhile only closes it.
func (s *Store) ConfirmDelete() error {
	target := s.ui.ProjectToDeleteID
	s.CancelDelete()
	if target == nil {
		return nil
	}
	if _, err := s.Project(*target); err != nil {
		return nil
	}
	return s.DeleteProject(*target)
}

// OpenMoveStreet remembers a street of the active project as the subject of
// the move dialog.
func (s *Store) OpenMoveStreet(streetID int64) error {
	if _, err := s.resolve(KindStreet, streetID); err != nil {
		return err
	}
	s.ui.MoveStreetOpen = true
	s.ui.StreetToMoveID = &streetID
	return nil
}

func (s *Store) CancelMoveStreet() {
	s.ui.MoveStreetOpen = false
	s.ui.StreetToMoveID = nil
}

// ConfirmMoveStreet moves the remembered street to targetProjectID and
// closes the dialog.
func (s *Store) ConfirmMoveStreet(targetProjectID int64) error {
	if s.ui.StreetToMoveID == nil {
		return notFound(KindStreet, 0)
	}
	if err := s.MoveStreet(*s.ui.StreetToMoveID, targetProjectID); err != nil {
		return err
	}
	s.CancelMoveStreet()
	return nil
}
