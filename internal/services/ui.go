package services

import "gsep-planner/internal/store"

// Dialog and selection flags. Each call returns the resulting UI state.

func (s *PlannerService) ui(op string, fn func() error) (store.UIState, error) {
	var out store.UIState
	err := s.do(op, func() error {
		if err := fn(); err != nil {
			return err
		}
		out = s.store.UI()
		return nil
	})
	return out, err
}

func (s *PlannerService) OpenDialog(d store.Dialog) (store.UIState, error) {
	return s.ui("open_dialog", func() error { return s.store.OpenDialog(d) })
}

func (s *PlannerService) CloseDialog(d store.Dialog) (store.UIState, error) {
	return s.ui("close_dialog", func() error { return s.store.CloseDialog(d) })
}

func (s *PlannerService) OpenReport(projectID int64) (store.UIState, error) {
	return s.ui("open_report", func() error { return s.store.OpenReport(projectID) })
}

func (s *PlannerService) CloseReport() (store.UIState, error) {
	return s.ui("close_report", func() error {
		s.store.CloseReport()
		return nil
	})
}

func (s *PlannerService) SetReportViewMode(mode store.ViewMode) (store.UIState, error) {
	return s.ui("set_report_view_mode", func() error { return s.store.SetReportViewMode(mode) })
}

func (s *PlannerService) OpenDeleteConfirm(projectID int64) (store.UIState, error) {
	return s.ui("open_delete_confirm", func() error { return s.store.OpenDeleteConfirm(projectID) })
}

func (s *PlannerService) CancelDelete() (store.UIState, error) {
	return s.ui("cancel_delete", func() error {
		s.store.CancelDelete()
		return nil
	})
}

// ConfirmDelete deletes the project named by the delete dialog.
func (s *PlannerService) ConfirmDelete() (store.UIState, error) {
	return s.ui("confirm_delete", func() error { return s.store.ConfirmDelete() })
}

func (s *PlannerService) OpenMoveStreet(streetID int64) (store.UIState, error) {
	return s.ui("open_move_street", func() error { return s.store.OpenMoveStreet(streetID) })
}

func (s *PlannerService) CancelMoveStreet() (store.UIState, error) {
	return s.ui("cancel_move_street", func() error {
		s.store.CancelMoveStreet()
		return nil
	})
}

func (s *PlannerService) ConfirmMoveStreet(targetProjectID int64) (store.UIState, error) {
	return s.ui("confirm_move_street", func() error { return s.store.ConfirmMoveStreet(targetProjectID) })
}
