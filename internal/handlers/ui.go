package handlers

import (
	"net/http"

	"gsep-planner/internal/services"
	"gsep-planner/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UIHandler drives the selection and dialog flags.
type UIHandler struct {
	service *services.PlannerService
	logr    *zap.Logger
}

func NewUIHandler(svc *services.PlannerService, logr *zap.Logger) *UIHandler {
	return &UIHandler{service: svc, logr: logr}
}

func (h *UIHandler) reply(w http.ResponseWriter, r *http.Request, ui store.UIState, err error) {
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, ui)
}

// GET /ui
func (h *UIHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, h.service.UI())
}

// POST /ui/dialogs/{name}/open
func (h *UIHandler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.OpenDialog(store.Dialog(chi.URLParam(r, "name")))
	h.reply(w, r, ui, err)
}

// POST /ui/dialogs/{name}/close
func (h *UIHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.CloseDialog(store.Dialog(chi.URLParam(r, "name")))
	h.reply(w, r, ui, err)
}

type projectRef struct {
	ProjectID int64 `json:"projectId"`
}

type streetRef struct {
	StreetID int64 `json:"streetId"`
}

type viewModeReq struct {
	Mode store.ViewMode `json:"mode"`
}

// POST /ui/report/open
func (h *UIHandler) OpenReport(w http.ResponseWriter, r *http.Request) {
	var req projectRef
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ui, err := h.service.OpenReport(req.ProjectID)
	h.reply(w, r, ui, err)
}

// POST /ui/report/close
func (h *UIHandler) CloseReport(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.CloseReport()
	h.reply(w, r, ui, err)
}

// PUT /ui/report/view-mode
func (h *UIHandler) SetReportViewMode(w http.ResponseWriter, r *http.Request) {
	var req viewModeReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ui, err := h.service.SetReportViewMode(req.Mode)
	h.reply(w, r, ui, err)
}

// POST /ui/delete-confirm/open
func (h *UIHandler) OpenDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	var req projectRef
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ui, err := h.service.OpenDeleteConfirm(req.ProjectID)
	h.reply(w, r, ui, err)
}

// POST /ui/delete-confirm/cancel
func (h *UIHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.CancelDelete()
	h.reply(w, r, ui, err)
}

// POST /ui/delete-confirm/confirm
func (h *UIHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.ConfirmDelete()
	h.reply(w, r, ui, err)
}

// POST /ui/move-street/open
func (h *UIHandler) OpenMoveStreet(w http.ResponseWriter, r *http.Request) {
	var req streetRef
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ui, err := h.service.OpenMoveStreet(req.StreetID)
	h.reply(w, r, ui, err)
}

// POST /ui/move-street/cancel
func (h *UIHandler) CancelMoveStreet(w http.ResponseWriter, r *http.Request) {
	ui, err := h.service.CancelMoveStreet()
	h.reply(w, r, ui, err)
}

// POST /ui/move-street/confirm
func (h *UIHandler) ConfirmMoveStreet(w http.ResponseWriter, r *http.Request) {
	var req moveStreetReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ui, err := h.service.ConfirmMoveStreet(req.TargetProjectID)
	h.reply(w, r, ui, err)
}
