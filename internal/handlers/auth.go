package handlers

import (
	"net/http"

	"gsep-planner/internal/middleware"
	"gsep-planner/internal/models"
	"gsep-planner/internal/services"

	"go.uber.org/zap"
)

type AuthHandler struct {
	admin   *services.AdminService
	planner *services.PlannerService
	logr    *zap.Logger
}

func NewAuthHandler(admin *services.AdminService, planner *services.PlannerService, logr *zap.Logger) *AuthHandler {
	return &AuthHandler{admin: admin, planner: planner, logr: logr}
}

type passcodeReq struct {
	Passcode string `json:"passcode"`
}

type ldapReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GET /auth/methods
func (h *AuthHandler) Methods(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, h.admin.Methods())
}

// POST /auth/passcode
func (h *AuthHandler) UnlockPasscode(w http.ResponseWriter, r *http.Request) {
	var req passcodeReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	tok, err := h.admin.UnlockWithPasscode(req.Passcode)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, tok)
}

// POST /auth/ldap
func (h *AuthHandler) UnlockLDAP(w http.ResponseWriter, r *http.Request) {
	var req ldapReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	tok, err := h.admin.UnlockWithLDAP(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logr.Warn("ldap unlock failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, tok)
}

// PUT /admin/data-vars
func (h *AuthHandler) UpdateDataVars(w http.ResponseWriter, r *http.Request) {
	var patch models.DataVarsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	p, err := h.planner.UpdateDataVars(patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	h.logr.Info("data variables updated", zap.String("subject", middleware.Subject(r.Context())), zap.Int64("project_id", p.ID))
	writeOK(w, http.StatusOK, p)
}

// POST /admin/lock
func (h *AuthHandler) Lock(w http.ResponseWriter, r *http.Request) {
	ui, err := h.admin.Lock()
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, ui)
}
