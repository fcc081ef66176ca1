package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"gsep-planner/internal/planfile"
	"gsep-planner/internal/services"
	"gsep-planner/internal/store"
	"gsep-planner/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ExportHandler serves reports, plan files and stored snapshots.
type ExportHandler struct {
	service       *services.PlannerService
	logr          *zap.Logger
	maxUploadSize int64
}

func NewExportHandler(svc *services.PlannerService, maxUploadSize int64, logr *zap.Logger) *ExportHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 20 << 20
	}
	return &ExportHandler{service: svc, logr: logr, maxUploadSize: maxUploadSize}
}

// GET /reports/{projectId}/csv
func (h *ExportHandler) DownloadReportCSV(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "projectId")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	d, err := h.service.ReportCSV(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeDownload(w, d)
}

// GET /reports/{projectId}/markup?mode=summary|table
func (h *ExportHandler) ReportMarkup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "projectId")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	html, err := h.service.ReportMarkup(id, store.ViewMode(r.URL.Query().Get("mode")))
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// POST /reports/archive?projectIds=1,2
func (h *ExportHandler) ArchiveReports(w http.ResponseWriter, r *http.Request) {
	ids, err := utils.ParseIDList(r.URL.Query(), "projectIds")
	if err != nil {
		writeError(w, h.logr, r, badRequest("%v", err))
		return
	}
	if len(ids) == 0 {
		writeError(w, h.logr, r, badRequest("projectIds is required"))
		return
	}
	stored := make([]any, 0, len(ids))
	for _, id := range ids {
		info, err := h.service.ArchiveReport(r.Context(), id)
		if err != nil {
			writeError(w, h.logr, r, err)
			return
		}
		stored = append(stored, info)
	}
	writeOK(w, http.StatusCreated, stored)
}

// GET /reports
func (h *ExportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListReports(r.Context())
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, items)
}

// GET /plan/download
func (h *ExportHandler) DownloadPlan(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.ExportPlan()
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeDownload(w, d)
}

// POST /plan/open takes the raw plan file as the request body.
func (h *ExportHandler) OpenPlan(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"success": false, "error": "plan file too large"})
			return
		}
		writeError(w, h.logr, r, badRequest("read body: %v", err))
		return
	}
	state, err := h.service.ImportPlan(data)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, state)
}

// GET /plan/snapshots
func (h *ExportHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, items)
}

// POST /plan/snapshots
func (h *ExportHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.SaveSnapshot(r.Context())
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusCreated, info)
}

type blobKeyReq struct {
	Key string `json:"key"`
}

// POST /plan/snapshots/open
func (h *ExportHandler) OpenSnapshot(w http.ResponseWriter, r *http.Request) {
	var req blobKeyReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	state, err := h.service.OpenSnapshot(r.Context(), req.Key)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, state)
}

func blobKey(r *http.Request) (string, error) {
	key := r.URL.Query().Get("key")
	if key == "" {
		return "", badRequest("key is required")
	}
	return key, nil
}

// GET /files?key=
func (h *ExportHandler) FetchFile(w http.ResponseWriter, r *http.Request) {
	key, err := blobKey(r)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	d, err := h.service.FetchBlob(r.Context(), key)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeDownload(w, d)
}

// GET /files/url?key=&ttl=15m
func (h *ExportHandler) FileURL(w http.ResponseWriter, r *http.Request) {
	key, err := blobKey(r)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ttl := 15 * time.Minute
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		if ttl, err = time.ParseDuration(raw); err != nil {
			writeError(w, h.logr, r, badRequest("invalid ttl %q", raw))
			return
		}
	}
	url, err := h.service.BlobURL(r.Context(), key, ttl)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"url": url, "expiresIn": ttl.String()})
}

// DELETE /files?key=
func (h *ExportHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	key, err := blobKey(r)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	if err := h.service.DeleteBlob(r.Context(), key); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"deleted": key})
}

// GET /schema
func (h *ExportHandler) Schemas(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, planfile.Schemas())
}

// GET /schema/{table}/template
func (h *ExportHandler) SchemaTemplate(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	line, ok := planfile.CSVTemplate(table)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "unknown table " + table})
		return
	}
	writeDownload(w, &services.Download{
		Filename:    table + "_template.csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        []byte(line),
	})
}
