package handlers

import (
	"net/http"

	"gsep-planner/internal/models"
	"gsep-planner/internal/services"
	"gsep-planner/internal/utils"

	"go.uber.org/zap"
)

// PlannerHandler exposes the project tree editor.
type PlannerHandler struct {
	service *services.PlannerService
	logr    *zap.Logger
}

func NewPlannerHandler(svc *services.PlannerService, logr *zap.Logger) *PlannerHandler {
	return &PlannerHandler{service: svc, logr: logr}
}

// GET /state
func (h *PlannerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, h.service.State())
}

// GET /options
func (h *PlannerHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, map[string]any{
		"towns":                    models.Towns,
		"pipeDiameters":            models.PipeDiameters,
		"servicePipeDiameters":     models.ServicePipeDiameters,
		"pipeMaterials":            models.PipeMaterials,
		"replacementPipeDiameters": models.ReplacementPipeDiameters,
		"replacementPipeMaterials": models.ReplacementPipeMaterials,
		"replacementPipeMethods":   models.ReplacementPipeMethods,
		"maopOptions":              models.MaopOptions,
		"purposeOptions":           models.PurposeOptions,
		"serviceWorkTypes":         models.ServiceWorkTypes,
		"structureTypes":           models.StructureTypes,
		"diameterReductions":       models.DiameterReductions,
	})
}

// GET /projects?ids=1,2
func (h *PlannerHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := utils.ParseIDList(r.URL.Query(), "ids")
	if err != nil {
		writeError(w, h.logr, r, badRequest("%v", err))
		return
	}
	projects := h.service.Projects()
	if len(ids) > 0 {
		want := make(map[int64]bool, len(ids))
		for _, id := range ids {
			want[id] = true
		}
		filtered := projects[:0]
		for _, p := range projects {
			if want[p.ID] {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	writeOK(w, http.StatusOK, projects)
}

type createProjectReq struct {
	ProjectName string `json:"projectName"`
}

// POST /projects
func (h *PlannerHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	p, err := h.service.CreateProject(req.ProjectName)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusCreated, p)
}

// GET /projects/{id}
func (h *PlannerHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	p, err := h.service.Project(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, p)
}

// GET /projects/active
func (h *PlannerHandler) GetActiveProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ActiveProject()
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, p)
}

// PATCH /projects/active
func (h *PlannerHandler) UpdateActiveProject(w http.ResponseWriter, r *http.Request) {
	var patch models.ProjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	p, err := h.service.UpdateProject(patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, p)
}

// POST /projects/{id}/select
func (h *PlannerHandler) SelectProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	if err := h.service.SelectProject(id); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"activeProjectId": id})
}

// DELETE /projects/{id}
func (h *PlannerHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	if err := h.service.DeleteProject(id); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, h.service.State())
}

// POST /streets
func (h *PlannerHandler) AddStreet(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.AddStreet()
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusCreated, st)
}

// PATCH /streets/{id}
func (h *PlannerHandler) UpdateStreet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var patch models.StreetPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	st, err := h.service.UpdateStreet(id, patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, st)
}

// DELETE /streets/{id}
func (h *PlannerHandler) RemoveStreet(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveStreet)
}

type segmentCountReq struct {
	Count int `json:"count"`
}

// PUT /streets/{id}/segment-count
func (h *PlannerHandler) SetSegmentCount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var req segmentCountReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	st, err := h.service.SetSegmentCount(id, req.Count)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, st)
}

// GET /streets/{id}/totals
func (h *PlannerHandler) StreetTotals(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	totals, err := h.service.StreetTotals(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, totals)
}

type moveStreetReq struct {
	TargetProjectID int64 `json:"targetProjectId"`
}

// POST /streets/{id}/move
func (h *PlannerHandler) MoveStreet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var req moveStreetReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	if err := h.service.MoveStreet(id, req.TargetProjectID); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, h.service.State())
}

// POST /streets/{id}/segments
func (h *PlannerHandler) AddSegment(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id int64) (any, error) { return h.service.AddSegment(id) })
}

// PATCH /segments/{id}
func (h *PlannerHandler) UpdateSegment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var patch models.SegmentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	seg, err := h.service.UpdateSegment(id, patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, seg)
}

// DELETE /segments/{id}
func (h *PlannerHandler) RemoveSegment(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveSegment)
}

// POST /segments/{id}/services
func (h *PlannerHandler) AddService(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id int64) (any, error) { return h.service.AddService(id) })
}

// PATCH /services/{id}
func (h *PlannerHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var patch models.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	svc, err := h.service.UpdateService(id, patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, svc)
}

// DELETE /services/{id}
func (h *PlannerHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	removed, err := h.service.RemoveService(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"removedIds": removed})
}

// POST /services/{id}/branches
func (h *PlannerHandler) AddBranchService(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id int64) (any, error) { return h.service.AddBranchService(id) })
}

// GET /services/{id}/branches
func (h *PlannerHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	ids, err := h.service.Branches(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, ids)
}

// POST /services/{id}/meters
func (h *PlannerHandler) AddMeter(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(id int64) (any, error) { return h.service.AddMeter(id) })
}

// PATCH /meters/{id}
func (h *PlannerHandler) UpdateMeter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	var patch models.MeterPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	m, err := h.service.UpdateMeter(id, patch)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, m)
}

// DELETE /meters/{id}
func (h *PlannerHandler) RemoveMeter(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveMeter)
}

// create adds a child under the owner named by {id}.
func (h *PlannerHandler) create(w http.ResponseWriter, r *http.Request, fn func(ownerID int64) (any, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	child, err := fn(id)
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusCreated, child)
}

func (h *PlannerHandler) remove(w http.ResponseWriter, r *http.Request, fn func(id int64) error) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	if err := fn(id); err != nil {
		writeError(w, h.logr, r, err)
		return
	}
	writeOK(w, http.StatusOK, map[string]any{"removedId": id})
}
