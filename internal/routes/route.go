package routes

import (
	"net/http"

	"gsep-planner/internal/auth"
	"gsep-planner/internal/blob/core"
	"gsep-planner/internal/config"
	"gsep-planner/internal/handlers"
	"gsep-planner/internal/logger"
	"gsep-planner/internal/metrics"
	mdlwr "gsep-planner/internal/middleware"
	"gsep-planner/internal/services"
	"gsep-planner/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, blobs core.Store, rec *metrics.Recorder, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mdlwr.Metrics(rec))

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtMgr, generated, err := auth.LoadOrGenerate(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTIssuer)
	if err != nil {
		logr.Fatal("failed to init jwt manager", zap.Error(err))
	}
	if generated {
		logr.Warn("jwt key files not found, using an ephemeral key", zap.String("path", cfg.JWTPrivateKeyPath))
	}

	ldapAuth := auth.NewLDAPAuthenticator(auth.LDAPConfig{
		Server:   cfg.LDAPServer,
		BindDN:   cfg.LDAPBindDN,
		BindPass: cfg.LDAPBindPass,
		BaseDN:   cfg.LDAPBaseDN,
		UserAttr: cfg.LDAPUserAttr,
		Timeout:  cfg.LDAPTimeout,
	}, logr.Logger)

	plannerSvc := services.NewPlannerService(store.New(nil), blobs, rec, logr)
	adminSvc := services.NewAdminService(jwtMgr, ldapAuth, plannerSvc, cfg.AdminPasscodeHash, cfg.AdminTokenTTL, logr)

	authMW := mdlwr.NewAuthMiddleware(jwtMgr, logr.Logger)

	plannerHandler := handlers.NewPlannerHandler(plannerSvc, logr.Logger)
	uiHandler := handlers.NewUIHandler(plannerSvc, logr.Logger)
	exportHandler := handlers.NewExportHandler(plannerSvc, cfg.MaxUploadSize, logr.Logger)
	authHandler := handlers.NewAuthHandler(adminSvc, plannerSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})
	r.Method(http.MethodGet, "/metrics", rec.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", plannerHandler.GetState)
		r.Get("/options", plannerHandler.GetOptions)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", plannerHandler.ListProjects)
			r.Post("/", plannerHandler.CreateProject)
			r.Get("/active", plannerHandler.GetActiveProject)
			r.Patch("/active", plannerHandler.UpdateActiveProject)
			r.Get("/{id}", plannerHandler.GetProject)
			r.Post("/{id}/select", plannerHandler.SelectProject)
			r.Delete("/{id}", plannerHandler.DeleteProject)
		})

		r.Route("/streets", func(r chi.Router) {
			r.Post("/", plannerHandler.AddStreet)
			r.Patch("/{id}", plannerHandler.UpdateStreet)
			r.Delete("/{id}", plannerHandler.RemoveStreet)
			r.Put("/{id}/segment-count", plannerHandler.SetSegmentCount)
			r.Get("/{id}/totals", plannerHandler.StreetTotals)
			r.Post("/{id}/move", plannerHandler.MoveStreet)
			r.Post("/{id}/segments", plannerHandler.AddSegment)
		})

		r.Route("/segments", func(r chi.Router) {
			r.Patch("/{id}", plannerHandler.UpdateSegment)
			r.Delete("/{id}", plannerHandler.RemoveSegment)
			r.Post("/{id}/services", plannerHandler.AddService)
		})

		r.Route("/services", func(r chi.Router) {
			r.Patch("/{id}", plannerHandler.UpdateService)
			r.Delete("/{id}", plannerHandler.RemoveService)
			r.Get("/{id}/branches", plannerHandler.ListBranches)
			r.Post("/{id}/branches", plannerHandler.AddBranchService)
			r.Post("/{id}/meters", plannerHandler.AddMeter)
		})

		r.Route("/meters", func(r chi.Router) {
			r.Patch("/{id}", plannerHandler.UpdateMeter)
			r.Delete("/{id}", plannerHandler.RemoveMeter)
		})

		r.Route("/ui", func(r chi.Router) {
			r.Get("/", uiHandler.Get)
			r.Post("/dialogs/{name}/open", uiHandler.OpenDialog)
			r.Post("/dialogs/{name}/close", uiHandler.CloseDialog)
			r.Post("/report/open", uiHandler.OpenReport)
			r.Post("/report/close", uiHandler.CloseReport)
			r.Put("/report/view-mode", uiHandler.SetReportViewMode)
			r.Post("/delete-confirm/open", uiHandler.OpenDeleteConfirm)
			r.Post("/delete-confirm/cancel", uiHandler.CancelDelete)
			r.Post("/delete-confirm/confirm", uiHandler.ConfirmDelete)
			r.Post("/move-street/open", uiHandler.OpenMoveStreet)
			r.Post("/move-street/cancel", uiHandler.CancelMoveStreet)
			r.Post("/move-street/confirm", uiHandler.ConfirmMoveStreet)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", exportHandler.ListReports)
			r.Post("/archive", exportHandler.ArchiveReports)
			r.Get("/{projectId}/csv", exportHandler.DownloadReportCSV)
			r.Get("/{projectId}/markup", exportHandler.ReportMarkup)
		})

		r.Route("/plan", func(r chi.Router) {
			r.Get("/download", exportHandler.DownloadPlan)
			r.Post("/open", exportHandler.OpenPlan)
			r.Get("/snapshots", exportHandler.ListSnapshots)
			r.Post("/snapshots", exportHandler.SaveSnapshot)
			r.Post("/snapshots/open", exportHandler.OpenSnapshot)
		})

		r.Route("/files", func(r chi.Router) {
			r.Get("/", exportHandler.FetchFile)
			r.Get("/url", exportHandler.FileURL)
			r.With(authMW.RequireAdmin).Delete("/", exportHandler.DeleteFile)
		})

		r.Route("/schema", func(r chi.Router) {
			r.Get("/", exportHandler.Schemas)
			r.Get("/{table}/template", exportHandler.SchemaTemplate)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/methods", authHandler.Methods)
			r.Post("/passcode", authHandler.UnlockPasscode)
			r.Post("/ldap", authHandler.UnlockLDAP)
		})

		// Protected routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMW.RequireAdmin)
			r.Put("/data-vars", authHandler.UpdateDataVars)
			r.Post("/lock", authHandler.Lock)
		})
	})

	return r
}
