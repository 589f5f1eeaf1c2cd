package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/allocation"
	"github.com/frahmantamala/asset-management/internal/asset"
	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/category"
	"github.com/frahmantamala/asset-management/internal/history"
	"github.com/frahmantamala/asset-management/internal/maintenance"
	"github.com/frahmantamala/asset-management/internal/request"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every module handler the router wires up.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Asset       *asset.Handler
	Allocation  *allocation.Handler
	Request     *request.Handler
	Maintenance *maintenance.Handler
	History     *history.Handler
	Category    *category.Handler
}

// RegisterAllRoutes mounts the full API surface under /api/v1. The optional
// validator enforces the OpenAPI document on incoming requests.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, authService *auth.Service, validator *middleware.OpenAPIValidator, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	rbac := authService.RBACAuthorization()

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if validator != nil {
		router.Use(validator.Middleware)
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Category listing needs no auth.
		r.Get("/categories", h.Category.GetCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			// User administration
			pr.Route("/users", func(ur chi.Router) {
				ur.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireManageUsers())
					ar.Post("/", h.User.CreateUser)
					ar.Get("/", h.User.ListUsers)
					ar.Get("/{id}", h.User.GetUser)
					ar.Patch("/{id}", h.User.UpdateUser)
					ar.Put("/{id}/permissions", h.User.GrantPermissions)
					ar.Delete("/{id}", h.User.DeleteUser)
				})
			})

			// Asset catalog and lifecycle
			pr.Route("/assets", func(ar chi.Router) {
				ar.Get("/", h.Asset.ListAssets)
				ar.Get("/{id}", h.Asset.GetAsset)
				ar.Get("/{id}/history", h.History.ListAssetHistory)

				ar.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageAssets())
					mr.Post("/", h.Asset.CreateAsset)
					mr.Patch("/{id}", h.Asset.UpdateAsset)
					mr.Post("/{id}/assign", h.Allocation.AssignAsset)
				})

				// Returns come from the current holder, not an admin.
				ar.Post("/{id}/return", h.Allocation.ReturnAsset)
			})

			pr.Group(func(mr chi.Router) {
				mr.Use(rbac.RequireManageAssets())
				mr.Get("/returns", h.Allocation.ListReturns)
			})

			// Request-approval workflow
			pr.Route("/requests", func(rr chi.Router) {
				rr.Post("/", h.Request.SubmitRequest)
				rr.Get("/", h.Request.ListRequests)
				rr.Get("/{id}", h.Request.GetRequest)

				rr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireResolveRequests())
					ar.Patch("/{id}/resolve", h.Request.ResolveRequest)
				})
			})

			// Maintenance workflow
			pr.Route("/maintenance", func(mr chi.Router) {
				mr.Post("/", h.Maintenance.SubmitMaintenance)
				mr.Get("/", h.Maintenance.ListMaintenance)
				mr.Get("/{id}", h.Maintenance.GetMaintenance)

				mr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireManageMaintenance())
					ar.Patch("/{id}/status", h.Maintenance.UpdateMaintenanceStatus)
				})
			})

			// Full audit ledger is admin-only.
			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())
				ar.Get("/history", h.History.ListHistory)
			})
		})
	})
}
