package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pleko-crm/pleko-crm/internal/accounts"
	"github.com/pleko-crm/pleko-crm/internal/activities"
	"github.com/pleko-crm/pleko-crm/internal/auth"
	"github.com/pleko-crm/pleko-crm/internal/dashboard"
	"github.com/pleko-crm/pleko-crm/internal/orders"
	"github.com/pleko-crm/pleko-crm/internal/payments"
	"github.com/pleko-crm/pleko-crm/internal/pipeline"
	"github.com/pleko-crm/pleko-crm/internal/products"
	"github.com/pleko-crm/pleko-crm/internal/shared"
	"github.com/pleko-crm/pleko-crm/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler      *auth.Handler
	AccountHandler   *accounts.Handler
	OrderHandler     *orders.Handler
	PaymentHandler   *payments.Handler
	ProductHandler   *products.Handler
	PipelineHandler  *pipeline.Handler
	ActivityHandler  *activities.Handler
	DashboardHandler *dashboard.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with Pleko defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)

		params.AccountHandler.MountRoutes(r)
		params.OrderHandler.MountRoutes(r)
		params.PaymentHandler.MountRoutes(r)
		params.ProductHandler.MountRoutes(r)
		params.PipelineHandler.MountRoutes(r)
		params.ActivityHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAdmin)

		params.AuthHandler.MountAdminRoutes(r)
		if params.JobHandler != nil {
			r.Route("/jobs", func(r chi.Router) {
				params.JobHandler.MountRoutes(r)
			})
		}
	})

	return r
}
