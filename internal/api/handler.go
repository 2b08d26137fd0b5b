package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"batchboard/b/domain"
	"batchboard/b/internal/cache"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db     *sqlx.DB
	secret string
	cache  *cache.Cache
	log    *slog.Logger
}

// New constructs a Handler. cache may be nil.
func New(db *sqlx.DB, secret string, c *cache.Cache, log *slog.Logger) *Handler {
	return &Handler{db: db, secret: secret, cache: c, log: log}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.With(loginRateLimit()).Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/customers", func(r chi.Router) {
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})

		pr.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.listSuppliers)
			r.Post("/", h.createSupplier)
			r.Put("/{id}", h.updateSupplier)
			r.Delete("/{id}", h.deleteSupplier)
		})

		pr.Route("/purchases", func(r chi.Router) {
			r.Get("/", h.listPurchases)
			r.Post("/", h.createPurchase)
			r.Put("/{id}", h.updatePurchase)
			r.Delete("/{id}", h.deletePurchase)
		})

		pr.Route("/sales", func(r chi.Router) {
			r.Get("/", h.listSales)
			r.Post("/", h.createSale)
			r.Put("/{id}", h.updateSale)
			r.Delete("/{id}", h.deleteSale)
			r.Post("/{id}/revert", h.revertSale)
		})

		pr.Route("/holds", func(r chi.Router) {
			r.Get("/", h.listHolds)
			r.Post("/", h.createHold)
			r.Put("/{id}", h.updateHold)
			r.Delete("/{id}", h.deleteHold)
			r.Post("/{id}/convert", h.convertHold)
		})

		pr.Route("/adjustments", func(r chi.Router) {
			r.Get("/", h.listAdjustments)
			r.Post("/", h.createAdjustment)
			r.Put("/{id}", h.updateAdjustment)
			r.Delete("/{id}", h.deleteAdjustment)
		})

		pr.Route("/pipeline", func(r chi.Router) {
			r.Get("/", h.listPipeline)
			r.Post("/", h.createPipeline)
			r.Put("/{id}", h.updatePipeline)
			r.Delete("/{id}", h.deletePipeline)
			r.Post("/{id}/status", h.updatePipelineStatus)
			r.Post("/{id}/receive", h.receivePipeline)
		})

		pr.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", h.dashboard)
			r.Get("/stock", h.stockReport)
			r.Get("/sales", h.salesReport)
			r.Get("/monthly", h.monthlyReport)
		})

		pr.Get("/export/{collection}.csv", h.exportCSV)

		pr.Group(func(admin chi.Router) {
			admin.Use(h.requireRole(domain.RoleAdmin))

			admin.Route("/users", func(r chi.Router) {
				r.Get("/", h.listUsers)
				r.Post("/", h.createUser)
				r.Put("/{id}", h.updateUser)
				r.Delete("/{id}", h.deleteUser)
			})

			admin.Get("/backup", h.backupSnapshot)
			admin.Post("/restore", h.restoreSnapshot)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
