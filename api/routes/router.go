package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvillalba/verduleria-backend/api/controllers"
	webhookcontrollers "github.com/mvillalba/verduleria-backend/api/controllers/webhooks"
	"github.com/mvillalba/verduleria-backend/api/middleware"
	"github.com/mvillalba/verduleria-backend/internal/batches"
	"github.com/mvillalba/verduleria-backend/internal/customers"
	"github.com/mvillalba/verduleria-backend/internal/deliveries"
	"github.com/mvillalba/verduleria-backend/internal/manifests"
	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/internal/payments"
	"github.com/mvillalba/verduleria-backend/internal/teams"
	"github.com/mvillalba/verduleria-backend/pkg/config"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	ordersService orders.Service,
	batchesService batches.Service,
	teamsService teams.Service,
	customersService customers.Service,
	paymentsService payments.Service,
	manifestsService manifests.Service,
	deliveriesService deliveries.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/payments", webhookcontrollers.PaymentWebhook(paymentsService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/customers/{telegramID}/orders", controllers.CustomerOrders(ordersService, logg))

		r.Post("/deliveries/confirm", controllers.DeliveryConfirm(deliveriesService, logg))

		r.Route("/staff/{workerTelegramID}", func(r chi.Router) {
			r.Get("/team", controllers.StaffTeam(teamsService, logg))
			r.Get("/batches", controllers.StaffBatches(teamsService, batchesService, logg))
			r.Get("/batches/{batchNumber}/manifest", controllers.StaffManifest(customersService, manifestsService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/teams", func(r chi.Router) {
				r.Post("/", controllers.TeamCreate(teamsService, logg))
				r.Get("/", controllers.TeamList(teamsService, logg))
				r.Delete("/{teamID}", controllers.TeamDelete(teamsService, logg))
			})

			r.Route("/batches", func(r chi.Router) {
				r.Post("/", controllers.BatchCreate(batchesService, logg))
				r.Get("/unassigned", controllers.BatchListUnassigned(batchesService, logg))
				r.Get("/open", controllers.BatchListOpen(batchesService, logg))
				r.Route("/{batchNumber}", func(r chi.Router) {
					r.Get("/", controllers.BatchDetail(batchesService, logg))
					r.Get("/manifest", controllers.BatchManifest(manifestsService, logg))
					r.Post("/team", controllers.BatchAssignTeam(batchesService, logg))
					r.Delete("/team", controllers.BatchRevokeTeam(batchesService, logg))
				})
			})
		})
	})

	return r
}
