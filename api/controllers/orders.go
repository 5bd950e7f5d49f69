package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mvillalba/verduleria-backend/api/responses"
	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

// CustomerOrders serves a customer's order history, newest first. The status
// query narrows to pending or delivered; limit defaults server-side.
func CustomerOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input := orders.CustomerOrdersInput{
			TelegramID: chi.URLParam(r, "telegramID"),
			Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err == nil {
				input.Limit = limit
			}
		}

		views, err := svc.CustomerOrders(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}
