package controllers

import (
	"net/http"

	"github.com/mvillalba/verduleria-backend/api/responses"
	"github.com/mvillalba/verduleria-backend/api/validators"
	"github.com/mvillalba/verduleria-backend/internal/deliveries"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

type confirmDeliveryRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// DeliveryConfirm transitions the pending order matching the handed-over
// confirmation code. Invalid codes get NotFound so the worker can retry.
func DeliveryConfirm(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body confirmDeliveryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.ConfirmByCode(ctx, body.Code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
