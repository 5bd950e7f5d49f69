package webhooks

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mvillalba/verduleria-backend/api/responses"
	"github.com/mvillalba/verduleria-backend/api/validators"
	"github.com/mvillalba/verduleria-backend/internal/payments"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

// paymentEvent mirrors the processor's webhook body. The cart id travels in
// external_reference as set at checkout time.
type paymentEvent struct {
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id" validate:"required"`
	} `json:"data"`
	Status            string `json:"status" validate:"required"`
	ExternalReference string `json:"external_reference" validate:"required"`
}

// PaymentWebhook consumes payment processor events. Replays return the
// duplicate outcome with 200 so the processor stops retrying.
func PaymentWebhook(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var event paymentEvent
		if err := validators.DecodeJSONBody(r, &event); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cartID, err := strconv.ParseInt(strings.TrimSpace(event.ExternalReference), 10, 64)
		if err != nil || cartID <= 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "external_reference must be a cart id"))
			return
		}

		if logg != nil {
			ctx = logg.WithPaymentID(ctx, event.Data.ID)
		}

		result, err := svc.Process(ctx, payments.PaymentInput{
			PaymentID: event.Data.ID,
			Status:    event.Status,
			CartID:    cartID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusOK
		if result.Outcome == payments.OutcomeCreated {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}
