package controllers

import (
	"net/http"

	"github.com/mvillalba/verduleria-backend/api/responses"
	"github.com/mvillalba/verduleria-backend/api/validators"
	"github.com/mvillalba/verduleria-backend/internal/batches"
	"github.com/mvillalba/verduleria-backend/internal/manifests"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

type assignTeamRequest struct {
	TeamID int64 `json:"teamId" validate:"required,min=1"`
}

// BatchCreate opens an empty batch on the smallest free number, for staff
// preparing deliveries ahead of incoming orders.
func BatchCreate(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		summary, err := svc.CreateManual(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

func BatchListUnassigned(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.ListUnassigned(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func BatchListOpen(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.ListOpen(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func BatchDetail(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		number, err := urlParamInt64(r, "batchNumber")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := svc.FindByNumber(ctx, number)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func BatchAssignTeam(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		number, err := urlParamInt64(r, "batchNumber")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body assignTeamRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = svc.AssignTeam(ctx, batches.AssignTeamInput{BatchNumber: number, TeamID: body.TeamID})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"assigned": true})
	}
}

func BatchRevokeTeam(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		number, err := urlParamInt64(r, "batchNumber")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RevokeTeam(ctx, number); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"revoked": true})
	}
}

// BatchManifest renders the admin manifest with confirmation codes included.
func BatchManifest(svc manifests.Service, logg *logger.Logger) http.HandlerFunc {
	return manifestHandler(svc, logg, true)
}

func manifestHandler(svc manifests.Service, logg *logger.Logger, includeCodes bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		number, err := urlParamInt64(r, "batchNumber")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		doc, err := svc.Render(ctx, number, includeCodes)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteText(w, http.StatusOK, doc)
	}
}
