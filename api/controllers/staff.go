package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mvillalba/verduleria-backend/api/responses"
	"github.com/mvillalba/verduleria-backend/internal/batches"
	"github.com/mvillalba/verduleria-backend/internal/customers"
	"github.com/mvillalba/verduleria-backend/internal/manifests"
	"github.com/mvillalba/verduleria-backend/internal/teams"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
)

// StaffTeam returns the team the worker belongs to. Workers in several teams
// get the oldest one.
func StaffTeam(svc teams.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		view, err := svc.TeamForWorker(ctx, chi.URLParam(r, "workerTelegramID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// StaffBatches lists the batches currently assigned to the worker's team.
func StaffBatches(teamsSvc teams.Service, batchesSvc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		team, err := teamsSvc.TeamForWorker(ctx, chi.URLParam(r, "workerTelegramID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := batchesSvc.ListByTeam(ctx, team.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StaffManifest renders the worker manifest. Confirmation codes stay out:
// they are the customer's delivery proof, not the courier's. Only registered
// workers get a manifest.
func StaffManifest(customersSvc customers.Service, manifestsSvc manifests.Service, logg *logger.Logger) http.HandlerFunc {
	render := manifestHandler(manifestsSvc, logg, false)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ok, err := customersSvc.IsWorker(ctx, chi.URLParam(r, "workerTelegramID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found"))
			return
		}
		render(w, r)
	}
}
