package batches

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvillalba/verduleria-backend/internal/orders"
	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"gorm.io/gorm"
)

// Capacity is the maximum number of pending orders a batch accepts before a
// new batch is opened.
const Capacity = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// teamFinder resolves teams for assignment checks.
type teamFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Team, error)
}

// Service owns batch lifecycle and team assignment.
type Service interface {
	// PlaceOrder picks the batch a new order lands in, creating one when the
	// latest batch is full or no batch exists. Runs inside the caller's
	// transaction.
	PlaceOrder(ctx context.Context, tx *gorm.DB) (*models.Batch, error)
	// Finalize deletes the batch once its pending count reaches zero and
	// reports whether the delete happened. Runs inside the caller's
	// transaction.
	Finalize(ctx context.Context, tx *gorm.DB, batchID int64) (bool, error)
	NextAvailableNumber(ctx context.Context) (int64, error)
	CreateManual(ctx context.Context) (*BatchSummary, error)
	AssignTeam(ctx context.Context, input AssignTeamInput) error
	RevokeTeam(ctx context.Context, batchNumber int64) error
	FindByNumber(ctx context.Context, number int64) (*BatchSummary, error)
	ListUnassigned(ctx context.Context) ([]BatchSummary, error)
	ListOpen(ctx context.Context) ([]BatchSummary, error)
	ListByTeam(ctx context.Context, teamID int64) ([]BatchSummary, error)
}

type service struct {
	repo       Repository
	ordersRepo orders.Repository
	teams      teamFinder
	tx         txRunner
}

// NewService builds the batch manager with the required dependencies.
func NewService(repo Repository, ordersRepo orders.Repository, teams teamFinder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("batches repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if teams == nil {
		return nil, fmt.Errorf("team finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, ordersRepo: ordersRepo, teams: teams, tx: tx}, nil
}

func (s *service) PlaceOrder(ctx context.Context, tx *gorm.DB) (*models.Batch, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction required for batch placement")
	}
	repo := s.repo.WithTx(tx)
	ordersRepo := s.ordersRepo.WithTx(tx)

	latest, err := repo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.openBatch(ctx, repo, 1)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest batch")
	}

	pending, err := ordersRepo.CountPendingByBatch(ctx, latest.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	if pending < Capacity {
		return latest, nil
	}

	return s.openBatch(ctx, repo, latest.Number+1)
}

func (s *service) openBatch(ctx context.Context, repo Repository, number int64) (*models.Batch, error) {
	batch, err := repo.Create(ctx, &models.Batch{Number: number})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create batch")
	}
	return batch, nil
}

func (s *service) Finalize(ctx context.Context, tx *gorm.DB, batchID int64) (bool, error) {
	if tx == nil {
		return false, pkgerrors.New(pkgerrors.CodeInternal, "transaction required for batch finalize")
	}
	repo := s.repo.WithTx(tx)
	ordersRepo := s.ordersRepo.WithTx(tx)

	pending, err := ordersRepo.CountPendingByBatch(ctx, batchID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	if pending > 0 {
		return false, nil
	}
	if err := repo.Delete(ctx, batchID); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete batch")
	}
	return true, nil
}

// NextAvailableNumber returns the smallest positive number not currently in
// use. Numbers freed by finalized batches become reusable here, unlike the
// placement path which always counts up from the latest batch.
func (s *service) NextAvailableNumber(ctx context.Context) (int64, error) {
	numbers, err := s.repo.ListNumbers(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch numbers")
	}
	used := make(map[int64]struct{}, len(numbers))
	for _, n := range numbers {
		used[n] = struct{}{}
	}
	var next int64 = 1
	for {
		if _, taken := used[next]; !taken {
			return next, nil
		}
		next++
	}
}

func (s *service) CreateManual(ctx context.Context) (*BatchSummary, error) {
	var created *models.Batch
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		numbers, err := repo.ListNumbers(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batch numbers")
		}
		used := make(map[int64]struct{}, len(numbers))
		for _, n := range numbers {
			used[n] = struct{}{}
		}
		var number int64 = 1
		for {
			if _, taken := used[number]; !taken {
				break
			}
			number++
		}
		created, err = repo.Create(ctx, &models.Batch{Number: number})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create batch")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BatchSummary{ID: created.ID, Number: created.Number, TeamID: created.TeamID}, nil
}

func (s *service) AssignTeam(ctx context.Context, input AssignTeamInput) error {
	if input.BatchNumber <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "batch number required")
	}
	if input.TeamID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}

	if _, err := s.teams.FindByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}

	batch, err := s.repo.FindByNumber(ctx, input.BatchNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "batch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load batch")
	}

	teamID := input.TeamID
	if err := s.repo.SetTeam(ctx, batch.ID, &teamID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign team")
	}
	return nil
}

func (s *service) RevokeTeam(ctx context.Context, batchNumber int64) error {
	if batchNumber <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "batch number required")
	}
	batch, err := s.repo.FindByNumber(ctx, batchNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "batch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load batch")
	}
	if err := s.repo.SetTeam(ctx, batch.ID, nil); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke team")
	}
	return nil
}

func (s *service) FindByNumber(ctx context.Context, number int64) (*BatchSummary, error) {
	if number <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch number required")
	}
	summary, err := s.repo.SummaryByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "batch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load batch")
	}
	return summary, nil
}

func (s *service) ListUnassigned(ctx context.Context) ([]BatchSummary, error) {
	rows, err := s.repo.ListUnassigned(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list unassigned batches")
	}
	return rows, nil
}

func (s *service) ListOpen(ctx context.Context) ([]BatchSummary, error) {
	rows, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list open batches")
	}
	return rows, nil
}

func (s *service) ListByTeam(ctx context.Context, teamID int64) ([]BatchSummary, error) {
	if teamID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	rows, err := s.repo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list team batches")
	}
	return rows, nil
}
