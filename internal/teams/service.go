package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mvillalba/verduleria-backend/pkg/db/models"
	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"gorm.io/gorm"
)

// workerDirectory resolves staff display names. Implementations fall back to
// a placeholder for ids missing from the directory.
type workerDirectory interface {
	WorkerName(ctx context.Context, telegramID string) string
}

// Service owns the delivery team registry.
type Service interface {
	Create(ctx context.Context, input CreateTeamInput) (*TeamView, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*TeamView, error)
	TeamForWorker(ctx context.Context, telegramID string) (*TeamView, error)
	List(ctx context.Context) ([]TeamWorkload, error)
}

type service struct {
	repo      Repository
	directory workerDirectory
}

// NewService builds the team registry service.
func NewService(repo Repository, directory workerDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("teams repository required")
	}
	if directory == nil {
		return nil, fmt.Errorf("worker directory required")
	}
	return &service{repo: repo, directory: directory}, nil
}

func (s *service) Create(ctx context.Context, input CreateTeamInput) (*TeamView, error) {
	worker1 := strings.TrimSpace(input.Worker1)
	worker2 := strings.TrimSpace(input.Worker2)
	if worker1 == "" || worker2 == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "two worker ids required")
	}
	if worker1 == worker2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team members must be different workers")
	}

	team, err := s.repo.Create(ctx, &models.Team{Worker1: worker1, Worker2: worker2})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create team")
	}
	return s.toView(ctx, team), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete team")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*TeamView, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team id required")
	}
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "team not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}
	return s.toView(ctx, team), nil
}

func (s *service) TeamForWorker(ctx context.Context, telegramID string) (*TeamView, error) {
	telegramID = strings.TrimSpace(telegramID)
	if telegramID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker id required")
	}
	team, err := s.repo.FindByWorker(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker has no team")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find team for worker")
	}
	return s.toView(ctx, team), nil
}

func (s *service) List(ctx context.Context) ([]TeamWorkload, error) {
	rows, err := s.repo.ListWithWorkload(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list teams")
	}
	for i := range rows {
		rows[i].Worker1Name = s.directory.WorkerName(ctx, rows[i].Worker1)
		rows[i].Worker2Name = s.directory.WorkerName(ctx, rows[i].Worker2)
	}
	return rows, nil
}

func (s *service) toView(ctx context.Context, team *models.Team) *TeamView {
	return &TeamView{
		ID:          team.ID,
		Worker1:     team.Worker1,
		Worker2:     team.Worker2,
		Worker1Name: s.directory.WorkerName(ctx, team.Worker1),
		Worker2Name: s.directory.WorkerName(ctx, team.Worker2),
	}
}
