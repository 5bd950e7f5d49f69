package customers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/mvillalba/verduleria-backend/pkg/errors"
	"github.com/mvillalba/verduleria-backend/pkg/logger"
	"gorm.io/gorm"
)

// UnknownName is rendered wherever a directory entry is missing.
const UnknownName = "unknown"

const (
	customerCacheKind = "customer"
	workerCacheKind   = "worker"
	cacheTTL          = 10 * time.Minute
)

// CustomerProfile is the directory view of a storefront customer.
type CustomerProfile struct {
	TelegramID string `json:"telegramId"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// directoryCache is the subset of the redis client used by the directory.
type directoryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DirectoryKey(kind, telegramID string) string
}

// Service resolves customer and worker identities for manifests, rosters and
// staff checks.
type Service interface {
	CustomerProfile(ctx context.Context, telegramID string) CustomerProfile
	WorkerName(ctx context.Context, telegramID string) string
	IsWorker(ctx context.Context, telegramID string) (bool, error)
}

type service struct {
	repo  Repository
	cache directoryCache
	logg  *logger.Logger
}

// NewService builds the directory service. The cache is optional.
func NewService(repo Repository, cache directoryCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

// CustomerProfile never fails: lookups that miss the directory fall back to
// the placeholder profile so manifests and notifications still render.
func (s *service) CustomerProfile(ctx context.Context, telegramID string) CustomerProfile {
	telegramID = strings.TrimSpace(telegramID)
	fallback := CustomerProfile{TelegramID: telegramID, Name: UnknownName, Address: UnknownName}
	if telegramID == "" {
		return fallback
	}

	if cached, ok := s.cachedProfile(ctx, telegramID); ok {
		return cached
	}

	user, err := s.repo.FindUserByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && s.logg != nil {
			s.logg.Warn(s.logg.WithCustomerID(ctx, telegramID), "customer directory lookup failed")
		}
		return fallback
	}

	profile := CustomerProfile{TelegramID: telegramID, Name: user.Name, Address: user.Address}
	if profile.Address == "" {
		profile.Address = UnknownName
	}
	s.storeProfile(ctx, telegramID, profile)
	return profile
}

func (s *service) WorkerName(ctx context.Context, telegramID string) string {
	telegramID = strings.TrimSpace(telegramID)
	if telegramID == "" {
		return UnknownName
	}

	if s.cache != nil {
		key := s.cache.DirectoryKey(workerCacheKind, telegramID)
		if name, err := s.cache.Get(ctx, key); err == nil && name != "" {
			return name
		}
	}

	worker, err := s.repo.FindWorkerByTelegramID(ctx, telegramID)
	if err != nil {
		return UnknownName
	}
	if s.cache != nil {
		key := s.cache.DirectoryKey(workerCacheKind, telegramID)
		_ = s.cache.Set(ctx, key, worker.Name, cacheTTL)
	}
	return worker.Name
}

func (s *service) IsWorker(ctx context.Context, telegramID string) (bool, error) {
	telegramID = strings.TrimSpace(telegramID)
	if telegramID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "worker id required")
	}
	_, err := s.repo.FindWorkerByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "worker lookup")
	}
	return true, nil
}

func (s *service) cachedProfile(ctx context.Context, telegramID string) (CustomerProfile, bool) {
	if s.cache == nil {
		return CustomerProfile{}, false
	}
	key := s.cache.DirectoryKey(customerCacheKind, telegramID)
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return CustomerProfile{}, false
	}
	var profile CustomerProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return CustomerProfile{}, false
	}
	return profile, true
}

func (s *service) storeProfile(ctx context.Context, telegramID string, profile CustomerProfile) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	key := s.cache.DirectoryKey(customerCacheKind, telegramID)
	_ = s.cache.Set(ctx, key, string(raw), cacheTTL)
}
