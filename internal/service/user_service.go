package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shareit/internal/cache"
	"shareit/internal/dto"
	"shareit/internal/errors"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/model"
	"shareit/internal/repository"
)

const defaultUserCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	repo   repository.UserRepository
	cache  *cache.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewUserService builds a UserService with repository and cache. A nil cache
// disables caching.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration, logger *zerolog.Logger) UserService {
	if ttl <= 0 {
		ttl = defaultUserCacheTTL
	}
	return &userService{repo: repo, cache: cache, ttl: ttl, logger: logging.Component(logger, "users")}
}

// UserCacheKey is the cache key of a user's JSON snapshot. Writers outside
// the service use it to invalidate the entry.
func UserCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	user := &model.User{Name: strings.TrimSpace(req.Name), Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, emailConflict(err)
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errors.ErrUserNotFound, id)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" && !strings.EqualFold(email, user.Email) {
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, emailConflict(err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(id))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, UserCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.IncCacheLookup(true)
			return &cached, nil
		}
	}
	metrics.IncCacheLookup(false)

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errors.ErrUserNotFound, id)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, UserCacheKey(id), payload, s.ttl)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, errors.ErrUserNotFound, id)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(id))
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// ensureEmailFree fails when email belongs to a user other than selfID.
func (s *userService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("%w: %s", errors.ErrEmailTaken, email)
	}
	return nil
}

// emailConflict covers the race where two writers pass ensureEmailFree.
func emailConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.ErrEmailTaken
	}
	return err
}
