package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prowtech/complet-users/internal/domain/entity"
	repo "github.com/prowtech/complet-users/internal/domain/repository"
	"github.com/prowtech/complet-users/pkg/mailer"
	"github.com/prowtech/complet-users/pkg/monitoring"
)

const (
	usersCacheKey = "users:all"
	usersCacheTTL = time.Minute
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// Cache is the key-value gateway used for the users:all snapshot.
// It is advisory: any cache failure is treated as a miss, never as an
// operation failure.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Notifier enqueues outbound email jobs. Delivery is best-effort.
type Notifier interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service is the single authority for user reads and mutations. It owns the
// uniqueness pre-check, the cache-aside strategy on List, cache invalidation
// on every write, and the welcome notification on Create.
//
// The pre-check on Create is only there for a friendly conflict error; the
// UNIQUE constraint on users.email is what actually prevents duplicates when
// two creates race.
type Service struct {
	Repo     repo.UserRepository
	Cache    Cache
	Notifier Notifier
	Logger   *logrus.Logger
	Reporter monitoring.Reporter
}

func NewService(r repo.UserRepository, cache Cache, notifier Notifier, logger *logrus.Logger, reporter monitoring.Reporter) *Service {
	return &Service{Repo: r, Cache: cache, Notifier: notifier, Logger: logger, Reporter: reporter}
}

// List returns all users, serving the cached snapshot when one exists and
// repopulating it with a 60s expiry otherwise.
func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	if s.Cache != nil {
		var cached []entity.User
		hit, err := s.Cache.GetJSON(ctx, usersCacheKey, &cached)
		if err != nil {
			// unreachable cache is a miss, not a failure
			if s.Logger != nil {
				s.Logger.WithError(err).Warn("users cache read failed")
			}
		} else if hit {
			return cached, nil
		}
	}

	users, err := s.Repo.FindAll()
	if err != nil {
		err = fmt.Errorf("list users: %w", err)
		s.report(ctx, "list", err, nil)
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, usersCacheKey, users, usersCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("users cache write failed")
		}
	}
	return users, nil
}

type CreateUserInput struct {
	Email    string
	Age      int
	Password string
}

// Create inserts a new user and fires the welcome email. Input is assumed to
// be already validated at the HTTP boundary.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	existing, err := s.Repo.FindByEmail(in.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		err = fmt.Errorf("create user: %w", err)
		s.report(ctx, "create", err, map[string]any{"email": in.Email})
		return nil, err
	}
	if existing != nil {
		s.report(ctx, "create", ErrEmailTaken, map[string]any{"email": in.Email})
		return nil, ErrEmailTaken
	}

	s.invalidate(ctx)

	u := &entity.User{Email: in.Email, Age: in.Age, Password: in.Password}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			// lost the race; the unique constraint caught it
			s.report(ctx, "create", ErrEmailTaken, map[string]any{"email": in.Email})
			return nil, ErrEmailTaken
		}
		err = fmt.Errorf("create user: %w", err)
		s.report(ctx, "create", err, map[string]any{"email": in.Email})
		return nil, err
	}

	// Re-read so the response carries store-assigned fields.
	created, err := s.Repo.FindByEmail(in.Email)
	if err != nil {
		err = fmt.Errorf("create user: %w", err)
		s.report(ctx, "create", err, map[string]any{"email": in.Email})
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("email", created.Email).Info("user created")
	}
	s.sendWelcome(ctx, created.Email)
	return created, nil
}

// Update changes a user's age. Email is never mutable through this path.
func (s *Service) Update(ctx context.Context, email string, age int) (*entity.User, error) {
	if _, err := s.Repo.FindByEmail(email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.report(ctx, "update", ErrUserNotFound, map[string]any{"email": email})
			return nil, ErrUserNotFound
		}
		err = fmt.Errorf("update user: %w", err)
		s.report(ctx, "update", err, map[string]any{"email": email})
		return nil, err
	}

	s.invalidate(ctx)

	u, err := s.Repo.UpdateAge(email, age)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// row vanished between check and write
			s.report(ctx, "update", ErrUserNotFound, map[string]any{"email": email})
			return nil, ErrUserNotFound
		}
		err = fmt.Errorf("update user: %w", err)
		s.report(ctx, "update", err, map[string]any{"email": email})
		return nil, err
	}
	return u, nil
}

// Delete removes a user physically and returns its last known state.
func (s *Service) Delete(ctx context.Context, email string) (*entity.User, error) {
	if _, err := s.Repo.FindByEmail(email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.report(ctx, "delete", ErrUserNotFound, map[string]any{"email": email})
			return nil, ErrUserNotFound
		}
		err = fmt.Errorf("delete user: %w", err)
		s.report(ctx, "delete", err, map[string]any{"email": email})
		return nil, err
	}

	s.invalidate(ctx)

	u, err := s.Repo.Delete(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.report(ctx, "delete", ErrUserNotFound, map[string]any{"email": email})
			return nil, ErrUserNotFound
		}
		err = fmt.Errorf("delete user: %w", err)
		s.report(ctx, "delete", err, map[string]any{"email": email})
		return nil, err
	}
	return u, nil
}

// invalidate drops the users:all snapshot before a write reaches the store.
// A concurrent List may repopulate it from a pre-write read; the 60s expiry
// bounds that staleness.
func (s *Service) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, usersCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("users cache invalidation failed")
	}
}

// sendWelcome enqueues the account-created email without tying the request to
// its completion. Failures are logged and reported, never returned.
func (s *Service) sendWelcome(ctx context.Context, to string) {
	if s.Notifier == nil {
		return
	}
	job := mailer.WelcomeJob(to)
	detached := context.WithoutCancel(ctx)
	go func() {
		c, cancel := context.WithTimeout(detached, 10*time.Second)
		defer cancel()
		if err := s.Notifier.PublishJSON(c, job); err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("to", to).Error("welcome email enqueue failed")
			}
			if s.Reporter != nil {
				s.Reporter.ReportError(c, "notify", err.Error(), map[string]any{"to": to})
			}
		}
	}()
}

func (s *Service) report(ctx context.Context, op string, err error, fields map[string]any) {
	if s.Logger != nil {
		entry := s.Logger.WithError(err).WithField("operation", op)
		for k, v := range fields {
			entry = entry.WithField(k, v)
		}
		entry.Error("user operation failed")
	}
	if s.Reporter != nil {
		s.Reporter.ReportError(ctx, op, err.Error(), fields)
	}
}
