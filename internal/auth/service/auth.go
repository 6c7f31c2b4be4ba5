package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sawant8123/storefront-service/internal/auth"
	"github.com/sawant8123/storefront-service/internal/configs"
	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/sawant8123/storefront-service/pkg/jwt"
	"github.com/sawant8123/storefront-service/pkg/password"
	"golang.org/x/sync/singleflight"
)

const (
	ProfileCachePrefix = "profile:"
	profileCacheTTL    = 10 * time.Minute
)

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
}

type AuthService struct {
	users   repository.UserRepository
	cfg     *configs.Config
	cache   CacheService
	sfGroup singleflight.Group // Collapses concurrent profile cache misses
}

// NewAuthService builds the service. cache may be nil, in which case profile
// lookups always hit the store.
func NewAuthService(users repository.UserRepository, cfg *configs.Config, cache CacheService) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
		cache: cache,
	}
}

func (s *AuthService) Signup(ctx context.Context, input model.SignupInput) (string, error) {
	if input.Email == "" || input.Phone == "" || input.Password == "" {
		return "", customErrors.FieldsRequired
	}

	_, err := s.users.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	switch {
	case err == nil:
		return "", customErrors.UserExists
	case !errors.Is(err, repository.ErrNotFound):
		return "", err
	}

	hashedPassword, err := password.HashPassword(input.Password)
	if err != nil {
		return "", customErrors.InternalServerError("failed to hash password: %v", err)
	}

	user := &model.User{
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordDigest: hashedPassword,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.issueToken(user)
}

// Login accepts either the password or, failing that, the id of one of the
// user's orders. The password is always tried first.
func (s *AuthService) Login(ctx context.Context, input model.LoginInput) (string, error) {
	if input.Identifier == "" {
		return "", customErrors.IdentifierRequired
	}

	user, err := s.users.FindByEmailOrPhone(ctx, input.Identifier, input.Identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return "", customErrors.UserNotFound
	}
	if err != nil {
		return "", err
	}

	if input.Password != "" && password.CheckPasswordHash(input.Password, user.PasswordDigest) == nil {
		return s.issueToken(user)
	}

	if input.OrderID != "" && user.HasOrder(input.OrderID) {
		return s.issueToken(user)
	}

	log.Printf("Failed login for %s from %s", user.ID.Hex(), auth.GetIPFromContext(ctx))
	return "", customErrors.InvalidCredentials
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.PublicUser, error) {
	cacheKey := ProfileCachePrefix + userID

	if s.cache != nil {
		var cached model.PublicUser
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	// The shared lookup outlives any single caller's cancellation.
	lookupCtx := context.WithoutCancel(ctx)
	result, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		user, err := s.users.GetByID(lookupCtx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, customErrors.UserNotFound
		}
		if err != nil {
			return nil, err
		}

		profile := &model.PublicUser{Email: user.Email, Phone: user.Phone}
		if s.cache != nil {
			if err := s.cache.Set(lookupCtx, cacheKey, profile, profileCacheTTL); err != nil {
				log.Printf("Failed to cache profile %s: %v", userID, err)
			}
		}
		return profile, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*model.PublicUser), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	token, err := jwt.GenerateToken(user.ID.Hex(), s.cfg.JWT.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
