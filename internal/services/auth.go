package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/cache"
	"github.com/storedesk/backoffice-api/internal/errors"
	"github.com/storedesk/backoffice-api/internal/metrics"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, adminID uuid.UUID) (*models.AdminProfile, error)
}

type authService struct {
	admins    repository.AdminRepository
	rateLimit repository.RateLimitRepository
	cache     cache.Cache
	jwtKey    []byte
	expiry    time.Duration
	now       func() time.Time
}

func NewAuthService(admins repository.AdminRepository, rateLimit repository.RateLimitRepository, cache cache.Cache, jwtKey []byte, expiry time.Duration) AuthService {
	return &authService{
		admins:    admins,
		rateLimit: rateLimit,
		cache:     cache,
		jwtKey:    jwtKey,
		expiry:    expiry,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, _, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		metrics.LoginAttempt("rate_limited")
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttempt("failure")
			return nil, errors.UnauthorizedError("Invalid credentials")
		}
		return nil, errors.DatabaseError("Failed to fetch admin").WithError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempt("failure")
		logger.Warn("Admin login failed", slog.String("adminId", admin.ID.String()))
		return nil, errors.UnauthorizedError("Invalid credentials")
	}

	now := s.now()
	claims := &models.Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	metrics.LoginAttempt("success")
	logger.Info("Admin logged in", slog.String("adminId", admin.ID.String()))

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.expiry.Seconds()),
		Admin:       admin.Profile(),
	}, nil
}

// Me returns the profile of the authenticated admin, cached per admin id.
func (s *authService) Me(ctx context.Context, adminID uuid.UUID) (*models.AdminProfile, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.AdminKeyPrefix, adminID.String())

	var profile models.AdminProfile
	found, err := s.cache.Get(ctx, key, &profile)
	if err != nil {
		logger.Warn("Admin cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return &profile, nil
	}

	admin, err := s.admins.GetAdminByID(ctx, adminID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Admin not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch admin").WithError(err)
	}

	profile = admin.Profile()

	if err := s.cache.Set(ctx, key, profile, 0); err != nil {
		logger.Warn("Admin cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return &profile, nil
}
