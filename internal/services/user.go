package service

import (
	"context"
	"log/slog"

	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// LoginRateLimiter gates sign-in attempts per username. Returns whether the
// attempt is allowed, the attempts left, and how long to wait when blocked.
type LoginRateLimiter interface {
	CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error)
}

// UserService proxies the identity service, rate limiting sign-in attempts
// so a remote brute force cannot ride through this gateway.
type UserService struct {
	identity gateway.IdentityClient
	limiter  LoginRateLimiter
}

func NewUserService(identity gateway.IdentityClient, limiter LoginRateLimiter) *UserService {
	return &UserService{identity: identity, limiter: limiter}
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var remaining int

	if s.limiter != nil {
		allowed, left, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, req.Username)

		switch {
		case err != nil:
			// The limiter failing must not lock everyone out.
			slog.Warn("Login rate limiter unavailable", slog.String("error", err.Error()))
		case !allowed:
			appErr := errors.TooManyRequestsError("Too many sign-in attempts. Try again later.")

			return &models.AuthResponse{
				Success:    false,
				Message:    appErr.Message,
				RetryAfter: retryAfter,
			}, appErr
		default:
			remaining = left
		}
	}

	resp, err := s.identity.Login(ctx, req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUnauthorized {
			unauthorized := errors.UnauthorizedError("Incorrect credentials")

			return &models.AuthResponse{
				Success:        false,
				Message:        unauthorized.Message,
				RemainingTries: remaining,
			}, unauthorized
		}

		return nil, err
	}

	return resp, nil
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	resp, err := s.identity.Register(ctx, req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeBadRequest {
			return nil, errors.BadRequestError("The user already exists")
		}

		return nil, err
	}

	return resp, nil
}

func (s *UserService) RecoveryQuestion(ctx context.Context, req *models.RecoveryQuestionRequest) (*models.RecoveryQuestionResponse, error) {
	resp, err := s.identity.RecoveryQuestion(ctx, req.Username)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeNotFound {
			return nil, errors.NotFoundError("User not found")
		}

		return nil, err
	}

	return resp, nil
}

func (s *UserService) RecoveryAnswer(ctx context.Context, req *models.RecoveryAnswerRequest) (*models.AuthResponse, error) {
	resp, err := s.identity.RecoveryAnswer(ctx, req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUnauthorized {
			return nil, errors.UnauthorizedError("Incorrect answer")
		}

		return nil, err
	}

	return resp, nil
}
