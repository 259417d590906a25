package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"bakery-be/internal/logger"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service interface {
	Register(ctx context.Context, input Credentials) (*AuthResult, error)
	Login(ctx context.Context, input Credentials) (*AuthResult, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID int64, email, role string) (string, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, input Credentials) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email := normalizeEmail(input.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, email, hashed, RoleUser)
	if err != nil {
		log.Warn("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed", zap.Int64("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, input Credentials) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return nil, ErrBadCredential
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password not match", zap.Int64("user_id", u.ID))
		return nil, ErrBadCredential
	}

	token, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	return &AuthResult{Token: token, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
