package commands

import (
	"context"
	"time"

	"smart-parking/internal/domain/user"
	"smart-parking/internal/infra"
	"smart-parking/internal/pkg/clock"
	"smart-parking/internal/pkg/errs"
	"smart-parking/internal/pkg/jwt"
	"smart-parking/internal/pkg/password"
	"smart-parking/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type AuthCommands interface {
	Login(ctx context.Context, email user.Email, pass user.Password) (*TokenPair, *queries.AuthorizedUserView, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authUseCaseImpl struct {
	users      UserReadStore
	userRepo   UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(users UserReadStore, userRepo UserRepository, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authUseCaseImpl{
		users:      users,
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email user.Email, pass user.Password) (*TokenPair, *queries.AuthorizedUserView, error) {
	entity, err := a.users.FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, errs.Mark(err, ErrInvalidCredentials)
	}
	if !entity.IsActive() {
		return nil, nil, ErrUserInactive
	}
	if err := password.ComparePassword(entity.PasswordHash(), pass.Value()); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(entity.ID(), entity.Role())
	if err != nil {
		return nil, nil, err
	}

	now := a.clock.Now()
	if err := a.userRepo.UpdateLastLogin(ctx, entity.ID(), now); err != nil {
		return nil, nil, errs.Wrap(err, "failed to record login")
	}

	view := &queries.AuthorizedUserView{
		ID:        entity.ID(),
		Email:     entity.Email().Value(),
		Role:      entity.Role().String(),
		IsActive:  entity.IsActive(),
		LastLogin: &now,
	}
	return pair, view, nil
}

func (a *authUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	view, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrTokenValidation
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, ErrTokenValidation
	}
	return a.issueTokens(view.ID, role)
}

func (a *authUseCaseImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	refresh, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
