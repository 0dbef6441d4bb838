package commands

import (
	"context"
	"log/slog"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/jwt"
	"facility-booking/internal/pkg/password"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	userRepo   UserRepository
	jwtService *jwt.Service
	db         *pgxpool.Pool
}

func NewAuthCommands(readStore queries.UserReadStore, userRepo UserRepository, jwtService *jwt.Service, db *pgxpool.Pool) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		userRepo:   userRepo,
		jwtService: jwtService,
		db:         db,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	record, err := a.readStore.FindByEmail(ctx, email.Value())
	if err != nil {
		return nil, errs.Mark(err, ErrUserNotFound)
	}
	if !record.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(record.PasswordHash, in.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(record.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(record.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	// Best-effort: a failed last_login update never fails the login.
	if err := a.userRepo.UpdateLastLogin(ctx, a.db, record.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", record.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:      record.ID,
		Role:        role,
		AccessToken: token,
	}, nil
}
