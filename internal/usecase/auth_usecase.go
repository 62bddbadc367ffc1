package usecase

import (
	"context"
	"errors"
	"time"

	"dailywag-backend/internal/converter"
	"dailywag-backend/internal/delivery/dto"
	"dailywag-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserInactive  = errors.New("user account is inactive")
	ErrLogoutOffline = errors.New("token revocation is not available")
)

// TokenRevoker stores revoked token ids until the token would expire anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthUsecase covers the session side of authentication. Credentials are
// verified by the identity service that issues the tokens.
type AuthUsecase interface {
	Logout(ctx context.Context, tokenID string, remaining time.Duration) error
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	revoker  TokenRevoker
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	revoker TokenRevoker,
) AuthUsecase {
	return &authUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		revoker:  revoker,
	}
}

func (u *authUsecase) Logout(ctx context.Context, tokenID string, remaining time.Duration) error {
	if u.revoker == nil {
		return ErrLogoutOffline
	}

	if err := u.revoker.Revoke(ctx, tokenID, remaining); err != nil {
		u.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return err
	}

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	c, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, u.db, c.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	return converter.UserToResponse(user), nil
}
