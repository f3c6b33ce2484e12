package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/model"
	"mfchat/internal/repository"
)

// UserService exposes the authenticated user's own account operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	// DeleteAccount removes the user with all owned chat contexts and revokes
	// the presented session token.
	DeleteAccount(ctx context.Context, id uuid.UUID, rawToken string) error
}

type userService struct {
	users  repository.UserRepository
	ledger auth.LedgerInterface
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, ledger auth.LedgerInterface) UserService {
	return &userService{users: users, ledger: ledger}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrInvalidRequest
	}
	return user, nil
}

// UpdatePassword replaces the password after verifying the current one.
// OAuth-only accounts have no local password to verify and are rejected.
func (s *userService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrInvalidRequest
	}
	if user.PasswordHash == "" {
		return apperrors.ErrPasswordLoginDisabled
	}
	if !auth.CheckPassword(user.PasswordHash, oldPassword) {
		return apperrors.ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return apperrors.ErrInvalidRequest
	}
	user.DisplayName = displayName
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID, rawToken string) error {
	if err := s.users.DeleteWithChats(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if _, err := s.ledger.Revoke(ctx, rawToken); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
