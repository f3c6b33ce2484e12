package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockLedger))
		user := verifiedUser()
		users.On("FindByID", ctx, user.ID).Return(user, nil)

		got, err := svc.GetUser(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("unknown id is an invalid request", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockLedger))
		id := uuid.New()
		users.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetUser(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the hash after verifying the old password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockLedger))
		user := verifiedUser()
		users.On("FindByID", ctx, user.ID).Return(user, nil)
		users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return auth.CheckPassword(u.PasswordHash, "Fresh123!")
		})).Return(nil)

		err := svc.UpdatePassword(ctx, user.ID, "Abcd123!", "Fresh123!")
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("wrong old password is rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockLedger))
		user := verifiedUser()
		users.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.UpdatePassword(ctx, user.ID, "nope", "Fresh123!")
		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("oauth-only account has no local password to change", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewUserService(users, new(MockLedger))
		user := verifiedUser()
		user.PasswordHash = ""
		users.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.UpdatePassword(ctx, user.ID, "", "Fresh123!")
		assert.ErrorIs(t, err, apperrors.ErrPasswordLoginDisabled)
	})
}

func TestUserService_UpdateDisplayName(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	svc := NewUserService(users, new(MockLedger))
	user := verifiedUser()
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.DisplayName == "Alice L."
	})).Return(nil)

	err := svc.UpdateDisplayName(ctx, user.ID, "Alice L.")
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUserService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the account and revokes the session token", func(t *testing.T) {
		users := new(MockUserRepository)
		ledger := new(MockLedger)
		svc := NewUserService(users, ledger)
		id := uuid.New()
		users.On("DeleteWithChats", ctx, id).Return(nil)
		ledger.On("Revoke", ctx, "raw-token").Return(true, nil)

		err := svc.DeleteAccount(ctx, id, "raw-token")
		assert.NoError(t, err)
		users.AssertExpectations(t)
		ledger.AssertExpectations(t)
	})

	t.Run("keeps the token when the delete fails", func(t *testing.T) {
		users := new(MockUserRepository)
		ledger := new(MockLedger)
		svc := NewUserService(users, ledger)
		id := uuid.New()
		users.On("DeleteWithChats", ctx, id).Return(assert.AnError)

		err := svc.DeleteAccount(ctx, id, "raw-token")
		assert.Error(t, err)
		ledger.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})
}
