package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteWithChats(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Record(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockLedger) IsValid(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Revoke(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivation(to, username, activationLink string) error {
	args := m.Called(to, username, activationLink)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(to, username, resetLink string) error {
	args := m.Called(to, username, resetLink)
	return args.Error(0)
}

type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) ExchangeCode(ctx context.Context, code string) (*auth.GoogleUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.GoogleUser), args.Error(1)
}

type authServiceFixture struct {
	users  *MockUserRepository
	ledger *MockLedger
	mailer *MockMailer
	google *MockGoogleVerifier
	svc    AuthService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		users:  new(MockUserRepository),
		ledger: new(MockLedger),
		mailer: new(MockMailer),
		google: new(MockGoogleVerifier),
	}
	jwtService := auth.NewJWTService("test-secret", "mfchat", "mfchat-web", time.Hour)
	f.svc = NewAuthService(f.users, jwtService, f.ledger, f.mailer, f.google, "https://chat.example.com/")
	return f
}

func verifiedUser() *model.User {
	hash, _ := auth.HashPassword("Abcd123!")
	return &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		IsVerified:   true,
		IsActive:     true,
		Role:         "user",
		Status:       model.StatusOffline,
	}
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unverified user and mails the activation link", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.users.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("FindByEmail", ctx, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" &&
				!u.IsVerified && u.IsActive &&
				u.ActivationToken != "" &&
				auth.CheckPassword(u.PasswordHash, "Abcd123!")
		})).Return(nil)
		f.mailer.On("SendActivation", "alice@example.com", "alice", mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, "https://chat.example.com/activate?userId=")
		})).Return(nil)

		err := f.svc.SignUp(ctx, "alice", "alice@example.com", "Abcd123!")
		assert.NoError(t, err)
		f.users.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.users.On("FindByUsername", ctx, "alice").Return(verifiedUser(), nil)

		err := f.svc.SignUp(ctx, "alice", "new@example.com", "Abcd123!")
		assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.users.On("FindByUsername", ctx, "newbie").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("FindByEmail", ctx, "alice@example.com").Return(verifiedUser(), nil)

		err := f.svc.SignUp(ctx, "newbie", "alice@example.com", "Abcd123!")
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})

	t.Run("fails when the activation mail cannot be sent", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.users.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("FindByEmail", ctx, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("Create", ctx, mock.Anything).Return(nil)
		f.mailer.On("SendActivation", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		err := f.svc.SignUp(ctx, "alice", "alice@example.com", "Abcd123!")
		assert.Error(t, err)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a recorded token and marks the user online", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.ledger.On("Record", ctx, mock.AnythingOfType("string")).Return(nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Status == model.StatusOnline && u.LastLoginAt != nil
		})).Return(nil)

		token, err := f.svc.SignIn(ctx, user.Email, "Abcd123!")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		f.ledger.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, unknownErr := f.svc.SignIn(ctx, "ghost@example.com", "Abcd123!")
		_, wrongErr := f.svc.SignIn(ctx, user.Email, "wrong-password")
		assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	})

	t.Run("password-less oauth account cannot sign in locally", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.PasswordHash = ""
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := f.svc.SignIn(ctx, user.Email, "Abcd123!")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unactivated account is rejected after the password check", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.IsVerified = false
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := f.svc.SignIn(ctx, user.Email, "Abcd123!")
		assert.ErrorIs(t, err, apperrors.ErrAccountNotActivated)
	})

	t.Run("locked account is rejected", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.IsActive = false
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, err := f.svc.SignIn(ctx, user.Email, "Abcd123!")
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	})

	t.Run("fails when the ledger cannot record the token", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.ledger.On("Record", ctx, mock.AnythingOfType("string")).Return(assert.AnError)

		_, err := f.svc.SignIn(ctx, user.Email, "Abcd123!")
		assert.Error(t, err)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthService_GoogleAuth(t *testing.T) {
	ctx := context.Background()
	identity := &auth.GoogleUser{
		Email:   "dana@example.com",
		Name:    "Dana",
		Picture: "https://example.com/dana.png",
	}

	t.Run("provisions a verified password-less user on first login", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.google.On("ExchangeCode", ctx, "good-code").Return(identity, nil)
		f.users.On("FindByEmail", ctx, identity.Email).Return(nil, gorm.ErrRecordNotFound)
		f.users.On("FindByUsername", ctx, "dana").Return(nil, gorm.ErrRecordNotFound)
		f.users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "dana" && u.PasswordHash == "" &&
				u.IsVerified && u.IsActive &&
				u.DisplayName == "Dana" && u.AvatarURL == identity.Picture
		})).Return(nil)
		f.ledger.On("Record", ctx, mock.AnythingOfType("string")).Return(nil)
		f.users.On("Update", ctx, mock.Anything).Return(nil)

		token, err := f.svc.GoogleAuth(ctx, "good-code")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		f.users.AssertExpectations(t)
	})

	t.Run("signs in an existing account without creating a duplicate", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.Email = identity.Email
		f.google.On("ExchangeCode", ctx, "good-code").Return(identity, nil)
		f.users.On("FindByEmail", ctx, identity.Email).Return(user, nil)
		f.ledger.On("Record", ctx, mock.AnythingOfType("string")).Return(nil)
		f.users.On("Update", ctx, mock.Anything).Return(nil)

		_, err := f.svc.GoogleAuth(ctx, "good-code")
		assert.NoError(t, err)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("a failed code exchange is an invalid request", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.google.On("ExchangeCode", ctx, "bad-code").Return(nil, assert.AnError)

		_, err := f.svc.GoogleAuth(ctx, "bad-code")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})

	t.Run("locked account stays locked for oauth sign-in", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.Email = identity.Email
		user.IsActive = false
		f.google.On("ExchangeCode", ctx, "good-code").Return(identity, nil)
		f.users.On("FindByEmail", ctx, identity.Email).Return(user, nil)

		_, err := f.svc.GoogleAuth(ctx, "good-code")
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
	})
}

func TestAuthService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the user verified and rotates the token", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.IsVerified = false
		user.ActivationToken = uuid.NewString()
		presented := user.ActivationToken
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.IsVerified && u.ActivationToken != presented && u.ActivationToken != ""
		})).Return(nil)

		err := f.svc.Activate(ctx, user.ID, presented)
		assert.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("the same link cannot be replayed after rotation", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.ActivationToken = uuid.NewString()
		stale := "does-not-match-anymore"
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.svc.Activate(ctx, user.ID, stale)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown user id is an invalid request", func(t *testing.T) {
		f := newAuthServiceFixture()
		id := uuid.New()
		f.users.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := f.svc.Activate(ctx, id, uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a fresh token and mails the reset link", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.ResetToken = "previous-token"
		f.users.On("FindByEmail", ctx, user.Email).Return(user, nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.ResetToken != "" && u.ResetToken != "previous-token"
		})).Return(nil)
		f.mailer.On("SendPasswordReset", user.Email, user.Username, mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, "https://chat.example.com/change-password?userId=")
		})).Return(nil)

		err := f.svc.ForgotPassword(ctx, user.Email)
		assert.NoError(t, err)
		f.mailer.AssertExpectations(t)
	})

	t.Run("unknown email is an invalid request", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		err := f.svc.ForgotPassword(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		f.mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the hash and rotates the token", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.ResetToken = uuid.NewString()
		presented := user.ResetToken
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return auth.CheckPassword(u.PasswordHash, "Fresh123!") &&
				u.ResetToken != presented && u.ResetToken != ""
		})).Return(nil)

		err := f.svc.ResetPassword(ctx, user.ID, presented, "Fresh123!")
		assert.NoError(t, err)
		f.users.AssertExpectations(t)
	})

	t.Run("wrong token leaves the password untouched", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.ResetToken = uuid.NewString()
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.svc.ResetPassword(ctx, user.ID, "wrong-token", "Fresh123!")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
		f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("empty stored token never matches", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.ResetToken = ""
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)

		err := f.svc.ResetPassword(ctx, user.ID, "", "Fresh123!")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token and marks the user offline", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := verifiedUser()
		user.Status = model.StatusOnline
		f.ledger.On("Revoke", ctx, "raw-token").Return(true, nil)
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)
		f.users.On("Update", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Status == model.StatusOffline
		})).Return(nil)

		err := f.svc.Logout(ctx, "raw-token", user.ID)
		assert.NoError(t, err)
		f.ledger.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})

	t.Run("tolerates a concurrently deleted account", func(t *testing.T) {
		f := newAuthServiceFixture()
		id := uuid.New()
		f.ledger.On("Revoke", ctx, "raw-token").Return(true, nil)
		f.users.On("FindByID", ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := f.svc.Logout(ctx, "raw-token", id)
		assert.NoError(t, err)
	})
}
