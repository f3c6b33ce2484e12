package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/mail"
	"mfchat/internal/model"
	"mfchat/internal/repository"
)

// AuthService handles registration, sign-in and the activation/reset flows.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) error
	SignIn(ctx context.Context, email, password string) (token string, err error)
	GoogleAuth(ctx context.Context, code string) (token string, err error)
	Activate(ctx context.Context, userID uuid.UUID, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) error
	Logout(ctx context.Context, rawToken string, userID uuid.UUID) error
}

type authService struct {
	users       repository.UserRepository
	jwtService  *auth.JWTService
	ledger      auth.LedgerInterface
	mailer      mail.Mailer
	google      auth.GoogleVerifier
	frontendURL string
}

// NewAuthService creates the authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	ledger auth.LedgerInterface,
	mailer mail.Mailer,
	google auth.GoogleVerifier,
	frontendURL string,
) AuthService {
	return &authService{
		users:       users,
		jwtService:  jwtService,
		ledger:      ledger,
		mailer:      mailer,
		google:      google,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// SignUp creates an unverified user and emails the activation link. A failed
// email delivery fails the whole request; no partial retry.
func (s *authService) SignUp(ctx context.Context, username, email, password string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return apperrors.ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return apperrors.ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		IsVerified:      false,
		IsActive:        true,
		ActivationToken: uuid.NewString(),
		Role:            "user",
		Status:          model.StatusOffline,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	link := fmt.Sprintf("%s/activate?userId=%s&token=%s", s.frontendURL, user.ID, user.ActivationToken)
	if err := s.mailer.SendActivation(user.Email, user.Username, link); err != nil {
		return fmt.Errorf("send activation mail: %w", err)
	}
	return nil
}

// SignIn verifies credentials and returns a bearer token recorded in the
// ledger. Unknown email, wrong password and password-less OAuth accounts all
// fail with the same error.
func (s *authService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", apperrors.ErrAccountNotActivated
	}
	if !user.IsActive {
		return "", apperrors.ErrAccountLocked
	}
	return s.openSession(ctx, user)
}

// GoogleAuth exchanges the authorization code, provisioning a verified
// password-less account on first login.
func (s *authService) GoogleAuth(ctx context.Context, code string) (string, error) {
	identity, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		return "", apperrors.ErrInvalidRequest
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	if err == gorm.ErrRecordNotFound {
		user = &model.User{
			Username:     s.pickUsername(ctx, identity.Email),
			Email:        identity.Email,
			PasswordHash: "", // local password login disabled
			DisplayName:  identity.Name,
			AvatarURL:    identity.Picture,
			IsVerified:   true,
			IsActive:     true,
			Role:         "user",
			Status:       model.StatusOffline,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", fmt.Errorf("create oauth user: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		return "", apperrors.ErrAccountLocked
	}
	// Google has proved control of the address, so a pending local
	// activation is considered done.
	user.IsVerified = true
	return s.openSession(ctx, user)
}

// openSession mints a token, records it as valid and marks the user online.
func (s *authService) openSession(ctx context.Context, user *model.User) (string, error) {
	token, err := s.jwtService.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if err := s.ledger.Record(ctx, token); err != nil {
		return "", fmt.Errorf("record token: %w", err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.Status = model.StatusOnline
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("update sign-in status: %w", err)
	}
	return token, nil
}

// Activate consumes the single-use activation token. The token is rotated on
// success so a stale link cannot be replayed.
func (s *authService) Activate(ctx context.Context, userID uuid.UUID, token string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrInvalidRequest
	}
	if user.ActivationToken == "" || user.ActivationToken != token {
		return apperrors.ErrInvalidRequest
	}

	user.IsVerified = true
	user.ActivationToken = uuid.NewString()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

// ForgotPassword issues a fresh reset token, overwriting any pending one, and
// emails the reset link.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.ErrInvalidRequest
	}

	user.ResetToken = uuid.NewString()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	link := fmt.Sprintf("%s/change-password?userId=%s&token=%s", s.frontendURL, user.ID, user.ResetToken)
	if err := s.mailer.SendPasswordReset(user.Email, user.Username, link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes the reset token and replaces the password hash,
// rotating the token on success.
func (s *authService) ResetPassword(ctx context.Context, userID uuid.UUID, token, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrInvalidRequest
	}
	if user.ResetToken == "" || user.ResetToken != token {
		return apperrors.ErrInvalidRequest
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.ResetToken = uuid.NewString()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// Logout revokes the presented token and marks the user offline. Revoking an
// already-deleted token is a no-op.
func (s *authService) Logout(ctx context.Context, rawToken string, userID uuid.UUID) error {
	if _, err := s.ledger.Revoke(ctx, rawToken); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// token was valid moments ago; the account may have been deleted
		// concurrently, nothing left to update
		return nil
	}
	user.Status = model.StatusOffline
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update sign-out status: %w", err)
	}
	return nil
}

// pickUsername derives a unique username from the email local part, falling
// back to a random suffix on collision.
func (s *authService) pickUsername(ctx context.Context, email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	candidate := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, local)
	if candidate == "" {
		candidate = "user"
	}
	if _, err := s.users.FindByUsername(ctx, candidate); err == gorm.ErrRecordNotFound {
		return candidate
	}
	return candidate + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
