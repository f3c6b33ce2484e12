package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/service"
)

// AuthHandler handles the public authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest represents a registration request.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=5,alpha"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpw"`
}

// SignInRequest represents a local sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest carries the OAuth authorization code.
type GoogleAuthRequest struct {
	Code string `json:"code" validate:"required"`
}

// ActivateRequest carries the activation token, accepted from query or body.
type ActivateRequest struct {
	UserID string `json:"userId" query:"userId"`
	Token  string `json:"token" query:"token"`
}

// ForgotPasswordRequest requests a password-reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest consumes a reset token to set a new password.
type ChangePasswordRequest struct {
	UserID      string `json:"userId" validate:"required,uuid"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpw"`
}

// TokenData is the success payload of the sign-in endpoints.
type TokenData struct {
	Token string `json:"token"`
}

// SignUp godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration data"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.authService.SignUp(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "account created, check your email to activate it", nil)
}

// SignIn godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} errors.Response{data=TokenData}
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	token, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "signed in", TokenData{Token: token})
}

// GoogleAuth godoc
// @Summary Sign in with a Google authorization code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Authorization code"
// @Success 200 {object} errors.Response{data=TokenData}
// @Failure 400 {object} errors.Response
// @Router /google-auth [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req GoogleAuthRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	token, err := h.authService.GoogleAuth(c.Request().Context(), req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "signed in", TokenData{Token: token})
}

// Activate godoc
// @Summary Activate an account with the emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param userId query string false "User id"
// @Param token query string false "Activation token"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /activate [post]
func (h *AuthHandler) Activate(c echo.Context) error {
	req := ActivateRequest{
		UserID: c.QueryParam("userId"),
		Token:  c.QueryParam("token"),
	}
	if req.UserID == "" || req.Token == "" {
		if err := c.Bind(&req); err != nil {
			return respondBadRequest(c, "invalid request body")
		}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil || req.Token == "" {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.authService.Activate(c.Request().Context(), userID, req.Token); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "account activated", nil)
}

// ForgotPassword godoc
// @Summary Request a password-reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "password reset email sent", nil)
}

// ChangePassword godoc
// @Summary Reset the password with the emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Reset data"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.authService.ResetPassword(c.Request().Context(), userID, req.Token, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "password has been reset", nil)
}

// Logout godoc
// @Summary Sign out and revoke the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.authService.Logout(c.Request().Context(), auth.RawTokenFromContext(c), userID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "signed out", nil)
}
