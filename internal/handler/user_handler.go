package handler

import (
	"github.com/labstack/echo/v4"

	"mfchat/internal/auth"
	apperrors "mfchat/internal/errors"
	"mfchat/internal/service"
)

// UserHandler handles the authenticated account endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserInfoData is the payload of the get-user-info endpoint.
type UserInfoData struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// UpdatePasswordRequest replaces the local password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpw"`
}

// UpdateDisplayNameRequest sets the profile display name.
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

// GetUserInfo godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response{data=UserInfoData}
// @Failure 401 {object} errors.Response
// @Router /api/user/get-user-info [get]
func (h *UserHandler) GetUserInfo(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "user info fetched", UserInfoData{
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	})
}

// UpdatePassword godoc
// @Summary Change the password of the authenticated user
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePasswordRequest true "Passwords"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/update-user-password [post]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "password updated", nil)
}

// UpdateDisplayName godoc
// @Summary Change the display name of the authenticated user
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateDisplayNameRequest true "Display name"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/update-user-display-name [post]
func (h *UserHandler) UpdateDisplayName(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	var req UpdateDisplayNameRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	if err := h.userService.UpdateDisplayName(c.Request().Context(), userID, req.DisplayName); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "display name updated", nil)
}

// DeleteAccount godoc
// @Summary Delete the authenticated user's account and chat contexts
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /api/user/delete-account [get]
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return respondError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), userID, auth.RawTokenFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "account deleted", nil)
}
