package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "mfchat/internal/errors"
)

// respondOK writes the success envelope.
func respondOK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, apperrors.OK(message, data))
}

// respondError maps a domain error onto the failure envelope.
func respondError(c echo.Context, err error) error {
	status, message := apperrors.MapError(err)
	return c.JSON(status, apperrors.Fail(message))
}

// respondBadRequest writes a 400 failure envelope, used for malformed bodies
// and validation failures.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apperrors.Fail(message))
}
