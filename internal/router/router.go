package router

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mfchat/docs"
	"mfchat/internal/auth"
	"mfchat/internal/config"
	"mfchat/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	ledger auth.LedgerInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/sign-up", authHandler.SignUp)
	e.POST("/sign-in", authHandler.SignIn)
	e.POST("/google-auth", authHandler.GoogleAuth)
	e.POST("/activate", authHandler.Activate)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/change-password", authHandler.ChangePassword)

	// Routes requiring a valid, non-revoked bearer token
	session := auth.SessionMiddleware(jwtService, ledger)
	e.POST("/logout", authHandler.Logout, session)

	user := e.Group("/api/user", session)
	user.GET("/get-user-info", userHandler.GetUserInfo)
	user.POST("/update-user-password", userHandler.UpdatePassword)
	user.POST("/update-user-display-name", userHandler.UpdateDisplayName)
	user.GET("/delete-account", userHandler.DeleteAccount)

	user.GET("/get-chat-contexts", chatHandler.GetChatContexts)
	user.POST("/change-title-chat", chatHandler.ChangeTitleChat)
	user.POST("/delete-one-chat-context", chatHandler.DeleteOneChatContext)
	user.POST("/delete-user-chats", chatHandler.DeleteUserChats)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the domain rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("strongpw", strongPassword)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// strongPassword requires at least 8 characters with one upper, one lower,
// one digit and one special character.
func strongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
