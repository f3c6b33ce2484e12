package main

import (
	"net/http"
	"os"
	"time"

	_ "mfchat/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mfchat/internal/auth"
	"mfchat/internal/cache"
	"mfchat/internal/config"
	"mfchat/internal/db"
	"mfchat/internal/handler"
	"mfchat/internal/logger"
	"mfchat/internal/mail"
	"mfchat/internal/model"
	"mfchat/internal/repository"
	"mfchat/internal/router"
	"mfchat/internal/service"
)

// @title MFChat API
// @version 1.0
// @description Chat application backend: accounts, sessions and chat-context management.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	if err := logger.Init(getEnvOr("SERVER_ENV", "development")); err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.L.Fatal("invalid configuration", zap.Error(err))
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.L.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.IssuedToken{},
		&model.ChatContext{},
	); err != nil {
		logger.L.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)
	chatRepo := repository.NewChatContextRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTIssuer,
		cfg.JWTAudience,
		time.Duration(cfg.JWTTTLMinutes)*time.Minute,
	)
	ledger := auth.NewLedger(tokenRepo, cacheClient)
	googleClient := auth.NewGoogleClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	mailer := mail.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, ledger, mailer, googleClient, cfg.FrontendBaseURL)
	userService := service.NewUserService(userRepo, ledger)
	chatService := service.NewChatService(chatRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, jwtService, ledger, authHandler, userHandler, chatHandler)

	addr := ":" + cfg.ServerPort
	logger.L.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.L.Fatal("server start", zap.Error(err))
	}
}

func getEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
