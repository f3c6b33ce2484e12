package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mfchat/internal/auth"
	"mfchat/internal/config"
	"mfchat/internal/db"
	"mfchat/internal/model"
	"mfchat/internal/repository"
)

// seedUser describes one demo account created for local development.
type seedUser struct {
	Username string
	Email    string
	Password string
	Verified bool
	Active   bool
	Chats    []string
}

var seedUsers = []seedUser{
	{Username: "alice", Email: "alice@example.com", Password: "Abcd123!", Verified: true, Active: true,
		Chats: []string{"Trip planning", "Recipe ideas"}},
	{Username: "bobby", Email: "bob@example.com", Password: "Abcd123!", Verified: false, Active: true},
	{Username: "carol", Email: "carol@example.com", Password: "Abcd123!", Verified: true, Active: false},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.IssuedToken{}, &model.ChatContext{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	chatRepo := repository.NewChatContextRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, seed.Email)
		if err == nil && existing != nil {
			skipped++
			continue
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", seed.Email, err)
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}

		user := &model.User{
			Username:     seed.Username,
			Email:        seed.Email,
			PasswordHash: hash,
			IsVerified:   seed.Verified,
			IsActive:     seed.Active,
			Role:         "user",
			Status:       model.StatusOffline,
		}
		if !seed.Verified {
			user.ActivationToken = uuid.NewString()
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.Email, err)
		}

		for _, title := range seed.Chats {
			chat := &model.ChatContext{
				UserID:    user.ID,
				ContextID: uuid.NewString(),
				ChatTitle: title,
			}
			if err := chatRepo.CreateIfAbsent(ctx, chat); err != nil {
				log.Fatalf("Failed to create chat context for %s: %v", seed.Email, err)
			}
		}
		created++
	}

	log.Printf("Seed completed: %d users created, %d already present", created, skipped)
}
