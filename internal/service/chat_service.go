package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "mfchat/internal/errors"
	"mfchat/internal/model"
	"mfchat/internal/repository"
)

// ChatService manages the user's chat-context records.
type ChatService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.ChatContext, error)
	Rename(ctx context.Context, userID uuid.UUID, contextID, title string) error
	DeleteOne(ctx context.Context, userID uuid.UUID, contextID string) error
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}

type chatService struct {
	chats repository.ChatContextRepository
}

// NewChatService creates the chat-context service.
func NewChatService(chats repository.ChatContextRepository) ChatService {
	return &chatService{chats: chats}
}

func (s *chatService) List(ctx context.Context, userID uuid.UUID) ([]model.ChatContext, error) {
	contexts, err := s.chats.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat contexts: %w", err)
	}
	return contexts, nil
}

func (s *chatService) Rename(ctx context.Context, userID uuid.UUID, contextID, title string) error {
	err := s.chats.UpdateTitle(ctx, userID, contextID, title)
	if err == gorm.ErrRecordNotFound {
		return apperrors.ErrChatContextNotFound
	}
	if err != nil {
		return fmt.Errorf("rename chat context: %w", err)
	}
	return nil
}

func (s *chatService) DeleteOne(ctx context.Context, userID uuid.UUID, contextID string) error {
	deleted, err := s.chats.DeleteOne(ctx, userID, contextID)
	if err != nil {
		return fmt.Errorf("delete chat context: %w", err)
	}
	if !deleted {
		return apperrors.ErrChatContextNotFound
	}
	return nil
}

func (s *chatService) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.chats.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete chat contexts: %w", err)
	}
	return nil
}
