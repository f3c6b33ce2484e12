package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mfchat/internal/model"
)

// ChatContextRepository defines chat-context persistence operations. Every
// query is scoped to the owning user; a context id alone never grants access.
type ChatContextRepository interface {
	// CreateIfAbsent registers a context for the user unless the same
	// (user, context) pair already exists.
	CreateIfAbsent(ctx context.Context, chat *model.ChatContext) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ChatContext, error)
	UpdateTitle(ctx context.Context, userID uuid.UUID, contextID, title string) error
	DeleteOne(ctx context.Context, userID uuid.UUID, contextID string) (bool, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

type chatContextRepository struct {
	db *gorm.DB
}

// NewChatContextRepository builds a GORM-backed repository.
func NewChatContextRepository(db *gorm.DB) ChatContextRepository {
	return &chatContextRepository{db: db}
}

func (r *chatContextRepository) CreateIfAbsent(ctx context.Context, chat *model.ChatContext) error {
	var existing model.ChatContext
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND context_id = ?", chat.UserID, chat.ContextID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(chat).Error
}

func (r *chatContextRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ChatContext, error) {
	var contexts []model.ChatContext
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&contexts).Error; err != nil {
		return nil, err
	}
	return contexts, nil
}

func (r *chatContextRepository) UpdateTitle(ctx context.Context, userID uuid.UUID, contextID, title string) error {
	res := r.db.WithContext(ctx).Model(&model.ChatContext{}).
		Where("user_id = ? AND context_id = ?", userID, contextID).
		Update("chat_title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *chatContextRepository) DeleteOne(ctx context.Context, userID uuid.UUID, contextID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND context_id = ?", userID, contextID).
		Delete(&model.ChatContext{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *chatContextRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ChatContext{}).Error
}
