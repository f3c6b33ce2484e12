package repository

import (
	"context"

	"gorm.io/gorm"

	"mfchat/internal/model"
)

// TokenRepository persists the revocation ledger.
type TokenRepository interface {
	Create(ctx context.Context, entry *model.IssuedToken) error
	FindByToken(ctx context.Context, token string) (*model.IssuedToken, error)
	// DeleteByToken removes the entry and reports whether a row was deleted.
	DeleteByToken(ctx context.Context, token string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed ledger repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, entry *model.IssuedToken) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *tokenRepository) FindByToken(ctx context.Context, token string) (*model.IssuedToken, error) {
	var entry model.IssuedToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *tokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.IssuedToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
