package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mfchat/internal/cache"
	"mfchat/internal/model"
	"mfchat/internal/repository"
)

const (
	ledgerKeyPrefix = "ledger:token:"
	// ledgerCacheTTL bounds how long a revoked token can still be read as
	// valid if the cache delete on Revoke was swallowed.
	ledgerCacheTTL = 30 * time.Second
)

// LedgerInterface is the revocation-ledger contract consulted on every
// authenticated request.
type LedgerInterface interface {
	Record(ctx context.Context, token string) error
	IsValid(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

// Ledger records which issued tokens are still accepted. The database table
// is the source of truth; redis holds a short-lived look-aside cache of
// positive lookups, invalidated on Revoke.
type Ledger struct {
	repo  repository.TokenRepository
	cache *cache.Client
}

var _ LedgerInterface = (*Ledger)(nil)

// NewLedger creates a ledger over the token repository and cache.
func NewLedger(repo repository.TokenRepository, cache *cache.Client) *Ledger {
	return &Ledger{repo: repo, cache: cache}
}

// Record inserts a new valid entry for a freshly issued token.
func (l *Ledger) Record(ctx context.Context, token string) error {
	entry := &model.IssuedToken{
		Token:   token,
		Status:  true,
		Message: "token is valid",
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		return err
	}
	_ = l.cache.Set(ctx, ledgerKey(token), []byte("1"), ledgerCacheTTL)
	return nil
}

// IsValid reports whether the token is present and not revoked. An empty
// token is never valid.
func (l *Ledger) IsValid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if data, _ := l.cache.Get(ctx, ledgerKey(token)); data != nil {
		return true, nil
	}

	entry, err := l.repo.FindByToken(ctx, token)
	if err != nil {
		// absent rows and lookup failures both reject; the middleware turns
		// this into a uniform 401
		return false, nil
	}
	if !entry.Status {
		return false, nil
	}
	_ = l.cache.Set(ctx, ledgerKey(token), []byte("1"), ledgerCacheTTL)
	return true, nil
}

// Revoke deletes the entry and reports whether a deletion occurred. A second
// revoke of the same token is a no-op.
func (l *Ledger) Revoke(ctx context.Context, token string) (bool, error) {
	deleted, err := l.repo.DeleteByToken(ctx, token)
	if err != nil {
		return false, err
	}
	_ = l.cache.Delete(ctx, ledgerKey(token))
	return deleted, nil
}

// ledgerKey hashes the signed token so redis keys stay short.
func ledgerKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return ledgerKeyPrefix + hex.EncodeToString(sum[:])
}
