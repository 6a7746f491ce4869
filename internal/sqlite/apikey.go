package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/upkeep/internal/repository"
)

// APIKeyRepository stores hashed bearer tokens, each naming an operator.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create registers a token for an actor. Only the token's hash is stored.
func (r *APIKeyRepository) Create(ctx context.Context, token, actor, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, actor, created_at, description) VALUES (?, ?, ?, ?)`,
		HashToken(token), actor, time.Now().UTC(), description)
	if err != nil {
		return writeError("create api key", err)
	}
	return nil
}

// ResolveActor returns the actor owning a token and records its use.
func (r *APIKeyRepository) ResolveActor(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)
	var actor string
	err := r.db.QueryRowContext(ctx, `SELECT actor FROM api_keys WHERE key_hash = ?`, hash).Scan(&actor)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && actor == "") {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return actor, nil
}

// HashToken returns the hex SHA-256 of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
