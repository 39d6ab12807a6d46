// Package data holds the Postgres repositories.
package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/skillhub/skills-dashboard/internal/errors"
	"github.com/skillhub/skills-dashboard/internal/ports"
)

// ErrClientIDRequired is returned when writing without a browser identifier.
var ErrClientIDRequired = errors.New("client_id is required")

// ClientStorageRepo persists per-browser records in the client_storage table.
type ClientStorageRepo struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

var _ ports.ClientStorageProvider = (*ClientStorageRepo)(nil)

// NewClientStorageRepo creates a new ClientStorageRepo. A positive ttl expires idle records.
func NewClientStorageRepo(db *sql.DB, ttl time.Duration) *ClientStorageRepo {
	return &ClientStorageRepo{DB: db, TTL: ttl, now: time.Now}
}

// ForClient returns the namespace of one browser.
func (r *ClientStorageRepo) ForClient(clientID string) ports.DurableStorage { //nolint:ireturn // port contract
	return &clientRows{repo: r, clientID: clientID}
}

func (r *ClientStorageRepo) expiry() sql.NullTime {
	if r.TTL <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: r.now().Add(r.TTL).UTC(), Valid: true}
}

// Get loads one record. Expired rows read as absent.
func (r *ClientStorageRepo) Get(ctx context.Context, clientID, key string) ([]byte, bool, error) {
	if clientID == "" {
		return nil, false, nil
	}
	const q = `
		UPDATE client_storage
		   SET expires_at = COALESCE($3, expires_at)
		 WHERE client_id = $1 AND key = $2
		   AND (expires_at IS NULL OR expires_at > $4)
		RETURNING value`

	var value []byte
	err := r.DB.QueryRowContext(ctx, q, clientID, key, r.expiry(), r.now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.MapDBError(err)
	}
	return value, true, nil
}

// Set upserts one record.
func (r *ClientStorageRepo) Set(ctx context.Context, clientID, key string, value []byte) error {
	if clientID == "" {
		return apperrors.Validation(ErrClientIDRequired.Error())
	}
	const q = `
		INSERT INTO client_storage (client_id, key, value, updated_at, expires_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)
		ON CONFLICT (client_id, key) DO UPDATE
		   SET value = EXCLUDED.value,
		       updated_at = EXCLUDED.updated_at,
		       expires_at = EXCLUDED.expires_at`

	_, err := r.DB.ExecContext(ctx, q, clientID, key, string(value), r.now().UTC(), r.expiry())
	return apperrors.MapDBError(err)
}

// Remove deletes one record. Missing rows are not an error.
func (r *ClientStorageRepo) Remove(ctx context.Context, clientID, key string) error {
	if clientID == "" {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM client_storage WHERE client_id = $1 AND key = $2`, clientID, key)
	return apperrors.MapDBError(err)
}

// PurgeExpired deletes rows whose expiry has passed and returns how many were removed.
func (r *ClientStorageRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return n, nil
}

type clientRows struct {
	repo     *ClientStorageRepo
	clientID string
}

func (c *clientRows) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.repo.Get(ctx, c.clientID, key)
}

func (c *clientRows) Set(ctx context.Context, key string, value []byte) error {
	return c.repo.Set(ctx, c.clientID, key, value)
}

func (c *clientRows) Remove(ctx context.Context, key string) error {
	return c.repo.Remove(ctx, c.clientID, key)
}
