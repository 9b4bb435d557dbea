package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/dbx"
)

// SQLiteStore keeps credentials in the credentials table. Expiry is stored
// as Unix milliseconds.
type SQLiteStore struct {
	db  dbx.DBTX
	txb dbx.TxBeginner // nil inside a batch
	now func() time.Time
}

var _ authstate.BatchStore = (*SQLiteStore)(nil)

type Option func(*SQLiteStore)

// WithClock overrides the time source used to decide expiry.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{db: db, txb: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM credentials WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}

	if expiresAt <= s.now().UnixMilli() {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM credentials WHERE key = ? AND expires_at = ?`, key, expiresAt,
		); err != nil {
			return "", false, fmt.Errorf("failed to delete expired credential[%s]: %w", key, err)
		}
		return "", false, nil
	}

	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to remove credential[%s]: %w", key, err)
	}
	return nil
}

// Clear removes every credential.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// PurgeExpired deletes every entry past its expiry and reports how many
// were removed.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge credentials: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged credentials: %w", err)
	}
	return n, nil
}

// Batch runs fn against a store bound to one transaction. Nested calls
// reuse the outer transaction.
func (s *SQLiteStore) Batch(ctx context.Context, fn func(ctx context.Context, tx authstate.CredentialStore) error) error {
	if s.txb == nil {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.txb, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &SQLiteStore{db: tx, now: s.now})
	})
}
