package credentials

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	db := setupDB(t)
	clk := &clock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSQLiteStore(db, WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "v1", clk.t.Add(time.Hour)))

	v, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)
}

func TestSet_UpsertOverwritesValueAndExpiry(t *testing.T) {
	db := setupDB(t)
	clk := &clock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSQLiteStore(db, WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "old", clk.t.Add(time.Minute)))
	require.NoError(t, s.Set(ctx, "k1", "new", clk.t.Add(time.Hour)))

	clk.t = clk.t.Add(30 * time.Minute)
	v, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestGet_MissingKey(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestGet_ExpiredEntryIsAbsentAndDeleted(t *testing.T) {
	db := setupDB(t)
	clk := &clock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSQLiteStore(db, WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", "v1", clk.t.Add(time.Hour)))
	clk.t = clk.t.Add(time.Hour)

	_, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	assert.Zero(t, n)
}

func TestRemoveAndClear(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, s.Set(ctx, "a", "1", exp))
	require.NoError(t, s.Set(ctx, "b", "2", exp))
	require.NoError(t, s.Remove(ctx, "a"))
	require.NoError(t, s.Remove(ctx, "missing"))

	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPurgeExpired(t *testing.T) {
	db := setupDB(t)
	clk := &clock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := NewSQLiteStore(db, WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "old", "1", clk.t.Add(-time.Second)))
	require.NoError(t, s.Set(ctx, "fresh", "2", clk.t.Add(time.Hour)))

	n, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, ok, err := s.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBatch_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)
	boom := errors.New("second write failed")

	err := s.Batch(ctx, func(ctx context.Context, tx authstate.CredentialStore) error {
		require.NoError(t, tx.Set(ctx, authstate.TokenKey, "tok", exp))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := s.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBatch_CommitsAndNests(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	err := s.Batch(ctx, func(ctx context.Context, tx authstate.CredentialStore) error {
		if err := tx.Set(ctx, "a", "1", exp); err != nil {
			return err
		}
		return tx.(authstate.BatchStore).Batch(ctx, func(ctx context.Context, inner authstate.CredentialStore) error {
			return inner.Set(ctx, "b", "2", exp)
		})
	})
	require.NoError(t, err)

	for _, k := range []string{"a", "b"} {
		_, ok, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok, k)
	}
}

func TestRunMigrations_PropagatesGooseError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	boom := errors.New("migrate failed")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom }

	_, err := Open(context.Background(), ":memory:")
	require.ErrorIs(t, err, boom)
}

// The session written by one process is restored by the next one opening
// the same database file.
func TestAuthSessionSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campaignkeeper.db")
	clk := &clock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	user := models.User{ID: 3, Email: "gm@example.org", Username: "gm"}

	db1, err := Open(ctx, path)
	require.NoError(t, err)
	first := authstate.New(NewSQLiteStore(db1, WithClock(clk.now)), authstate.WithClock(clk.now))
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Login(ctx, user, "tok-9"))
	require.NoError(t, db1.Close())

	db2, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db2.Close() })

	second := authstate.New(NewSQLiteStore(db2, WithClock(clk.now)))
	require.NoError(t, second.Initialize(ctx))
	got := second.Current()
	assert.Equal(t, "tok-9", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, user.Email, got.User.Email)

	// A day later both entries have expired.
	clk.t = clk.t.Add(authstate.CredentialTTL)
	third := authstate.New(NewSQLiteStore(db2, WithClock(clk.now)))
	require.NoError(t, third.Initialize(ctx))
	assert.Equal(t, authstate.State{}, third.Current())
}

func TestOpen_CreatesDatabaseDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state", "ck.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.FileExists(t, dsn)
}
