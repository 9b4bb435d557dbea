package credentials

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealedStore_ValuesAreEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	raw := NewSQLiteStore(db)

	sealed, err := NewSealedStore(ctx, raw, []byte("hunter2"))
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, sealed.Set(ctx, authstate.TokenKey, "tok-abc", exp))

	stored, ok, err := raw.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, stored, "tok-abc")

	got, ok, err := sealed.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", got)

	_, ok, err = sealed.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sealed.Remove(ctx, authstate.TokenKey))
	_, ok, err = raw.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSealedStore_SaltSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	raw := NewSQLiteStore(db)

	first, err := NewSealedStore(ctx, raw, []byte("hunter2"))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, authstate.TokenKey, "tok-abc", time.Now().Add(time.Hour)))

	n, err := raw.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	second, err := NewSealedStore(ctx, raw, []byte("hunter2"))
	require.NoError(t, err)
	got, ok, err := second.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", got)

	wrong, err := NewSealedStore(ctx, raw, []byte("letmein"))
	require.NoError(t, err)
	_, _, err = wrong.Get(ctx, authstate.TokenKey)
	require.ErrorIs(t, err, cryptox.ErrOpen)
}

func TestSealedStore_BatchSealsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	raw := NewSQLiteStore(db)
	sealed, err := NewSealedStore(ctx, raw, []byte("pw"))
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour)
	boom := errors.New("boom")
	err = sealed.Batch(ctx, func(ctx context.Context, tx authstate.CredentialStore) error {
		require.NoError(t, tx.Set(ctx, authstate.TokenKey, "tok", exp))
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, ok, err := sealed.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sealed.Batch(ctx, func(ctx context.Context, tx authstate.CredentialStore) error {
		return tx.Set(ctx, authstate.TokenKey, "tok", exp)
	}))
	stored, _, err := raw.Get(ctx, authstate.TokenKey)
	require.NoError(t, err)
	assert.NotEqual(t, "tok", stored)
}

func TestSealedStore_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "ck.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	store, err := NewSealedStore(ctx, NewSQLiteStore(db), []byte("pw"))
	require.NoError(t, err)
	c := authstate.New(store)
	require.NoError(t, c.Initialize(ctx))
	require.NoError(t, c.Login(ctx, models.User{ID: 1, Username: "dm"}, "tok-1"))
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err = NewSealedStore(ctx, NewSQLiteStore(db), []byte("pw"))
	require.NoError(t, err)
	restored := authstate.New(store)
	require.NoError(t, restored.Initialize(ctx))
	assert.Equal(t, "tok-1", restored.Token())
	require.NotNil(t, restored.Current().User)
	assert.Equal(t, "dm", restored.Current().User.Username)
}
