package credentials

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/cryptox"
)

// SaltKey names the entry holding the key derivation salt. It never
// expires, so a purge of expired credentials keeps it.
const SaltKey = "credentials_salt"

var saltExpiry = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// sealer encrypts values on the way into a store and decrypts them on the
// way out. Keys and expiry stay in the clear.
type sealer struct {
	inner authstate.CredentialStore
	key   []byte
}

func (s sealer) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return "", false, fmt.Errorf("credential[%s]: %w", key, err)
	}
	return string(plain), true, nil
}

func (s sealer) Set(ctx context.Context, key, value string, expiresAt time.Time) error {
	sealed, err := cryptox.Seal([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("seal credential[%s]: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed, expiresAt)
}

func (s sealer) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// SealedStore wraps a BatchStore so every stored value is encrypted with a
// key derived from a passphrase. A value sealed under another passphrase
// fails to read with cryptox.ErrOpen.
type SealedStore struct {
	sealer
	batch authstate.BatchStore
}

var _ authstate.BatchStore = (*SealedStore)(nil)

// NewSealedStore loads the salt from inner, creating it on first use, and
// derives the key from passphrase.
func NewSealedStore(ctx context.Context, inner authstate.BatchStore, passphrase []byte) (*SealedStore, error) {
	salt, err := loadSalt(ctx, inner)
	if err != nil {
		return nil, err
	}
	return &SealedStore{
		sealer: sealer{inner: inner, key: cryptox.DeriveKey(passphrase, salt)},
		batch:  inner,
	}, nil
}

func loadSalt(ctx context.Context, store authstate.CredentialStore) ([]byte, error) {
	encoded, ok, err := store.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err == nil && len(salt) == cryptox.SaltSize {
			return salt, nil
		}
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("new salt: %w", err)
	}
	if err := store.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt), saltExpiry); err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return salt, nil
}

func (s *SealedStore) Batch(ctx context.Context, fn func(ctx context.Context, tx authstate.CredentialStore) error) error {
	return s.batch.Batch(ctx, func(ctx context.Context, tx authstate.CredentialStore) error {
		return fn(ctx, sealer{inner: tx, key: s.key})
	})
}
