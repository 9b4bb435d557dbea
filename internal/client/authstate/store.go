package authstate

import (
	"context"
	"time"
)

// Keys of the two persisted entries. They are stable across releases.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// CredentialTTL is how long a persisted entry stays valid after a write.
const CredentialTTL = 24 * time.Hour

// CredentialStore is durable key/value storage for the session. An entry
// past its expiry reads as absent.
type CredentialStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
	Remove(ctx context.Context, key string) error
}

// BatchStore is implemented by stores that can apply several writes
// atomically. The Container uses it so both entries are written and
// cleared together.
type BatchStore interface {
	CredentialStore
	Batch(ctx context.Context, fn func(ctx context.Context, tx CredentialStore) error) error
}

// NoopStore is the CredentialStore for environments without persistent
// storage. Reads find nothing and writes succeed without effect.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NoopStore) Set(context.Context, string, string, time.Time) error { return nil }

func (NoopStore) Remove(context.Context, string) error { return nil }
