package authstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/logging"
	"github.com/dmitrijs2005/campaignkeeper/internal/observable"
)

// ErrEmptyToken is returned by Login when no token is supplied.
var ErrEmptyToken = errors.New("authstate: empty token")

// Container is the observable authentication state.
type Container struct {
	// mu orders whole operations so that storage writes and the published
	// state change happen in the same sequence.
	mu sync.Mutex

	value  *observable.Value[State]
	store  CredentialStore
	logger logging.Logger
	now    func() time.Time
}

type Option func(*Container)

func WithLogger(l logging.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// WithClock overrides the time source used for entry expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

// New returns a Container in the loading state. A nil store behaves like
// NoopStore.
func New(store CredentialStore, opts ...Option) *Container {
	if store == nil {
		store = NoopStore{}
	}
	c := &Container{
		value:  observable.New(loadingState()),
		store:  store,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the latest state.
func (c *Container) Current() State {
	return c.value.Get()
}

// Token returns the held bearer token or "". It satisfies
// client.TokenSource.
func (c *Container) Token() string {
	return c.value.Get().Token
}

// Subscribe calls fn with the current state and then with every change.
//
// fn runs synchronously while the container is locked, so it must not call
// Initialize, Login, Logout or UpdateUser itself; doing so deadlocks. A
// subscriber that reacts with a state change has to hand that work to
// another goroutine.
func (c *Container) Subscribe(fn func(State)) (unsubscribe func()) {
	return c.value.Subscribe(fn)
}

// Initialize restores the session from the store.
//
// Both entries present with a readable user yields the authenticated state.
// An unreadable user, or an orphaned entry without its partner, is cleared
// and yields the unauthenticated state. Nothing stored yields the
// unauthenticated state without touching the store. A read error also
// resolves to unauthenticated and is returned.
func (c *Container) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	token, hasToken, err := c.store.Get(ctx, TokenKey)
	if err != nil {
		c.value.Set(loggedOut())
		c.logger.Error(ctx, "read persisted token", "error", err)
		return fmt.Errorf("read %s: %w", TokenKey, err)
	}
	rawUser, hasUser, err := c.store.Get(ctx, UserKey)
	if err != nil {
		c.value.Set(loggedOut())
		c.logger.Error(ctx, "read persisted user", "error", err)
		return fmt.Errorf("read %s: %w", UserKey, err)
	}

	hasToken = hasToken && token != ""
	hasUser = hasUser && rawUser != ""

	switch {
	case !hasToken && !hasUser:
		c.value.Set(loggedOut())
		return nil
	case hasToken != hasUser:
		c.logger.Warn(ctx, "incomplete persisted session, clearing", "has_token", hasToken, "has_user", hasUser)
		return c.logout(ctx)
	}

	user, err := decodeUser(rawUser)
	if err != nil {
		c.logger.Warn(ctx, "corrupt persisted user, clearing session", "error", err)
		return c.logout(ctx)
	}

	c.value.Set(State{User: user, Token: token})
	c.logger.Debug(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Login persists both entries with a fresh expiry and publishes the
// authenticated state. The state is published even when persisting fails;
// the failure is returned.
func (c *Container) Login(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(CredentialTTL)
	perr := c.batch(ctx, func(ctx context.Context, tx CredentialStore) error {
		if err := tx.Set(ctx, TokenKey, token, expiresAt); err != nil {
			return fmt.Errorf("write %s: %w", TokenKey, err)
		}
		if err := tx.Set(ctx, UserKey, string(rawUser), expiresAt); err != nil {
			return fmt.Errorf("write %s: %w", UserKey, err)
		}
		return nil
	})

	c.value.Set(State{User: &user, Token: token})

	if perr != nil {
		c.logger.Error(ctx, "persist session", "error", perr)
		return perr
	}
	return nil
}

// Logout clears both entries and publishes the unauthenticated state.
func (c *Container) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logout(ctx)
}

// UpdateUser replaces the profile and keeps token and loading. While a
// session is active the persisted user entry is rewritten as well. A nil
// user is ignored. The entry is not written without a token, unlike the web
// client's unconditional cookie write, so no orphaned user entry is left
// behind.
func (c *Container) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return nil
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var perr error
	if c.value.Get().Token != "" {
		if err := c.store.Set(ctx, UserKey, string(rawUser), c.now().Add(CredentialTTL)); err != nil {
			perr = fmt.Errorf("write %s: %w", UserKey, err)
		}
	}

	u := *user
	c.value.Update(func(s State) State {
		s.User = &u
		return s
	})

	if perr != nil {
		c.logger.Error(ctx, "persist user", "error", perr)
		return perr
	}
	return nil
}

// logout must be called with mu held.
func (c *Container) logout(ctx context.Context) error {
	perr := c.batch(ctx, func(ctx context.Context, tx CredentialStore) error {
		return errors.Join(
			removeKey(ctx, tx, TokenKey),
			removeKey(ctx, tx, UserKey),
		)
	})

	c.value.Set(loggedOut())

	if perr != nil {
		c.logger.Error(ctx, "clear persisted session", "error", perr)
		return perr
	}
	return nil
}

func (c *Container) batch(ctx context.Context, fn func(ctx context.Context, tx CredentialStore) error) error {
	if bs, ok := c.store.(BatchStore); ok {
		return bs.Batch(ctx, fn)
	}
	return fn(ctx, c.store)
}

func removeKey(ctx context.Context, s CredentialStore, key string) error {
	if err := s.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func decodeUser(raw string) (*models.User, error) {
	var user *models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("null user")
	}
	return user, nil
}
