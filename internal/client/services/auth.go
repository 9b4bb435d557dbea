package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
)

// ErrNotPersisted marks a call that succeeded against the server and
// updated the in-memory session, but could not store it locally.
var ErrNotPersisted = errors.New("session not persisted")

// Session is the part of authstate.Container the auth calls drive.
type Session interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, user models.User, token string) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, user *models.User) error
}

// AuthService defines the account operations of the client.
//
// Contract:
//   - Register: create an account; the session is not changed.
//   - Login: exchange credentials for a token and store the session.
//   - Me: fetch the profile of the token holder and refresh the session user.
//     A rejected token ends the session locally.
//   - Logout: forget the session. The server keeps no session state.
//   - Restore: load the session persisted by an earlier run.
type AuthService interface {
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Login(ctx context.Context, email string, password []byte) (models.User, error)
	Me(ctx context.Context) (models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
}

type authService struct {
	doer    client.Doer
	session Session
}

func NewAuthService(doer client.Doer, session Session) AuthService {
	return &authService{doer: doer, session: session}
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	return client.Decode[models.User](ctx, a.doer, "/auth/register", &client.RequestOptions{
		Method: http.MethodPost,
		Body:   reg,
	})
}

// Login posts the credentials as a form with the default headers
// suppressed, so the request carries the form content type and no stale
// bearer token. The session is stored even when persisting it fails; that
// failure is returned along with the user.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.User, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", string(password))

	tok, err := client.Decode[models.Token](ctx, a.doer, "/auth/login", &client.RequestOptions{
		Method: http.MethodPost,
		Header: map[string]string{},
		Body:   form,
	})
	if err != nil {
		return models.User{}, err
	}
	if tok.AccessToken == "" {
		return models.User{}, errors.New("login response carries no access token")
	}

	if err := a.session.Login(ctx, tok.User, tok.AccessToken); err != nil {
		return tok.User, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return tok.User, nil
}

func (a *authService) Me(ctx context.Context) (models.User, error) {
	user, err := client.Decode[models.User](ctx, a.doer, "/auth/me", nil)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return models.User{}, errors.Join(err, a.session.Logout(ctx))
		}
		return models.User{}, err
	}

	if err := a.session.UpdateUser(ctx, &user); err != nil {
		return user, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Restore(ctx context.Context) error {
	return a.session.Initialize(ctx)
}
