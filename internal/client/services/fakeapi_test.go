package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method  string
	pattern string
	path    string
	query   string
	header  http.Header
	body    string
}

// fakeAPI is an httptest server whose routes are registered with the same
// path templates the services are expected to produce.
type fakeAPI struct {
	t      *testing.T
	router chi.Router
	srv    *httptest.Server

	mu   sync.Mutex
	reqs []recorded
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, router: chi.NewRouter()}
	f.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
	f.srv = httptest.NewServer(f.router)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) handle(method, pattern string, status int, body string) {
	f.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.reqs = append(f.reqs, recorded{
			method:  r.Method,
			pattern: chi.RouteContext(r.Context()).RoutePattern(),
			path:    r.URL.Path,
			query:   r.URL.RawQuery,
			header:  r.Header.Clone(),
			body:    string(b),
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeAPI) last() recorded {
	f.t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.reqs, "no request reached the fake api")
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

// newServices wires the real pipeline and auth container against api.
func newServices(t *testing.T, api *fakeAPI) (*Services, *authstate.Container) {
	t.Helper()
	session := authstate.New(authstate.NoopStore{})
	require.NoError(t, session.Initialize(context.Background()))

	c, err := client.New(api.srv.URL, client.WithTokenSource(session))
	require.NoError(t, err)

	return New(c, session), session
}
