package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindRequest: the request could not be built (bad body, bad URL).
	KindRequest Kind = iota
	// KindNetwork: the call never produced a response.
	KindNetwork
	// KindServer: the server answered with a non-2xx status.
	KindServer
	// KindDecode: a body declared as JSON could not be parsed.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned for every failed call. Error() yields Message unchanged
// so it can be shown to the user as is.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps the failure onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindServer && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case ErrNotFound:
		return e.Kind == KindServer && e.Status == http.StatusNotFound
	}
	return false
}

// StatusMessage is the generic message used when the server sent no detail.
func StatusMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}
