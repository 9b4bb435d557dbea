package authstate

import "github.com/dmitrijs2005/campaignkeeper/internal/client/models"

// Status is the lifecycle position of a State.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is one published snapshot. User may be nil while a token is held
// only if the server never returned a profile.
type State struct {
	User    *models.User
	Token   string
	Loading bool
}

func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Token != "":
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

// Authenticated reports whether a session is active.
func (s State) Authenticated() bool {
	return s.Status() == StatusAuthenticated
}

func loadingState() State {
	return State{Loading: true}
}

func loggedOut() State {
	return State{}
}
