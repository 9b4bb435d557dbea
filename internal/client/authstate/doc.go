// Package authstate holds the process-wide authentication state of the
// client: the signed-in user, the bearer token, and whether the persisted
// session has been loaded yet.
//
// A Container is created once at start-up in the loading state and resolves
// to either authenticated or unauthenticated on the first Initialize, Login
// or Logout. It never returns to loading. The session survives restarts
// through a CredentialStore that keeps the token and the serialised user as
// two entries expiring one day after they are written.
//
// Every mutation is published to subscribers as a single value, and a
// subscriber registered late immediately receives the latest state.
// The request pipeline reads the token through Container.Token.
package authstate
