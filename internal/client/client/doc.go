// Package client implements the request pipeline every campaign API call
// goes through.
//
// # Overview
//
// HTTPClient.Do resolves base+path, attaches the default headers
// (Content-Type: application/json and, when a token is held,
// Authorization: Bearer <token>), sends the request and normalises the
// outcome:
//
//   - non-2xx status: an *Error carrying the server's "detail" message, or
//     "HTTP <status>" when the body has none;
//   - 2xx with a JSON content type: the raw JSON value;
//   - 2xx with any other (or no) content type: nil.
//
// Decode wraps Do and unmarshals the value into a typed result.
//
// # Error Handling
//
// Every failure is an *Error whose Kind tells transport, status and decode
// failures apart. Common conditions match sentinel errors with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Calls share no mutable state apart
// from the token source, which is only read.
package client
