package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// TokenSource yields the bearer token to attach, or "" when no session is
// active.
type TokenSource interface {
	Token() string
}

// RequestOptions overrides method, headers and body of a single call.
//
// Header semantics:
//   - nil: the default headers are sent;
//   - non-nil but empty: no default header is sent at all;
//   - otherwise each key overrides the default of the same name, and an
//     empty value removes that header.
//
// Body may be nil, a string, []byte or json.RawMessage (sent verbatim),
// url.Values (form-encoded, with a form Content-Type), an io.Reader, or any
// other value, which is serialised to JSON.
type RequestOptions struct {
	Method string
	Header map[string]string
	Body   any
}

func (o *RequestOptions) method() string {
	if o == nil || o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, opts *RequestOptions) (*http.Request, error) {
	body, bodyType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, v := range c.headers(opts.Header, bodyType) {
		req.Header.Set(k, v)
	}

	return req, nil
}

// headers resolves the final header set: defaults, then body-derived
// content type, then caller overrides.
func (c *HTTPClient) headers(overrides map[string]string, bodyType string) map[string]string {
	h := make(map[string]string, 2)

	if overrides == nil || len(overrides) > 0 {
		h[HeaderContentType] = ContentTypeJSON
		if token := c.token(); token != "" {
			h[HeaderAuthorization] = "Bearer " + token
		}
	}

	if bodyType != "" {
		h[HeaderContentType] = bodyType
	}

	for k, v := range overrides {
		k = http.CanonicalHeaderKey(k)
		if v == "" {
			delete(h, k)
			continue
		}
		h[k] = v
	}

	return h
}

func (c *HTTPClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// encodeBody returns the request body and, for bodies that imply one, the
// content type to send.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(b), "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case json.RawMessage:
		return bytes.NewReader(b), "", nil
	case url.Values:
		return strings.NewReader(b.Encode()), ContentTypeForm, nil
	case io.Reader:
		return b, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), "", nil
	}
}
