package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/campaignkeeper/internal/client/client"

// Doer is the pipeline contract the resource services depend on.
type Doer interface {
	Do(ctx context.Context, path string, opts *RequestOptions) (json.RawMessage, error)
}

// HTTPClient is the Doer backed by net/http. The base URL is fixed at
// construction time.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
	metrics *Metrics
	tracer  trace.Tracer
	timeout time.Duration
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds each call, including reading the response body. It is
// applied after every other option, so it also holds for a client passed
// with WithHTTPClient; that client itself is not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *HTTPClient) { c.tracer = tp.Tracer(tracerName) }
}

// New validates baseURL (an absolute http or https origin) and builds the
// client.
func New(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http(s)://host[:port]", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.Discard(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the origin every path is resolved against.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do performs one call. path is relative to the base URL and may carry a
// query string. It returns the raw JSON value of a JSON response, nil for a
// successful non-JSON or empty response, or an *Error.
func (c *HTTPClient) Do(ctx context.Context, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.method()

	ctx, span := c.tracer.Start(ctx, "api "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	start := time.Now()
	result, status, err := c.roundTrip(ctx, method, path, opts)
	c.metrics.observe(method, status, err, start)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}

	if err != nil {
		var apiErr *Error
		kind := ""
		if errors.As(err, &apiErr) {
			kind = apiErr.Kind.String()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error(ctx, "api request failed",
			"method", method, "path", path, "status", status, "kind", kind, "error", err)
		return nil, err
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", path, "status", status,
		"duration", time.Since(start))
	return result, nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, int, error) {
	fail := func(kind Kind, status int, msg string, err error) (json.RawMessage, int, error) {
		return nil, status, &Error{Kind: kind, Method: method, Path: path, Status: status, Message: msg, Err: err}
	}

	req, err := c.newRequest(ctx, method, path, opts)
	if err != nil {
		return fail(KindRequest, 0, err.Error(), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(KindNetwork, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(KindNetwork, resp.StatusCode, fmt.Sprintf("read response: %v", err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(KindServer, resp.StatusCode, serverMessage(body, resp.StatusCode), nil)
	}

	if resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header.Get(HeaderContentType)) {
		return nil, resp.StatusCode, nil
	}

	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return fail(KindDecode, resp.StatusCode, fmt.Sprintf("decode response: %v", err), err)
	}

	return json.RawMessage(body), resp.StatusCode, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, ContentTypeJSON)
	}
	return mt == ContentTypeJSON || strings.HasSuffix(mt, "+json")
}

// serverMessage extracts a human-readable message from an error body:
// a string "detail", the "msg" entries of a validation-error list, or a
// top-level "message". It falls back to "HTTP <status>".
func serverMessage(body []byte, status int) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return StatusMessage(status)
	}

	if msg := detailMessage(payload.Detail); msg != "" {
		return msg
	}
	if payload.Message != "" {
		return payload.Message
	}
	return StatusMessage(status)
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// Decode performs the call through c and unmarshals the result into T.
// A nil (non-JSON) result yields the zero T.
func Decode[T any](ctx context.Context, c Doer, path string, opts *RequestOptions) (T, error) {
	var out T

	raw, err := c.Do(ctx, path, opts)
	if err != nil || raw == nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &Error{
			Kind:    KindDecode,
			Method:  opts.method(),
			Path:    path,
			Message: fmt.Sprintf("decode %s response: %v", path, err),
			Err:     err,
		}
	}
	return out, nil
}
