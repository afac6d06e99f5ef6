// Package api is the console's only path to the HR REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/astro-web3/hrdesk-console/internal/domain/credential"
	"github.com/astro-web3/hrdesk-console/pkg/tracer"
)

// Caller is the part of the Gateway page logic depends on.
type Caller interface {
	Call(ctx context.Context, method, path string, body, out any) error
	Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error
}

// Gateway performs JSON calls against the HR API, attaching the bearer token
// held by its credential store. Calls are never retried and carry no timeout
// of their own; the caller's context bounds them.
type Gateway struct {
	baseURL string
	client  *resty.Client
	creds   credential.Store
}

type Option func(*Gateway)

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) {
		g.client = resty.NewWithClient(hc)
	}
}

func NewGateway(baseURL string, creds credential.Store, opts ...Option) *Gateway {
	if creds == nil {
		creds = credential.None
	}

	g := &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  resty.New(),
		creds:   creds,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.client.
		SetBaseURL(g.baseURL).
		SetRetryCount(0).
		SetLogger(restyLogger{}).
		SetDisableWarn(true).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return g
}

func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// WithCredentials returns a Gateway sharing the same HTTP client but reading
// its token from store.
func (g *Gateway) WithCredentials(store credential.Store) *Gateway {
	if store == nil {
		store = credential.None
	}
	clone := *g
	clone.creds = store
	return &clone
}

// Anonymous returns a Gateway that never sends a bearer token.
func (g *Gateway) Anonymous() *Gateway {
	return g.WithCredentials(credential.None)
}

// Call sends body (when non-nil) as JSON and decodes a non-empty 2xx body
// into out (when non-nil). Non-2xx answers become *RequestError.
func (g *Gateway) Call(ctx context.Context, method, path string, body, out any) error {
	req := g.authorized(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return g.do(ctx, req, method, path, out)
}

// Upload posts content as a multipart file under field.
func (g *Gateway) Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	req := g.authorized(ctx).SetFileReader(field, filename, content)
	return g.do(ctx, req, http.MethodPost, path, out)
}

// Login exchanges credentials for a bearer token and stores it. This is the
// only place a token is written. On failure the stored token is left as it was.
func (g *Gateway) Login(ctx context.Context, username, password string) error {
	req := g.client.R().SetFormData(map[string]string{
		"username": username,
		"password": password,
	})

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := g.do(ctx, req, http.MethodPost, LoginPath, &token); err != nil {
		if status := StatusOf(err); status != 0 {
			return &RequestError{Status: status, Message: loginMessage}
		}
		return err
	}
	if token.AccessToken == "" {
		return ErrMissingAccessToken
	}

	if err := g.creds.Set(ctx, token.AccessToken); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (g *Gateway) authorized(ctx context.Context) *resty.Request {
	req := g.client.R()
	if token, ok := g.creds.Get(ctx); ok && token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (g *Gateway) do(ctx context.Context, req *resty.Request, method, path string, out any) error {
	ctx, span := tracer.Start(ctx, "api.Gateway "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", g.baseURL+path),
		),
	)
	defer span.End()

	req.SetContext(ctx)
	injectTracingHeaders(ctx, req)

	start := time.Now()
	resp, err := req.Execute(method, path)
	recordSpan(span, resp, err)

	if err != nil {
		recordCall(method, resultTransport, time.Since(start))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if !resp.IsSuccess() {
		recordCall(method, resultHTTPError, time.Since(start))
		return newRequestError(resp.StatusCode(), resp.Body())
	}

	if out != nil && len(bytes.TrimSpace(resp.Body())) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			recordCall(method, resultDecodeFail, time.Since(start))
			span.RecordError(err)
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}

	recordCall(method, resultOK, time.Since(start))
	return nil
}

func recordSpan(span trace.Span, resp *resty.Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if resp == nil {
		return
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		span.SetStatus(codes.Error, resp.Status())
		return
	}
	span.SetStatus(codes.Ok, "")
}
