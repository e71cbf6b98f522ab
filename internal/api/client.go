// Package api implements the typed REST client for the asset service. Every
// operation is a pure function of (path, payload) returning a parsed
// response; failures normalize to the console's domain error taxonomy and no
// call is ever retried automatically.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/assetdeck/internal/platform/errors"
	"github.com/louisbranch/assetdeck/internal/platform/timeouts"
)

const (
	authLoginPath  = "/api/auth/login"
	summaryPath    = "/api/dashboard/summary"
	charactersPath = "/api/characters"
	petsPath       = "/api/pets"
	vehiclesPath   = "/api/vehicles"
)

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/louisbranch/assetdeck/internal/api"

// TokenSource supplies the bearer token for authenticated calls. An empty
// return value is a valid pre-login state and sends the request without an
// Authorization header; rejecting it is the server's job.
type TokenSource func() string

// Client is the typed REST client for the asset service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	tracer     trace.Tracer
}

// New creates a client for the asset service at baseURL. A nil httpClient
// falls back to a default; request deadlines are applied per call so image
// uploads get a longer window than plain REST calls.
func New(baseURL string, token TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
		tracer:     otel.Tracer(tracerName),
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// ImageURL resolves a server-returned image reference against the API
// origin. The reference itself is opaque to the client.
func (c *Client) ImageURL(ref string) string {
	if c == nil || ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/")
}

// MutationResult carries the record returned by a create or update call and
// the optional confirmation message the server attaches. Callers surface the
// message but never parse it for logic.
type MutationResult[T any] struct {
	Record  T
	Message string
}

// mutationEnvelope mirrors the server's create/update response shape.
type mutationEnvelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// errorEnvelope mirrors the server's error response shape.
type errorEnvelope struct {
	Message string `json:"message"`
}

// do executes one request and decodes the response into out when non-nil.
// All failures come back as *apperrors.Error.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if c == nil || c.httpClient == nil {
		return apperrors.New(apperrors.CodeUnknown, "api client is not configured")
	}

	timeout := timeouts.APIRequest
	if strings.HasPrefix(contentType, "multipart/") {
		timeout = timeouts.Upload
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "build request")
		return apperrors.Wrap(apperrors.CodeUnknown, "build asset api request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "transport failure")
		return apperrors.Wrap(apperrors.CodeNetworkUnavailable, "asset api unreachable", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := apperrors.FromHTTPStatus(resp.StatusCode)
		span.SetStatus(otelcodes.Error, string(code))
		return apperrors.New(code, errorMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return apperrors.Wrap(apperrors.CodeServerFailure, "decode asset api response", err)
	}
	return nil
}

// errorMessage extracts the human-readable message from an error response,
// falling back to the HTTP status line.
func errorMessage(resp *http.Response) string {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
	}
	return "asset api returned " + resp.Status
}
