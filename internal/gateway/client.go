package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/metrics"
	"github.com/javiersolis/bookstore-admin-gateway/internal/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TimestampLayout is the zone-less local-time format the order service
// expects in upsert payloads. The missing UTC suffix is deliberate; the
// receiving service parses local time and rejects trailing markers.
const TimestampLayout = "2006-01-02T15:04:05"

// client is the shared HTTP plumbing behind every typed gateway client.
// It attaches the session bearer token, decodes upstream error bodies into
// the AppError taxonomy, and never retries: a failed call surfaces
// immediately.
type client struct {
	http    *http.Client
	baseURL string
	service string
}

func newClient(baseURL, service string, timeout time.Duration) *client {
	return &client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		service: service,
	}
}

// doJSON issues one request and decodes a JSON response into out (skipped
// when out is nil). Error responses never reach out; they are classified
// first.
func (c *client) doJSON(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.UpstreamError("Unexpected response from remote service").
			WithDetail(fmt.Sprintf("%s %s: malformed response body", c.service, path)).
			WithError(err)
	}

	return nil
}

func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.InternalError("Failed to encode request").WithError(err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	sess := session.FromContext(ctx)
	if token := sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstreamCall(c.service, method, 0, time.Since(start))
		slog.Warn("Upstream call failed",
			slog.String("service", c.service),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return nil, errors.UpstreamError("Remote service is unavailable. Please try again.").
			WithDetail(fmt.Sprintf("%s %s %s", method, c.service, path)).
			WithError(err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstreamCall(c.service, method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.UpstreamError("Failed to read remote response").WithError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	return nil, c.classifyError(sess, resp.StatusCode, raw, path)
}

// classifyError normalizes any upstream error shape into the taxonomy. A
// 401 additionally invalidates the session so the caller is sent back to
// sign-in; every gateway call honors this uniformly.
func (c *client) classifyError(sess *session.Session, status int, body []byte, path string) error {
	switch status {
	case http.StatusUnauthorized:
		sess.Invalidate()

		return errors.UnauthorizedError("Session expired. Please sign in again.").
			WithDetail(fmt.Sprintf("%s %s returned 401", c.service, path))
	case http.StatusNotFound:
		return errors.NotFoundError("Not found").
			WithDetail(fmt.Sprintf("%s %s returned 404", c.service, path))
	}

	detail := decodeErrorBody(body)

	slog.Warn("Upstream returned an error",
		slog.String("service", c.service),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("detail", detail),
	)

	return errors.UpstreamError("An error occurred. Please try again.").
		WithDetail(fmt.Sprintf("%s %s: %d %s", c.service, path, status, detail))
}

// decodeErrorBody extracts a human-readable message from the error shapes
// the backends are known to produce: a plain string, {"title": ...},
// {"mensaje": ...} or {"message": ...}.
func decodeErrorBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var shaped struct {
		Title   string `json:"title"`
		Mensaje string `json:"mensaje"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &shaped); err == nil {
		switch {
		case shaped.Title != "":
			return shaped.Title
		case shaped.Mensaje != "":
			return shaped.Mensaje
		case shaped.Message != "":
			return shaped.Message
		}
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain
	}

	return trimmed
}
