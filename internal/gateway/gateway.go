// Package gateway is the sole path by which the client issues backend API
// requests. It centralizes attaching the bearer credential and caller
// identity, and collapses every failure cause into one uniform report path.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"caselink/internal/platform/metrics"
	"caselink/internal/platform/notify"
)

// failureDescription is the single user-visible text for any gateway
// failure, regardless of cause; callers inspect Result.ErrMessage for finer
// detail.
const failureDescription = "Internal server error. Please try again later."

// SessionReader is the read-only view of the session the gateway needs.
type SessionReader interface {
	Token() (string, bool)
	UserLabel() string
}

// Gateway issues authorized requests against the backend base URL. One
// attempt per call: no retries, no deadline beyond what ctx carries.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	session    SessionReader
	notifier   notify.Notifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
}

func New(baseURL string, session SessionReader, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    session,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("caselink/gateway"),
	}
}

// Site creates a call site bound to a default resource path. Each site tracks
// its own loading/data/error triple, independent of every other site.
func (g *Gateway) Site(defaultPath string) *CallSite {
	return &CallSite{gateway: g, defaultPath: defaultPath}
}

// errorBody is the error envelope the backend uses; detail is optional.
type errorBody struct {
	Detail string `json:"detail"`
}

// do executes a single request and maps the outcome to a Result. Every
// failure cause converges on the same notification; only the recorded
// message differs.
func (g *Gateway) do(ctx context.Context, method, path string, payload any, params map[string]string) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("caselink.path", path),
		))
	defer span.End()

	req, err := g.buildRequest(ctx, method, path, payload, params)
	if err != nil {
		return g.fail(span, method, path, err.Error())
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// Transport rejection with no response body: the generic transport
		// error message is all there is to record.
		return g.fail(span, method, path, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return g.fail(span, method, path, err.Error())
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		var envelope errorBody
		if json.Unmarshal(body, &envelope) == nil && envelope.Detail != "" {
			message = envelope.Detail
		}
		return g.fail(span, method, path, message)
	}

	span.SetStatus(codes.Ok, "")
	g.metrics.GatewayRequests.WithLabelValues(method, "ok").Inc()
	return okResult(body)
}

// fail records the message, emits exactly one notification, and returns the
// nil-data sentinel.
func (g *Gateway) fail(span trace.Span, method, path, message string) Result {
	span.SetStatus(codes.Error, message)
	g.metrics.GatewayRequests.WithLabelValues(method, "error").Inc()
	g.metrics.GatewayFailures.Inc()
	g.logger.Warn("gateway request failed", "method", method, "path", path, "error", message)
	g.notifier.Error("API Error", failureDescription)
	return errResult(message)
}

func (g *Gateway) buildRequest(ctx context.Context, method, path string, payload any, params map[string]string) (*http.Request, error) {
	target := g.baseURL + "/" + strings.TrimLeft(path, "/")

	var body io.Reader
	jsonBody := method != http.MethodGet
	if jsonBody {
		if payload == nil {
			payload = map[string]any{}
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	if method == http.MethodGet && len(params) > 0 {
		query := url.Values{}
		for k, v := range params {
			query.Set(k, v)
		}
		req.URL.RawQuery = query.Encode()
	}

	if token, ok := g.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if jsonBody {
		// The caller-identity header rides only on JSON bodies; GET and
		// multipart requests omit it.
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("user-id", g.session.UserLabel())
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}
