package sweetpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Connector is the transport collaborator. It sends one request and
// reports the raw outcome without interpreting it: HTTP errors,
// timeouts and undecodable bodies all come back inside the RawOutcome.
// The returned error is reserved for caller misuse, such as an
// unsupported method.
type Connector interface {
	Send(ctx context.Context, method, url string, params map[string]any) (*RawOutcome, error)
}

const userAgent = "sweetpay-go"

// HTTPConnector implements Connector over net/http.
type HTTPConnector struct {
	client  *http.Client
	token   string
	headers map[string]string
	log     *zap.Logger
	tracer  trace.Tracer
}

// ConnectorOption configures an HTTPConnector.
type ConnectorOption func(*HTTPConnector)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ConnectorOption {
	return func(h *HTTPConnector) { h.client = c }
}

// WithHeaders merges extra headers into every request.
func WithHeaders(headers map[string]string) ConnectorOption {
	return func(h *HTTPConnector) {
		for k, v := range headers {
			h.headers[k] = v
		}
	}
}

// WithConnectorLogger sets the request logger.
func WithConnectorLogger(log *zap.Logger) ConnectorOption {
	return func(h *HTTPConnector) { h.log = log.Named("sweetpay.connector") }
}

// NewHTTPConnector builds a connector that authenticates every request
// with the given API token. The timeout bounds the full request,
// including body read.
func NewHTTPConnector(token string, timeout time.Duration, opts ...ConnectorOption) *HTTPConnector {
	h := &HTTPConnector{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		token:   token,
		headers: map[string]string{},
		log:     zap.NewNop(),
		tracer:  otel.Tracer("github.com/sweetpay/sweetpay-go"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send dispatches a single GET or POST request. Transport failures are
// captured in the outcome rather than returned, so the classifier can
// turn them into typed errors.
func (h *HTTPConnector) Send(ctx context.Context, method, url string, params map[string]any) (*RawOutcome, error) {
	var body io.Reader
	switch method {
	case http.MethodGet:
	case http.MethodPost:
		encoded, err := encodeParams(params)
		if err != nil {
			return nil, fmt.Errorf("encode request params: %w", err)
		}
		body = bytes.NewReader(encoded)
	default:
		return nil, fmt.Errorf("only GET and POST are supported, not %s", method)
	}

	ctx, span := h.tracer.Start(ctx, "sweetpay.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", h.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	h.log.Info("sending request", zap.String("method", method), zap.String("url", url))

	resp, err := h.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &RawOutcome{TransportErr: err, TimedOut: isTimeout(err)}, nil
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw := &RawOutcome{StatusCode: resp.StatusCode, Raw: resp}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return &RawOutcome{TransportErr: err, TimedOut: isTimeout(err)}, nil
	}

	h.log.Info("received response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status_code", resp.StatusCode))

	if len(payload) > 0 {
		var decoded any
		if err := json.Unmarshal(payload, &decoded); err != nil {
			h.log.Error("could not decode JSON response",
				zap.String("url", url), zap.Error(err))
		} else {
			raw.Body = decoded
		}
	}
	return raw, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
