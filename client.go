package sweetpay

import (
	"context"
	"time"

	"github.com/sweetpay/sweetpay-go/validate"
	"go.uber.org/zap"
)

// DefaultTimeout bounds each operation when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 15 * time.Second

// Client is the developer-facing entry point. Create one per API
// token and reach the resources through Subscription, Creditcheck and
// Checkout. The zero value is not usable; use NewClient.
type Client struct {
	connector     Connector
	validators    *validate.Registry
	useValidators bool
	stage         bool
	timeout       time.Duration
	log           *zap.Logger

	token string
}

// Option configures a Client.
type Option func(*Client)

// WithStage points the client at the stage environment instead of
// production.
func WithStage() Option {
	return func(c *Client) { c.stage = true }
}

// WithTimeout sets the per-operation timeout applied when the caller's
// context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithConnector replaces the transport collaborator. Useful for tests
// and for callers who need custom transport behavior.
func WithConnector(conn Connector) Option {
	return func(c *Client) { c.connector = conn }
}

// WithValidators injects a validator registry instead of the shared
// process-wide default.
func WithValidators(reg *validate.Registry) Option {
	return func(c *Client) { c.validators = reg }
}

// WithoutValidators disables the validation pipeline entirely;
// envelopes carry the body exactly as decoded.
func WithoutValidators() Option {
	return func(c *Client) { c.useValidators = false }
}

// WithLogger sets the client logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log.Named("sweetpay") }
}

// NewClient builds a client authenticating with the given API token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:         token,
		validators:    validate.Default(),
		useValidators: true,
		timeout:       DefaultTimeout,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.connector == nil {
		c.connector = NewHTTPConnector(token, c.timeout, WithConnectorLogger(c.log))
	}
	return c
}

// Subscription returns the subscription v1 resource.
func (c *Client) Subscription() *SubscriptionV1 { return &SubscriptionV1{c: c} }

// Creditcheck returns the creditcheck v2 resource.
func (c *Client) Creditcheck() *CreditcheckV2 { return &CreditcheckV2{c: c} }

// Checkout returns the checkout session v1 resource.
func (c *Client) Checkout() *CheckoutSessionV1 { return &CheckoutSessionV1{c: c} }

// invoke is the per-operation pipeline: send, classify, validate.
// Exactly one of the envelope and the error is non-nil. Errors from
// the classifier are *Error values; errors from a validator transform
// are returned as-is, so callers can tell a misbehaving transform of
// their own from an API failure.
func (c *Client) invoke(ctx context.Context, method, url string, scope validate.Scope, params map[string]any) (*Response, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.connector.Send(ctx, method, url, params)
	if err != nil {
		return nil, err
	}

	resp, apiErr := classify(raw)
	if apiErr != nil {
		c.log.Debug("request classified as failure",
			zap.String("url", url),
			zap.Stringer("kind", apiErr.Kind),
			zap.Int("status_code", apiErr.StatusCode))
		return nil, apiErr
	}

	if c.useValidators && resp.Data != nil {
		data, err := validate.Apply(c.validators, scope, resp.Data)
		if err != nil {
			return nil, err
		}
		resp.Data = data
	}
	return resp, nil
}
