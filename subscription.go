package sweetpay

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sweetpay/sweetpay-go/validate"
)

// NamespaceSubscription is the API namespace for subscriptions.
const NamespaceSubscription = "subscription"

const (
	subscriptionStageURL      = "https://api.stage.kriita.com/subscription/v1"
	subscriptionProductionURL = "https://api.kriita.com/subscription/v1"
)

var subscriptionScope = validate.NewScope(NamespaceSubscription, 1)

// SubscriptionV1 wraps the subscription v1 API.
type SubscriptionV1 struct {
	c *Client
}

func (s *SubscriptionV1) url(parts ...string) string {
	base := subscriptionProductionURL
	if s.c.stage {
		base = subscriptionStageURL
	}
	return base + "/" + strings.Join(parts, "/")
}

// Create creates a subscription.
func (s *SubscriptionV1) Create(ctx context.Context, params map[string]any) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url("create"), subscriptionScope, params)
}

// Query fetches a subscription.
func (s *SubscriptionV1) Query(ctx context.Context, subscriptionID int64) (*Response, error) {
	return s.c.invoke(ctx, http.MethodGet, s.url(formatID(subscriptionID), "query"), subscriptionScope, nil)
}

// Update updates a subscription.
func (s *SubscriptionV1) Update(ctx context.Context, subscriptionID int64, params map[string]any) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url(formatID(subscriptionID), "update"), subscriptionScope, params)
}

// Search searches for subscriptions. The envelope payload is a list.
func (s *SubscriptionV1) Search(ctx context.Context, params map[string]any) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url("search"), subscriptionScope, params)
}

// ListLog lists the log entries of a subscription.
func (s *SubscriptionV1) ListLog(ctx context.Context, subscriptionID int64) (*Response, error) {
	return s.c.invoke(ctx, http.MethodGet, s.url(formatID(subscriptionID), "log"), subscriptionScope, nil)
}

// Regret regrets a subscription before its first execution.
func (s *SubscriptionV1) Regret(ctx context.Context, subscriptionID int64) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url(formatID(subscriptionID), "regret"), subscriptionScope, nil)
}

// Extend extends a subscription with additional executions.
func (s *SubscriptionV1) Extend(ctx context.Context, subscriptionID int64, params map[string]any) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url(formatID(subscriptionID), "extend"), subscriptionScope, params)
}

// Expire expires a subscription so no further executions run.
func (s *SubscriptionV1) Expire(ctx context.Context, subscriptionID int64) (*Response, error) {
	return s.c.invoke(ctx, http.MethodPost, s.url(formatID(subscriptionID), "expire"), subscriptionScope, nil)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
