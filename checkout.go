package sweetpay

import (
	"context"
	"net/http"

	"github.com/sweetpay/sweetpay-go/validate"
)

// NamespaceCheckout is the API namespace for checkout sessions.
const NamespaceCheckout = "checkout_session"

const (
	checkoutStageURL      = "https://checkout.stage.paylevo.com/v1"
	checkoutProductionURL = "https://checkout.paylevo.com/v1"
)

var checkoutScope = validate.NewScope(NamespaceCheckout, 1)

// CheckoutSessionV1 wraps the checkout session v1 API.
type CheckoutSessionV1 struct {
	c *Client
}

// CreateSession creates a checkout session. The envelope payload
// carries the session id and the URL to redirect the customer to.
func (cs *CheckoutSessionV1) CreateSession(ctx context.Context, params map[string]any) (*Response, error) {
	base := checkoutProductionURL
	if cs.c.stage {
		base = checkoutStageURL
	}
	return cs.c.invoke(ctx, http.MethodPost, base+"/session/create", checkoutScope, params)
}
