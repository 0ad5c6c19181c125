package sweetpay

import (
	"context"
	"net/http"

	"github.com/sweetpay/sweetpay-go/validate"
)

// NamespaceCreditcheck is the API namespace for credit checks.
const NamespaceCreditcheck = "creditcheck"

const (
	creditcheckStageURL      = "https://api.stage.kriita.com/creditcheck/v2"
	creditcheckProductionURL = "https://api.kriita.com/creditcheck/v2"
)

var creditcheckScope = validate.NewScope(NamespaceCreditcheck, 2)

// CreditcheckV2 wraps the creditcheck v2 API.
type CreditcheckV2 struct {
	c *Client
}

func (cc *CreditcheckV2) url(part string) string {
	base := creditcheckProductionURL
	if cc.c.stage {
		base = creditcheckStageURL
	}
	return base + "/" + part
}

// Check performs a credit check.
func (cc *CreditcheckV2) Check(ctx context.Context, params map[string]any) (*Response, error) {
	return cc.c.invoke(ctx, http.MethodPost, cc.url("check"), creditcheckScope, params)
}

// Search searches previous credit checks.
func (cc *CreditcheckV2) Search(ctx context.Context, params map[string]any) (*Response, error) {
	return cc.c.invoke(ctx, http.MethodPost, cc.url("search"), creditcheckScope, params)
}
