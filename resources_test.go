package sweetpay

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRouting(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK"})}
	c := NewClient("token", WithConnector(fake), WithoutValidators())

	tests := []struct {
		name       string
		call       func() (*Response, error)
		wantMethod string
		wantURL    string
	}{
		{
			"subscription create",
			func() (*Response, error) { return c.Subscription().Create(context.Background(), nil) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/create",
		},
		{
			"subscription query",
			func() (*Response, error) { return c.Subscription().Query(context.Background(), 42) },
			http.MethodGet, "https://api.kriita.com/subscription/v1/42/query",
		},
		{
			"subscription update",
			func() (*Response, error) { return c.Subscription().Update(context.Background(), 42, nil) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/42/update",
		},
		{
			"subscription search",
			func() (*Response, error) { return c.Subscription().Search(context.Background(), nil) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/search",
		},
		{
			"subscription log",
			func() (*Response, error) { return c.Subscription().ListLog(context.Background(), 42) },
			http.MethodGet, "https://api.kriita.com/subscription/v1/42/log",
		},
		{
			"subscription regret",
			func() (*Response, error) { return c.Subscription().Regret(context.Background(), 42) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/42/regret",
		},
		{
			"subscription extend",
			func() (*Response, error) { return c.Subscription().Extend(context.Background(), 42, nil) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/42/extend",
		},
		{
			"subscription expire",
			func() (*Response, error) { return c.Subscription().Expire(context.Background(), 42) },
			http.MethodPost, "https://api.kriita.com/subscription/v1/42/expire",
		},
		{
			"creditcheck check",
			func() (*Response, error) { return c.Creditcheck().Check(context.Background(), nil) },
			http.MethodPost, "https://api.kriita.com/creditcheck/v2/check",
		},
		{
			"creditcheck search",
			func() (*Response, error) { return c.Creditcheck().Search(context.Background(), nil) },
			http.MethodPost, "https://api.kriita.com/creditcheck/v2/search",
		},
		{
			"checkout create session",
			func() (*Response, error) { return c.Checkout().CreateSession(context.Background(), nil) },
			http.MethodPost, "https://checkout.paylevo.com/v1/session/create",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, fake.method)
			assert.Equal(t, tt.wantURL, fake.url)
		})
	}
}

func TestResourceRoutingStage(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK"})}
	c := NewClient("token", WithConnector(fake), WithStage(), WithoutValidators())

	_, err := c.Subscription().Create(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.stage.kriita.com/subscription/v1/create", fake.url)

	_, err = c.Creditcheck().Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.stage.kriita.com/creditcheck/v2/check", fake.url)

	_, err = c.Checkout().CreateSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stage.paylevo.com/v1/session/create", fake.url)
}

func TestResourceParamsPassThrough(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK"})}
	c := NewClient("token", WithConnector(fake), WithoutValidators())

	params := map[string]any{"amount": "10.00", "currency": "SEK"}
	_, err := c.Subscription().Create(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, params, fake.params)
}
