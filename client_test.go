package sweetpay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetpay/sweetpay-go/validate"
)

// fakeConnector records the last request and replays a canned outcome.
type fakeConnector struct {
	method      string
	url         string
	params      map[string]any
	hadDeadline bool

	outcome *RawOutcome
	err     error
}

func (f *fakeConnector) Send(ctx context.Context, method, url string, params map[string]any) (*RawOutcome, error) {
	f.method = method
	f.url = url
	f.params = params
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func okOutcome(body any) *RawOutcome {
	return &RawOutcome{StatusCode: 200, Body: body}
}

func TestClientSuccess(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{
		"status":  "OK",
		"payload": map[string]any{"subscriptionId": float64(7), "startsAt": "2020-01-01"},
	})}
	c := NewClient("token", WithConnector(fake), WithValidators(validate.NewDefaultRegistry()))

	resp, err := c.Subscription().Query(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.StatusOK())

	payload := resp.Data.(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), payload["startsAt"])
	assert.True(t, fake.hadDeadline)
}

func TestClientReturnsTypedErrors(t *testing.T) {
	fake := &fakeConnector{outcome: &RawOutcome{StatusCode: 401}}
	c := NewClient("token", WithConnector(fake))

	resp, err := c.Subscription().Query(context.Background(), 1)
	require.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestClientSkipsValidatorsOnFailure(t *testing.T) {
	// A failed classification must never reach the pipeline, even when
	// the error body matches a registered rule path.
	reg := validate.NewRegistry()
	called := false
	reg.Add(validate.Global(), validate.Keys("payload"), func(v any) (any, error) {
		called = true
		return v, nil
	})
	fake := &fakeConnector{outcome: &RawOutcome{
		StatusCode: 400,
		Body:       map[string]any{"payload": map[string]any{}},
	}}
	c := NewClient("token", WithConnector(fake), WithValidators(reg))

	_, err := c.Subscription().Create(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, called)
}

func TestClientWithoutValidators(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{
		"status":  "OK",
		"payload": map[string]any{"startsAt": "2020-01-01"},
	})}
	c := NewClient("token", WithConnector(fake), WithoutValidators())

	resp, err := c.Subscription().Query(context.Background(), 1)
	require.NoError(t, err)
	payload := resp.Data.(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, "2020-01-01", payload["startsAt"])
}

func TestClientValidatorScoping(t *testing.T) {
	// A creditcheck rule must not fire on subscription responses.
	reg := validate.NewRegistry()
	reg.Add(validate.NewScope(NamespaceCreditcheck, 2), validate.Keys("payload"), func(any) (any, error) {
		return nil, errors.New("should not run")
	})
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK", "payload": map[string]any{}})}
	c := NewClient("token", WithConnector(fake), WithValidators(reg))

	_, err := c.Subscription().Create(context.Background(), nil)
	require.NoError(t, err)

	_, err = c.Creditcheck().Check(context.Background(), nil)
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestClientValidatorErrorIsNotAPIError(t *testing.T) {
	boom := errors.New("transform exploded")
	reg := validate.NewRegistry()
	reg.Add(validate.Global(), validate.Keys("payload"), func(any) (any, error) { return nil, boom })
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK", "payload": map[string]any{}})}
	c := NewClient("token", WithConnector(fake), WithValidators(reg))

	_, err := c.Subscription().Create(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	_, ok := AsError(err)
	assert.False(t, ok)
}

func TestClientHonorsCallerDeadline(t *testing.T) {
	fake := &fakeConnector{outcome: okOutcome(map[string]any{"status": "OK"})}
	c := NewClient("token", WithConnector(fake))

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(time.Hour))
	defer cancel()
	_, err := c.Subscription().Query(ctx, 1)
	require.NoError(t, err)
	assert.True(t, fake.hadDeadline)
}

func TestClientPropagatesConnectorMisuse(t *testing.T) {
	fake := &fakeConnector{err: errors.New("bad connector config")}
	c := NewClient("token", WithConnector(fake))
	_, err := c.Subscription().Query(context.Background(), 1)
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
}
