package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDecodesSubscriptionDates(t *testing.T) {
	body := map[string]any{
		"status": "OK",
		"payload": map[string]any{
			"subscriptionId": float64(42),
			"startsAt":       "2020-01-01",
			"createdAt":      "2020-01-02T10:30:00+01:00",
		},
	}

	out, err := Apply(NewDefaultRegistry(), NewScope("subscription", 1), body)
	require.NoError(t, err)

	payload := out.(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), payload["startsAt"])
	assert.Equal(t, time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC), payload["createdAt"])
	assert.Equal(t, float64(42), payload["subscriptionId"])
}

func TestApplyDecodesSearchResults(t *testing.T) {
	body := map[string]any{
		"status": "OK",
		"payload": []any{
			map[string]any{"startsAt": "2020-01-01", "createdAt": "2020-01-02T00:00:00Z"},
			map[string]any{"startsAt": "2021-06-15"},
		},
	}

	out, err := Apply(NewDefaultRegistry(), NewScope("subscription", 1), body)
	require.NoError(t, err)

	list := out.(map[string]any)["payload"].([]any)
	first := list[0].(map[string]any)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), first["startsAt"])
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), first["createdAt"])
	second := list[1].(map[string]any)
	assert.Equal(t, time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), second["startsAt"])
}

func TestApplySkipsAbsentPaths(t *testing.T) {
	body := map[string]any{"status": "OK", "payload": map[string]any{"id": float64(1)}}
	out, err := Apply(NewDefaultRegistry(), NewScope("subscription", 1), body)
	require.NoError(t, err)
	assert.Equal(t, body, out)
}

func TestApplyLeavesOtherScopesAlone(t *testing.T) {
	body := map[string]any{"payload": map[string]any{"startsAt": "2020-01-01"}}
	out, err := Apply(NewDefaultRegistry(), NewScope("creditcheck", 2), body)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", out.(map[string]any)["payload"].(map[string]any)["startsAt"])
}

func TestApplyTransformErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	scope := NewScope("subscription", 1)
	reg.Add(scope, Keys("payload"), func(any) (any, error) { return nil, boom })

	_, err := Apply(reg, scope, map[string]any{"payload": map[string]any{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "payload")
	assert.Contains(t, err.Error(), "subscription/v1")
}

func TestApplyEmptyPathReplacesBody(t *testing.T) {
	reg := NewRegistry()
	scope := NewScope("subscription", 1)
	reg.Add(scope, Path{}, func(any) (any, error) { return "replaced", nil })

	out, err := Apply(reg, scope, map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, "replaced", out)
}

func TestApplyNilAndEmptyBodies(t *testing.T) {
	reg := NewDefaultRegistry()
	scope := NewScope("subscription", 1)

	out, err := Apply(reg, scope, nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = Apply(reg, scope, []any{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, out)
}

func TestApplyBadDateFailsLoudly(t *testing.T) {
	body := map[string]any{"payload": map[string]any{"startsAt": "01/02/2020"}}
	_, err := Apply(NewDefaultRegistry(), NewScope("subscription", 1), body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode date")
}

func TestDecodeDatePassThrough(t *testing.T) {
	for _, v := range []any{nil, "", float64(7), true} {
		got, err := DecodeDate(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeDatetime(t *testing.T) {
	got, err := DecodeDatetime("2020-03-04T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 4, 10, 0, 0, 0, time.UTC), got)

	got, err = DecodeDatetime("2020-03-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = DecodeDatetime("not a time")
	require.Error(t, err)
}
