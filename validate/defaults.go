package validate

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// DecodeDate parses a YYYY-MM-DD string into a time.Time at midnight
// UTC. Nil and empty values pass through untouched, matching response
// fields the API leaves unset.
func DecodeDate(value any) (any, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return value, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("decode date %q: %w", s, err)
	}
	return t, nil
}

// DecodeDatetime parses an RFC 3339 timestamp and normalizes it to
// UTC. Bare dates are accepted too, since some endpoints return
// date-only values in datetime positions. Nil and empty values pass
// through untouched.
func DecodeDatetime(value any) (any, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return value, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("decode datetime %q: %w", s, err)
	}
	return t, nil
}

// defaultRules is the documented built-in rule set: subscription v1
// responses carry payload.startsAt as a date and payload.createdAt as
// a datetime, and search responses carry a list of such payloads.
func defaultRules() []Rule {
	subV1 := NewScope("subscription", 1)
	return []Rule{
		{Scope: subV1, Path: Keys("payload", "startsAt"), Transform: DecodeDate},
		{Scope: subV1, Path: Keys("payload", "createdAt"), Transform: DecodeDatetime},
		{Scope: subV1, Path: Keys("payload"), Transform: decodePayloadList},
	}
}

// decodePayloadList handles search responses, where payload is a list
// of subscriptions instead of a single one. Non-list payloads pass
// through; the scalar rules above already covered them.
func decodePayloadList(value any) (any, error) {
	list, ok := value.([]any)
	if !ok {
		return value, nil
	}
	for _, item := range list {
		sub, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, field := range []string{"startsAt", "createdAt"} {
			raw, ok := sub[field]
			if !ok {
				continue
			}
			decoded, err := DecodeDatetime(raw)
			if err != nil {
				return nil, err
			}
			sub[field] = decoded
		}
	}
	return list, nil
}
