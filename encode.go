package sweetpay

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateFormat is the wire format for date-only values.
const DateFormat = "2006-01-02"

// Date marshals as a plain YYYY-MM-DD string, which is what the API
// expects for fields like startsAt.
type Date struct{ time.Time }

// NewDate builds a Date from a calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateFormat))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// encodeParams encodes request parameters as JSON. A nil or empty map
// encodes to an empty JSON object so POST bodies are never absent.
// Amounts should be passed as strings where money precision matters;
// the encoder does not rewrite numbers.
func encodeParams(params map[string]any) ([]byte, error) {
	if len(params) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(params); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
