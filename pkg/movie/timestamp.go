package movie

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayout matches the ISO 8601 form browsers emit (millisecond precision, UTC).
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is an ISO 8601 instant that tolerates empty values on decode.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalText lets yaml/toml encoders reuse the JSON form.
func (t Timestamp) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

func (t *Timestamp) UnmarshalText(b []byte) error {
	return t.UnmarshalJSON([]byte(fmt.Sprintf("%q", string(b))))
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
