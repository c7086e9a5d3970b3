package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Timestamp is a time.Time that survives sloppy upstream data. It marshals
// as RFC 3339 and accepts RFC 3339, unix seconds or unix milliseconds on the
// way in. Anything unparseable decodes to the zero value instead of failing
// the whole payload; the timeline sorts zero as "just arrived".
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{time.Now()}
}

func At(t time.Time) Timestamp {
	return Timestamp{t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339Nano))), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if len(raw) == 0 || raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		t.Time = parsed
		return nil
	}
	if ticks, err := strconv.ParseInt(raw, 10, 64); err == nil {
		// Values beyond the year 33658 in seconds are taken as milliseconds.
		if ticks > 1_000_000_000_000 {
			t.Time = time.UnixMilli(ticks)
		} else {
			t.Time = time.Unix(ticks, 0)
		}
		return nil
	}

	log.Warn().Str("value", raw).Msg("Unable to parse timestamp, falling back to zero value...")
	t.Time = time.Time{}
	return nil
}
