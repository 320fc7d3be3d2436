package codec

import (
	"strings"
	"time"

	"github.com/goliatone/go-pix-gateway/core"
)

// Wire date shapes used by the scheme. Day precision for due dates and
// directory listings; UTC second precision for instants.
const (
	WireDateLayout    = "2006-01-02"
	WireInstantLayout = time.RFC3339
)

// FormatWireDate renders a day-precision wire date.
func FormatWireDate(t time.Time) (string, error) {
	if t.IsZero() {
		return "", core.MissingInputError("codec: date is required")
	}
	return t.UTC().Format(WireDateLayout), nil
}

// ParseWireDate reads a day-precision wire date.
func ParseWireDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, core.MissingInputError("codec: date is required")
	}
	parsed, err := time.Parse(WireDateLayout, value)
	if err != nil {
		return time.Time{}, UnmappedValueError("date", value)
	}
	return parsed.UTC(), nil
}

// FormatWireInstant renders a second-precision UTC instant.
func FormatWireInstant(t time.Time) (string, error) {
	if t.IsZero() {
		return "", core.MissingInputError("codec: instant is required")
	}
	return t.UTC().Truncate(time.Second).Format(WireInstantLayout), nil
}

// ParseWireInstant reads a second-precision instant, normalized to UTC.
func ParseWireInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, core.MissingInputError("codec: instant is required")
	}
	parsed, err := time.Parse(WireInstantLayout, value)
	if err != nil {
		return time.Time{}, UnmappedValueError("instant", value)
	}
	return parsed.UTC(), nil
}
