package codec

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-pix-gateway/core"
)

// Scheme-mandated caps for free-text name fields: 25 for names carried in an
// EMV payload, 15 for the EMV city field, 80 for directory and payment party
// names.
const (
	NameLengthShort   = 25
	NameLengthCompact = 15
	NameLengthLong    = 80
)

var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// SanitizeName upper-cases, strips accents and non-alphanumeric characters,
// and caps the result at maxLen. Spaces between words are preserved and
// collapsed.
func SanitizeName(value string, maxLen int) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", core.MissingInputError("codec: name is required")
	}
	stripped, _, err := transform.String(accentStripper, value)
	if err != nil {
		stripped = value
	}
	stripped = strings.ToUpper(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	lastSpace := true
	for _, r := range stripped {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' && !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", UnmappedValueError("name", value)
	}
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimSpace(out[:maxLen])
	}
	return out, nil
}
