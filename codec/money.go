package codec

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-pix-gateway/core"
)

// ToMajorUnits renders a minor-unit amount as the scheme's decimal string
// with exactly two fraction digits (12345 -> "123.45").
func ToMajorUnits(amount core.Money) string {
	return decimal.New(int64(amount), -2).StringFixed(2)
}

// ToMinorUnits parses a scheme decimal amount back into minor units,
// rounding half-up on sub-cent input. ToMinorUnits(ToMajorUnits(m)) == m for
// every representable minor-unit integer.
func ToMinorUnits(value string) (core.Money, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, core.MissingInputError("codec: monetary amount is required")
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return 0, UnmappedValueError("money", value)
	}
	cents := parsed.Shift(2).Round(0)
	if !cents.IsInteger() {
		return 0, UnmappedValueError("money", value)
	}
	return core.Money(cents.IntPart()), nil
}

// ToMajorUnitsFloat is for wire schemas that carry amounts as JSON numbers
// rather than strings.
func ToMajorUnitsFloat(amount core.Money) float64 {
	major, _ := decimal.New(int64(amount), -2).Float64()
	return major
}

// FloatToMinorUnits converts a JSON-number amount into minor units with
// half-up rounding.
func FloatToMinorUnits(value float64) core.Money {
	cents := decimal.NewFromFloat(value).Shift(2).Round(0)
	return core.Money(cents.IntPart())
}
