package codec

import (
	"strings"

	"github.com/goliatone/go-pix-gateway/core"
)

const (
	cpfDigits    = 11
	cnpjDigits   = 14
	ispbDigits   = 8
	branchDigits = 4
)

// FormatDocument renders a CPF/CNPJ digits-only, zero-padded to 11 or 14
// digits depending on person type.
func FormatDocument(doc core.Document) (string, error) {
	if strings.TrimSpace(doc.Value) == "" {
		return "", core.MissingInputError("codec: document value is required")
	}
	digits := digitsOnly(doc.Value)
	if digits == "" {
		return "", UnmappedValueError("document", doc.Value)
	}
	switch doc.PersonType {
	case core.PersonTypeNatural:
		return padDigits(digits, cpfDigits)
	case core.PersonTypeLegal:
		return padDigits(digits, cnpjDigits)
	default:
		return "", UnmappedValueError("person type", string(doc.PersonType))
	}
}

// ParseDocument infers person type from the wire document length.
func ParseDocument(value string) (core.Document, error) {
	digits := digitsOnly(value)
	switch {
	case digits == "":
		return core.Document{}, core.MissingInputError("codec: document value is required")
	case len(digits) <= cpfDigits:
		padded, err := padDigits(digits, cpfDigits)
		if err != nil {
			return core.Document{}, err
		}
		return core.Document{Value: padded, PersonType: core.PersonTypeNatural}, nil
	case len(digits) <= cnpjDigits:
		padded, err := padDigits(digits, cnpjDigits)
		if err != nil {
			return core.Document{}, err
		}
		return core.Document{Value: padded, PersonType: core.PersonTypeLegal}, nil
	default:
		return core.Document{}, UnmappedValueError("document", value)
	}
}

// FormatISPB renders an 8-digit zero-padded routing code.
func FormatISPB(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", core.MissingInputError("codec: ispb is required")
	}
	digits := digitsOnly(value)
	if digits == "" {
		return "", UnmappedValueError("ispb", value)
	}
	return padDigits(digits, ispbDigits)
}

// FormatBranch renders a 4-digit zero-padded branch number.
func FormatBranch(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", core.MissingInputError("codec: branch is required")
	}
	digits := digitsOnly(value)
	if digits == "" {
		return "", UnmappedValueError("branch", value)
	}
	return padDigits(digits, branchDigits)
}

// FormatAccountNumber strips non-digit separators from an account number.
func FormatAccountNumber(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", core.MissingInputError("codec: account number is required")
	}
	digits := digitsOnly(value)
	if digits == "" {
		return "", UnmappedValueError("account number", value)
	}
	return digits, nil
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func padDigits(digits string, width int) (string, error) {
	if len(digits) > width {
		return "", UnmappedValueError("identity field", digits)
	}
	return strings.Repeat("0", width-len(digits)) + digits, nil
}
