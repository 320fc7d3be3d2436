package codec

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pix-gateway/core"
)

// UnmappedValueError marks a value outside a known enumeration, in either
// direction. Callers must treat it as a hard failure.
func UnmappedValueError(enum string, value any) error {
	return goerrors.New(
		fmt.Sprintf("codec: no %s mapping for %v", enum, value),
		goerrors.CategoryValidation,
	).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(core.GatewayErrorUnmappedValue).
		WithMetadata(map[string]any{
			"enum":  enum,
			"value": fmt.Sprint(value),
		})
}

// IsUnmappedValue reports whether err is an unmapped-value error.
func IsUnmappedValue(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == core.GatewayErrorUnmappedValue
}
