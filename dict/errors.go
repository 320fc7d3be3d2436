package dict

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pix-gateway/core"
)

// roleError envelopes a local role-legality rejection so callers can branch
// on it the same way they branch on the scheme's own participant rejection.
func roleError(source error) error {
	return goerrors.Wrap(source, goerrors.CategoryAuthz, "dict: claim operation not allowed for role").
		WithCode(http.StatusForbidden).
		WithTextCode(core.GatewayErrorClaimRole)
}
