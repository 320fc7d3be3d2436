package core

import (
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	GatewayErrorBadInput          = "PIX_BAD_INPUT"
	GatewayErrorOffline           = "PIX_OFFLINE"
	GatewayErrorAuthFailed        = "PIX_AUTH_FAILED"
	GatewayErrorProtocol          = "PIX_PROTOCOL_VIOLATION"
	GatewayErrorUnmappedValue     = "PIX_UNMAPPED_VALUE"
	GatewayErrorKeyDuplicate      = "PIX_KEY_DUPLICATE"
	GatewayErrorKeyThirdParty     = "PIX_KEY_OWNED_BY_THIRD_PARTY"
	GatewayErrorKeyLimitExceeded  = "PIX_KEY_LIMIT_EXCEEDED"
	GatewayErrorKeyNotFound       = "PIX_KEY_NOT_FOUND"
	GatewayErrorClaimLocked       = "PIX_CLAIM_LOCKED"
	GatewayErrorClaimInvalidState = "PIX_CLAIM_INVALID_STATE"
	GatewayErrorClaimRole         = "PIX_CLAIM_ROLE_NOT_ALLOWED"
	GatewayErrorRateLimited       = "PIX_RATE_LIMITED"
	GatewayErrorInternal          = "PIX_INTERNAL_ERROR"
)

// SchemeError is the JSON error body every scheme endpoint returns on
// non-2xx. Code is the sole input to classification.
type SchemeError struct {
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
}

// DecodeSchemeError best-effort decodes the error envelope. An undecodable
// body yields an empty code, which classifies as a protocol violation.
func DecodeSchemeError(body []byte) SchemeError {
	var env SchemeError
	if len(body) == 0 {
		return env
	}
	_ = json.Unmarshal(body, &env)
	env.Code = strings.TrimSpace(env.Code)
	return env
}

type schemeClassification struct {
	category goerrors.Category
	textCode string
	message  string
}

// schemeCodeTable maps every scheme error code this gateway recognizes to an
// internal classification. Unlisted codes fall through to the protocol
// catch-all; they are never best-effort guessed into a business class.
var schemeCodeTable = map[string]schemeClassification{
	"INTERNAL_SERVER_ERROR":               {goerrors.CategoryExternal, GatewayErrorOffline, "scheme reported an internal error"},
	"SERVICE_UNAVAILABLE":                 {goerrors.CategoryExternal, GatewayErrorOffline, "scheme is unavailable"},
	"ENTRY_ALREADY_EXISTS":                {goerrors.CategoryConflict, GatewayErrorKeyDuplicate, "key is already registered by this institution"},
	"ENTRY_KEY_OWNED_BY_DIFFERENT_PERSON": {goerrors.CategoryConflict, GatewayErrorKeyThirdParty, "key is owned by a third party"},
	"ENTRY_LIMIT_EXCEEDED":                {goerrors.CategoryRateLimit, GatewayErrorKeyLimitExceeded, "key registration limit exceeded"},
	"ENTRY_NOT_FOUND":                     {goerrors.CategoryNotFound, GatewayErrorKeyNotFound, "key is not registered"},
	"CLAIM_LOCKED":                        {goerrors.CategoryConflict, GatewayErrorClaimLocked, "claim is locked by a concurrent operation"},
	"CLAIM_INVALID_STATUS":                {goerrors.CategoryConflict, GatewayErrorClaimInvalidState, "claim status does not admit this operation"},
	"CLAIM_NOT_ALLOWED_FOR_PARTICIPANT":   {goerrors.CategoryAuthz, GatewayErrorClaimRole, "claim operation not allowed for this participant role"},
	"RATE_LIMIT_EXCEEDED":                 {goerrors.CategoryRateLimit, GatewayErrorRateLimited, "scheme request rate exceeded"},
}

// ClassifyScheme maps an external response to the gateway error taxonomy:
// offline (retry later), a specific business error, or the protocol
// catch-all carrying the raw body for diagnosis. 2xx inputs return nil.
func ClassifyScheme(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	env := DecodeSchemeError(body)

	if entry, ok := schemeCodeTable[strings.ToUpper(env.Code)]; ok {
		return goerrors.New(entry.message, entry.category).
			WithCode(status).
			WithTextCode(entry.textCode).
			WithMetadata(map[string]any{
				"scheme_code":        env.Code,
				"scheme_description": env.Description,
			})
	}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		return goerrors.New("scheme is unavailable", goerrors.CategoryExternal).
			WithCode(status).
			WithTextCode(GatewayErrorOffline).
			WithMetadata(map[string]any{
				"scheme_code":        env.Code,
				"scheme_description": env.Description,
			})
	}

	return goerrors.New("unrecognized scheme error", goerrors.CategoryOperation).
		WithCode(status).
		WithTextCode(GatewayErrorProtocol).
		WithMetadata(map[string]any{
			"scheme_code":        env.Code,
			"scheme_description": env.Description,
			"response_body":      string(body),
		})
}

// NotFoundStatus reports statuses lookup-style calls treat as an absent
// result rather than an error. Absence is an expected business outcome on
// decode-key, decode-QR, and get-payment.
func NotFoundStatus(status int) bool {
	return status == http.StatusNotFound || status == http.StatusNotAcceptable
}

// IsOffline reports whether err was classified as a transient scheme outage.
func IsOffline(err error) bool {
	return hasTextCode(err, GatewayErrorOffline)
}

// IsAuthFailure reports whether err means no usable token was obtainable.
func IsAuthFailure(err error) bool {
	return hasTextCode(err, GatewayErrorAuthFailed)
}

func hasTextCode(err error, textCode string) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(richErr.TextCode), textCode)
}

// MissingInputError is the local precondition failure raised before any
// network call when a required payload or field is absent.
func MissingInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(GatewayErrorBadInput)
}

// AuthFailureError wraps a refresh failure observed by a caller that needed
// a token and could not get one.
func AuthFailureError(source error) error {
	if source == nil {
		return goerrors.New("no usable access token", goerrors.CategoryAuth).
			WithCode(http.StatusUnauthorized).
			WithTextCode(GatewayErrorAuthFailed)
	}
	return goerrors.Wrap(source, goerrors.CategoryAuth, "no usable access token").
		WithCode(http.StatusUnauthorized).
		WithTextCode(GatewayErrorAuthFailed)
}
