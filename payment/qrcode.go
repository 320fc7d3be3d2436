package payment

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pix-gateway/codec"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

type CreateQRCodeRequest struct {
	Key string
	// Amount is optional for static codes and required for dynamic ones.
	Amount core.Money
	TxID   string
	// ExpirationSeconds bounds a dynamic code's validity window.
	ExpirationSeconds int
	// DueDate applies to due-date codes only, wire date format.
	DueDate     string
	Description string
	// MerchantName and MerchantCity are embedded in the code's EMV payload,
	// which caps them at 25 and 15 characters.
	MerchantName string
	MerchantCity string
	RequestID    string
}

type wireCreateQRCode struct {
	Key               string  `json:"chave"`
	Amount            float64 `json:"valor,omitempty"`
	TxID              string  `json:"txId,omitempty"`
	ExpirationSeconds int     `json:"expiracaoSegundos,omitempty"`
	DueDate           string  `json:"dtVencimento,omitempty"`
	Description       string  `json:"descricao,omitempty"`
	MerchantName      string  `json:"nomeRecebedor,omitempty"`
	MerchantCity      string  `json:"cidadeRecebedor,omitempty"`
}

type wireQRCode struct {
	ID        string            `json:"idQrCode"`
	Type      string            `json:"tpQrCode"`
	Payload   string            `json:"emv"`
	Key       string            `json:"chave,omitempty"`
	Amount    float64           `json:"valor,omitempty"`
	TxID      string            `json:"txId,omitempty"`
	ExpiresAt string            `json:"dtHrExpiracao,omitempty"`
	DueDate   string            `json:"dtVencimento,omitempty"`
	Extra     map[string]string `json:"infAdicionais,omitempty"`
}

// CreateStaticQRCode issues a reusable code bound to a key, optionally with a
// fixed amount.
func (g *Gateway) CreateStaticQRCode(ctx context.Context, req *CreateQRCodeRequest) (*core.QRCode, error) {
	return g.createQRCode(ctx, "payment.qrcode.create_static", "/qrcodes/estatico", req, false)
}

// CreateDynamicQRCode issues a single-use code with a mandatory amount and an
// expiration window.
func (g *Gateway) CreateDynamicQRCode(ctx context.Context, req *CreateQRCodeRequest) (*core.QRCode, error) {
	return g.createQRCode(ctx, "payment.qrcode.create_dynamic", "/qrcodes/dinamico", req, true)
}

// CreateDueDateQRCode issues a dynamic code payable until a due date.
func (g *Gateway) CreateDueDateQRCode(ctx context.Context, req *CreateQRCodeRequest) (*core.QRCode, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: qr code payload is required")
	}
	if strings.TrimSpace(req.DueDate) == "" {
		return nil, core.MissingInputError("payment: due date is required for due-date qr codes")
	}
	if _, err := codec.ParseWireDate(req.DueDate); err != nil {
		return nil, err
	}
	return g.createQRCode(ctx, "payment.qrcode.create_due_date", "/qrcodes/dinamico/vencimento", req, true)
}

func (g *Gateway) createQRCode(ctx context.Context, name string, path string, req *CreateQRCodeRequest, amountRequired bool) (*core.QRCode, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: qr code payload is required")
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, core.MissingInputError("payment: qr code key is required")
	}
	if amountRequired && !req.Amount.IsPositive() {
		return nil, core.MissingInputError("payment: qr code amount must be positive")
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	body := wireCreateQRCode{
		Key:               key,
		TxID:              strings.TrimSpace(req.TxID),
		ExpirationSeconds: req.ExpirationSeconds,
		DueDate:           strings.TrimSpace(req.DueDate),
		Description:       strings.TrimSpace(req.Description),
	}
	if req.Amount > 0 {
		body.Amount = codec.ToMajorUnitsFloat(req.Amount)
	}
	if strings.TrimSpace(req.MerchantName) != "" {
		merchantName, err := codec.SanitizeName(req.MerchantName, codec.NameLengthShort)
		if err != nil {
			return nil, err
		}
		body.MerchantName = merchantName
	}
	if strings.TrimSpace(req.MerchantCity) != "" {
		merchantCity, err := codec.SanitizeName(req.MerchantCity, codec.NameLengthCompact)
		if err != nil {
			return nil, err
		}
		body.MerchantCity = merchantCity
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        name,
		Method:      http.MethodPost,
		Path:        path,
		Body:        body,
		Idempotency: requestID,
		Fields:      map[string]any{"request_id": requestID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireQRCode
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeQRCode(payload)
}

type UpdateQRCodeRequest struct {
	QRCodeID string
	Amount   core.Money
	// ExpirationSeconds replaces the remaining validity window when positive.
	ExpirationSeconds int
	Description       string
}

type wireUpdateQRCode struct {
	Amount            float64 `json:"valor,omitempty"`
	ExpirationSeconds int     `json:"expiracaoSegundos,omitempty"`
	Description       string  `json:"descricao,omitempty"`
}

// UpdateDynamicQRCode rewrites the payable fields of a dynamic code before it
// is paid. The code id doubles as the idempotency key.
func (g *Gateway) UpdateDynamicQRCode(ctx context.Context, req *UpdateQRCodeRequest) (*core.QRCode, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: update qr code payload is required")
	}
	qrCodeID := strings.TrimSpace(req.QRCodeID)
	if qrCodeID == "" {
		return nil, core.MissingInputError("payment: qr code id is required")
	}
	body := wireUpdateQRCode{
		ExpirationSeconds: req.ExpirationSeconds,
		Description:       strings.TrimSpace(req.Description),
	}
	if req.Amount > 0 {
		body.Amount = codec.ToMajorUnitsFloat(req.Amount)
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        "payment.qrcode.update_dynamic",
		Method:      http.MethodPut,
		Path:        "/qrcodes/dinamico/" + qrCodeID,
		Body:        body,
		Idempotency: qrCodeID,
		Fields:      map[string]any{"qr_code_id": qrCodeID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireQRCode
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeQRCode(payload)
}

type DecodeQRCodeRequest struct {
	// Payload is the scanned EMV string.
	Payload string
	// EndToEndID optionally links the decode to a payment being built.
	EndToEndID string
}

type wireDecodeQRCode struct {
	Payload string `json:"emv"`
}

// DecodeQRCode resolves a scanned payload into its payable terms. A payload
// the scheme does not recognize yields (nil, nil).
func (g *Gateway) DecodeQRCode(ctx context.Context, req *DecodeQRCodeRequest) (*core.QRCode, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: decode qr code payload is required")
	}
	payload := strings.TrimSpace(req.Payload)
	if payload == "" {
		return nil, core.MissingInputError("payment: qr code payload is required")
	}
	headers := map[string]string{}
	if endToEnd := strings.TrimSpace(req.EndToEndID); endToEnd != "" {
		headers[scheme.EndToEndHeader] = endToEnd
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:    "payment.qrcode.decode",
		Method:  http.MethodPost,
		Path:    "/qrcodes/decodificar",
		Headers: headers,
		Body:    wireDecodeQRCode{Payload: payload},
		Lookup:  true,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	var decoded wireQRCode
	if err := scheme.DecodeInto(res, &decoded); err != nil {
		return nil, err
	}
	return decodeQRCode(decoded)
}

func decodeQRCode(payload wireQRCode) (*core.QRCode, error) {
	out := &core.QRCode{
		ID:         payload.ID,
		Payload:    payload.Payload,
		Key:        payload.Key,
		TxID:       payload.TxID,
		Amount:     codec.FloatToMinorUnits(payload.Amount),
		Additional: payload.Extra,
	}
	if payload.Type != "" {
		qrType, err := codec.DecodeQRCodeType(payload.Type)
		if err != nil {
			return nil, err
		}
		out.Type = qrType
	}
	if payload.ExpiresAt != "" {
		expiresAt, err := codec.ParseWireInstant(payload.ExpiresAt)
		if err != nil {
			return nil, err
		}
		out.ExpiresAt = expiresAt
	}
	if payload.DueDate != "" {
		dueDate, err := codec.ParseWireDate(payload.DueDate)
		if err != nil {
			return nil, err
		}
		out.DueDate = dueDate
	}
	return out, nil
}
