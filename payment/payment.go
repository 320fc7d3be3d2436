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

type CreatePaymentRequest struct {
	// ID is the client-generated request id, reused as the scheme's
	// deduplication header. Generated when empty.
	ID          string
	EndToEndID  string
	Amount      core.Money
	Payer       core.PaymentParty
	Payee       core.PaymentParty
	Priority    core.PaymentPriority
	Finality    core.PaymentFinality
	Initiation  core.InitiationType
	Description string
}

type wireCreatePayment struct {
	RequestID   string    `json:"idReqSistemaCliente"`
	EndToEndID  string    `json:"endToEndId"`
	Amount      float64   `json:"valor"`
	Priority    string    `json:"prioridadePagamento"`
	Finality    string    `json:"tpFinalidade"`
	Initiation  string    `json:"tpIniciacao"`
	Payer       wireParty `json:"pagador"`
	Payee       wireParty `json:"recebedor"`
	Description string    `json:"infEntreClientes,omitempty"`
}

type wirePayment struct {
	ID         string    `json:"idPagamento"`
	EndToEndID string    `json:"endToEndId"`
	Status     string    `json:"stPagamento"`
	Amount     float64   `json:"valor"`
	Priority   string    `json:"prioridadePagamento,omitempty"`
	Finality   string    `json:"tpFinalidade,omitempty"`
	Initiation string    `json:"tpIniciacao,omitempty"`
	Payer      wireParty `json:"pagador"`
	Payee      wireParty `json:"recebedor"`
	CreatedAt  string    `json:"dtHrCriacao,omitempty"`
	SettledAt  string    `json:"dtHrLiquidacao,omitempty"`
}

// CreatePayment submits a payment order. Ambiguous failures are not retried
// here; the idempotency key makes caller-level retry safe.
func (g *Gateway) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*core.Payment, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: create payment payload is required")
	}
	if !req.Amount.IsPositive() {
		return nil, core.MissingInputError("payment: amount must be positive")
	}
	priority, err := codec.EncodePaymentPriority(req.Priority)
	if err != nil {
		return nil, err
	}
	finality, err := codec.EncodePaymentFinality(req.Finality)
	if err != nil {
		return nil, err
	}
	initiation, err := codec.EncodeInitiationType(req.Initiation)
	if err != nil {
		return nil, err
	}
	payer, err := encodeParty(req.Payer)
	if err != nil {
		return nil, err
	}
	payee, err := encodeParty(req.Payee)
	if err != nil {
		return nil, err
	}
	requestID := strings.TrimSpace(req.ID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	endToEndID := strings.TrimSpace(req.EndToEndID)
	if endToEndID == "" {
		endToEndID, err = g.GenerateEndToEndID()
		if err != nil {
			return nil, err
		}
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "payment.create",
		Method: http.MethodPost,
		Path:   "/pagamentos",
		Body: wireCreatePayment{
			RequestID:   requestID,
			EndToEndID:  endToEndID,
			Amount:      codec.ToMajorUnitsFloat(req.Amount),
			Priority:    priority,
			Finality:    finality,
			Initiation:  initiation,
			Payer:       payer,
			Payee:       payee,
			Description: strings.TrimSpace(req.Description),
		},
		Idempotency: requestID,
		Fields: map[string]any{
			"request_id":    requestID,
			"end_to_end_id": endToEndID,
		},
	})
	if err != nil {
		return nil, err
	}
	var payload wirePayment
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodePayment(payload)
}

// GetPaymentByID queries settlement state by the scheme's payment id. An
// unknown id yields (nil, nil).
func (g *Gateway) GetPaymentByID(ctx context.Context, paymentID string) (*core.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, core.MissingInputError("payment: payment id is required")
	}
	return g.lookupPayment(ctx, "payment.get_by_id", "/pagamentos/"+paymentID, map[string]any{"payment_id": paymentID})
}

// GetPaymentByEndToEndID queries settlement state by end-to-end id. An
// unknown id yields (nil, nil).
func (g *Gateway) GetPaymentByEndToEndID(ctx context.Context, endToEndID string) (*core.Payment, error) {
	endToEndID = strings.TrimSpace(endToEndID)
	if endToEndID == "" {
		return nil, core.MissingInputError("payment: end-to-end id is required")
	}
	return g.lookupPayment(ctx, "payment.get_by_e2e", "/pagamentos/e2e/"+endToEndID, map[string]any{"end_to_end_id": endToEndID})
}

func (g *Gateway) lookupPayment(ctx context.Context, name string, path string, fields map[string]any) (*core.Payment, error) {
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   name,
		Method: http.MethodGet,
		Path:   path,
		Lookup: true,
		Fields: fields,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	var payload wirePayment
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodePayment(payload)
}

func decodePayment(payload wirePayment) (*core.Payment, error) {
	status, err := codec.DecodePaymentStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	out := &core.Payment{
		ID:         payload.ID,
		EndToEndID: payload.EndToEndID,
		Status:     status,
		Amount:     codec.FloatToMinorUnits(payload.Amount),
	}
	if payload.Priority != "" {
		priority, err := codec.DecodePaymentPriority(payload.Priority)
		if err != nil {
			return nil, err
		}
		out.Priority = priority
	}
	if payload.Finality != "" {
		finality, err := codec.DecodePaymentFinality(payload.Finality)
		if err != nil {
			return nil, err
		}
		out.Finality = finality
	}
	if payload.Initiation != "" {
		initiation, err := codec.DecodeInitiationType(payload.Initiation)
		if err != nil {
			return nil, err
		}
		out.Initiation = initiation
	}
	if payload.Payer.Document != "" {
		payer, err := decodeParty(payload.Payer)
		if err != nil {
			return nil, err
		}
		out.Payer = payer
	}
	if payload.Payee.Document != "" {
		payee, err := decodeParty(payload.Payee)
		if err != nil {
			return nil, err
		}
		out.Payee = payee
	}
	if payload.CreatedAt != "" {
		createdAt, err := codec.ParseWireInstant(payload.CreatedAt)
		if err != nil {
			return nil, err
		}
		out.CreatedAt = createdAt
	}
	if payload.SettledAt != "" {
		settledAt, err := codec.ParseWireInstant(payload.SettledAt)
		if err != nil {
			return nil, err
		}
		out.SettledAt = settledAt
	}
	return out, nil
}

type CreateDevolutionRequest struct {
	// ID doubles as the devolution's idempotency key. Generated when empty.
	ID          string
	EndToEndID  string
	Amount      core.Money
	Code        core.DevolutionCode
	Description string
	// RefundID links a scheme-mediated refund devolution to its refund
	// request. Required by CreateRefundDevolution only.
	RefundID string
}

type wireCreateDevolution struct {
	DevolutionID string  `json:"idDevolucao"`
	EndToEndID   string  `json:"endToEndIdOriginal"`
	Amount       float64 `json:"valor"`
	Code         string  `json:"codigoDevolucao"`
	Description  string  `json:"infEntreClientes,omitempty"`
	RefundID     string  `json:"idSolDevolucao,omitempty"`
}

type wireDevolution struct {
	DevolutionID string  `json:"idDevolucao"`
	EndToEndID   string  `json:"endToEndIdDevolucao"`
	Status       string  `json:"stPagamento"`
	Amount       float64 `json:"valor"`
	Code         string  `json:"codigoDevolucao,omitempty"`
	CreatedAt    string  `json:"dtHrCriacao,omitempty"`
}

// CreateDevolution returns a previously settled payment voluntarily.
func (g *Gateway) CreateDevolution(ctx context.Context, req *CreateDevolutionRequest) (*core.Devolution, error) {
	return g.createDevolution(ctx, "payment.devolution.create", "/devolucoes", req, false)
}

// CreateRefundDevolution is the scheme-mediated refund variant, linked to an
// open refund request.
func (g *Gateway) CreateRefundDevolution(ctx context.Context, req *CreateDevolutionRequest) (*core.Devolution, error) {
	return g.createDevolution(ctx, "payment.devolution.refund", "/devolucoes/especial", req, true)
}

func (g *Gateway) createDevolution(ctx context.Context, name string, path string, req *CreateDevolutionRequest, needsRefund bool) (*core.Devolution, error) {
	if req == nil {
		return nil, core.MissingInputError("payment: devolution payload is required")
	}
	endToEndID := strings.TrimSpace(req.EndToEndID)
	if endToEndID == "" {
		return nil, core.MissingInputError("payment: original end-to-end id is required")
	}
	if !req.Amount.IsPositive() {
		return nil, core.MissingInputError("payment: devolution amount must be positive")
	}
	code, err := codec.EncodeDevolutionCode(req.Code)
	if err != nil {
		return nil, err
	}
	refundID := strings.TrimSpace(req.RefundID)
	if needsRefund && refundID == "" {
		return nil, core.MissingInputError("payment: refund id is required for refund devolutions")
	}
	devolutionID := strings.TrimSpace(req.ID)
	if devolutionID == "" {
		devolutionID = uuid.NewString()
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   name,
		Method: http.MethodPost,
		Path:   path,
		Body: wireCreateDevolution{
			DevolutionID: devolutionID,
			EndToEndID:   endToEndID,
			Amount:       codec.ToMajorUnitsFloat(req.Amount),
			Code:         code,
			Description:  strings.TrimSpace(req.Description),
			RefundID:     refundID,
		},
		Idempotency: devolutionID,
		Fields: map[string]any{
			"devolution_id": devolutionID,
			"end_to_end_id": endToEndID,
		},
	})
	if err != nil {
		return nil, err
	}
	var payload wireDevolution
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeDevolution(payload)
}

func decodeDevolution(payload wireDevolution) (*core.Devolution, error) {
	status, err := codec.DecodePaymentStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	out := &core.Devolution{
		ID:         payload.DevolutionID,
		EndToEndID: payload.EndToEndID,
		Status:     status,
		Amount:     codec.FloatToMinorUnits(payload.Amount),
	}
	if payload.Code != "" {
		code, err := codec.DecodeDevolutionCode(payload.Code)
		if err != nil {
			return nil, err
		}
		out.Code = code
	}
	if payload.CreatedAt != "" {
		createdAt, err := codec.ParseWireInstant(payload.CreatedAt)
		if err != nil {
			return nil, err
		}
		out.CreatedAt = createdAt
	}
	return out, nil
}
