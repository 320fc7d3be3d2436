// Package refund is the operation gateway for scheme-mediated refund
// requests. Refunds are opened by the scheme or the counterparty; this
// institution only answers them, so the gateway exposes cancel, close and
// list but no create.
package refund

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-pix-gateway/codec"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

type Config struct {
	BaseURL   string
	ISPB      string
	Timeout   time.Duration
	Transport core.TransportAdapter
	Tokens    core.TokenSource
	Logger    core.Logger
	Metrics   core.MetricsRecorder
}

type Gateway struct {
	client *scheme.Client
}

func New(cfg Config) (*Gateway, error) {
	client, err := scheme.NewClient(scheme.ClientConfig{
		BaseURL:   cfg.BaseURL,
		ISPB:      cfg.ISPB,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
		Tokens:    cfg.Tokens,
		Logger:    cfg.Logger,
		Metrics:   cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Gateway{client: client}, nil
}

type wireRefund struct {
	ID              string  `json:"idSolDevolucao"`
	TransactionID   string  `json:"idTransacao,omitempty"`
	EndToEndID      string  `json:"endToEndId"`
	InfractionID    string  `json:"idRelatoInfracao,omitempty"`
	Status          string  `json:"stSolDevolucao"`
	Reason          string  `json:"motivo,omitempty"`
	RejectionReason string  `json:"motivoRejeicao,omitempty"`
	Amount          float64 `json:"valor"`
	DevolutionID    string  `json:"idDevolucao,omitempty"`
	CreatedAt       string  `json:"dtHrCriacao,omitempty"`
	LastModifiedAt  string  `json:"dtHrUltModificacao,omitempty"`
}

type CancelRefundRequest struct {
	RefundID        string
	RejectionReason core.RefundRejectionReason
	Details         string
}

type wireCancelRefund struct {
	RejectionReason string `json:"motivoRejeicao"`
	Details         string `json:"detalhesAnalise,omitempty"`
}

// CancelRefund rejects a refund request opened against this institution. The
// rejection reason is mandatory and scheme-validated.
func (g *Gateway) CancelRefund(ctx context.Context, req *CancelRefundRequest) (*core.RefundRequest, error) {
	if req == nil {
		return nil, core.MissingInputError("refund: cancel payload is required")
	}
	rejection, err := codec.EncodeRefundRejection(req.RejectionReason)
	if err != nil {
		return nil, err
	}
	return g.mutateRefund(ctx, "refund.cancel", req.RefundID, "/cancelar", wireCancelRefund{
		RejectionReason: rejection,
		Details:         strings.TrimSpace(req.Details),
	})
}

type CloseRefundRequest struct {
	RefundID string
	// DevolutionID references the devolution that satisfied the refund.
	DevolutionID string
}

type wireCloseRefund struct {
	DevolutionID string `json:"idDevolucao"`
}

// CloseRefund accepts a refund request by linking the devolution that paid
// it back.
func (g *Gateway) CloseRefund(ctx context.Context, req *CloseRefundRequest) (*core.RefundRequest, error) {
	if req == nil {
		return nil, core.MissingInputError("refund: close payload is required")
	}
	devolutionID := strings.TrimSpace(req.DevolutionID)
	if devolutionID == "" {
		return nil, core.MissingInputError("refund: devolution id is required")
	}
	return g.mutateRefund(ctx, "refund.close", req.RefundID, "/fechar", wireCloseRefund{
		DevolutionID: devolutionID,
	})
}

func (g *Gateway) mutateRefund(ctx context.Context, name string, refundID string, action string, body any) (*core.RefundRequest, error) {
	refundID = strings.TrimSpace(refundID)
	if refundID == "" {
		return nil, core.MissingInputError("refund: refund id is required")
	}
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        name,
		Method:      http.MethodPost,
		Path:        "/solicitacoes-devolucao/" + refundID + action,
		Body:        body,
		Idempotency: refundID,
		Fields:      map[string]any{"refund_id": refundID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireRefund
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeRefund(payload)
}

type ListRefundsRequest struct {
	Status        core.RefundStatus
	ModifiedAfter string
}

type wireRefundList struct {
	Refunds []wireRefund `json:"solicitacoesDevolucao"`
}

// ListRefunds returns the refund requests addressed to this institution.
func (g *Gateway) ListRefunds(ctx context.Context, req *ListRefundsRequest) ([]core.RefundRequest, error) {
	query := map[string]string{}
	if req != nil && req.Status != "" {
		status, err := codec.EncodeRefundStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query["stSolDevolucao"] = status
	}
	if req != nil && strings.TrimSpace(req.ModifiedAfter) != "" {
		query["dtHrModificacaoInicio"] = strings.TrimSpace(req.ModifiedAfter)
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "refund.list",
		Method: http.MethodGet,
		Path:   "/solicitacoes-devolucao",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	var payload wireRefundList
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	out := make([]core.RefundRequest, 0, len(payload.Refunds))
	for _, refund := range payload.Refunds {
		decoded, err := decodeRefund(refund)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

func decodeRefund(payload wireRefund) (*core.RefundRequest, error) {
	status, err := codec.DecodeRefundStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	out := &core.RefundRequest{
		ID:            payload.ID,
		TransactionID: payload.TransactionID,
		EndToEndID:    payload.EndToEndID,
		InfractionID:  payload.InfractionID,
		Status:        status,
		Amount:        codec.FloatToMinorUnits(payload.Amount),
		DevolutionID:  payload.DevolutionID,
	}
	if payload.Reason != "" {
		reason, err := codec.DecodeRefundReason(payload.Reason)
		if err != nil {
			return nil, err
		}
		out.Reason = reason
	}
	if payload.RejectionReason != "" {
		rejection, err := codec.DecodeRefundRejection(payload.RejectionReason)
		if err != nil {
			return nil, err
		}
		out.RejectionReason = rejection
	}
	if payload.CreatedAt != "" {
		createdAt, err := codec.ParseWireInstant(payload.CreatedAt)
		if err != nil {
			return nil, err
		}
		out.CreatedAt = createdAt
	}
	if payload.LastModifiedAt != "" {
		modified, err := codec.ParseWireInstant(payload.LastModifiedAt)
		if err != nil {
			return nil, err
		}
		out.LastModifiedAt = modified
	}
	return out, nil
}
