// Package infraction is the operation gateway for scheme infraction reports:
// opening a report against a transaction, cancelling or closing one, and
// listing reports visible to the institution.
package infraction

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

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

type wireInfraction struct {
	ID             string `json:"idRelatoInfracao"`
	TransactionID  string `json:"idTransacao"`
	Type           string `json:"tpInfracao"`
	Status         string `json:"stInfracao"`
	AnalysisResult string `json:"resultadoAnalise,omitempty"`
	Details        string `json:"detalhes,omitempty"`
	DebitedISPB    string `json:"ispbDebitado,omitempty"`
	CreditedISPB   string `json:"ispbCreditado,omitempty"`
	CreatedAt      string `json:"dtHrCriacao,omitempty"`
	AnalyzedAt     string `json:"dtHrAnalise,omitempty"`
}

type CreateInfractionRequest struct {
	TransactionID string
	Type          core.InfractionType
	Details       string
	RequestID     string
}

type wireCreateInfraction struct {
	TransactionID string `json:"idTransacao"`
	Type          string `json:"tpInfracao"`
	Details       string `json:"detalhes,omitempty"`
}

// CreateInfraction opens a report against a settled transaction. The status
// of the resulting report is scheme-owned from this point on.
func (g *Gateway) CreateInfraction(ctx context.Context, req *CreateInfractionRequest) (*core.InfractionReport, error) {
	if req == nil {
		return nil, core.MissingInputError("infraction: create payload is required")
	}
	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		return nil, core.MissingInputError("infraction: transaction id is required")
	}
	infractionType, err := codec.EncodeInfractionType(req.Type)
	if err != nil {
		return nil, err
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "infraction.create",
		Method: http.MethodPost,
		Path:   "/relatos-infracao",
		Body: wireCreateInfraction{
			TransactionID: transactionID,
			Type:          infractionType,
			Details:       strings.TrimSpace(req.Details),
		},
		Idempotency: requestID,
		Fields: map[string]any{
			"request_id":     requestID,
			"transaction_id": transactionID,
		},
	})
	if err != nil {
		return nil, err
	}
	var payload wireInfraction
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeInfraction(payload)
}

// CancelInfraction withdraws a report this institution opened.
func (g *Gateway) CancelInfraction(ctx context.Context, infractionID string) (*core.InfractionReport, error) {
	return g.mutateInfraction(ctx, "infraction.cancel", infractionID, "/cancelar", nil)
}

type CloseInfractionRequest struct {
	InfractionID   string
	AnalysisResult core.InfractionAnalysisResult
	Details        string
}

type wireCloseInfraction struct {
	AnalysisResult string `json:"resultadoAnalise"`
	Details        string `json:"detalhesAnalise,omitempty"`
}

// CloseInfraction records the counterparty's analysis verdict on a report
// opened against this institution.
func (g *Gateway) CloseInfraction(ctx context.Context, req *CloseInfractionRequest) (*core.InfractionReport, error) {
	if req == nil {
		return nil, core.MissingInputError("infraction: close payload is required")
	}
	result, err := codec.EncodeInfractionAnalysis(req.AnalysisResult)
	if err != nil {
		return nil, err
	}
	return g.mutateInfraction(ctx, "infraction.close", req.InfractionID, "/fechar", wireCloseInfraction{
		AnalysisResult: result,
		Details:        strings.TrimSpace(req.Details),
	})
}

func (g *Gateway) mutateInfraction(ctx context.Context, name string, infractionID string, action string, body any) (*core.InfractionReport, error) {
	infractionID = strings.TrimSpace(infractionID)
	if infractionID == "" {
		return nil, core.MissingInputError("infraction: infraction id is required")
	}
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        name,
		Method:      http.MethodPost,
		Path:        "/relatos-infracao/" + infractionID + action,
		Body:        body,
		Idempotency: infractionID,
		Fields:      map[string]any{"infraction_id": infractionID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireInfraction
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeInfraction(payload)
}

type ListInfractionsRequest struct {
	Status        core.InfractionStatus
	ModifiedAfter string
}

type wireInfractionList struct {
	Reports []wireInfraction `json:"relatosInfracao"`
}

// ListInfractions returns the reports visible to this institution, either
// side of the dispute.
func (g *Gateway) ListInfractions(ctx context.Context, req *ListInfractionsRequest) ([]core.InfractionReport, error) {
	query := map[string]string{}
	if req != nil && req.Status != "" {
		status, err := codec.EncodeInfractionStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query["stInfracao"] = status
	}
	if req != nil && strings.TrimSpace(req.ModifiedAfter) != "" {
		query["dtHrModificacaoInicio"] = strings.TrimSpace(req.ModifiedAfter)
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "infraction.list",
		Method: http.MethodGet,
		Path:   "/relatos-infracao",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	var payload wireInfractionList
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	out := make([]core.InfractionReport, 0, len(payload.Reports))
	for _, report := range payload.Reports {
		decoded, err := decodeInfraction(report)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

func decodeInfraction(payload wireInfraction) (*core.InfractionReport, error) {
	infractionType, err := codec.DecodeInfractionType(payload.Type)
	if err != nil {
		return nil, err
	}
	status, err := codec.DecodeInfractionStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	out := &core.InfractionReport{
		ID:            payload.ID,
		TransactionID: payload.TransactionID,
		Type:          infractionType,
		Status:        status,
		Details:       payload.Details,
		DebitedISPB:   payload.DebitedISPB,
		CreditedISPB:  payload.CreditedISPB,
	}
	if payload.AnalysisResult != "" {
		result, err := codec.DecodeInfractionAnalysis(payload.AnalysisResult)
		if err != nil {
			return nil, err
		}
		out.AnalysisResult = result
	}
	if payload.CreatedAt != "" {
		createdAt, err := codec.ParseWireInstant(payload.CreatedAt)
		if err != nil {
			return nil, err
		}
		out.CreatedAt = createdAt
	}
	if payload.AnalyzedAt != "" {
		analyzedAt, err := codec.ParseWireInstant(payload.AnalyzedAt)
		if err != nil {
			return nil, err
		}
		out.AnalyzedAt = analyzedAt
	}
	return out, nil
}
