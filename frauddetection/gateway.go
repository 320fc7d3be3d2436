// Package frauddetection is the operation gateway for the scheme's fraud
// directory: registering a mark against a document or key, querying it, and
// cancelling it.
package frauddetection

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

type wireFraudMark struct {
	ID         string `json:"idMarcacaoFraude"`
	PersonType string `json:"tpPessoa"`
	Document   string `json:"cpfCnpj"`
	Key        string `json:"chave,omitempty"`
	Type       string `json:"tpFraude"`
	Status     string `json:"stMarcacaoFraude"`
	CreatedAt  string `json:"dtHrCriacao,omitempty"`
}

type CreateFraudMarkRequest struct {
	Document  core.Document
	Key       string
	Type      core.FraudType
	RequestID string
}

type wireCreateFraudMark struct {
	PersonType string `json:"tpPessoa"`
	Document   string `json:"cpfCnpj"`
	Key        string `json:"chave,omitempty"`
	Type       string `json:"tpFraude"`
}

// CreateFraudMark registers a fraud mark against a document, optionally
// scoped to one of its keys.
func (g *Gateway) CreateFraudMark(ctx context.Context, req *CreateFraudMarkRequest) (*core.FraudDetectionMark, error) {
	if req == nil {
		return nil, core.MissingInputError("frauddetection: create payload is required")
	}
	personType, err := codec.EncodePersonType(req.Document.PersonType)
	if err != nil {
		return nil, err
	}
	document, err := codec.FormatDocument(req.Document)
	if err != nil {
		return nil, err
	}
	fraudType, err := codec.EncodeFraudType(req.Type)
	if err != nil {
		return nil, err
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "frauddetection.create",
		Method: http.MethodPost,
		Path:   "/marcacoes-fraude",
		Body: wireCreateFraudMark{
			PersonType: personType,
			Document:   document,
			Key:        strings.TrimSpace(req.Key),
			Type:       fraudType,
		},
		Idempotency: requestID,
		Fields:      map[string]any{"request_id": requestID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireFraudMark
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeFraudMark(payload)
}

// GetFraudMark fetches a mark by id. An unknown id yields (nil, nil).
func (g *Gateway) GetFraudMark(ctx context.Context, markID string) (*core.FraudDetectionMark, error) {
	markID = strings.TrimSpace(markID)
	if markID == "" {
		return nil, core.MissingInputError("frauddetection: mark id is required")
	}
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "frauddetection.get",
		Method: http.MethodGet,
		Path:   "/marcacoes-fraude/" + markID,
		Lookup: true,
		Fields: map[string]any{"fraud_mark_id": markID},
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	var payload wireFraudMark
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeFraudMark(payload)
}

type ListFraudMarksRequest struct {
	Status core.FraudStatus
	// Document narrows the listing to a single person when set.
	Document string
}

type wireFraudMarkList struct {
	Marks []wireFraudMark `json:"marcacoesFraude"`
}

// ListFraudMarks returns the marks this institution registered.
func (g *Gateway) ListFraudMarks(ctx context.Context, req *ListFraudMarksRequest) ([]core.FraudDetectionMark, error) {
	query := map[string]string{}
	if req != nil && req.Status != "" {
		status, err := codec.EncodeFraudStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query["stMarcacaoFraude"] = status
	}
	if req != nil && strings.TrimSpace(req.Document) != "" {
		query["cpfCnpj"] = strings.TrimSpace(req.Document)
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "frauddetection.list",
		Method: http.MethodGet,
		Path:   "/marcacoes-fraude",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	var payload wireFraudMarkList
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	out := make([]core.FraudDetectionMark, 0, len(payload.Marks))
	for _, mark := range payload.Marks {
		decoded, err := decodeFraudMark(mark)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

// CancelFraudMark withdraws a mark this institution registered. The mark id
// doubles as the idempotency key.
func (g *Gateway) CancelFraudMark(ctx context.Context, markID string) (*core.FraudDetectionMark, error) {
	markID = strings.TrimSpace(markID)
	if markID == "" {
		return nil, core.MissingInputError("frauddetection: mark id is required")
	}
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        "frauddetection.cancel",
		Method:      http.MethodPost,
		Path:        "/marcacoes-fraude/" + markID + "/cancelar",
		Idempotency: markID,
		Fields:      map[string]any{"fraud_mark_id": markID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireFraudMark
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeFraudMark(payload)
}

func decodeFraudMark(payload wireFraudMark) (*core.FraudDetectionMark, error) {
	personType, err := codec.DecodePersonType(payload.PersonType)
	if err != nil {
		return nil, err
	}
	fraudType, err := codec.DecodeFraudType(payload.Type)
	if err != nil {
		return nil, err
	}
	status, err := codec.DecodeFraudStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	out := &core.FraudDetectionMark{
		ID:       payload.ID,
		Document: core.Document{Value: payload.Document, PersonType: personType},
		Key:      payload.Key,
		Type:     fraudType,
		Status:   status,
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
