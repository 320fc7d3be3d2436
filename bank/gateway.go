// Package bank is the operation gateway for the scheme's participant
// directory.
package bank

import (
	"context"
	"net/http"
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

type ListParticipantsRequest struct {
	// ActiveOnly drops inactive participants client-side; the directory
	// endpoint has no server-side filter for it.
	ActiveOnly bool
}

type wireParticipant struct {
	ISPB      string `json:"ispb"`
	Name      string `json:"nome"`
	TradeName string `json:"nomeReduzido,omitempty"`
	Active    bool   `json:"ativo"`
	StartedAt string `json:"dtHrInicioOperacao,omitempty"`
}

type wireParticipantList struct {
	Participants []wireParticipant `json:"participantes"`
}

// ListParticipants returns the scheme's bank directory.
func (g *Gateway) ListParticipants(ctx context.Context, req *ListParticipantsRequest) ([]core.Participant, error) {
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "bank.list_participants",
		Method: http.MethodGet,
		Path:   "/participantes",
	})
	if err != nil {
		return nil, err
	}
	var payload wireParticipantList
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	activeOnly := req != nil && req.ActiveOnly
	out := make([]core.Participant, 0, len(payload.Participants))
	for _, participant := range payload.Participants {
		if activeOnly && !participant.Active {
			continue
		}
		decoded, err := decodeParticipant(participant)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func decodeParticipant(payload wireParticipant) (core.Participant, error) {
	out := core.Participant{
		ISPB:      payload.ISPB,
		Name:      payload.Name,
		TradeName: payload.TradeName,
		Active:    payload.Active,
	}
	if payload.StartedAt != "" {
		startedAt, err := codec.ParseWireInstant(payload.StartedAt)
		if err != nil {
			return core.Participant{}, err
		}
		out.StartedAt = startedAt
	}
	return out, nil
}
