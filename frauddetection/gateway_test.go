package frauddetection

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

type staticTokens struct{}

func (staticTokens) AuthorizationHeader(ctx context.Context) (string, error) {
	return "Bearer test-token", nil
}

type fakeTransport struct {
	requests  []core.TransportRequest
	responses []core.TransportResponse
}

func (f *fakeTransport) Kind() string { return "fake" }

func (f *fakeTransport) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return core.TransportResponse{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	res := f.responses[0]
	f.responses = f.responses[1:]
	return res, nil
}

func newTestGateway(t *testing.T, transport *fakeTransport) *Gateway {
	t.Helper()
	gateway, err := New(Config{
		BaseURL:   "https://fraud.example",
		ISPB:      "00001234",
		Transport: transport,
		Tokens:    staticTokens{},
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway
}

const markBody = `{
	"idMarcacaoFraude": "mark-1",
	"tpPessoa": "0",
	"cpfCnpj": "00123456789",
	"tpFraude": "2",
	"stMarcacaoFraude": "0"
}`

func TestCreateFraudMark(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body:       []byte(markBody),
	}}}
	gateway := newTestGateway(t, transport)

	mark, err := gateway.CreateFraudMark(context.Background(), &CreateFraudMarkRequest{
		Document:  core.Document{Value: "123456789", PersonType: core.PersonTypeNatural},
		Type:      core.FraudTypeFraudsterAccount,
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("create mark: %v", err)
	}
	if mark.ID != "mark-1" || mark.Status != core.FraudStatusRegistered {
		t.Fatalf("unexpected mark %+v", mark)
	}
	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["cpfCnpj"] != "00123456789" {
		t.Fatalf("expected padded document, got %v", sent["cpfCnpj"])
	}
	if sent["tpFraude"] != "2" {
		t.Fatalf("expected mapped fraud type, got %v", sent["tpFraude"])
	}
	if transport.requests[0].Idempotency != "req-1" {
		t.Fatalf("expected request id as idempotency key, got %q", transport.requests[0].Idempotency)
	}
}

func TestCreateFraudMarkRejectsUnknownType(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateFraudMark(context.Background(), &CreateFraudMarkRequest{
		Document: core.Document{Value: "123456789", PersonType: core.PersonTypeNatural},
		Type:     core.FraudType("suspicious"),
	})
	if err == nil {
		t.Fatalf("expected rejection for unknown fraud type")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestGetFraudMarkNotFoundYieldsNil(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"codigo":"ENTRY_NOT_FOUND"}`),
	}}}
	gateway := newTestGateway(t, transport)

	mark, err := gateway.GetFraudMark(context.Background(), "mark-404")
	if err != nil {
		t.Fatalf("expected absent result, got %v", err)
	}
	if mark != nil {
		t.Fatalf("expected nil mark, got %+v", mark)
	}
}

func TestListFraudMarksAppliesFilters(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"marcacoesFraude": [` + markBody + `]}`),
	}}}
	gateway := newTestGateway(t, transport)

	marks, err := gateway.ListFraudMarks(context.Background(), &ListFraudMarksRequest{
		Status:   core.FraudStatusRegistered,
		Document: "00123456789",
	})
	if err != nil {
		t.Fatalf("list marks: %v", err)
	}
	if len(marks) != 1 || marks[0].Type != core.FraudTypeFraudsterAccount {
		t.Fatalf("unexpected marks %+v", marks)
	}
	query := transport.requests[0].Query
	if query["stMarcacaoFraude"] != "0" || query["cpfCnpj"] != "00123456789" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestCancelFraudMarkUsesIDAsIdempotencyKey(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(markBody),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CancelFraudMark(context.Background(), "mark-1")
	if err != nil {
		t.Fatalf("cancel mark: %v", err)
	}
	req := transport.requests[0]
	if !strings.HasSuffix(req.URL, "/marcacoes-fraude/mark-1/cancelar") {
		t.Fatalf("unexpected url %q", req.URL)
	}
	if req.Idempotency != "mark-1" {
		t.Fatalf("expected mark id as idempotency key, got %q", req.Idempotency)
	}
}
