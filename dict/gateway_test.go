package dict

import (
	"context"
	"net/http"
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
		BaseURL:   "https://dict.example",
		ISPB:      "00001234",
		Transport: transport,
		Tokens:    staticTokens{},
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway
}

func testOwner() core.Owner {
	return core.Owner{
		Document: core.Document{Value: "00123456789", PersonType: core.PersonTypeNatural},
		Name:     "Maria da Silva",
	}
}

func testAccount() core.Account {
	return core.Account{
		ISPB:   "1234",
		Branch: "1",
		Number: "56789",
		Type:   core.AccountTypeChecking,
	}
}
