package dict

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

func TestCreateKeySendsSanitizedWirePayload(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"tpChave": "2",
			"chave": "+5511999990000",
			"titular": {"tpPessoa": "0", "cpfCnpj": "00123456789", "nome": "MARIA DA SILVA"},
			"conta": {"ispb": "00001234", "nrAgencia": "0001", "nrConta": "56789", "tpConta": "CACC"}
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	key, err := gateway.CreateKey(context.Background(), &CreateKeyRequest{
		KeyType:   core.KeyTypePhone,
		Key:       "+5511999990000",
		Owner:     testOwner(),
		Account:   testAccount(),
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	if key.Type != core.KeyTypePhone || key.Value != "+5511999990000" {
		t.Fatalf("unexpected key %+v", key)
	}

	req := transport.requests[0]
	if req.Idempotency != "req-1" {
		t.Fatalf("expected request id as idempotency key, got %q", req.Idempotency)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	owner, ok := sent["titular"].(map[string]any)
	if !ok {
		t.Fatalf("expected owner in payload, got %v", sent)
	}
	if owner["cpfCnpj"] != "00123456789" {
		t.Fatalf("expected zero-padded document, got %v", owner["cpfCnpj"])
	}
	account, ok := sent["conta"].(map[string]any)
	if !ok {
		t.Fatalf("expected account in payload, got %v", sent)
	}
	if account["ispb"] != "00001234" || account["nrAgencia"] != "0001" {
		t.Fatalf("expected zero-padded identifiers, got %v", account)
	}
}

func TestCreateKeyEVPAllowsEmptyValue(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"tpChave": "4",
			"chave": "a2f1c0de-0000-4000-8000-000000000000",
			"titular": {"tpPessoa": "0", "cpfCnpj": "00123456789", "nome": "MARIA DA SILVA"},
			"conta": {"ispb": "00001234", "nrAgencia": "0001", "nrConta": "56789", "tpConta": "CACC"}
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	key, err := gateway.CreateKey(context.Background(), &CreateKeyRequest{
		KeyType: core.KeyTypeEVP,
		Owner:   testOwner(),
		Account: testAccount(),
	})
	if err != nil {
		t.Fatalf("create evp key: %v", err)
	}
	if key.Value == "" {
		t.Fatalf("expected scheme-generated key value")
	}
}

func TestCreateKeyNonEVPRequiresValue(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateKey(context.Background(), &CreateKeyRequest{
		KeyType: core.KeyTypeEmail,
		Owner:   testOwner(),
		Account: testAccount(),
	})
	if err == nil {
		t.Fatalf("expected missing-key rejection")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("precondition failures must not reach the network")
	}
}

func TestCreateKeyGeneratesIdempotencyKey(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body: []byte(`{
			"tpChave": "3",
			"chave": "maria@example.com",
			"titular": {"tpPessoa": "0", "cpfCnpj": "00123456789", "nome": "MARIA DA SILVA"},
			"conta": {"ispb": "00001234", "nrAgencia": "0001", "nrConta": "56789", "tpConta": "CACC"}
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CreateKey(context.Background(), &CreateKeyRequest{
		KeyType: core.KeyTypeEmail,
		Key:     "maria@example.com",
		Owner:   testOwner(),
		Account: testAccount(),
	})
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	if transport.requests[0].Idempotency == "" {
		t.Fatalf("expected generated idempotency key")
	}
}

func TestDecodeKeyNotFoundYieldsNil(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"codigo":"ENTRY_NOT_FOUND"}`),
	}}}
	gateway := newTestGateway(t, transport)

	key, err := gateway.DecodeKey(context.Background(), &DecodeKeyRequest{Key: "maria@example.com"})
	if err != nil {
		t.Fatalf("expected absent result, got %v", err)
	}
	if key != nil {
		t.Fatalf("expected nil key, got %+v", key)
	}
}

func TestDecodeKeySendsRequesterHeaders(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body: []byte(`{
			"tpChave": "3",
			"chave": "maria@example.com",
			"titular": {"tpPessoa": "0", "cpfCnpj": "00123456789", "nome": "MARIA DA SILVA"},
			"conta": {"ispb": "00001234", "nrAgencia": "0001", "nrConta": "56789", "tpConta": "CACC"}
		}`),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.DecodeKey(context.Background(), &DecodeKeyRequest{
		Key:        "maria@example.com",
		EndToEndID: "E00001234202603101200abcdefghijk",
	})
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	req := transport.requests[0]
	if req.Headers[scheme.RequesterHeader] != "00001234" {
		t.Fatalf("expected requester header, got %q", req.Headers[scheme.RequesterHeader])
	}
	if req.Headers[scheme.EndToEndHeader] != "E00001234202603101200abcdefghijk" {
		t.Fatalf("expected end-to-end header, got %q", req.Headers[scheme.EndToEndHeader])
	}
}

func TestDeleteKey(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	err := gateway.DeleteKey(context.Background(), &DeleteKeyRequest{
		KeyType:   core.KeyTypeEmail,
		Key:       "maria@example.com",
		RequestID: "req-9",
	})
	if err != nil {
		t.Fatalf("delete key: %v", err)
	}
	req := transport.requests[0]
	if req.Method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %q", req.Method)
	}
	if req.Idempotency != "req-9" {
		t.Fatalf("expected idempotency key, got %q", req.Idempotency)
	}
}
