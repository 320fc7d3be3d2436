package dict

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/goliatone/go-pix-gateway/core"
)

const claimBody = `{
	"idReivindicacao": "claim-1",
	"tpReivindicacao": "1",
	"stReivindicacao": "1",
	"chave": "maria@example.com",
	"tpChave": "3",
	"ispbDoador": "00009999",
	"ispbReivindicador": "00001234",
	"fluxoParticipacao": "REIVINDICADORA"
}`

func TestCreatePortabilityClaim(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusCreated,
		Body:       []byte(claimBody),
	}}}
	gateway := newTestGateway(t, transport)

	claim, err := gateway.CreatePortabilityClaim(context.Background(), &CreateClaimRequest{
		KeyType:   core.KeyTypeEmail,
		Key:       "maria@example.com",
		Owner:     testOwner(),
		Account:   testAccount(),
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	if claim.ID != "claim-1" || claim.Status != core.ClaimStatusOpen {
		t.Fatalf("unexpected claim %+v", claim)
	}
	if claim.Role != core.ClaimRoleClaimant {
		t.Fatalf("expected claimant role, got %q", claim.Role)
	}
	if transport.requests[0].Idempotency != "req-1" {
		t.Fatalf("expected idempotency key, got %q", transport.requests[0].Idempotency)
	}
}

func TestConfirmClaimRejectsClaimantLocally(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.ConfirmPortabilityClaim(context.Background(), &ConfirmClaimRequest{
		ClaimID: "claim-1",
		Role:    core.ClaimRoleClaimant,
	})
	if err == nil {
		t.Fatalf("expected role rejection")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("role rejection must happen before any network call")
	}
}

func TestConfirmClaimAsDonor(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(claimBody),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.ConfirmPortabilityClaim(context.Background(), &ConfirmClaimRequest{
		ClaimID: "claim-1",
		Role:    core.ClaimRoleDonor,
	})
	if err != nil {
		t.Fatalf("confirm claim: %v", err)
	}
	req := transport.requests[0]
	if !strings.HasSuffix(req.URL, "/reivindicacoes/claim-1/confirmar") {
		t.Fatalf("unexpected url %q", req.URL)
	}
	if req.Idempotency != "claim-1" {
		t.Fatalf("expected claim id as idempotency key, got %q", req.Idempotency)
	}
}

func TestCloseClaimRejectsDonorLocally(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CloseClaim(context.Background(), &CloseClaimRequest{
		ClaimID: "claim-1",
		Role:    core.ClaimRoleDonor,
	})
	if err == nil {
		t.Fatalf("expected role rejection")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("role rejection must happen before any network call")
	}
}

func TestCancelClaimCarriesFlowAndReason(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body:       []byte(claimBody),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CancelClaim(context.Background(), &CancelClaimRequest{
		ClaimID: "claim-1",
		Role:    core.ClaimRoleDonor,
		Reason:  core.ClaimCancelReasonClientRequest,
	})
	if err != nil {
		t.Fatalf("cancel claim: %v", err)
	}
	var sent map[string]any
	if err := json.Unmarshal(transport.requests[0].Body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent["fluxoParticipacao"] != "DOADORA" {
		t.Fatalf("expected donor flow, got %v", sent["fluxoParticipacao"])
	}
	if sent["motivo"] == "" || sent["motivo"] == nil {
		t.Fatalf("expected mandatory cancel reason, got %v", sent["motivo"])
	}
}

func TestCancelClaimRequiresMappedReason(t *testing.T) {
	transport := &fakeTransport{}
	gateway := newTestGateway(t, transport)

	_, err := gateway.CancelClaim(context.Background(), &CancelClaimRequest{
		ClaimID: "claim-1",
		Role:    core.ClaimRoleDonor,
		Reason:  core.ClaimCancelReason("whim"),
	})
	if err == nil {
		t.Fatalf("expected unmapped reason rejection")
	}
	if len(transport.requests) != 0 {
		t.Fatalf("unmapped enums must fail before any network call")
	}
}

func TestListClaimsDecodesBothFlows(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body: []byte(`{"reivindicacoes": [
			{"idReivindicacao": "claim-1", "tpReivindicacao": "0", "stReivindicacao": "2", "chave": "x", "tpChave": "3", "fluxoParticipacao": "DOADORA"},
			{"idReivindicacao": "claim-2", "tpReivindicacao": "1", "stReivindicacao": "3", "chave": "y", "tpChave": "2", "fluxoParticipacao": "REIVINDICADORA"}
		]}`),
	}}}
	gateway := newTestGateway(t, transport)

	claims, err := gateway.ListClaims(context.Background(), &ListClaimsRequest{Status: core.ClaimStatusWaitingResolution})
	if err != nil {
		t.Fatalf("list claims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Role != core.ClaimRoleDonor || claims[1].Role != core.ClaimRoleClaimant {
		t.Fatalf("unexpected roles %q/%q", claims[0].Role, claims[1].Role)
	}
	if transport.requests[0].Query["stReivindicacao"] != "2" {
		t.Fatalf("expected status filter, got %v", transport.requests[0].Query)
	}
}

func TestListClaimsUnknownFlowIsHardError(t *testing.T) {
	transport := &fakeTransport{responses: []core.TransportResponse{{
		StatusCode: http.StatusOK,
		Body: []byte(`{"reivindicacoes": [
			{"idReivindicacao": "claim-1", "tpReivindicacao": "0", "stReivindicacao": "1", "chave": "x", "tpChave": "3", "fluxoParticipacao": "OBSERVADORA"}
		]}`),
	}}}
	gateway := newTestGateway(t, transport)

	_, err := gateway.ListClaims(context.Background(), nil)
	if err == nil {
		t.Fatalf("unrecognized participation flow must be a hard error, never skipped")
	}
}
