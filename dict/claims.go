package dict

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pix-gateway/codec"
	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/scheme"
)

// Claim operations validate role legality locally before any network call;
// the scheme remains the authority over claim state. Every mutating call
// carries an idempotency key equal to the claim id (or a generated id on
// creation), so redelivery by the invoking bus cannot create duplicate
// claims or duplicate terminal transitions. The gateway never retries these
// calls itself.

type wireClaim struct {
	ID                 string `json:"idReivindicacao"`
	Type               string `json:"tpReivindicacao"`
	Status             string `json:"stReivindicacao"`
	Key                string `json:"chave"`
	KeyType            string `json:"tpChave"`
	DonorISPB          string `json:"ispbDoador"`
	ClaimantISPB       string `json:"ispbReivindicador"`
	ParticipationFlow  string `json:"fluxoParticipacao"`
	ResolutionDeadline string `json:"dtLimiteResolucao,omitempty"`
	CompletionDeadline string `json:"dtLimiteConclusao,omitempty"`
	LastModifiedAt     string `json:"dtHrUltModificacao,omitempty"`
}

type CreateClaimRequest struct {
	KeyType   core.KeyType
	Key       string
	Account   core.Account
	Owner     core.Owner
	RequestID string
}

type wireCreateClaim struct {
	Type    string      `json:"tpReivindicacao"`
	KeyType string      `json:"tpChave"`
	Key     string      `json:"chave"`
	Owner   wireOwner   `json:"titular"`
	Account wireAccount `json:"conta"`
}

// CreateOwnershipClaim opens an ownership dispute over a key currently held
// by another person at another institution. Issued only by the claimant.
func (g *Gateway) CreateOwnershipClaim(ctx context.Context, req *CreateClaimRequest) (*core.KeyClaim, error) {
	return g.createClaim(ctx, "dict.claim.create_ownership", core.ClaimTypeOwnership, req)
}

// CreatePortabilityClaim opens a portability request to move the caller's
// own key from another institution. Issued only by the claimant.
func (g *Gateway) CreatePortabilityClaim(ctx context.Context, req *CreateClaimRequest) (*core.KeyClaim, error) {
	return g.createClaim(ctx, "dict.claim.create_portability", core.ClaimTypePortability, req)
}

func (g *Gateway) createClaim(ctx context.Context, name string, claimType core.ClaimType, req *CreateClaimRequest) (*core.KeyClaim, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: create claim payload is required")
	}
	if err := core.ClaimOperationAllowed(core.ClaimOperationCreate, core.ClaimRoleClaimant); err != nil {
		return nil, err
	}
	wireType, err := codec.EncodeClaimType(claimType)
	if err != nil {
		return nil, err
	}
	keyType, err := codec.EncodeKeyType(req.KeyType)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, core.MissingInputError("dict: claim key value is required")
	}
	owner, err := encodeOwner(req.Owner)
	if err != nil {
		return nil, err
	}
	account, err := encodeAccount(req.Account)
	if err != nil {
		return nil, err
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   name,
		Method: http.MethodPost,
		Path:   "/reivindicacoes",
		Body: wireCreateClaim{
			Type:    wireType,
			KeyType: keyType,
			Key:     key,
			Owner:   owner,
			Account: account,
		},
		Idempotency: requestID,
		Fields:      map[string]any{"request_id": requestID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireClaim
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeClaim(payload)
}

type ConfirmClaimRequest struct {
	ClaimID string
	Role    core.ClaimRole
}

// ConfirmPortabilityClaim accepts losing the key. Donor-only; a claimant
// submission is rejected locally before any network call.
func (g *Gateway) ConfirmPortabilityClaim(ctx context.Context, req *ConfirmClaimRequest) (*core.KeyClaim, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: confirm claim payload is required")
	}
	if err := core.ClaimOperationAllowed(core.ClaimOperationConfirm, req.Role); err != nil {
		return nil, roleError(err)
	}
	return g.mutateClaim(ctx, "dict.claim.confirm", req.ClaimID, "/confirmar", nil)
}

type CancelClaimRequest struct {
	ClaimID string
	// Role flags which side of the claim this institution holds; the scheme
	// requires it on cancellation.
	Role   core.ClaimRole
	Reason core.ClaimCancelReason
}

type wireCancelClaim struct {
	ParticipationFlow string `json:"fluxoParticipacao"`
	Reason            string `json:"motivo"`
}

// CancelClaim rejects or withdraws a claim from either side. The reason code
// is mandatory and scheme-validated.
func (g *Gateway) CancelClaim(ctx context.Context, req *CancelClaimRequest) (*core.KeyClaim, error) {
	return g.cancelClaim(ctx, "dict.claim.cancel", "/cancelar", req)
}

// DenyClaim is the donor-side refusal of an ownership claim. Same legality
// rules as cancellation.
func (g *Gateway) DenyClaim(ctx context.Context, req *CancelClaimRequest) (*core.KeyClaim, error) {
	return g.cancelClaim(ctx, "dict.claim.deny", "/negar", req)
}

func (g *Gateway) cancelClaim(ctx context.Context, name string, action string, req *CancelClaimRequest) (*core.KeyClaim, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: cancel claim payload is required")
	}
	if err := core.ClaimOperationAllowed(core.ClaimOperationCancel, req.Role); err != nil {
		return nil, roleError(err)
	}
	flow, err := codec.EncodeClaimRole(req.Role)
	if err != nil {
		return nil, err
	}
	reason, err := codec.EncodeClaimCancelReason(req.Reason)
	if err != nil {
		return nil, err
	}
	return g.mutateClaim(ctx, name, req.ClaimID, action, wireCancelClaim{
		ParticipationFlow: flow,
		Reason:            reason,
	})
}

type CloseClaimRequest struct {
	ClaimID string
	Role    core.ClaimRole
}

// CloseClaim is the claimant's formal acceptance after agreement.
func (g *Gateway) CloseClaim(ctx context.Context, req *CloseClaimRequest) (*core.KeyClaim, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: close claim payload is required")
	}
	if err := core.ClaimOperationAllowed(core.ClaimOperationClose, req.Role); err != nil {
		return nil, roleError(err)
	}
	return g.mutateClaim(ctx, "dict.claim.close", req.ClaimID, "/encerrar", nil)
}

type FinishClaimRequest struct {
	ClaimID string
	Role    core.ClaimRole
}

// FinishClaim finalizes the key transfer after the claim reached CONFIRMED,
// moving it to COMPLETED.
func (g *Gateway) FinishClaim(ctx context.Context, req *FinishClaimRequest) (*core.KeyClaim, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: finish claim payload is required")
	}
	if err := core.ClaimOperationAllowed(core.ClaimOperationFinish, req.Role); err != nil {
		return nil, roleError(err)
	}
	return g.mutateClaim(ctx, "dict.claim.finish", req.ClaimID, "/concluir", nil)
}

func (g *Gateway) mutateClaim(ctx context.Context, name string, claimID string, action string, body any) (*core.KeyClaim, error) {
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return nil, core.MissingInputError("dict: claim id is required")
	}
	res, err := g.client.Do(ctx, scheme.Operation{
		Name:        name,
		Method:      http.MethodPost,
		Path:        "/reivindicacoes/" + claimID + action,
		Body:        body,
		Idempotency: claimID,
		Fields:      map[string]any{"claim_id": claimID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireClaim
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeClaim(payload)
}

type ListClaimsRequest struct {
	Status        core.ClaimStatus
	ModifiedAfter string
}

type wireClaimList struct {
	Claims []wireClaim `json:"reivindicacoes"`
}

// ListClaims returns the claims visible to this institution. The scheme
// nests payloads differently per participation flow; an unrecognized flow
// value is a hard error, never skipped.
func (g *Gateway) ListClaims(ctx context.Context, req *ListClaimsRequest) ([]core.KeyClaim, error) {
	query := map[string]string{}
	if req != nil && req.Status != "" {
		status, err := codec.EncodeClaimStatus(req.Status)
		if err != nil {
			return nil, err
		}
		query["stReivindicacao"] = status
	}
	if req != nil && strings.TrimSpace(req.ModifiedAfter) != "" {
		query["dtHrModificacaoInicio"] = strings.TrimSpace(req.ModifiedAfter)
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:   "dict.claim.list",
		Method: http.MethodGet,
		Path:   "/reivindicacoes",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	var payload wireClaimList
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	out := make([]core.KeyClaim, 0, len(payload.Claims))
	for _, claim := range payload.Claims {
		decoded, err := decodeClaim(claim)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

func decodeClaim(payload wireClaim) (*core.KeyClaim, error) {
	claimType, err := codec.DecodeClaimType(payload.Type)
	if err != nil {
		return nil, err
	}
	status, err := codec.DecodeClaimStatus(payload.Status)
	if err != nil {
		return nil, err
	}
	role, err := codec.DecodeClaimRole(payload.ParticipationFlow)
	if err != nil {
		return nil, err
	}
	keyType, err := codec.DecodeKeyType(payload.KeyType)
	if err != nil {
		return nil, err
	}
	out := &core.KeyClaim{
		ID:           payload.ID,
		Type:         claimType,
		Role:         role,
		Status:       status,
		Key:          payload.Key,
		KeyType:      keyType,
		DonorISPB:    payload.DonorISPB,
		ClaimantISPB: payload.ClaimantISPB,
	}
	if payload.ResolutionDeadline != "" {
		deadline, err := codec.ParseWireInstant(payload.ResolutionDeadline)
		if err != nil {
			return nil, err
		}
		out.ResolutionDeadline = deadline
	}
	if payload.CompletionDeadline != "" {
		deadline, err := codec.ParseWireInstant(payload.CompletionDeadline)
		if err != nil {
			return nil, err
		}
		out.CompletionDeadline = deadline
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
