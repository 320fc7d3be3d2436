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

type CreateKeyRequest struct {
	KeyType core.KeyType
	// Key is empty for EVP registration; the scheme generates the value.
	Key     string
	Owner   core.Owner
	Account core.Account
	// RequestID doubles as the scheme's idempotency key. Generated when
	// empty.
	RequestID string
}

type wireKeyEntry struct {
	KeyType   string      `json:"tpChave"`
	Key       string      `json:"chave,omitempty"`
	Owner     wireOwner   `json:"titular"`
	Account   wireAccount `json:"conta"`
	CreatedAt string      `json:"dtHrCriacao,omitempty"`
}

// CreateKey registers a key in the directory and returns the scheme's view
// of the created entry.
func (g *Gateway) CreateKey(ctx context.Context, req *CreateKeyRequest) (*core.Key, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: create key payload is required")
	}
	keyType, err := codec.EncodeKeyType(req.KeyType)
	if err != nil {
		return nil, err
	}
	if req.KeyType != core.KeyTypeEVP && strings.TrimSpace(req.Key) == "" {
		return nil, core.MissingInputError("dict: key value is required for non-random key types")
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
		Name:   "dict.key.create",
		Method: http.MethodPost,
		Path:   "/chaves",
		Body: wireKeyEntry{
			KeyType: keyType,
			Key:     strings.TrimSpace(req.Key),
			Owner:   owner,
			Account: account,
		},
		Idempotency: requestID,
		Fields:      map[string]any{"request_id": requestID},
	})
	if err != nil {
		return nil, err
	}
	var payload wireKeyEntry
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeKeyEntry(payload)
}

type DeleteKeyRequest struct {
	KeyType   core.KeyType
	Key       string
	RequestID string
}

// DeleteKey removes a key owned by this institution from the directory.
func (g *Gateway) DeleteKey(ctx context.Context, req *DeleteKeyRequest) error {
	if req == nil {
		return core.MissingInputError("dict: delete key payload is required")
	}
	if _, err := codec.EncodeKeyType(req.KeyType); err != nil {
		return err
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return core.MissingInputError("dict: key value is required")
	}
	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	_, err := g.client.Do(ctx, scheme.Operation{
		Name:        "dict.key.delete",
		Method:      http.MethodDelete,
		Path:        "/chaves/" + key,
		Idempotency: requestID,
		Fields:      map[string]any{"request_id": requestID},
	})
	return err
}

type DecodeKeyRequest struct {
	Key string
	// EndToEndID optionally links the lookup to a payment being built.
	EndToEndID string
}

// DecodeKey resolves a key to its account and owner. A key the directory
// does not know yields (nil, nil): absence is an expected business outcome
// here, not an error.
func (g *Gateway) DecodeKey(ctx context.Context, req *DecodeKeyRequest) (*core.Key, error) {
	if req == nil {
		return nil, core.MissingInputError("dict: decode key payload is required")
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, core.MissingInputError("dict: key value is required")
	}
	headers := map[string]string{scheme.RequesterHeader: g.client.ISPB()}
	if endToEnd := strings.TrimSpace(req.EndToEndID); endToEnd != "" {
		headers[scheme.EndToEndHeader] = endToEnd
	}

	res, err := g.client.Do(ctx, scheme.Operation{
		Name:    "dict.key.decode",
		Method:  http.MethodGet,
		Path:    "/chaves/" + key,
		Headers: headers,
		Lookup:  true,
	})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	var payload wireKeyEntry
	if err := scheme.DecodeInto(res, &payload); err != nil {
		return nil, err
	}
	return decodeKeyEntry(payload)
}

func decodeKeyEntry(payload wireKeyEntry) (*core.Key, error) {
	keyType, err := codec.DecodeKeyType(payload.KeyType)
	if err != nil {
		return nil, err
	}
	owner, err := decodeOwner(payload.Owner)
	if err != nil {
		return nil, err
	}
	account, err := decodeAccount(payload.Account)
	if err != nil {
		return nil, err
	}
	out := &core.Key{
		Type:    keyType,
		Value:   payload.Key,
		Owner:   owner,
		Account: account,
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
