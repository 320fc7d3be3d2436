package command

import (
	"strings"

	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/dict"
	"github.com/goliatone/go-pix-gateway/frauddetection"
	"github.com/goliatone/go-pix-gateway/infraction"
	"github.com/goliatone/go-pix-gateway/payment"
	"github.com/goliatone/go-pix-gateway/refund"
)

const (
	TypeCreateKey              = "pix.command.key.create"
	TypeDeleteKey              = "pix.command.key.delete"
	TypeCreateOwnershipClaim   = "pix.command.claim.create_ownership"
	TypeCreatePortabilityClaim = "pix.command.claim.create_portability"
	TypeConfirmClaim           = "pix.command.claim.confirm"
	TypeCancelClaim            = "pix.command.claim.cancel"
	TypeDenyClaim              = "pix.command.claim.deny"
	TypeCloseClaim             = "pix.command.claim.close"
	TypeFinishClaim            = "pix.command.claim.finish"
	TypeCreatePayment          = "pix.command.payment.create"
	TypeCreateDevolution       = "pix.command.devolution.create"
	TypeCreateRefundDevolution = "pix.command.devolution.refund"
	TypeNotifyCredit           = "pix.command.statement.notify"
	TypeCreateInfraction       = "pix.command.infraction.create"
	TypeCancelInfraction       = "pix.command.infraction.cancel"
	TypeCloseInfraction        = "pix.command.infraction.close"
	TypeCancelRefund           = "pix.command.refund.cancel"
	TypeCloseRefund            = "pix.command.refund.close"
	TypeCreateFraudMark        = "pix.command.fraud_mark.create"
	TypeCancelFraudMark        = "pix.command.fraud_mark.cancel"
)

type CreateKeyMessage struct {
	Request *dict.CreateKeyRequest
}

func (CreateKeyMessage) Type() string { return TypeCreateKey }

func (m CreateKeyMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: create key request is required")
	}
	if m.Request.KeyType != core.KeyTypeEVP && strings.TrimSpace(m.Request.Key) == "" {
		return core.MissingInputError("command: key value is required")
	}
	return nil
}

type DeleteKeyMessage struct {
	Request *dict.DeleteKeyRequest
}

func (DeleteKeyMessage) Type() string { return TypeDeleteKey }

func (m DeleteKeyMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: delete key request is required")
	}
	if strings.TrimSpace(m.Request.Key) == "" {
		return core.MissingInputError("command: key value is required")
	}
	return nil
}

func validateCreateClaim(req *dict.CreateClaimRequest) error {
	if req == nil {
		return core.MissingInputError("command: create claim request is required")
	}
	if strings.TrimSpace(req.Key) == "" {
		return core.MissingInputError("command: claim key value is required")
	}
	return nil
}

type CreateOwnershipClaimMessage struct {
	Request *dict.CreateClaimRequest
}

func (CreateOwnershipClaimMessage) Type() string { return TypeCreateOwnershipClaim }

func (m CreateOwnershipClaimMessage) Validate() error { return validateCreateClaim(m.Request) }

type CreatePortabilityClaimMessage struct {
	Request *dict.CreateClaimRequest
}

func (CreatePortabilityClaimMessage) Type() string { return TypeCreatePortabilityClaim }

func (m CreatePortabilityClaimMessage) Validate() error { return validateCreateClaim(m.Request) }

type ConfirmClaimMessage struct {
	Request *dict.ConfirmClaimRequest
}

func (ConfirmClaimMessage) Type() string { return TypeConfirmClaim }

func (m ConfirmClaimMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: confirm claim request is required")
	}
	if strings.TrimSpace(m.Request.ClaimID) == "" {
		return core.MissingInputError("command: claim id is required")
	}
	return nil
}

type CancelClaimMessage struct {
	Request *dict.CancelClaimRequest
}

func (CancelClaimMessage) Type() string { return TypeCancelClaim }

func (m CancelClaimMessage) Validate() error { return validateCancelClaim(m.Request) }

type DenyClaimMessage struct {
	Request *dict.CancelClaimRequest
}

func (DenyClaimMessage) Type() string { return TypeDenyClaim }

func (m DenyClaimMessage) Validate() error { return validateCancelClaim(m.Request) }

func validateCancelClaim(req *dict.CancelClaimRequest) error {
	if req == nil {
		return core.MissingInputError("command: cancel claim request is required")
	}
	if strings.TrimSpace(req.ClaimID) == "" {
		return core.MissingInputError("command: claim id is required")
	}
	return nil
}

type CloseClaimMessage struct {
	Request *dict.CloseClaimRequest
}

func (CloseClaimMessage) Type() string { return TypeCloseClaim }

func (m CloseClaimMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: close claim request is required")
	}
	if strings.TrimSpace(m.Request.ClaimID) == "" {
		return core.MissingInputError("command: claim id is required")
	}
	return nil
}

type FinishClaimMessage struct {
	Request *dict.FinishClaimRequest
}

func (FinishClaimMessage) Type() string { return TypeFinishClaim }

func (m FinishClaimMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: finish claim request is required")
	}
	if strings.TrimSpace(m.Request.ClaimID) == "" {
		return core.MissingInputError("command: claim id is required")
	}
	return nil
}

type CreatePaymentMessage struct {
	Request *payment.CreatePaymentRequest
}

func (CreatePaymentMessage) Type() string { return TypeCreatePayment }

func (m CreatePaymentMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: create payment request is required")
	}
	if !m.Request.Amount.IsPositive() {
		return core.MissingInputError("command: payment amount must be positive")
	}
	return nil
}

type CreateDevolutionMessage struct {
	Request *payment.CreateDevolutionRequest
}

func (CreateDevolutionMessage) Type() string { return TypeCreateDevolution }

func (m CreateDevolutionMessage) Validate() error { return validateDevolution(m.Request, false) }

type CreateRefundDevolutionMessage struct {
	Request *payment.CreateDevolutionRequest
}

func (CreateRefundDevolutionMessage) Type() string { return TypeCreateRefundDevolution }

func (m CreateRefundDevolutionMessage) Validate() error { return validateDevolution(m.Request, true) }

func validateDevolution(req *payment.CreateDevolutionRequest, needsRefund bool) error {
	if req == nil {
		return core.MissingInputError("command: devolution request is required")
	}
	if strings.TrimSpace(req.EndToEndID) == "" {
		return core.MissingInputError("command: original end-to-end id is required")
	}
	if needsRefund && strings.TrimSpace(req.RefundID) == "" {
		return core.MissingInputError("command: refund id is required")
	}
	return nil
}

type NotifyCreditMessage struct {
	EndToEndIDs []string
}

func (NotifyCreditMessage) Type() string { return TypeNotifyCredit }

func (m NotifyCreditMessage) Validate() error {
	for _, id := range m.EndToEndIDs {
		if strings.TrimSpace(id) != "" {
			return nil
		}
	}
	return core.MissingInputError("command: at least one end-to-end id is required")
}

type CreateInfractionMessage struct {
	Request *infraction.CreateInfractionRequest
}

func (CreateInfractionMessage) Type() string { return TypeCreateInfraction }

func (m CreateInfractionMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: create infraction request is required")
	}
	if strings.TrimSpace(m.Request.TransactionID) == "" {
		return core.MissingInputError("command: transaction id is required")
	}
	return nil
}

type CancelInfractionMessage struct {
	InfractionID string
}

func (CancelInfractionMessage) Type() string { return TypeCancelInfraction }

func (m CancelInfractionMessage) Validate() error {
	if strings.TrimSpace(m.InfractionID) == "" {
		return core.MissingInputError("command: infraction id is required")
	}
	return nil
}

type CloseInfractionMessage struct {
	Request *infraction.CloseInfractionRequest
}

func (CloseInfractionMessage) Type() string { return TypeCloseInfraction }

func (m CloseInfractionMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: close infraction request is required")
	}
	if strings.TrimSpace(m.Request.InfractionID) == "" {
		return core.MissingInputError("command: infraction id is required")
	}
	return nil
}

type CancelRefundMessage struct {
	Request *refund.CancelRefundRequest
}

func (CancelRefundMessage) Type() string { return TypeCancelRefund }

func (m CancelRefundMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: cancel refund request is required")
	}
	if strings.TrimSpace(m.Request.RefundID) == "" {
		return core.MissingInputError("command: refund id is required")
	}
	return nil
}

type CloseRefundMessage struct {
	Request *refund.CloseRefundRequest
}

func (CloseRefundMessage) Type() string { return TypeCloseRefund }

func (m CloseRefundMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: close refund request is required")
	}
	if strings.TrimSpace(m.Request.RefundID) == "" {
		return core.MissingInputError("command: refund id is required")
	}
	return nil
}

type CreateFraudMarkMessage struct {
	Request *frauddetection.CreateFraudMarkRequest
}

func (CreateFraudMarkMessage) Type() string { return TypeCreateFraudMark }

func (m CreateFraudMarkMessage) Validate() error {
	if m.Request == nil {
		return core.MissingInputError("command: create fraud mark request is required")
	}
	if strings.TrimSpace(m.Request.Document.Value) == "" {
		return core.MissingInputError("command: document is required")
	}
	return nil
}

type CancelFraudMarkMessage struct {
	MarkID string
}

func (CancelFraudMarkMessage) Type() string { return TypeCancelFraudMark }

func (m CancelFraudMarkMessage) Validate() error {
	if strings.TrimSpace(m.MarkID) == "" {
		return core.MissingInputError("command: fraud mark id is required")
	}
	return nil
}
