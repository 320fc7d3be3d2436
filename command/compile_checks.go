package command

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-pix-gateway/dict"
	"github.com/goliatone/go-pix-gateway/frauddetection"
	"github.com/goliatone/go-pix-gateway/infraction"
	"github.com/goliatone/go-pix-gateway/payment"
	"github.com/goliatone/go-pix-gateway/refund"
)

var (
	_ KeyDirectoryService   = (*dict.Gateway)(nil)
	_ PaymentService        = (*payment.Gateway)(nil)
	_ InfractionService     = (*infraction.Gateway)(nil)
	_ RefundService         = (*refund.Gateway)(nil)
	_ FraudDetectionService = (*frauddetection.Gateway)(nil)
)

var (
	_ gocmd.Commander[CreateKeyMessage]              = (*CreateKeyCommand)(nil)
	_ gocmd.Commander[DeleteKeyMessage]              = (*DeleteKeyCommand)(nil)
	_ gocmd.Commander[CreateOwnershipClaimMessage]   = (*CreateOwnershipClaimCommand)(nil)
	_ gocmd.Commander[CreatePortabilityClaimMessage] = (*CreatePortabilityClaimCommand)(nil)
	_ gocmd.Commander[ConfirmClaimMessage]           = (*ConfirmClaimCommand)(nil)
	_ gocmd.Commander[CancelClaimMessage]            = (*CancelClaimCommand)(nil)
	_ gocmd.Commander[DenyClaimMessage]              = (*DenyClaimCommand)(nil)
	_ gocmd.Commander[CloseClaimMessage]             = (*CloseClaimCommand)(nil)
	_ gocmd.Commander[FinishClaimMessage]            = (*FinishClaimCommand)(nil)
	_ gocmd.Commander[CreatePaymentMessage]          = (*CreatePaymentCommand)(nil)
	_ gocmd.Commander[CreateDevolutionMessage]       = (*CreateDevolutionCommand)(nil)
	_ gocmd.Commander[CreateRefundDevolutionMessage] = (*CreateRefundDevolutionCommand)(nil)
	_ gocmd.Commander[NotifyCreditMessage]           = (*NotifyCreditCommand)(nil)
	_ gocmd.Commander[CreateInfractionMessage]       = (*CreateInfractionCommand)(nil)
	_ gocmd.Commander[CancelInfractionMessage]       = (*CancelInfractionCommand)(nil)
	_ gocmd.Commander[CloseInfractionMessage]        = (*CloseInfractionCommand)(nil)
	_ gocmd.Commander[CancelRefundMessage]           = (*CancelRefundCommand)(nil)
	_ gocmd.Commander[CloseRefundMessage]            = (*CloseRefundCommand)(nil)
	_ gocmd.Commander[CreateFraudMarkMessage]        = (*CreateFraudMarkCommand)(nil)
	_ gocmd.Commander[CancelFraudMarkMessage]        = (*CancelFraudMarkCommand)(nil)
)
