package pixgateway

import (
	"fmt"

	pixcommand "github.com/goliatone/go-pix-gateway/command"
)

// Commands bundles the bus-facing handlers for every mutating operation.
type Commands struct {
	CreateKey              *pixcommand.CreateKeyCommand
	DeleteKey              *pixcommand.DeleteKeyCommand
	CreateOwnershipClaim   *pixcommand.CreateOwnershipClaimCommand
	CreatePortabilityClaim *pixcommand.CreatePortabilityClaimCommand
	ConfirmClaim           *pixcommand.ConfirmClaimCommand
	CancelClaim            *pixcommand.CancelClaimCommand
	DenyClaim              *pixcommand.DenyClaimCommand
	CloseClaim             *pixcommand.CloseClaimCommand
	FinishClaim            *pixcommand.FinishClaimCommand
	CreatePayment          *pixcommand.CreatePaymentCommand
	CreateDevolution       *pixcommand.CreateDevolutionCommand
	CreateRefundDevolution *pixcommand.CreateRefundDevolutionCommand
	NotifyCredit           *pixcommand.NotifyCreditCommand
	CreateInfraction       *pixcommand.CreateInfractionCommand
	CancelInfraction       *pixcommand.CancelInfractionCommand
	CloseInfraction        *pixcommand.CloseInfractionCommand
	CancelRefund           *pixcommand.CancelRefundCommand
	CloseRefund            *pixcommand.CloseRefundCommand
	CreateFraudMark        *pixcommand.CreateFraudMarkCommand
	CancelFraudMark        *pixcommand.CancelFraudMarkCommand
}

// Facade exposes the command handlers built from one Gateway, for callers
// that dispatch messages instead of calling gateway methods directly.
type Facade struct {
	gateway  *Gateway
	commands Commands
}

func NewFacade(gateway *Gateway) (*Facade, error) {
	if gateway == nil {
		return nil, fmt.Errorf("pixgateway: gateway is required")
	}
	keys := gateway.Keys()
	payments := gateway.Payments()
	infractions := gateway.Infractions()
	refunds := gateway.Refunds()
	fraudMarks := gateway.FraudMarks()

	return &Facade{
		gateway: gateway,
		commands: Commands{
			CreateKey:              pixcommand.NewCreateKeyCommand(keys),
			DeleteKey:              pixcommand.NewDeleteKeyCommand(keys),
			CreateOwnershipClaim:   pixcommand.NewCreateOwnershipClaimCommand(keys),
			CreatePortabilityClaim: pixcommand.NewCreatePortabilityClaimCommand(keys),
			ConfirmClaim:           pixcommand.NewConfirmClaimCommand(keys),
			CancelClaim:            pixcommand.NewCancelClaimCommand(keys),
			DenyClaim:              pixcommand.NewDenyClaimCommand(keys),
			CloseClaim:             pixcommand.NewCloseClaimCommand(keys),
			FinishClaim:            pixcommand.NewFinishClaimCommand(keys),
			CreatePayment:          pixcommand.NewCreatePaymentCommand(payments),
			CreateDevolution:       pixcommand.NewCreateDevolutionCommand(payments),
			CreateRefundDevolution: pixcommand.NewCreateRefundDevolutionCommand(payments),
			NotifyCredit:           pixcommand.NewNotifyCreditCommand(payments),
			CreateInfraction:       pixcommand.NewCreateInfractionCommand(infractions),
			CancelInfraction:       pixcommand.NewCancelInfractionCommand(infractions),
			CloseInfraction:        pixcommand.NewCloseInfractionCommand(infractions),
			CancelRefund:           pixcommand.NewCancelRefundCommand(refunds),
			CloseRefund:            pixcommand.NewCloseRefundCommand(refunds),
			CreateFraudMark:        pixcommand.NewCreateFraudMarkCommand(fraudMarks),
			CancelFraudMark:        pixcommand.NewCancelFraudMarkCommand(fraudMarks),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Gateway() *Gateway {
	if f == nil {
		return nil
	}
	return f.gateway
}
