package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-pix-gateway/core"
	"github.com/goliatone/go-pix-gateway/dict"
	"github.com/goliatone/go-pix-gateway/frauddetection"
	"github.com/goliatone/go-pix-gateway/infraction"
	"github.com/goliatone/go-pix-gateway/payment"
	"github.com/goliatone/go-pix-gateway/refund"
)

// KeyDirectoryService is the mutating surface of the key-directory gateway.
type KeyDirectoryService interface {
	CreateKey(ctx context.Context, req *dict.CreateKeyRequest) (*core.Key, error)
	DeleteKey(ctx context.Context, req *dict.DeleteKeyRequest) error
	CreateOwnershipClaim(ctx context.Context, req *dict.CreateClaimRequest) (*core.KeyClaim, error)
	CreatePortabilityClaim(ctx context.Context, req *dict.CreateClaimRequest) (*core.KeyClaim, error)
	ConfirmPortabilityClaim(ctx context.Context, req *dict.ConfirmClaimRequest) (*core.KeyClaim, error)
	CancelClaim(ctx context.Context, req *dict.CancelClaimRequest) (*core.KeyClaim, error)
	DenyClaim(ctx context.Context, req *dict.CancelClaimRequest) (*core.KeyClaim, error)
	CloseClaim(ctx context.Context, req *dict.CloseClaimRequest) (*core.KeyClaim, error)
	FinishClaim(ctx context.Context, req *dict.FinishClaimRequest) (*core.KeyClaim, error)
}

// PaymentService is the mutating surface of the payment gateway.
type PaymentService interface {
	CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*core.Payment, error)
	CreateDevolution(ctx context.Context, req *payment.CreateDevolutionRequest) (*core.Devolution, error)
	CreateRefundDevolution(ctx context.Context, req *payment.CreateDevolutionRequest) (*core.Devolution, error)
	NotifyCreditStatement(ctx context.Context, endToEndIDs []string) error
}

// InfractionService is the mutating surface of the infraction gateway.
type InfractionService interface {
	CreateInfraction(ctx context.Context, req *infraction.CreateInfractionRequest) (*core.InfractionReport, error)
	CancelInfraction(ctx context.Context, infractionID string) (*core.InfractionReport, error)
	CloseInfraction(ctx context.Context, req *infraction.CloseInfractionRequest) (*core.InfractionReport, error)
}

// RefundService is the mutating surface of the refund gateway.
type RefundService interface {
	CancelRefund(ctx context.Context, req *refund.CancelRefundRequest) (*core.RefundRequest, error)
	CloseRefund(ctx context.Context, req *refund.CloseRefundRequest) (*core.RefundRequest, error)
}

// FraudDetectionService is the mutating surface of the fraud-detection
// gateway.
type FraudDetectionService interface {
	CreateFraudMark(ctx context.Context, req *frauddetection.CreateFraudMarkRequest) (*core.FraudDetectionMark, error)
	CancelFraudMark(ctx context.Context, markID string) (*core.FraudDetectionMark, error)
}

type CreateKeyCommand struct {
	service KeyDirectoryService
}

func NewCreateKeyCommand(service KeyDirectoryService) *CreateKeyCommand {
	return &CreateKeyCommand{service: service}
}

func (c *CreateKeyCommand) Execute(ctx context.Context, msg CreateKeyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.CreateKey(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteKeyCommand struct {
	service KeyDirectoryService
}

func NewDeleteKeyCommand(service KeyDirectoryService) *DeleteKeyCommand {
	return &DeleteKeyCommand{service: service}
}

func (c *DeleteKeyCommand) Execute(ctx context.Context, msg DeleteKeyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	return c.service.DeleteKey(ctx, msg.Request)
}

type CreateOwnershipClaimCommand struct {
	service KeyDirectoryService
}

func NewCreateOwnershipClaimCommand(service KeyDirectoryService) *CreateOwnershipClaimCommand {
	return &CreateOwnershipClaimCommand{service: service}
}

func (c *CreateOwnershipClaimCommand) Execute(ctx context.Context, msg CreateOwnershipClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.CreateOwnershipClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreatePortabilityClaimCommand struct {
	service KeyDirectoryService
}

func NewCreatePortabilityClaimCommand(service KeyDirectoryService) *CreatePortabilityClaimCommand {
	return &CreatePortabilityClaimCommand{service: service}
}

func (c *CreatePortabilityClaimCommand) Execute(ctx context.Context, msg CreatePortabilityClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.CreatePortabilityClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ConfirmClaimCommand struct {
	service KeyDirectoryService
}

func NewConfirmClaimCommand(service KeyDirectoryService) *ConfirmClaimCommand {
	return &ConfirmClaimCommand{service: service}
}

func (c *ConfirmClaimCommand) Execute(ctx context.Context, msg ConfirmClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.ConfirmPortabilityClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CancelClaimCommand struct {
	service KeyDirectoryService
}

func NewCancelClaimCommand(service KeyDirectoryService) *CancelClaimCommand {
	return &CancelClaimCommand{service: service}
}

func (c *CancelClaimCommand) Execute(ctx context.Context, msg CancelClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.CancelClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DenyClaimCommand struct {
	service KeyDirectoryService
}

func NewDenyClaimCommand(service KeyDirectoryService) *DenyClaimCommand {
	return &DenyClaimCommand{service: service}
}

func (c *DenyClaimCommand) Execute(ctx context.Context, msg DenyClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.DenyClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CloseClaimCommand struct {
	service KeyDirectoryService
}

func NewCloseClaimCommand(service KeyDirectoryService) *CloseClaimCommand {
	return &CloseClaimCommand{service: service}
}

func (c *CloseClaimCommand) Execute(ctx context.Context, msg CloseClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.CloseClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type FinishClaimCommand struct {
	service KeyDirectoryService
}

func NewFinishClaimCommand(service KeyDirectoryService) *FinishClaimCommand {
	return &FinishClaimCommand{service: service}
}

func (c *FinishClaimCommand) Execute(ctx context.Context, msg FinishClaimMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: key directory service is required")
	}
	out, err := c.service.FinishClaim(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreatePaymentCommand struct {
	service PaymentService
}

func NewCreatePaymentCommand(service PaymentService) *CreatePaymentCommand {
	return &CreatePaymentCommand{service: service}
}

func (c *CreatePaymentCommand) Execute(ctx context.Context, msg CreatePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.CreatePayment(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateDevolutionCommand struct {
	service PaymentService
}

func NewCreateDevolutionCommand(service PaymentService) *CreateDevolutionCommand {
	return &CreateDevolutionCommand{service: service}
}

func (c *CreateDevolutionCommand) Execute(ctx context.Context, msg CreateDevolutionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.CreateDevolution(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateRefundDevolutionCommand struct {
	service PaymentService
}

func NewCreateRefundDevolutionCommand(service PaymentService) *CreateRefundDevolutionCommand {
	return &CreateRefundDevolutionCommand{service: service}
}

func (c *CreateRefundDevolutionCommand) Execute(ctx context.Context, msg CreateRefundDevolutionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.CreateRefundDevolution(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type NotifyCreditCommand struct {
	service PaymentService
}

func NewNotifyCreditCommand(service PaymentService) *NotifyCreditCommand {
	return &NotifyCreditCommand{service: service}
}

func (c *NotifyCreditCommand) Execute(ctx context.Context, msg NotifyCreditMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	return c.service.NotifyCreditStatement(ctx, msg.EndToEndIDs)
}

type CreateInfractionCommand struct {
	service InfractionService
}

func NewCreateInfractionCommand(service InfractionService) *CreateInfractionCommand {
	return &CreateInfractionCommand{service: service}
}

func (c *CreateInfractionCommand) Execute(ctx context.Context, msg CreateInfractionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: infraction service is required")
	}
	out, err := c.service.CreateInfraction(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CancelInfractionCommand struct {
	service InfractionService
}

func NewCancelInfractionCommand(service InfractionService) *CancelInfractionCommand {
	return &CancelInfractionCommand{service: service}
}

func (c *CancelInfractionCommand) Execute(ctx context.Context, msg CancelInfractionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: infraction service is required")
	}
	out, err := c.service.CancelInfraction(ctx, msg.InfractionID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CloseInfractionCommand struct {
	service InfractionService
}

func NewCloseInfractionCommand(service InfractionService) *CloseInfractionCommand {
	return &CloseInfractionCommand{service: service}
}

func (c *CloseInfractionCommand) Execute(ctx context.Context, msg CloseInfractionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: infraction service is required")
	}
	out, err := c.service.CloseInfraction(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CancelRefundCommand struct {
	service RefundService
}

func NewCancelRefundCommand(service RefundService) *CancelRefundCommand {
	return &CancelRefundCommand{service: service}
}

func (c *CancelRefundCommand) Execute(ctx context.Context, msg CancelRefundMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refund service is required")
	}
	out, err := c.service.CancelRefund(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CloseRefundCommand struct {
	service RefundService
}

func NewCloseRefundCommand(service RefundService) *CloseRefundCommand {
	return &CloseRefundCommand{service: service}
}

func (c *CloseRefundCommand) Execute(ctx context.Context, msg CloseRefundMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refund service is required")
	}
	out, err := c.service.CloseRefund(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateFraudMarkCommand struct {
	service FraudDetectionService
}

func NewCreateFraudMarkCommand(service FraudDetectionService) *CreateFraudMarkCommand {
	return &CreateFraudMarkCommand{service: service}
}

func (c *CreateFraudMarkCommand) Execute(ctx context.Context, msg CreateFraudMarkMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: fraud detection service is required")
	}
	out, err := c.service.CreateFraudMark(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CancelFraudMarkCommand struct {
	service FraudDetectionService
}

func NewCancelFraudMarkCommand(service FraudDetectionService) *CancelFraudMarkCommand {
	return &CancelFraudMarkCommand{service: service}
}

func (c *CancelFraudMarkCommand) Execute(ctx context.Context, msg CancelFraudMarkMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: fraud detection service is required")
	}
	out, err := c.service.CancelFraudMark(ctx, msg.MarkID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
