package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPersonType      = errors.New("core: invalid person type")
	ErrInvalidKeyType         = errors.New("core: invalid key type")
	ErrInvalidAccountType     = errors.New("core: invalid account type")
	ErrInvalidClaimType       = errors.New("core: invalid claim type")
	ErrInvalidClaimStatus     = errors.New("core: invalid claim status")
	ErrInvalidClaimRole       = errors.New("core: invalid claim participation role")
	ErrInvalidClaimTransition = errors.New("core: invalid claim status transition")
	ErrClaimRoleNotAllowed    = errors.New("core: claim operation not allowed for role")
)

// Money is a monetary amount in integer minor units (centavos). All internal
// arithmetic happens on Money; the decimal major-unit representation exists
// only at the wire boundary (see codec.ToMajorUnits / codec.ToMinorUnits).
type Money int64

func (m Money) IsPositive() bool { return m > 0 }

func (m Money) IsNegative() bool { return m < 0 }

type PersonType string

const (
	PersonTypeNatural PersonType = "natural_person"
	PersonTypeLegal   PersonType = "legal_person"
)

func (p PersonType) Validate() error {
	switch p {
	case PersonTypeNatural, PersonTypeLegal:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPersonType, string(p))
}

// Document is a CPF or CNPJ held digits-only. Formatting rules (zero padding
// to 11 or 14 digits) are applied by the codec when crossing the wire.
type Document struct {
	Value      string
	PersonType PersonType
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.Value) == "" {
		return fmt.Errorf("%w: empty document", ErrInvalidPersonType)
	}
	return d.PersonType.Validate()
}

type KeyType string

const (
	KeyTypeCPF   KeyType = "cpf"
	KeyTypeCNPJ  KeyType = "cnpj"
	KeyTypeEmail KeyType = "email"
	KeyTypePhone KeyType = "phone"
	KeyTypeEVP   KeyType = "evp"
)

func (k KeyType) Validate() error {
	switch k {
	case KeyTypeCPF, KeyTypeCNPJ, KeyTypeEmail, KeyTypePhone, KeyTypeEVP:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidKeyType, string(k))
}

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeSalary   AccountType = "salary"
	AccountTypePayment  AccountType = "payment"
)

// Account identifies a participant-held account on the wire. Branch and
// number are zero-padded by the codec; ISPB is the 8-digit routing code.
type Account struct {
	ISPB     string
	Branch   string
	Number   string
	Type     AccountType
	OpenedAt time.Time
}

// Owner is the person or company an account or key belongs to.
type Owner struct {
	Document  Document
	Name      string
	TradeName string
}

// Key is an addressing alias registered in the key directory.
type Key struct {
	Type      KeyType
	Value     string
	Account   Account
	Owner     Owner
	CreatedAt time.Time
}

type ClaimType string

const (
	ClaimTypeOwnership   ClaimType = "ownership"
	ClaimTypePortability ClaimType = "portability"
)

func (c ClaimType) Validate() error {
	switch c {
	case ClaimTypeOwnership, ClaimTypePortability:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidClaimType, string(c))
}

type ClaimStatus string

const (
	ClaimStatusOpen              ClaimStatus = "open"
	ClaimStatusWaitingResolution ClaimStatus = "waiting_resolution"
	ClaimStatusConfirmed         ClaimStatus = "confirmed"
	ClaimStatusCancelled         ClaimStatus = "cancelled"
	ClaimStatusCompleted         ClaimStatus = "completed"
)

func (s ClaimStatus) Validate() error {
	switch s {
	case ClaimStatusOpen, ClaimStatusWaitingResolution, ClaimStatusConfirmed,
		ClaimStatusCancelled, ClaimStatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidClaimStatus, string(s))
}

// Terminal reports whether the claim can never change again.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusCancelled || s == ClaimStatusCompleted
}

// ClaimRole is the side this institution holds in a claim. The donor is the
// current key holder; the claimant is the institution requesting the key.
type ClaimRole string

const (
	ClaimRoleDonor    ClaimRole = "donor"
	ClaimRoleClaimant ClaimRole = "claimant"
)

func (r ClaimRole) Validate() error {
	switch r {
	case ClaimRoleDonor, ClaimRoleClaimant:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidClaimRole, string(r))
}

// ClaimOperation names the five legal mutations of a claim. The scheme owns
// the authoritative state; the gateway only validates that the institution is
// submitting a role-consistent operation before going to the network.
type ClaimOperation string

const (
	ClaimOperationCreate  ClaimOperation = "create"
	ClaimOperationConfirm ClaimOperation = "confirm"
	ClaimOperationCancel  ClaimOperation = "cancel"
	ClaimOperationClose   ClaimOperation = "close"
	ClaimOperationFinish  ClaimOperation = "finish"
)

// claimOperationRoles is the role-legality table imposed by the scheme.
// Confirm is donor-only (the current holder accepts losing the key); close is
// claimant-only; cancel may come from either side but the caller must flag
// which role it holds.
var claimOperationRoles = map[ClaimOperation]map[ClaimRole]struct{}{
	ClaimOperationCreate:  {ClaimRoleClaimant: {}},
	ClaimOperationConfirm: {ClaimRoleDonor: {}},
	ClaimOperationCancel:  {ClaimRoleDonor: {}, ClaimRoleClaimant: {}},
	ClaimOperationClose:   {ClaimRoleClaimant: {}},
	ClaimOperationFinish:  {ClaimRoleDonor: {}, ClaimRoleClaimant: {}},
}

// ClaimOperationAllowed validates role legality for a claim operation.
func ClaimOperationAllowed(op ClaimOperation, role ClaimRole) error {
	if err := role.Validate(); err != nil {
		return err
	}
	allowed, ok := claimOperationRoles[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrClaimRoleNotAllowed, string(op))
	}
	if _, ok := allowed[role]; !ok {
		return fmt.Errorf("%w: %s as %s", ErrClaimRoleNotAllowed, string(op), string(role))
	}
	return nil
}

// claimTransitionAllowed mirrors the scheme's claim lifecycle:
// OPEN -> WAITING_RESOLUTION -> {CONFIRMED, CANCELLED} -> COMPLETED, with
// CANCELLED also directly reachable from OPEN.
func claimTransitionAllowed(current, next ClaimStatus) bool {
	allowed := map[ClaimStatus]map[ClaimStatus]struct{}{
		ClaimStatusOpen: {
			ClaimStatusWaitingResolution: {},
			ClaimStatusCancelled:         {},
		},
		ClaimStatusWaitingResolution: {
			ClaimStatusConfirmed: {},
			ClaimStatusCancelled: {},
		},
		ClaimStatusConfirmed: {
			ClaimStatusCompleted: {},
		},
		ClaimStatusCancelled: {},
		ClaimStatusCompleted: {},
	}
	_, ok := allowed[current][next]
	return ok
}

// KeyClaim is an ownership or portability dispute over a key. Claims are
// created by the scheme in response to a create-claim call; the gateway never
// invents an id.
type KeyClaim struct {
	ID                 string
	Type               ClaimType
	Role               ClaimRole
	Status             ClaimStatus
	Key                string
	KeyType            KeyType
	DonorISPB          string
	ClaimantISPB       string
	ResolutionDeadline time.Time
	CompletionDeadline time.Time
	LastModifiedAt     time.Time
}

// TransitionTo applies a scheme-observed status change locally. It exists for
// callers that track claims between scheme round-trips; the scheme remains
// the single source of truth.
func (c *KeyClaim) TransitionTo(status ClaimStatus, now time.Time) error {
	if c == nil {
		return nil
	}
	if c.Status == status {
		c.LastModifiedAt = now
		return nil
	}
	if !claimTransitionAllowed(c.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidClaimTransition, c.Status, status)
	}
	c.Status = status
	c.LastModifiedAt = now
	return nil
}

// ClaimCancelReason is the scheme-validated mandatory reason on cancel/deny.
type ClaimCancelReason string

const (
	ClaimCancelReasonClientRequest   ClaimCancelReason = "client_request"
	ClaimCancelReasonAccountClosure  ClaimCancelReason = "account_closure"
	ClaimCancelReasonFraud           ClaimCancelReason = "fraud"
	ClaimCancelReasonDefaultResponse ClaimCancelReason = "default_response"
)

type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSettled    PaymentStatus = "settled"
	PaymentStatusChargeback PaymentStatus = "chargeback"
)

type PaymentPriority string

const (
	PaymentPriorityHigh   PaymentPriority = "priority"
	PaymentPriorityNormal PaymentPriority = "not_priority"
)

type PaymentFinality string

const (
	PaymentFinalityTransfer   PaymentFinality = "transfer"
	PaymentFinalityWithdrawal PaymentFinality = "withdrawal"
	PaymentFinalityChange     PaymentFinality = "change"
)

type InitiationType string

const (
	InitiationTypeManual    InitiationType = "manual"
	InitiationTypeKey       InitiationType = "key"
	InitiationTypeQRStatic  InitiationType = "qr_static"
	InitiationTypeQRDynamic InitiationType = "qr_dynamic"
)

// Payment is the domain-shaped result of a payment lookup or creation.
type Payment struct {
	ID          string
	EndToEndID  string
	Status      PaymentStatus
	Amount      Money
	Payer       PaymentParty
	Payee       PaymentParty
	Priority    PaymentPriority
	Finality    PaymentFinality
	Initiation  InitiationType
	Description string
	CreatedAt   time.Time
	SettledAt   time.Time
}

// PaymentParty is one side of a payment.
type PaymentParty struct {
	Name     string
	Document Document
	Account  Account
	Key      string
}

// DevolutionCode is the scheme reason attached to a devolution.
type DevolutionCode string

const (
	DevolutionCodeClientRequest   DevolutionCode = "client_request"
	DevolutionCodeFraud           DevolutionCode = "fraud"
	DevolutionCodeOperationalFlaw DevolutionCode = "operational_flaw"
	DevolutionCodeWithdrawalError DevolutionCode = "withdrawal_error"
)

// Devolution is the domain-shaped result of a devolution creation.
type Devolution struct {
	ID         string
	EndToEndID string
	Status     PaymentStatus
	Amount     Money
	Code       DevolutionCode
	CreatedAt  time.Time
}

type QRCodeType string

const (
	QRCodeTypeStatic  QRCodeType = "static"
	QRCodeTypeDynamic QRCodeType = "dynamic"
	QRCodeTypeDueDate QRCodeType = "due_date"
)

// QRCode is an issued or decoded QR payload.
type QRCode struct {
	ID         string
	Type       QRCodeType
	Payload    string
	Key        string
	Amount     Money
	TxID       string
	ExpiresAt  time.Time
	DueDate    time.Time
	Additional map[string]string
}

type InfractionType string

const (
	InfractionTypeFraud           InfractionType = "fraud"
	InfractionTypeRefundRequest   InfractionType = "refund_request"
	InfractionTypeRefundCancelled InfractionType = "refund_cancelled"
)

type InfractionStatus string

const (
	InfractionStatusOpen         InfractionStatus = "open"
	InfractionStatusAcknowledged InfractionStatus = "acknowledged"
	InfractionStatusClosed       InfractionStatus = "closed"
	InfractionStatusCancelled    InfractionStatus = "cancelled"
)

type InfractionAnalysisResult string

const (
	InfractionAnalysisAgreed    InfractionAnalysisResult = "agreed"
	InfractionAnalysisDisagreed InfractionAnalysisResult = "disagreed"
)

// InfractionReport is a scheme-side record; status is scheme-owned and only
// observed by this gateway.
type InfractionReport struct {
	ID             string
	TransactionID  string
	Type           InfractionType
	Status         InfractionStatus
	AnalysisResult InfractionAnalysisResult
	Details        string
	DebitedISPB    string
	CreditedISPB   string
	CreatedAt      time.Time
	AnalyzedAt     time.Time
}

type RefundStatus string

const (
	RefundStatusOpen      RefundStatus = "open"
	RefundStatusClosed    RefundStatus = "closed"
	RefundStatusCancelled RefundStatus = "cancelled"
)

type RefundReason string

const (
	RefundReasonFraud           RefundReason = "fraud"
	RefundReasonOperationalFlaw RefundReason = "operational_flaw"
	RefundReasonRefundCancelled RefundReason = "refund_cancelled"
)

type RefundRejectionReason string

const (
	RefundRejectionNoBalance      RefundRejectionReason = "no_balance"
	RefundRejectionAccountClosure RefundRejectionReason = "account_closure"
	RefundRejectionOther          RefundRejectionReason = "other"
)

// RefundRequest is a scheme-mediated return of a settled payment.
type RefundRequest struct {
	ID              string
	TransactionID   string
	EndToEndID      string
	InfractionID    string
	Status          RefundStatus
	Reason          RefundReason
	RejectionReason RefundRejectionReason
	Amount          Money
	DevolutionID    string
	CreatedAt       time.Time
	LastModifiedAt  time.Time
}

type FraudType string

const (
	FraudTypeFalseIdentification FraudType = "false_identification"
	FraudTypeDummyAccount        FraudType = "dummy_account"
	FraudTypeFraudsterAccount    FraudType = "fraudster_account"
	FraudTypeOther               FraudType = "other"
)

type FraudStatus string

const (
	FraudStatusRegistered FraudStatus = "registered"
	FraudStatusCancelled  FraudStatus = "cancelled"
)

// FraudDetectionMark flags a document or key in the scheme's fraud directory.
type FraudDetectionMark struct {
	ID        string
	Document  Document
	Key       string
	Type      FraudType
	Status    FraudStatus
	CreatedAt time.Time
}

// Participant is an entry in the scheme's bank directory.
type Participant struct {
	ISPB      string
	Name      string
	TradeName string
	Active    bool
	StartedAt time.Time
}
