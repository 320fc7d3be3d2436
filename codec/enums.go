package codec

import (
	"strings"

	"github.com/goliatone/go-pix-gateway/core"
)

// enumTable is a bidirectional internal-value <-> wire-code map. Both
// directions fail with a typed unmapped-value error for codes outside the
// table; there is no best-effort default.
type enumTable[T ~string] struct {
	name   string
	encode map[T]string
	decode map[string]T
}

func newEnumTable[T ~string](name string, pairs map[T]string) enumTable[T] {
	decode := make(map[string]T, len(pairs))
	for value, code := range pairs {
		decode[code] = value
	}
	return enumTable[T]{name: name, encode: pairs, decode: decode}
}

func (t enumTable[T]) Encode(value T) (string, error) {
	code, ok := t.encode[value]
	if !ok {
		return "", UnmappedValueError(t.name, string(value))
	}
	return code, nil
}

func (t enumTable[T]) Decode(code string) (T, error) {
	value, ok := t.decode[strings.TrimSpace(code)]
	if !ok {
		var zero T
		return zero, UnmappedValueError(t.name, code)
	}
	return value, nil
}

func (t enumTable[T]) values() []T {
	out := make([]T, 0, len(t.encode))
	for value := range t.encode {
		out = append(out, value)
	}
	return out
}

var personTypeTable = newEnumTable("person type", map[core.PersonType]string{
	core.PersonTypeNatural: "0",
	core.PersonTypeLegal:   "1",
})

var keyTypeTable = newEnumTable("key type", map[core.KeyType]string{
	core.KeyTypeCPF:   "0",
	core.KeyTypeCNPJ:  "1",
	core.KeyTypePhone: "2",
	core.KeyTypeEmail: "3",
	core.KeyTypeEVP:   "4",
})

var accountTypeTable = newEnumTable("account type", map[core.AccountType]string{
	core.AccountTypeChecking: "CACC",
	core.AccountTypeSavings:  "SVGS",
	core.AccountTypeSalary:   "SLRY",
	core.AccountTypePayment:  "TRAN",
})

var claimTypeTable = newEnumTable("claim type", map[core.ClaimType]string{
	core.ClaimTypeOwnership:   "0",
	core.ClaimTypePortability: "1",
})

var claimStatusTable = newEnumTable("claim status", map[core.ClaimStatus]string{
	core.ClaimStatusOpen:              "1",
	core.ClaimStatusWaitingResolution: "2",
	core.ClaimStatusConfirmed:         "3",
	core.ClaimStatusCancelled:         "4",
	core.ClaimStatusCompleted:         "5",
})

var claimRoleTable = newEnumTable("claim participation flow", map[core.ClaimRole]string{
	core.ClaimRoleDonor:    "DOADORA",
	core.ClaimRoleClaimant: "REIVINDICADORA",
})

var claimCancelReasonTable = newEnumTable("claim cancel reason", map[core.ClaimCancelReason]string{
	core.ClaimCancelReasonClientRequest:   "0",
	core.ClaimCancelReasonAccountClosure:  "1",
	core.ClaimCancelReasonFraud:           "2",
	core.ClaimCancelReasonDefaultResponse: "3",
})

var paymentStatusTable = newEnumTable("payment status", map[core.PaymentStatus]string{
	core.PaymentStatusProcessing: "1",
	core.PaymentStatusSettled:    "9",
	core.PaymentStatusChargeback: "12",
})

var paymentPriorityTable = newEnumTable("payment priority", map[core.PaymentPriority]string{
	core.PaymentPriorityHigh:   "0",
	core.PaymentPriorityNormal: "1",
})

var paymentFinalityTable = newEnumTable("payment finality", map[core.PaymentFinality]string{
	core.PaymentFinalityTransfer:   "0",
	core.PaymentFinalityWithdrawal: "1",
	core.PaymentFinalityChange:     "2",
})

var initiationTypeTable = newEnumTable("initiation type", map[core.InitiationType]string{
	core.InitiationTypeManual:    "0",
	core.InitiationTypeKey:       "1",
	core.InitiationTypeQRStatic:  "2",
	core.InitiationTypeQRDynamic: "3",
})

var devolutionCodeTable = newEnumTable("devolution code", map[core.DevolutionCode]string{
	core.DevolutionCodeClientRequest:   "MD06",
	core.DevolutionCodeFraud:           "FR01",
	core.DevolutionCodeOperationalFlaw: "BE08",
	core.DevolutionCodeWithdrawalError: "SL02",
})

var qrCodeTypeTable = newEnumTable("qr code type", map[core.QRCodeType]string{
	core.QRCodeTypeStatic:  "11",
	core.QRCodeTypeDynamic: "12",
	core.QRCodeTypeDueDate: "13",
})

var infractionTypeTable = newEnumTable("infraction type", map[core.InfractionType]string{
	core.InfractionTypeFraud:           "0",
	core.InfractionTypeRefundRequest:   "1",
	core.InfractionTypeRefundCancelled: "2",
})

var infractionStatusTable = newEnumTable("infraction status", map[core.InfractionStatus]string{
	core.InfractionStatusOpen:         "0",
	core.InfractionStatusAcknowledged: "1",
	core.InfractionStatusClosed:       "2",
	core.InfractionStatusCancelled:    "3",
})

var infractionAnalysisTable = newEnumTable("infraction analysis result", map[core.InfractionAnalysisResult]string{
	core.InfractionAnalysisAgreed:    "0",
	core.InfractionAnalysisDisagreed: "1",
})

var refundStatusTable = newEnumTable("refund status", map[core.RefundStatus]string{
	core.RefundStatusOpen:      "0",
	core.RefundStatusClosed:    "1",
	core.RefundStatusCancelled: "2",
})

var refundReasonTable = newEnumTable("refund reason", map[core.RefundReason]string{
	core.RefundReasonFraud:           "0",
	core.RefundReasonOperationalFlaw: "1",
	core.RefundReasonRefundCancelled: "2",
})

var refundRejectionTable = newEnumTable("refund rejection reason", map[core.RefundRejectionReason]string{
	core.RefundRejectionNoBalance:      "0",
	core.RefundRejectionAccountClosure: "1",
	core.RefundRejectionOther:          "2",
})

var fraudTypeTable = newEnumTable("fraud detection type", map[core.FraudType]string{
	core.FraudTypeFalseIdentification: "0",
	core.FraudTypeDummyAccount:        "1",
	core.FraudTypeFraudsterAccount:    "2",
	core.FraudTypeOther:               "3",
})

var fraudStatusTable = newEnumTable("fraud detection status", map[core.FraudStatus]string{
	core.FraudStatusRegistered: "0",
	core.FraudStatusCancelled:  "1",
})

func EncodePersonType(v core.PersonType) (string, error) { return personTypeTable.Encode(v) }

func DecodePersonType(code string) (core.PersonType, error) { return personTypeTable.Decode(code) }

func EncodeKeyType(v core.KeyType) (string, error) { return keyTypeTable.Encode(v) }

func DecodeKeyType(code string) (core.KeyType, error) { return keyTypeTable.Decode(code) }

func EncodeAccountType(v core.AccountType) (string, error) { return accountTypeTable.Encode(v) }

func DecodeAccountType(code string) (core.AccountType, error) { return accountTypeTable.Decode(code) }

func EncodeClaimType(v core.ClaimType) (string, error) { return claimTypeTable.Encode(v) }

func DecodeClaimType(code string) (core.ClaimType, error) { return claimTypeTable.Decode(code) }

func EncodeClaimStatus(v core.ClaimStatus) (string, error) { return claimStatusTable.Encode(v) }

func DecodeClaimStatus(code string) (core.ClaimStatus, error) { return claimStatusTable.Decode(code) }

// EncodeClaimRole / DecodeClaimRole translate the participation-flow flag the
// scheme uses to distinguish donor and claimant payloads. An unrecognized
// participation-flow value is a hard error.
func EncodeClaimRole(v core.ClaimRole) (string, error) { return claimRoleTable.Encode(v) }

func DecodeClaimRole(code string) (core.ClaimRole, error) { return claimRoleTable.Decode(code) }

func EncodeClaimCancelReason(v core.ClaimCancelReason) (string, error) {
	return claimCancelReasonTable.Encode(v)
}

func DecodeClaimCancelReason(code string) (core.ClaimCancelReason, error) {
	return claimCancelReasonTable.Decode(code)
}

func EncodePaymentStatus(v core.PaymentStatus) (string, error) { return paymentStatusTable.Encode(v) }

func DecodePaymentStatus(code string) (core.PaymentStatus, error) {
	return paymentStatusTable.Decode(code)
}

func EncodePaymentPriority(v core.PaymentPriority) (string, error) {
	return paymentPriorityTable.Encode(v)
}

func DecodePaymentPriority(code string) (core.PaymentPriority, error) {
	return paymentPriorityTable.Decode(code)
}

func EncodePaymentFinality(v core.PaymentFinality) (string, error) {
	return paymentFinalityTable.Encode(v)
}

func DecodePaymentFinality(code string) (core.PaymentFinality, error) {
	return paymentFinalityTable.Decode(code)
}

func EncodeInitiationType(v core.InitiationType) (string, error) {
	return initiationTypeTable.Encode(v)
}

func DecodeInitiationType(code string) (core.InitiationType, error) {
	return initiationTypeTable.Decode(code)
}

func EncodeDevolutionCode(v core.DevolutionCode) (string, error) {
	return devolutionCodeTable.Encode(v)
}

func DecodeDevolutionCode(code string) (core.DevolutionCode, error) {
	return devolutionCodeTable.Decode(code)
}

func EncodeQRCodeType(v core.QRCodeType) (string, error) { return qrCodeTypeTable.Encode(v) }

func DecodeQRCodeType(code string) (core.QRCodeType, error) { return qrCodeTypeTable.Decode(code) }

func EncodeInfractionType(v core.InfractionType) (string, error) {
	return infractionTypeTable.Encode(v)
}

func DecodeInfractionType(code string) (core.InfractionType, error) {
	return infractionTypeTable.Decode(code)
}

func EncodeInfractionStatus(v core.InfractionStatus) (string, error) {
	return infractionStatusTable.Encode(v)
}

func DecodeInfractionStatus(code string) (core.InfractionStatus, error) {
	return infractionStatusTable.Decode(code)
}

func EncodeInfractionAnalysis(v core.InfractionAnalysisResult) (string, error) {
	return infractionAnalysisTable.Encode(v)
}

func DecodeInfractionAnalysis(code string) (core.InfractionAnalysisResult, error) {
	return infractionAnalysisTable.Decode(code)
}

func EncodeRefundStatus(v core.RefundStatus) (string, error) { return refundStatusTable.Encode(v) }

func DecodeRefundStatus(code string) (core.RefundStatus, error) {
	return refundStatusTable.Decode(code)
}

func EncodeRefundReason(v core.RefundReason) (string, error) { return refundReasonTable.Encode(v) }

func DecodeRefundReason(code string) (core.RefundReason, error) {
	return refundReasonTable.Decode(code)
}

func EncodeRefundRejection(v core.RefundRejectionReason) (string, error) {
	return refundRejectionTable.Encode(v)
}

func DecodeRefundRejection(code string) (core.RefundRejectionReason, error) {
	return refundRejectionTable.Decode(code)
}

func EncodeFraudType(v core.FraudType) (string, error) { return fraudTypeTable.Encode(v) }

func DecodeFraudType(code string) (core.FraudType, error) { return fraudTypeTable.Decode(code) }

func EncodeFraudStatus(v core.FraudStatus) (string, error) { return fraudStatusTable.Encode(v) }

func DecodeFraudStatus(code string) (core.FraudStatus, error) { return fraudStatusTable.Decode(code) }
