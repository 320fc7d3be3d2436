package pixgateway

import "github.com/goliatone/go-pix-gateway/core"

type Config = core.Config

type AuthConfig = core.AuthConfig

type EndpointsConfig = core.EndpointsConfig

type Money = core.Money

type Key = core.Key
type KeyClaim = core.KeyClaim
type Payment = core.Payment
type Devolution = core.Devolution
type QRCode = core.QRCode
type InfractionReport = core.InfractionReport
type RefundRequest = core.RefundRequest
type FraudDetectionMark = core.FraudDetectionMark
type Participant = core.Participant

type TokenSource = core.TokenSource
type TransportAdapter = core.TransportAdapter
type MetricsRecorder = core.MetricsRecorder
type Logger = core.Logger

func DefaultConfig() Config {
	return core.DefaultConfig()
}
