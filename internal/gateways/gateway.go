package gateways

import (
	"context"
	"fmt"

	"vipgate/internal/models/db_models"
	"vipgate/pkg/utils"
)

// Credentials are the per-bot gateway tokens, straight off the Bot row.
type Credentials struct {
	PublicToken  string
	PrivateToken string
}

// ChargeRequest is what every adapter needs to open a PIX charge. Amounts
// are minor units; nothing above this boundary deals in cents.
type ChargeRequest struct {
	AmountCents   int64
	TransactionID string
	PayerName     string
	PayerID       string
}

// Charge is the gateway's answer: a copy-paste PIX payload, an optional QR
// image and the gateway-side payment id.
type Charge struct {
	PixCode          string
	QRCodeURL        string
	GatewayPaymentID string
}

type Adapter interface {
	CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (*Charge, error)
}

// Registry resolves a bot's gateway selector to its adapter. Unknown
// selectors are a configuration error, never a panic.
type Registry struct {
	adapters map[db_models.PaymentGateway]Adapter
}

func NewRegistry(pushinpay *PushinPay, syncpay *Syncpay) *Registry {
	return &Registry{
		adapters: map[db_models.PaymentGateway]Adapter{
			db_models.GatewayPushinPay:   pushinpay,
			db_models.GatewaySyncpay:     syncpay,
			db_models.GatewayMercadoPago: &notConfigured{name: "mercadopago"},
			db_models.GatewayAsaas:       &notConfigured{name: "asaas"},
		},
	}
}

func (r *Registry) Resolve(gateway db_models.PaymentGateway) (Adapter, error) {
	adapter, ok := r.adapters[gateway]
	if !ok {
		return nil, utils.ErrUnsupportedGateway
	}
	return adapter, nil
}

// notConfigured covers gateways the dashboard can select but the charge path
// does not speak yet.
type notConfigured struct {
	name string
}

func (a *notConfigured) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (*Charge, error) {
	return nil, fmt.Errorf("%w: %s", utils.ErrUnsupportedGateway, a.name)
}
