package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"vipgate/pkg/utils"
)

const syncpayBaseURL = "https://api.syncpay.com.br"

// Syncpay takes the amount in cents and keys auth off two custom headers.
type Syncpay struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewSyncpay(logger *zap.Logger) *Syncpay {
	return &Syncpay{
		BaseURL: syncpayBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

type syncpayRequest struct {
	Amount      int64           `json:"amount"`
	ReferenceID string          `json:"reference_id"`
	Customer    syncpayCustomer `json:"customer"`
}

type syncpayCustomer struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

type syncpayResponse struct {
	ID       string `json:"id"`
	ChargeID string `json:"charge_id"`
	PixCode  string `json:"pix_code"`
	EMV      string `json:"emv"`
	Payload  string `json:"payload"`
	QRCode   string `json:"qr_code"`
	ImageURL string `json:"image_url"`
}

func (g *Syncpay) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (*Charge, error) {
	payload, err := json.Marshal(syncpayRequest{
		Amount:      req.AmountCents,
		ReferenceID: req.TransactionID,
		Customer: syncpayCustomer{
			Name:  req.PayerName,
			TaxID: req.PayerID,
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/pix/charge", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", creds.PrivateToken)
	httpReq.Header.Set("x-public-key", creds.PublicToken)

	resp, err := g.HTTP.Do(httpReq)
	if err != nil {
		g.Logger.Error("syncpay transport error", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.Logger.Warn("syncpay rejected charge",
			zap.Int("status", resp.StatusCode),
			zap.String("transaction_id", req.TransactionID))
		return nil, fmt.Errorf("%w: syncpay status %s", utils.ErrGatewayRejected, resp.Status)
	}

	var data syncpayResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode syncpay response: %v", utils.ErrGatewayRejected, err)
	}

	return &Charge{
		PixCode:          firstNonEmpty(data.PixCode, data.EMV, data.Payload),
		QRCodeURL:        firstNonEmpty(data.QRCode, data.ImageURL),
		GatewayPaymentID: firstNonEmpty(data.ID, data.ChargeID),
	}, nil
}
