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

const pushinPayBaseURL = "https://api.pushinpay.com.br"

// PushinPay charges in BRL units, not cents, and answers with loosely
// versioned field names. The fallback chains below mirror the responses seen
// in production.
type PushinPay struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

func NewPushinPay(logger *zap.Logger) *PushinPay {
	return &PushinPay{
		BaseURL: pushinPayBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

type pushinPayRequest struct {
	Value             float64        `json:"value"`
	ExternalReference string         `json:"external_reference"`
	Payer             pushinPayPayer `json:"payer"`
}

type pushinPayPayer struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type pushinPayResponse struct {
	ID          string `json:"id"`
	PaymentID   string `json:"payment_id"`
	PixCode     string `json:"pix_code"`
	Brcode      string `json:"brcode"`
	QRCodeText  string `json:"qr_code_text"`
	QRCodeURL   string `json:"qr_code_url"`
	QRCodeImage string `json:"qr_code_image"`
}

func (g *PushinPay) CreateCharge(ctx context.Context, creds Credentials, req ChargeRequest) (*Charge, error) {
	payload, err := json.Marshal(pushinPayRequest{
		Value:             float64(req.AmountCents) / 100,
		ExternalReference: req.TransactionID,
		Payer: pushinPayPayer{
			Name:     req.PayerName,
			Document: req.PayerID,
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/pix/create", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+creds.PrivateToken)
	httpReq.Header.Set("X-Public-Key", creds.PublicToken)

	resp, err := g.HTTP.Do(httpReq)
	if err != nil {
		g.Logger.Error("pushinpay transport error", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.Logger.Warn("pushinpay rejected charge",
			zap.Int("status", resp.StatusCode),
			zap.String("transaction_id", req.TransactionID))
		return nil, fmt.Errorf("%w: pushinpay status %s", utils.ErrGatewayRejected, resp.Status)
	}

	var data pushinPayResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode pushinpay response: %v", utils.ErrGatewayRejected, err)
	}

	return &Charge{
		PixCode:          firstNonEmpty(data.PixCode, data.Brcode, data.QRCodeText),
		QRCodeURL:        firstNonEmpty(data.QRCodeURL, data.QRCodeImage),
		GatewayPaymentID: firstNonEmpty(data.ID, data.PaymentID),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
