package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/paymentintent"
)

const razorpayCurrency = "INR"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// ToMinorUnits converts rupees to paise, dropping fractions of a paisa.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitsPerMajor).Truncate(0).IntPart()
}

type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(keyID, keySecret string) RazorpayClient {
	return RazorpayClient{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (c RazorpayClient) CreateOrder(_ context.Context, amountMinor int64, receipt string) (json.RawMessage, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        razorpayCurrency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	order, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("creating razorpay order: %w", err)
	}

	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshalling razorpay order: %w", err)
	}

	return body, nil
}

type StripeClient struct {
	client paymentintent.Client
}

func NewStripeClient(secretKey string) StripeClient {
	return NewStripeClientWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func NewStripeClientWithBackend(secretKey string, backend stripe.Backend) StripeClient {
	return StripeClient{
		client: paymentintent.Client{
			B:   backend,
			Key: secretKey,
		},
	}
}

func (c StripeClient) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (json.RawMessage, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(string(stripe.CurrencyINR)),
	}
	params.Context = ctx
	// Receipts repeat within a second, idempotency keys must not.
	params.SetIdempotencyKey(uuid.NewString())
	params.AddMetadata("receipt", receipt)

	pi, err := c.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe payment intent: %w", err)
	}

	body, err := json.Marshal(pi)
	if err != nil {
		return nil, fmt.Errorf("marshalling stripe payment intent: %w", err)
	}

	return body, nil
}
