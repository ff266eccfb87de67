package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaushal0402/Explore-India/config"
	"github.com/kaushal0402/Explore-India/message"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// PaymentGateway creates a payment order the browser completes with the
// gateway's checkout widget. The returned body is the gateway's own JSON.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (json.RawMessage, error)
}

func NewPaymentGateway(cfg config.Config) (PaymentGateway, error) {
	switch cfg.PaymentGateway {
	case config.GatewayRazorpay:
		return NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret), nil
	case config.GatewayStripe:
		return NewStripeClient(cfg.StripeSecretKey), nil
	default:
		return nil, fmt.Errorf("unsupported payment gateway %q", cfg.PaymentGateway)
	}
}

func NewConfirmationSender(ctx context.Context, cfg config.Config) message.ConfirmationSender {
	if cfg.MailerSendAPIKey == "" {
		log.FromContext(ctx).Warn("MAILERSEND_API_KEY not set, booking confirmations will only be logged")
		return LogMailer{}
	}

	return NewMailerSendClient(cfg.MailerSendAPIKey, cfg.MailerSendFromName, cfg.MailerSendFromEmail)
}
