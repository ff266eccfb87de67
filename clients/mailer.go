package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/mailersend/mailersend-go"
)

const confirmationSubject = "Your Explore India booking"

type MailerSendClient struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendClient(apiKey, fromName, fromEmail string) MailerSendClient {
	return MailerSendClient{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (c MailerSendClient) SendBookingConfirmation(ctx context.Context, confirmation entity.BookingConfirmation) error {
	msg := c.client.Email.NewMessage()
	msg.SetFrom(c.from)
	msg.SetRecipients([]mailersend.Recipient{
		{
			Name:  confirmation.CustomerName,
			Email: confirmation.CustomerEmail,
		},
	})
	msg.SetSubject(confirmationSubject)
	msg.SetText(ConfirmationText(confirmation))

	res, err := c.client.Email.Send(ctx, msg)
	if err != nil {
		if rejected(err) {
			return entity.UndeliverableError{Message: "confirmation email rejected", Err: err}
		}
		return fmt.Errorf("sending confirmation email: %w", err)
	}

	log.FromContext(ctx).
		WithField("message_id", res.Header.Get("X-Message-Id")).
		Info("Booking confirmation sent")

	return nil
}

// rejected is true for 4xx answers other than 401 and 429. A bad API key or a
// rate limit clears up; an invalid recipient or unverified sender does not.
func rejected(err error) bool {
	var resErr *mailersend.ErrorResponse
	if !errors.As(err, &resErr) || resErr.Response == nil {
		return false
	}

	code := resErr.Response.StatusCode
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError &&
		code != http.StatusTooManyRequests
}

// LogMailer stands in for a mail provider in development.
type LogMailer struct{}

func (LogMailer) SendBookingConfirmation(ctx context.Context, confirmation entity.BookingConfirmation) error {
	log.FromContext(ctx).
		WithField("customer_email", confirmation.CustomerEmail).
		Info(ConfirmationText(confirmation))
	return nil
}

func ConfirmationText(c entity.BookingConfirmation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\nThank you for booking with Explore India.\n\n", c.CustomerName)
	for _, booking := range c.Bookings {
		fmt.Fprintf(&b, "  #%d  %s (%s)  ₹%s\n",
			booking.ID, booking.PackageName, booking.State, booking.PackagePrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: ₹%s\nPayment method: %s\nPayment status: %s\n",
		c.TotalAmount.StringFixed(2), c.PaymentMethod, entity.PaymentStatusPending)

	return b.String()
}
