package message

import (
	"context"
	"fmt"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, confirmation entity.BookingConfirmation) error
}

func handleSendBookingConfirmation(s ConfirmationSender) func(context.Context, *event.BookingsPlaced) error {
	return func(ctx context.Context, e *event.BookingsPlaced) error {
		bookings := make([]entity.Booking, 0, len(e.Packages))
		for _, p := range e.Packages {
			bookings = append(bookings, entity.Booking{
				ID:            p.BookingID,
				CustomerName:  e.CustomerName,
				CustomerEmail: e.CustomerEmail,
				State:         p.State,
				PackageName:   p.PackageName,
				PackagePrice:  p.Price,
				PaymentMethod: e.PaymentMethod,
				PaymentStatus: entity.PaymentStatusPending,
			})
		}

		confirmation := entity.BookingConfirmation{
			IdempotencyKey: e.Header.IdempotencyKey,
			CustomerName:   e.CustomerName,
			CustomerEmail:  e.CustomerEmail,
			PaymentMethod:  e.PaymentMethod,
			Bookings:       bookings,
			TotalAmount:    e.TotalAmount,
		}

		if err := s.SendBookingConfirmation(ctx, confirmation); err != nil {
			return fmt.Errorf("sending booking confirmation for bookings %v: %w", e.BookingIDs(), err)
		}

		log.FromContext(ctx).
			WithField("booking_ids", e.BookingIDs()).
			Info("Booking confirmation handled")

		return nil
	}
}
