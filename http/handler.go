package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaushal0402/Explore-India/booking"
	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/rating"

	"github.com/labstack/echo/v4"
)

type BookingService interface {
	CheckoutCart(ctx context.Context, cart booking.Cart) (booking.CartConfirmation, error)
	BookPackage(ctx context.Context, p booking.SinglePackage) (booking.PackageConfirmation, error)
}

type RatingService interface {
	Submit(ctx context.Context, sub rating.Submission) (rating.Result, error)
}

type RatingQueryService interface {
	Ratings(ctx context.Context, q rating.Query) (rating.QueryResult, error)
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (json.RawMessage, error)
}

type handler struct {
	bookings       BookingService
	ratings        RatingService
	ratingQueries  RatingQueryService
	paymentGateway PaymentGateway
	now            func() time.Time
}

// bindStrict decodes a JSON body, rejecting fields the request type does not
// declare.
func bindStrict(c echo.Context, v any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return entity.ValidationError{Message: "Invalid request body: " + err.Error()}
	}

	return nil
}
