package http

import (
	"encoding/json"
	"net/http"

	"github.com/kaushal0402/Explore-India/booking"
	"github.com/kaushal0402/Explore-India/entity"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// bookingRequest is either a cart checkout (cart_items present) or the legacy
// single package form (state, package_name, package_price).
type bookingRequest struct {
	entity.Customer

	CartItems   *[]cartItem         `json:"cart_items"`
	TotalAmount decimal.NullDecimal `json:"total_amount"`

	State        string              `json:"state"`
	PackageName  string              `json:"package_name"`
	PackagePrice decimal.NullDecimal `json:"package_price"`
}

// cartItem mirrors what the browser keeps in its cart. Days, Features and
// AddedAt are display data and are not stored.
type cartItem struct {
	State       string              `json:"state"`
	PackageName string              `json:"packageName"`
	Price       decimal.NullDecimal `json:"price"`

	Days     json.RawMessage `json:"days"`
	Features json.RawMessage `json:"features"`
	AddedAt  json.RawMessage `json:"addedAt"`
}

type cartBookingResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	BookingIDs  []int64 `json:"booking_ids"`
	TotalAmount float64 `json:"total_amount"`
}

type packageBookingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id"`
}

func (h handler) PostBooking(c echo.Context) error {
	var request bookingRequest
	if err := bindStrict(c, &request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if request.CartItems != nil {
		items := make([]booking.Item, 0, len(*request.CartItems))
		for _, item := range *request.CartItems {
			items = append(items, booking.Item{
				State:       item.State,
				PackageName: item.PackageName,
				Price:       item.Price,
			})
		}

		confirmation, err := h.bookings.CheckoutCart(ctx, booking.Cart{
			Customer: request.Customer,
			Items:    items,
		})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, cartBookingResponse{
			Success:     true,
			Message:     confirmation.Message,
			BookingIDs:  confirmation.BookingIDs,
			TotalAmount: confirmation.TotalAmount.InexactFloat64(),
		})
	}

	confirmation, err := h.bookings.BookPackage(ctx, booking.SinglePackage{
		Customer: request.Customer,
		Item: booking.Item{
			State:       request.State,
			PackageName: request.PackageName,
			Price:       request.PackagePrice,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, packageBookingResponse{
		Success:   true,
		Message:   confirmation.Message,
		BookingID: confirmation.BookingID,
	})
}
