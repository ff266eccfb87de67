package http

import (
	"fmt"
	"net/http"

	"github.com/kaushal0402/Explore-India/clients"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type orderRequest struct {
	Amount decimal.NullDecimal `json:"amount"`
}

type orderErrorResponse struct {
	Error string `json:"error"`
}

// PostOrder creates a payment order with the configured gateway and returns
// the gateway's response as is.
func (h handler) PostOrder(c echo.Context) error {
	var request orderRequest
	if err := bindStrict(c, &request); err != nil {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{Error: "Invalid request body"})
	}

	if !request.Amount.Valid {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{Error: "Amount is required"})
	}

	amountMinor := clients.ToMinorUnits(request.Amount.Decimal)
	if amountMinor <= 0 {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{Error: "Amount must be greater than zero"})
	}

	ctx := c.Request().Context()
	receipt := fmt.Sprintf("rcptid_%d", h.now().Unix())

	order, err := h.paymentGateway.CreateOrder(ctx, amountMinor, receipt)
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Failed to create payment order")
		return c.JSON(http.StatusBadGateway, orderErrorResponse{Error: "Failed to create payment order"})
	}

	return c.JSONBlob(http.StatusOK, order)
}
