package event

import (
	"github.com/shopspring/decimal"
)

type BookedPackage struct {
	BookingID   int64           `json:"booking_id"`
	State       string          `json:"state"`
	PackageName string          `json:"package_name"`
	Price       decimal.Decimal `json:"price"`
}

// BookingsPlaced is published once per checkout, inside the transaction that
// stored the bookings.
type BookingsPlaced struct {
	Header        header          `json:"header"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	PaymentMethod string          `json:"payment_method"`
	Packages      []BookedPackage `json:"packages"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

func NewBookingsPlaced(idempotencyKey string, customerName, customerEmail, paymentMethod string, packages []BookedPackage) BookingsPlaced {
	total := decimal.Zero
	for _, p := range packages {
		total = total.Add(p.Price)
	}

	return BookingsPlaced{
		Header:        newHeader(idempotencyKey),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		PaymentMethod: paymentMethod,
		Packages:      packages,
		TotalAmount:   total,
	}
}

func (e BookingsPlaced) BookingIDs() []int64 {
	ids := make([]int64, 0, len(e.Packages))
	for _, p := range e.Packages {
		ids = append(ids, p.BookingID)
	}
	return ids
}
