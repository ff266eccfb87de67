package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Customer struct {
	Name          string `json:"customer_name"`
	Email         string `json:"customer_email"`
	Phone         string `json:"customer_phone"`
	PaymentMethod string `json:"payment_method"`
}

// Package identifies a tour offering. Bookings and ratings both key on it.
type Package struct {
	State string `json:"state"`
	Name  string `json:"package_name"`
}

type Booking struct {
	ID            int64           `db:"id" json:"id"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	CustomerPhone string          `db:"customer_phone" json:"customer_phone"`
	State         string          `db:"state" json:"state"`
	PackageName   string          `db:"package_name" json:"package_name"`
	PackagePrice  decimal.Decimal `db:"package_price" json:"package_price"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type Rating struct {
	ID               int64     `db:"id"`
	PackageName      string    `db:"package_name"`
	State            string    `db:"state"`
	Rating           int       `db:"rating"`
	SourceIdentifier string    `db:"source_identifier"`
	SubmitterAgent   string    `db:"submitter_agent"`
	CreatedAt        time.Time `db:"created_at"`
}

// RatingSummary is the aggregate over all ratings of one package. Average is
// already rounded to one decimal place and is 0 when Count is 0.
type RatingSummary struct {
	Average float64
	Count   int
}

type PackageRating struct {
	Package
	RatingSummary
}

func NewRatingSummary(average decimal.Decimal, count int) RatingSummary {
	if count == 0 {
		return RatingSummary{}
	}

	return RatingSummary{
		Average: average.Round(1).InexactFloat64(),
		Count:   count,
	}
}

// BookingConfirmation is what a customer is told after a checkout.
type BookingConfirmation struct {
	IdempotencyKey string
	CustomerName   string
	CustomerEmail  string
	PaymentMethod  string
	Bookings       []Booking
	TotalAmount    decimal.Decimal
}
