package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/event"
	"github.com/kaushal0402/Explore-India/message"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type BookingRepo struct {
	db     *sqlx.DB
	logger watermill.LoggerAdapter
}

func NewBookingRepo(db *sqlx.DB, logger watermill.LoggerAdapter) BookingRepo {
	return BookingRepo{
		db:     db,
		logger: logger,
	}
}

// AddBookings stores every booking of one checkout and the matching
// BookingsPlaced event in a single transaction. It returns the generated ids
// in input order. On failure nothing is stored.
func (r BookingRepo) AddBookings(ctx context.Context, bookings []entity.Booking) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, entity.PersistenceError{Message: "failed to start booking transaction", Err: err}
	}

	ids, err := r.add(ctx, tx, bookings)
	if err != nil {
		return nil, errors.Join(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return nil, entity.PersistenceError{Message: "failed to commit bookings", Err: err}
	}

	return ids, nil
}

func (r BookingRepo) add(ctx context.Context, tx *sql.Tx, bookings []entity.Booking) ([]int64, error) {
	ids := make([]int64, 0, len(bookings))
	packages := make([]event.BookedPackage, 0, len(bookings))

	for _, b := range bookings {
		status := b.PaymentStatus
		if status == "" {
			status = entity.PaymentStatusPending
		}

		var id int64
		err := tx.QueryRowContext(ctx, `INSERT INTO bookings
			(customer_name, customer_email, customer_phone, state, package_name, package_price, payment_method, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
			b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.State, b.PackageName, b.PackagePrice, b.PaymentMethod, status,
		).Scan(&id)
		if err != nil {
			return nil, entity.PersistenceError{
				Message: fmt.Sprintf("failed to create booking for %s", b.PackageName),
				Err:     err,
			}
		}

		ids = append(ids, id)
		packages = append(packages, event.BookedPackage{
			BookingID:   id,
			State:       b.State,
			PackageName: b.PackageName,
			Price:       b.PackagePrice,
		})
	}

	if len(bookings) == 0 {
		return ids, nil
	}

	first := bookings[0]
	e := event.NewBookingsPlaced(uuid.NewString(), first.CustomerName, first.CustomerEmail, first.PaymentMethod, packages)

	if err := message.PublishBookingsPlacedInTx(ctx, e, tx, r.logger); err != nil {
		return nil, entity.PersistenceError{Message: "failed to record booking event", Err: err}
	}

	return ids, nil
}

func (r BookingRepo) ListByEmail(ctx context.Context, email string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.SelectContext(ctx, &bookings, `SELECT
		id, customer_name, customer_email, customer_phone, state, package_name, package_price, payment_method, payment_status, created_at
		FROM bookings WHERE customer_email = $1 ORDER BY id`, email)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}

	return bookings, nil
}
