package postgres_test

import (
	"context"
	"testing"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/postgres"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(email, state, pkg, price string) entity.Booking {
	return entity.Booking{
		CustomerName:  "Asha Rao",
		CustomerEmail: email,
		CustomerPhone: "9876543210",
		State:         state,
		PackageName:   pkg,
		PackagePrice:  decimal.RequireFromString(price),
		PaymentMethod: "Razorpay (pay_123)",
	}
}

func TestBookingRepo_AddBookings(t *testing.T) {
	ctx := context.Background()
	r := postgres.NewBookingRepo(db, watermill.NopLogger{})
	email := uuid.NewString() + "@example.com"

	ids, err := r.AddBookings(ctx, []entity.Booking{
		newBooking(email, "Kerala", "Backwater Bliss", "12000"),
		newBooking(email, "Goa", "Beach Escape", "8000.50"),
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Less(t, ids[0], ids[1])

	bookings, err := r.ListByEmail(ctx, email)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, ids[0], bookings[0].ID)
	assert.Equal(t, "Backwater Bliss", bookings[0].PackageName)
	assert.Equal(t, entity.PaymentStatusPending, bookings[0].PaymentStatus)
	assert.False(t, bookings[0].CreatedAt.IsZero())

	assert.Equal(t, ids[1], bookings[1].ID)
	assert.True(t, decimal.RequireFromString("8000.50").Equal(bookings[1].PackagePrice))
}

func TestBookingRepo_AddBookings_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	r := postgres.NewBookingRepo(db, watermill.NopLogger{})
	email := uuid.NewString() + "@example.com"

	_, err := r.AddBookings(ctx, []entity.Booking{
		newBooking(email, "Kerala", "Backwater Bliss", "12000"),
		newBooking(email, "Goa", "Beach Escape", "-1"),
	})

	var persistenceErr entity.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "failed to create booking for Beach Escape", persistenceErr.Message)

	bookings, err := r.ListByEmail(ctx, email)
	require.NoError(t, err)
	assert.Empty(t, bookings, "no partial bookings may remain")
}
