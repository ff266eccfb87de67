package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "₹"

var maxPrice = decimal.RequireFromString("99999999.99")

type Item struct {
	State       string
	PackageName string
	Price       decimal.NullDecimal
}

// Cart is a checkout of one or more packages.
type Cart struct {
	Customer entity.Customer
	Items    []Item
}

// SinglePackage is the older request shape that books exactly one package.
type SinglePackage struct {
	Customer entity.Customer
	Item     Item
}

type CartConfirmation struct {
	BookingIDs  []int64
	TotalAmount decimal.Decimal
	Message     string
}

type PackageConfirmation struct {
	BookingID int64
	Message   string
}

type Store interface {
	AddBookings(ctx context.Context, bookings []entity.Booking) ([]int64, error)
}

type Service struct {
	store    Store
	validate *validator.Validate
	printer  *message.Printer
}

func NewService(store Store) Service {
	return Service{
		store:    store,
		validate: validator.New(),
		printer:  message.NewPrinter(language.English),
	}
}

func (s Service) CheckoutCart(ctx context.Context, cart Cart) (CartConfirmation, error) {
	customer, err := s.validateCustomer(cart.Customer)
	if err != nil {
		return CartConfirmation{}, err
	}

	if len(cart.Items) == 0 {
		return CartConfirmation{}, entity.NewValidationError("cart is empty")
	}

	items := make([]Item, 0, len(cart.Items))
	for i, item := range cart.Items {
		item, err := validateCartItem(i+1, item)
		if err != nil {
			return CartConfirmation{}, err
		}
		items = append(items, item)
	}

	ids, err := s.store.AddBookings(ctx, newBookings(customer, items))
	if err != nil {
		return CartConfirmation{}, fmt.Errorf("adding bookings: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal)
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"booking_ids":  ids,
		"total_amount": total.String(),
	}).Info("Cart checked out")

	return CartConfirmation{
		BookingIDs:  ids,
		TotalAmount: total,
		Message: fmt.Sprintf(
			"All %d bookings created successfully! Total: %s%s. Booking IDs: %s",
			len(ids), currencySymbol, s.formatAmount(total), joinIDs(ids),
		),
	}, nil
}

func (s Service) BookPackage(ctx context.Context, p SinglePackage) (PackageConfirmation, error) {
	customer, err := s.validateCustomer(p.Customer)
	if err != nil {
		return PackageConfirmation{}, err
	}

	item, err := validateSingleItem(p.Item)
	if err != nil {
		return PackageConfirmation{}, err
	}

	ids, err := s.store.AddBookings(ctx, newBookings(customer, []Item{item}))
	if err != nil {
		return PackageConfirmation{}, fmt.Errorf("adding booking: %w", err)
	}
	if len(ids) != 1 {
		return PackageConfirmation{}, entity.PersistenceError{
			Message: fmt.Sprintf("failed to create booking for %s", item.PackageName),
			Err:     fmt.Errorf("expected 1 booking id, got %d", len(ids)),
		}
	}

	log.FromContext(ctx).WithField("booking_id", ids[0]).Info("Package booked")

	return PackageConfirmation{
		BookingID: ids[0],
		Message:   fmt.Sprintf("Booking created successfully! Your booking ID is: %d", ids[0]),
	}, nil
}

func (s Service) validateCustomer(c entity.Customer) (entity.Customer, error) {
	c = entity.Customer{
		Name:          strings.TrimSpace(c.Name),
		Email:         strings.TrimSpace(c.Email),
		Phone:         strings.TrimSpace(c.Phone),
		PaymentMethod: strings.TrimSpace(c.PaymentMethod),
	}

	required := []struct {
		field string
		value string
	}{
		{"customer_name", c.Name},
		{"customer_email", c.Email},
		{"customer_phone", c.Phone},
		{"payment_method", c.PaymentMethod},
	}
	for _, r := range required {
		if r.value == "" {
			return entity.Customer{}, entity.NewValidationError("missing field %s", r.field)
		}
	}

	if err := s.validate.Var(c.Email, "email"); err != nil {
		return entity.Customer{}, entity.NewValidationError("invalid email")
	}

	return c, nil
}

func validateCartItem(position int, item Item) (Item, error) {
	item.State = strings.TrimSpace(item.State)
	item.PackageName = strings.TrimSpace(item.PackageName)

	switch {
	case item.State == "":
		return Item{}, entity.NewValidationError("missing state for cart item %d", position)
	case item.PackageName == "":
		return Item{}, entity.NewValidationError("missing package name for cart item %d", position)
	case !item.Price.Valid:
		return Item{}, entity.NewValidationError("missing price for cart item %d", position)
	case !validPrice(item.Price.Decimal):
		return Item{}, entity.NewValidationError("invalid price for cart item %d", position)
	}

	return item, nil
}

func validateSingleItem(item Item) (Item, error) {
	item.State = strings.TrimSpace(item.State)
	item.PackageName = strings.TrimSpace(item.PackageName)

	if item.State == "" || item.PackageName == "" || !item.Price.Valid {
		return Item{}, entity.NewValidationError("missing package information")
	}
	if !validPrice(item.Price.Decimal) {
		return Item{}, entity.NewValidationError("invalid package price")
	}

	return item, nil
}

// validPrice accepts what a NUMERIC(10, 2) column stores unchanged, so the
// reported total always equals the sum of the stored prices.
func validPrice(price decimal.Decimal) bool {
	return !price.IsNegative() &&
		price.Equal(price.Round(2)) &&
		price.LessThanOrEqual(maxPrice)
}

func newBookings(c entity.Customer, items []Item) []entity.Booking {
	bookings := make([]entity.Booking, 0, len(items))
	for _, item := range items {
		bookings = append(bookings, entity.Booking{
			CustomerName:  c.Name,
			CustomerEmail: c.Email,
			CustomerPhone: c.Phone,
			State:         item.State,
			PackageName:   item.PackageName,
			PackagePrice:  item.Price.Decimal,
			PaymentMethod: c.PaymentMethod,
			PaymentStatus: entity.PaymentStatusPending,
		})
	}
	return bookings
}

// formatAmount renders whole currency units with thousands separators.
func (s Service) formatAmount(amount decimal.Decimal) string {
	return s.printer.Sprintf("%d", amount.Round(0).IntPart())
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
