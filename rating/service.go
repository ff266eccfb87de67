package rating

import (
	"context"
	"strings"
	"time"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DuplicateWindow = 24 * time.Hour

	MinRating = 1
	MaxRating = 5

	unknownSource = "unknown"
)

var (
	minRating = decimal.NewFromInt(MinRating)
	maxRating = decimal.NewFromInt(MaxRating)
)

// Submission is one visitor's rating. SourceIdentifier and SubmitterAgent
// describe the request it arrived in.
type Submission struct {
	PackageName      string
	State            string
	Rating           string
	SourceIdentifier string
	SubmitterAgent   string
}

type Result struct {
	entity.RatingSummary
	Message string
}

type Store interface {
	HasRatedSince(ctx context.Context, pkg entity.Package, sourceIdentifier string, since time.Time) (bool, error)
	Add(ctx context.Context, rating entity.Rating) (int64, error)
	Summary(ctx context.Context, pkg entity.Package) (entity.RatingSummary, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}

	return Service{
		store: store,
		now:   now,
	}
}

func (s Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	pkg := entity.Package{
		State: strings.TrimSpace(sub.State),
		Name:  strings.TrimSpace(sub.PackageName),
	}
	if pkg.State == "" || pkg.Name == "" || strings.TrimSpace(sub.Rating) == "" {
		return Result{}, entity.NewValidationError("Missing required fields")
	}

	value, err := ParseRating(sub.Rating)
	if err != nil {
		return Result{}, err
	}

	source := valueOrUnknown(sub.SourceIdentifier)
	agent := valueOrUnknown(sub.SubmitterAgent)
	now := s.now().UTC()

	rated, err := s.store.HasRatedSince(ctx, pkg, source, now.Add(-DuplicateWindow))
	if err != nil {
		return Result{}, entity.PersistenceError{Message: "failed to check previous ratings", Err: err}
	}
	if rated {
		return Result{}, entity.DuplicateError{Message: "You have already rated this package in the last 24 hours"}
	}

	id, err := s.store.Add(ctx, entity.Rating{
		PackageName:      pkg.Name,
		State:            pkg.State,
		Rating:           value,
		SourceIdentifier: source,
		SubmitterAgent:   agent,
		CreatedAt:        now,
	})
	if err != nil {
		return Result{}, entity.PersistenceError{Message: "failed to insert rating", Err: err}
	}

	summary, err := s.store.Summary(ctx, pkg)
	if err != nil {
		return Result{}, entity.PersistenceError{Message: "failed to compute average rating", Err: err}
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"rating_id":    id,
		"package_name": pkg.Name,
		"state":        pkg.State,
		"rating":       value,
	}).Info("Rating submitted")

	return Result{
		RatingSummary: summary,
		Message:       "Rating submitted successfully",
	}, nil
}

// ParseRating accepts any decimal number, truncates it toward zero and checks
// the result is a valid star count.
func ParseRating(raw string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, entity.NewValidationError("Rating must be a number")
	}

	d = d.Truncate(0)
	if d.LessThan(minRating) || d.GreaterThan(maxRating) {
		return 0, entity.NewValidationError("Rating must be between %d and %d", MinRating, MaxRating)
	}

	return int(d.IntPart()), nil
}

func valueOrUnknown(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknownSource
	}
	return v
}
