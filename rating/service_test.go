package rating_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/rating"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStore keeps ratings in memory and aggregates them like the database
// does.
type MockStore struct {
	lock    sync.Mutex
	Ratings []entity.Rating
	Err     error
}

func (m *MockStore) HasRatedSince(_ context.Context, pkg entity.Package, source string, since time.Time) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.Err != nil {
		return false, m.Err
	}

	for _, r := range m.Ratings {
		if r.PackageName == pkg.Name && r.State == pkg.State && r.SourceIdentifier == source && r.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) Add(_ context.Context, r entity.Rating) (int64, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.Ratings = append(m.Ratings, r)
	return int64(len(m.Ratings)), nil
}

func (m *MockStore) Summary(_ context.Context, pkg entity.Package) (entity.RatingSummary, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	sum := decimal.Zero
	count := 0
	for _, r := range m.Ratings {
		if r.PackageName == pkg.Name && r.State == pkg.State {
			sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
			count++
		}
	}
	if count == 0 {
		return entity.NewRatingSummary(decimal.Zero, 0), nil
	}
	return entity.NewRatingSummary(sum.Div(decimal.NewFromInt(int64(count))), count), nil
}

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func submission(value, source string) rating.Submission {
	return rating.Submission{
		PackageName:      "Golden Triangle Tour",
		State:            "Rajasthan",
		Rating:           value,
		SourceIdentifier: source,
		SubmitterAgent:   "Mozilla/5.0",
	}
}

func TestService_Submit(t *testing.T) {
	store := &MockStore{}
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := rating.NewService(store, c.Now)
	ctx := context.Background()

	result, err := svc.Submit(ctx, submission("4", "10.0.0.1"))
	require.NoError(t, err)
	assert.Equal(t, "Rating submitted successfully", result.Message)
	assert.Equal(t, 4.0, result.Average)
	assert.Equal(t, 1, result.Count)

	result, err = svc.Submit(ctx, submission("5", "10.0.0.2"))
	require.NoError(t, err)
	assert.Equal(t, 4.5, result.Average)
	assert.Equal(t, 2, result.Count)

	require.Len(t, store.Ratings, 2)
	assert.Equal(t, c.now, store.Ratings[0].CreatedAt)
	assert.Equal(t, "Mozilla/5.0", store.Ratings[0].SubmitterAgent)
}

func TestService_Submit_AverageRoundsToOneDecimal(t *testing.T) {
	store := &MockStore{}
	svc := rating.NewService(store, nil)
	ctx := context.Background()

	for i, v := range []string{"5", "4", "4"} {
		_, err := svc.Submit(ctx, submission(v, string(rune('a'+i))))
		require.NoError(t, err)
	}

	result, err := svc.Submit(ctx, submission("4", "d"))
	require.NoError(t, err)
	assert.Equal(t, 4.3, result.Average)
	assert.Equal(t, 4, result.Count)
}

func TestService_Submit_DuplicateWindow(t *testing.T) {
	store := &MockStore{}
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := rating.NewService(store, c.Now)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submission("4", "10.0.0.1"))
	require.NoError(t, err)

	c.now = c.now.Add(23 * time.Hour)
	_, err = svc.Submit(ctx, submission("2", "10.0.0.1"))

	var duplicateErr entity.DuplicateError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "You have already rated this package in the last 24 hours", duplicateErr.Message)
	assert.Len(t, store.Ratings, 1)

	t.Run("other package from the same source", func(t *testing.T) {
		sub := submission("3", "10.0.0.1")
		sub.PackageName = "Desert Safari"

		_, err := svc.Submit(ctx, sub)
		require.NoError(t, err)
	})

	t.Run("window has passed", func(t *testing.T) {
		c.now = c.now.Add(2 * time.Hour)

		result, err := svc.Submit(ctx, submission("2", "10.0.0.1"))
		require.NoError(t, err)
		assert.Equal(t, 3.0, result.Average)
		assert.Equal(t, 2, result.Count)
	})
}

func TestService_Submit_UnknownSource(t *testing.T) {
	store := &MockStore{}
	svc := rating.NewService(store, nil)

	_, err := svc.Submit(context.Background(), rating.Submission{
		PackageName: "Golden Triangle Tour",
		State:       "Rajasthan",
		Rating:      "5",
	})
	require.NoError(t, err)

	require.Len(t, store.Ratings, 1)
	assert.Equal(t, "unknown", store.Ratings[0].SourceIdentifier)
	assert.Equal(t, "unknown", store.Ratings[0].SubmitterAgent)
}

func TestService_Submit_Invalid(t *testing.T) {
	testCases := []struct {
		name       string
		submission rating.Submission
		message    string
	}{
		{
			name:       "missing package name",
			submission: rating.Submission{State: "Rajasthan", Rating: "4"},
			message:    "Missing required fields",
		},
		{
			name:       "blank state",
			submission: rating.Submission{PackageName: "Golden Triangle Tour", State: "  ", Rating: "4"},
			message:    "Missing required fields",
		},
		{
			name:       "missing rating",
			submission: rating.Submission{PackageName: "Golden Triangle Tour", State: "Rajasthan"},
			message:    "Missing required fields",
		},
		{
			name:       "zero",
			submission: submission("0", "10.0.0.1"),
			message:    "Rating must be between 1 and 5",
		},
		{
			name:       "six",
			submission: submission("6", "10.0.0.1"),
			message:    "Rating must be between 1 and 5",
		},
		{
			name:       "negative",
			submission: submission("-1", "10.0.0.1"),
			message:    "Rating must be between 1 and 5",
		},
		{
			name:       "not a number",
			submission: submission("five", "10.0.0.1"),
			message:    "Rating must be a number",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockStore{}
			svc := rating.NewService(store, nil)

			_, err := svc.Submit(context.Background(), tc.submission)

			var validationErr entity.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.message, validationErr.Message)
			assert.Empty(t, store.Ratings)
		})
	}
}

func TestService_Submit_StoreFailure(t *testing.T) {
	store := &MockStore{Err: errors.New("connection refused")}
	svc := rating.NewService(store, nil)

	_, err := svc.Submit(context.Background(), submission("4", "10.0.0.1"))

	var persistenceErr entity.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.ErrorIs(t, err, store.Err)
	assert.Empty(t, store.Ratings)
}

func TestParseRating(t *testing.T) {
	for raw, expected := range map[string]int{
		"1":    1,
		"2":    2,
		"3":    3,
		"4":    4,
		"5":    5,
		"3.5":  3,
		" 4 ":  4,
		"5.9":  5,
		"1.0":  1,
		"4e0":  4,
		"0.99": 0,
	} {
		t.Run(raw, func(t *testing.T) {
			got, err := rating.ParseRating(raw)
			if expected == 0 {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}
