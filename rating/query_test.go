package rating_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockReadStore struct {
	Calls []string
	Err   error
}

func (m *MockReadStore) Summary(_ context.Context, pkg entity.Package) (entity.RatingSummary, error) {
	m.Calls = append(m.Calls, "summary:"+pkg.State+"/"+pkg.Name)
	return entity.RatingSummary{Average: 4.5, Count: 2}, m.Err
}

func (m *MockReadStore) SummariesByState(_ context.Context, state string) ([]entity.PackageRating, error) {
	m.Calls = append(m.Calls, "state:"+state)
	return nil, m.Err
}

func (m *MockReadStore) AllSummaries(_ context.Context) ([]entity.PackageRating, error) {
	m.Calls = append(m.Calls, "all")
	if m.Err != nil {
		return nil, m.Err
	}
	return []entity.PackageRating{
		{
			Package:       entity.Package{State: "Goa", Name: "Beach Escape"},
			RatingSummary: entity.RatingSummary{Average: 3, Count: 1},
		},
	}, nil
}

func TestQuery_Mode(t *testing.T) {
	testCases := []struct {
		query rating.Query
		mode  rating.QueryMode
	}{
		{rating.Query{PackageName: "Beach Escape", State: "Goa"}, rating.QueryPackage},
		{rating.Query{State: "Goa"}, rating.QueryState},
		{rating.Query{PackageName: "Beach Escape"}, rating.QueryAll},
		{rating.Query{PackageName: "  ", State: " "}, rating.QueryAll},
		{rating.Query{}, rating.QueryAll},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.mode, tc.query.Mode(), "%+v", tc.query)
	}
}

func TestQueryService_Ratings(t *testing.T) {
	ctx := context.Background()

	t.Run("package", func(t *testing.T) {
		store := &MockReadStore{}
		svc := rating.NewQueryService(store)

		result, err := svc.Ratings(ctx, rating.Query{PackageName: " Golden Triangle Tour ", State: "Rajasthan"})
		require.NoError(t, err)

		assert.Equal(t, rating.QueryPackage, result.Mode)
		assert.Equal(t, "Golden Triangle Tour", result.Query.PackageName)
		assert.Equal(t, entity.RatingSummary{Average: 4.5, Count: 2}, result.Summary)
		assert.Equal(t, []string{"summary:Rajasthan/Golden Triangle Tour"}, store.Calls)
	})

	t.Run("state with no ratings is an empty list", func(t *testing.T) {
		store := &MockReadStore{}
		svc := rating.NewQueryService(store)

		result, err := svc.Ratings(ctx, rating.Query{State: "Kerala"})
		require.NoError(t, err)

		assert.Equal(t, rating.QueryState, result.Mode)
		assert.NotNil(t, result.Ratings)
		assert.Empty(t, result.Ratings)
		assert.Equal(t, []string{"state:Kerala"}, store.Calls)
	})

	t.Run("package name alone lists everything", func(t *testing.T) {
		store := &MockReadStore{}
		svc := rating.NewQueryService(store)

		result, err := svc.Ratings(ctx, rating.Query{PackageName: "Beach Escape"})
		require.NoError(t, err)

		assert.Equal(t, rating.QueryAll, result.Mode)
		assert.Len(t, result.Ratings, 1)
		assert.Equal(t, []string{"all"}, store.Calls)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &MockReadStore{Err: errors.New("timeout")}
		svc := rating.NewQueryService(store)

		_, err := svc.Ratings(ctx, rating.Query{})

		var persistenceErr entity.PersistenceError
		require.ErrorAs(t, err, &persistenceErr)
		assert.Equal(t, "failed to query ratings", persistenceErr.Message)
	})
}
