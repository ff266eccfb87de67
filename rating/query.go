package rating

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaushal0402/Explore-India/entity"
)

type QueryMode int

const (
	// QueryAll lists every rated package across all states.
	QueryAll QueryMode = iota
	// QueryState lists the rated packages of one state.
	QueryState
	// QueryPackage summarises a single package.
	QueryPackage
)

// Query selects what to aggregate. Blank fields count as absent. A package
// name without a state falls back to QueryAll.
type Query struct {
	PackageName string
	State       string
}

func (q Query) normalised() Query {
	return Query{
		PackageName: strings.TrimSpace(q.PackageName),
		State:       strings.TrimSpace(q.State),
	}
}

func (q Query) Mode() QueryMode {
	q = q.normalised()
	switch {
	case q.PackageName != "" && q.State != "":
		return QueryPackage
	case q.State != "":
		return QueryState
	default:
		return QueryAll
	}
}

// QueryResult holds the answer for the query's mode: Summary for
// QueryPackage, Ratings otherwise. Ratings is never nil.
type QueryResult struct {
	Mode    QueryMode
	Query   Query
	Summary entity.RatingSummary
	Ratings []entity.PackageRating
}

type ReadStore interface {
	Summary(ctx context.Context, pkg entity.Package) (entity.RatingSummary, error)
	SummariesByState(ctx context.Context, state string) ([]entity.PackageRating, error)
	AllSummaries(ctx context.Context) ([]entity.PackageRating, error)
}

type QueryService struct {
	store ReadStore
}

func NewQueryService(store ReadStore) QueryService {
	return QueryService{
		store: store,
	}
}

func (s QueryService) Ratings(ctx context.Context, q Query) (QueryResult, error) {
	q = q.normalised()
	result := QueryResult{
		Mode:    q.Mode(),
		Query:   q,
		Ratings: []entity.PackageRating{},
	}

	var err error
	switch result.Mode {
	case QueryPackage:
		result.Summary, err = s.store.Summary(ctx, entity.Package{State: q.State, Name: q.PackageName})
	case QueryState:
		result.Ratings, err = s.store.SummariesByState(ctx, q.State)
	default:
		result.Ratings, err = s.store.AllSummaries(ctx)
	}
	if err != nil {
		return QueryResult{}, entity.PersistenceError{
			Message: "failed to query ratings",
			Err:     fmt.Errorf("aggregating ratings: %w", err),
		}
	}

	if result.Ratings == nil {
		result.Ratings = []entity.PackageRating{}
	}

	return result, nil
}
