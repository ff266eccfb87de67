package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type RatingRepo struct {
	db *sqlx.DB
}

func NewRatingRepo(db *sqlx.DB) RatingRepo {
	return RatingRepo{
		db: db,
	}
}

type summaryRow struct {
	State         string              `db:"state"`
	PackageName   string              `db:"package_name"`
	AverageRating decimal.NullDecimal `db:"average_rating"`
	TotalRatings  int                 `db:"total_ratings"`
}

func (row summaryRow) packageRating() entity.PackageRating {
	return entity.PackageRating{
		Package: entity.Package{
			State: row.State,
			Name:  row.PackageName,
		},
		RatingSummary: entity.NewRatingSummary(row.AverageRating.Decimal, row.TotalRatings),
	}
}

func (r RatingRepo) HasRatedSince(ctx context.Context, pkg entity.Package, sourceIdentifier string, since time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (
		SELECT 1 FROM ratings
		WHERE package_name = $1 AND state = $2 AND source_identifier = $3 AND created_at > $4
	)`, pkg.Name, pkg.State, sourceIdentifier, since)
	if err != nil {
		return false, fmt.Errorf("checking recent ratings: %w", err)
	}

	return exists, nil
}

func (r RatingRepo) Add(ctx context.Context, rating entity.Rating) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO ratings
		(package_name, state, rating, source_identifier, submitter_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		rating.PackageName, rating.State, rating.Rating, rating.SourceIdentifier, rating.SubmitterAgent, rating.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting rating: %w", err)
	}

	return id, nil
}

func (r RatingRepo) Summary(ctx context.Context, pkg entity.Package) (entity.RatingSummary, error) {
	var row summaryRow
	err := r.db.GetContext(ctx, &row, `SELECT
		$1::text AS state, $2::text AS package_name, AVG(rating) AS average_rating, COUNT(*) AS total_ratings
		FROM ratings WHERE state = $1 AND package_name = $2`, pkg.State, pkg.Name)
	if err != nil {
		return entity.RatingSummary{}, fmt.Errorf("querying rating summary: %w", err)
	}

	return row.packageRating().RatingSummary, nil
}

func (r RatingRepo) SummariesByState(ctx context.Context, state string) ([]entity.PackageRating, error) {
	return r.summaries(ctx, `SELECT
		state, package_name, AVG(rating) AS average_rating, COUNT(*) AS total_ratings
		FROM ratings WHERE state = $1
		GROUP BY state, package_name
		ORDER BY package_name COLLATE "C"`, state)
}

func (r RatingRepo) AllSummaries(ctx context.Context) ([]entity.PackageRating, error) {
	return r.summaries(ctx, `SELECT
		state, package_name, AVG(rating) AS average_rating, COUNT(*) AS total_ratings
		FROM ratings
		GROUP BY state, package_name
		ORDER BY state COLLATE "C", package_name COLLATE "C"`)
}

func (r RatingRepo) summaries(ctx context.Context, query string, args ...any) ([]entity.PackageRating, error) {
	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying rating summaries: %w", err)
	}

	ratings := make([]entity.PackageRating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, row.packageRating())
	}

	return ratings, nil
}
