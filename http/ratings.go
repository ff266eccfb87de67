package http

import (
	"encoding/json"
	"net/http"

	"github.com/kaushal0402/Explore-India/entity"
	"github.com/kaushal0402/Explore-India/rating"

	"github.com/labstack/echo/v4"
)

type ratingRequest struct {
	PackageName string      `json:"package_name"`
	State       string      `json:"state"`
	Rating      ratingInput `json:"rating"`
}

// ratingInput keeps the raw text of a rating so that both 4 and "4" are
// accepted and anything else is reported by the rating service.
type ratingInput string

func (r *ratingInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ratingInput(s)
		return nil
	}

	*r = ratingInput(data)
	return nil
}

type submitRatingResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type packageRatingResponse struct {
	Success       bool    `json:"success"`
	PackageName   string  `json:"package_name"`
	State         string  `json:"state"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type stateRatingsResponse struct {
	Success bool                `json:"success"`
	State   string              `json:"state"`
	Ratings []stateRatingRecord `json:"ratings"`
}

type stateRatingRecord struct {
	PackageName   string  `json:"package_name"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type allRatingsResponse struct {
	Success bool              `json:"success"`
	Ratings []allRatingRecord `json:"ratings"`
}

type allRatingRecord struct {
	State         string  `json:"state"`
	PackageName   string  `json:"package_name"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

func (h handler) PostRating(c echo.Context) error {
	var request ratingRequest
	if err := bindStrict(c, &request); err != nil {
		return err
	}

	result, err := h.ratings.Submit(c.Request().Context(), rating.Submission{
		PackageName:      request.PackageName,
		State:            request.State,
		Rating:           string(request.Rating),
		SourceIdentifier: c.RealIP(),
		SubmitterAgent:   c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitRatingResponse{
		Success:       true,
		Message:       result.Message,
		AverageRating: result.Average,
		TotalRatings:  result.Count,
	})
}

func (h handler) GetRatings(c echo.Context) error {
	result, err := h.ratingQueries.Ratings(c.Request().Context(), rating.Query{
		PackageName: c.QueryParam("package_name"),
		State:       c.QueryParam("state"),
	})
	if err != nil {
		return err
	}

	switch result.Mode {
	case rating.QueryPackage:
		return c.JSON(http.StatusOK, packageRatingResponse{
			Success:       true,
			PackageName:   result.Query.PackageName,
			State:         result.Query.State,
			AverageRating: result.Summary.Average,
			TotalRatings:  result.Summary.Count,
		})
	case rating.QueryState:
		return c.JSON(http.StatusOK, stateRatingsResponse{
			Success: true,
			State:   result.Query.State,
			Ratings: stateRatingRecords(result.Ratings),
		})
	default:
		return c.JSON(http.StatusOK, allRatingsResponse{
			Success: true,
			Ratings: allRatingRecords(result.Ratings),
		})
	}
}

func stateRatingRecords(ratings []entity.PackageRating) []stateRatingRecord {
	records := make([]stateRatingRecord, 0, len(ratings))
	for _, r := range ratings {
		records = append(records, stateRatingRecord{
			PackageName:   r.Name,
			AverageRating: r.Average,
			TotalRatings:  r.Count,
		})
	}
	return records
}

func allRatingRecords(ratings []entity.PackageRating) []allRatingRecord {
	records := make([]allRatingRecord, 0, len(ratings))
	for _, r := range ratings {
		records = append(records, allRatingRecord{
			State:         r.State,
			PackageName:   r.Name,
			AverageRating: r.Average,
			TotalRatings:  r.Count,
		})
	}
	return records
}
