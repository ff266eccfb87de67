package http

import (
	"net/http"
	"strings"
	"time"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var apiPaths = []string{"/health", "/bookings", "/ratings", "/orders"}

var ErrServerClosed = http.ErrServerClosed

type RouterDeps struct {
	Bookings       BookingService
	Ratings        RatingService
	RatingQueries  RatingQueryService
	PaymentGateway PaymentGateway

	CORSAllowOrigin string
	TrustProxy      bool
	StaticDir       string

	// Now stamps payment receipts. Defaults to time.Now.
	Now func() time.Time
}

func NewRouter(deps RouterDeps) *echo.Echo {
	server := commonHTTP.NewEcho()
	server.HTTPErrorHandler = handleError

	if deps.TrustProxy {
		server.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		server.IPExtractor = echo.ExtractIPDirect()
	}

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	h := handler{
		bookings:       deps.Bookings,
		ratings:        deps.Ratings,
		ratingQueries:  deps.RatingQueries,
		paymentGateway: deps.PaymentGateway,
		now:            now,
	}

	cors := corsHeaders(deps.CORSAllowOrigin)

	server.POST("/bookings", h.PostBooking, cors)
	server.OPTIONS("/bookings", preflight, cors)

	server.GET("/ratings", h.GetRatings, cors)
	server.POST("/ratings", h.PostRating, cors)
	server.OPTIONS("/ratings", preflight, cors)

	server.POST("/orders", h.PostOrder, cors)
	server.OPTIONS("/orders", preflight, cors)

	if deps.StaticDir != "" {
		server.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    deps.StaticDir,
			Skipper: skipStatic,
		}))
	}

	return server
}

// skipStatic leaves API routes to the router so that a wrong method on them
// still answers 405.
func skipStatic(c echo.Context) bool {
	method := c.Request().Method
	if method != http.MethodGet && method != http.MethodHead {
		return true
	}

	path := c.Request().URL.Path
	for _, p := range apiPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
