package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaushal0402/Explore-India/booking"
	"github.com/kaushal0402/Explore-India/config"
	"github.com/kaushal0402/Explore-India/http"
	"github.com/kaushal0402/Explore-India/message"
	"github.com/kaushal0402/Explore-India/postgres"
	"github.com/kaushal0402/Explore-India/rating"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Deps struct {
	Config             config.Config
	Logger             watermill.LoggerAdapter
	DB                 *sqlx.DB
	RedisClient        *redis.Client
	PaymentGateway     http.PaymentGateway
	ConfirmationSender message.ConfirmationSender

	// Now is the clock used for rating windows and payment receipts.
	Now func() time.Time
}

type Service struct {
	httpAddr   string
	msgRouter  *message.Router
	forwarder  *message.Forwarder
	httpRouter *echo.Echo
}

func New(deps Deps) (*Service, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	msgRouter, err := message.NewRouter(message.RouterDeps{
		ConfirmationSender: deps.ConfirmationSender,
		Logger:             deps.Logger,
		RedisClient:        deps.RedisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	fwd, err := message.NewForwarder(deps.DB, deps.RedisClient, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating forwarder: %w", err)
	}

	bookingRepo := postgres.NewBookingRepo(deps.DB, deps.Logger)
	ratingRepo := postgres.NewRatingRepo(deps.DB)

	httpRouter := http.NewRouter(http.RouterDeps{
		Bookings:        booking.NewService(bookingRepo),
		Ratings:         rating.NewService(ratingRepo, deps.Now),
		RatingQueries:   rating.NewQueryService(ratingRepo),
		PaymentGateway:  deps.PaymentGateway,
		CORSAllowOrigin: deps.Config.CORSAllowOrigin,
		TrustProxy:      deps.Config.TrustProxy,
		StaticDir:       deps.Config.StaticDir,
		Now:             deps.Now,
	})

	return &Service{
		httpAddr:   deps.Config.HTTPAddr,
		msgRouter:  msgRouter,
		forwarder:  fwd,
		httpRouter: httpRouter,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.forwarder.Run(runCtx); err != nil {
			return fmt.Errorf("running forwarder: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for message router
		<-s.msgRouter.Running()

		logrus.WithField("addr", s.httpAddr).Info("Starting HTTP server...")
		err := s.httpRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
