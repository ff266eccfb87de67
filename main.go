package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaushal0402/Explore-India/clients"
	"github.com/kaushal0402/Explore-India/config"
	"github.com/kaushal0402/Explore-India/message"
	"github.com/kaushal0402/Explore-India/postgres"
	"github.com/kaushal0402/Explore-India/service"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log.Init(logrus.InfoLevel)
	logger := watermill.NewStdLogger(false, false)

	if err := run(logger); err != nil {
		logger.Error("failed to run", err, nil)
		os.Exit(1)
	}
}

func run(logger watermill.LoggerAdapter) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	paymentGateway, err := clients.NewPaymentGateway(cfg)
	if err != nil {
		return fmt.Errorf("creating payment gateway client: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis connection", err, nil)
		}
	}()

	dbConn, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close db connection", err, nil)
		}
	}()

	if err := postgres.InitialiseDB(ctx, dbConn); err != nil {
		return fmt.Errorf("initialising db: %w", err)
	}

	if err := message.InitialiseOutbox(dbConn, logger); err != nil {
		return fmt.Errorf("initialising outbox: %w", err)
	}

	svc, err := service.New(service.Deps{
		Config:             cfg,
		Logger:             logger,
		DB:                 dbConn,
		RedisClient:        rdb,
		PaymentGateway:     paymentGateway,
		ConfirmationSender: clients.NewConfirmationSender(ctx, cfg),
	})
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	return svc.Run(ctx)
}
