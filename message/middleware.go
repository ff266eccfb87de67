package message

import (
	"errors"
	"time"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

// The mail API rate limits per account, so confirmations back off for about
// half a minute before the message goes back to the stream.
const (
	confirmationMaxRetries      = 5
	confirmationInitialInterval = 500 * time.Millisecond
	confirmationMaxInterval     = 10 * time.Second
	confirmationMaxElapsedTime  = 30 * time.Second
)

func addMiddlewares(router *message.Router, logger watermill.LoggerAdapter) {
	router.AddMiddleware(correlationIDMiddleware)
	router.AddMiddleware(loggerMiddleware)
	router.AddMiddleware(handlerLogMiddleware)
	router.AddMiddleware(confirmationRetry(logger).Middleware)
	router.AddMiddleware(dropUndeliverableMiddleware)
}

func confirmationRetry(logger watermill.LoggerAdapter) middleware.Retry {
	return middleware.Retry{
		MaxRetries:          confirmationMaxRetries,
		InitialInterval:     confirmationInitialInterval,
		MaxInterval:         confirmationMaxInterval,
		MaxElapsedTime:      confirmationMaxElapsedTime,
		Multiplier:          2,
		RandomizationFactor: 0.2,
		Logger:              logger,
	}
}

func correlationIDMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(msg.Context(), correlationID)
		msg.SetContext(ctx)

		return next(msg)
	}
}

func loggerMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := log.CorrelationIDFromContext(msg.Context())
		ctx := log.ToContext(msg.Context(), logrus.WithFields(logrus.Fields{
			"message_uuid":   msg.UUID,
			"correlation_id": correlationID,
		}))
		msg.SetContext(ctx)

		return next(msg)
	}
}

func handlerLogMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := log.FromContext(msg.Context())
		logger.WithField("handler", message.HandlerNameFromCtx(msg.Context())).Info("Handling a message")

		msgs, err := next(msg)

		if err != nil {
			logger.WithError(err).Error("Message handling error")
		}

		return msgs, err
	}
}

// dropUndeliverableMiddleware acks messages whose notification the provider
// refused, so they are neither retried nor redelivered.
func dropUndeliverableMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgs, err := next(msg)

		var undeliverable entity.UndeliverableError
		if errors.As(err, &undeliverable) {
			log.FromContext(msg.Context()).
				WithError(err).
				Warn("Dropping undeliverable message")
			return nil, nil
		}

		return msgs, err
	}
}
