package http

import (
	"errors"
	"net/http"

	"github.com/kaushal0402/Explore-India/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := classifyError(err)

	logger := log.FromContext(c.Request().Context()).
		WithError(err).
		WithField("status", code)
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed")
	} else {
		logger.Info("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, failureResponse{Success: false, Message: message})
	}
	if err != nil {
		logger.WithError(err).Error("Failed to write error response")
	}
}

func classifyError(err error) (int, string) {
	var (
		validationErr  entity.ValidationError
		duplicateErr   entity.DuplicateError
		persistenceErr entity.PersistenceError
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &duplicateErr):
		return http.StatusBadRequest, duplicateErr.Message
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError, persistenceErr.Message
	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusMethodNotAllowed {
			return httpErr.Code, "Method not allowed"
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
