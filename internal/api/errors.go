package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/closurelabs/traininglog/internal/metrics"
	"github.com/closurelabs/traininglog/internal/observability"
)

// Kind is the structured replacement for sniffing "Error" substrings
// in a message channel: every failure carries an explicit tag the
// client can branch on.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal"
)

var kindStatus = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindInternal:     http.StatusInternalServerError,
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Errf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

type errorBody struct {
	Error struct {
		Kind    Kind           `json:"kind"`
		Message string         `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}

// HTTPErrorHandler converts every failure escaping a handler into the
// JSON error envelope. Nothing propagates as an uncaught panic past
// echo's recover middleware, and internal details never reach the
// client.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body errorBody
		status := http.StatusInternalServerError
		body.Error.Kind = KindInternal
		body.Error.Message = "internal error"

		var appErr *AppError
		var vErrs validator.ValidationErrors
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = kindStatus[appErr.Kind]
			if status == 0 {
				status = http.StatusInternalServerError
			}
			body.Error.Kind = appErr.Kind
			body.Error.Message = appErr.Message
		case errors.As(err, &vErrs):
			status = http.StatusBadRequest
			body.Error.Kind = KindValidation
			body.Error.Message = "validation failed"
			body.Error.Fields = make(map[string]string, len(vErrs))
			for _, f := range vErrs {
				body.Error.Fields[f.Field()] = f.Tag()
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body.Error.Kind = kindForStatus(status)
			body.Error.Message = fmt.Sprintf("%v", httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			metrics.HandlerErrors.Inc()
			observability.CaptureErr(err)
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		if err := c.JSON(status, body); err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}
