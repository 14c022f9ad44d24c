package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes carried in Error.Code.
const (
	CodeDomainError       = "DOMAIN_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeOrderNotFound     = "ORDER_NOT_FOUND"
	CodeRequestInProgress = "REQUEST_IN_PROGRESS"
	CodeInternalError     = "INTERNAL_ERROR"
)

// errorResponse maps an error returned by a handler to a status code and body.
// Unknown errors become a 500 whose message hides the cause.
func errorResponse(err error) (int, Error) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Code: codeForStatus(httpErr.Code), Message: fmt.Sprint(httpErr.Message)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: CodeOrderNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return http.StatusConflict, Error{Code: CodeInvalidTransition, Message: err.Error()}
	case errors.Is(err, ports.ErrIdempotencyKeyInProgress):
		return http.StatusConflict, Error{Code: CodeRequestInProgress, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrCurrencyMismatch):
		return http.StatusBadRequest, Error{Code: CodeDomainError, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Error{Code: CodeInternalError, Message: "internal error"}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeDomainError
	case http.StatusInternalServerError:
		return CodeInternalError
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// HandleError is the echo HTTPErrorHandler of the API.
func (s *Server) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error("writing error response", "error", err)
	}
}
