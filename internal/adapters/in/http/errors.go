package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes carried in the error envelope.
const (
	codeValidationError        = "VALIDATION_ERROR"
	codeOrderNotFound          = "ORDER_NOT_FOUND"
	codeInvalidTransition      = "INVALID_TRANSITION"
	codeMissingCancelReason    = "MISSING_CANCEL_REASON"
	codeConcurrentModification = "CONCURRENT_MODIFICATION"
	codeInternalError          = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(ctx echo.Context, status int, code, message, details string) error {
	return ctx.JSON(status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeDomainError maps domain and application errors onto the HTTP error
// envelope. ErrMissingCancelReason is itself a value-is-required error, so it
// has to be matched before the generic validation families.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrMissingCancelReason):
		return writeError(ctx, http.StatusConflict, codeMissingCancelReason,
			"a cancel reason is required to cancel an order", err.Error())

	case errors.Is(err, order.ErrInvalidTransition):
		return writeError(ctx, http.StatusConflict, codeInvalidTransition,
			"the requested status transition is not allowed", err.Error())

	case errors.Is(err, order.ErrForceNotPermitted):
		return writeError(ctx, http.StatusForbidden, codeValidationError,
			"forcing a transition requires the admin role", err.Error())

	case errors.Is(err, order.ErrShippingDetailsFrozen):
		return writeError(ctx, http.StatusConflict, codeValidationError,
			"shipping details can no longer be changed", err.Error())

	case errors.Is(err, ports.ErrConcurrentModification):
		return writeError(ctx, http.StatusConflict, codeConcurrentModification,
			"the order was modified concurrently, retry the request", err.Error())

	case errors.Is(err, ports.ErrDuplicateOrderCode):
		return writeError(ctx, http.StatusConflict, codeValidationError,
			"an order with this code already exists", err.Error())

	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, codeOrderNotFound,
			"order not found", err.Error())

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, codeValidationError,
			"request validation failed", err.Error())

	default:
		return writeError(ctx, http.StatusInternalServerError, codeInternalError,
			"internal server error", "")
	}
}
