package http

import (
	"errors"
	"net/http"

	"tracker/internal/core/domain/model/shipment"
	"tracker/internal/core/domain/services"
	"tracker/internal/pkg/errs"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, services.ErrUnrecognizedUpdateKind),
		errors.Is(err, shipment.ErrUnknownVariant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
