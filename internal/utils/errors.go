package utils

import (
	"context"
	"errors"
	"net/http"

	"DOIT_BACK-END/internal/common"
	"DOIT_BACK-END/internal/logging"
)

const (
	MsgValidation         = "Validation error."
	MsgMalformedBody      = "The request body is malformed or contains invalid data."
	MsgEmptyBody          = "The request body is empty or not provided."
	MsgInvalidCredentials = "Invalid email or password."
	MsgMissingToken       = "Bearer token not provided"
	MsgInvalidToken       = "Bearer token is invalid or expired"
	MsgInternal           = "An internal error occurred."
)

// ErrorStatus maps a domain error to the status code and client-facing message.
// Anything not in the taxonomy is reported as a generic 500.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrNoteNotFound):
		return http.StatusNotFound, "Note not found"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict, "Email is already in use"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to access this resource"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusForbidden, MsgMissingToken
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, MsgInvalidToken
	case errors.Is(err, common.ErrMalformedBody):
		return http.StatusBadRequest, MsgMalformedBody
	case errors.Is(err, common.ErrEmptyBody):
		return http.StatusBadRequest, MsgEmptyBody
	case errors.Is(err, common.ErrInvalidID):
		return http.StatusBadRequest, "The id in the path is not valid"
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// WriteError renders err through ErrorStatus. Internal errors are logged with
// their cause; the client only ever sees the generic message.
func WriteError(ctx context.Context, w http.ResponseWriter, log logging.Logger, err error) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		WriteValidationError(w, verr.Fields)
		return
	}

	status, msg := ErrorStatus(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error(ctx, "unhandled error", "error", err)
	}
	WriteErrorResponse(w, status, msg)
}
