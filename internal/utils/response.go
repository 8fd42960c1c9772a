package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"DOIT_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteSuccessResponse wraps data in the standard envelope.
func WriteSuccessResponse(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSONResponse(w, status, dto.Envelope{
		Timestamp: Timestamp(),
		Status:    status,
		Message:   message,
		Data:      data,
	})
}

// WriteNoContent is used by deletes.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteErrorResponse writes an error body with the given status and message.
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: Timestamp(),
	})
}

// WriteValidationError writes a 400 carrying one message per field.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSONResponse(w, http.StatusBadRequest, dto.ErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   MsgValidation,
		Timestamp: Timestamp(),
		Errors:    fields,
	})
}

var now = time.Now

func Timestamp() string {
	return dto.FormatTime(now())
}
