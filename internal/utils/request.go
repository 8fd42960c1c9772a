package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"DOIT_BACK-END/internal/common"
)

const maxBodyBytes = 1 << 20

// DecodeJSONRequest reads a single JSON object from the body into dst.
// It returns common.ErrEmptyBody or common.ErrMalformedBody on failure.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return common.ErrEmptyBody
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.ErrEmptyBody
		}
		return fmt.Errorf("%w: %v", common.ErrMalformedBody, err)
	}
	// trailing garbage after the object
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return common.ErrMalformedBody
	}
	return nil
}

// PathUUID parses the named path value as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, common.ErrInvalidID
	}
	return id, nil
}
