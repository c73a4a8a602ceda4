package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	apperrors "salonbook/pkg/errors"
)

const InvalidBodyMessage = "Invalid request body"

// DecodeJSON decodes the request body into v. Malformed, empty or oversized
// bodies are reported as an InvalidInput AppError.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.New(apperrors.CodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.Wrap(err, apperrors.CodeInvalidInput, InvalidBodyMessage, http.StatusBadRequest)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperrors.InvalidInput(InvalidBodyMessage)
	}
	return nil
}
