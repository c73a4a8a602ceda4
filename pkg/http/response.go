package http

import (
	"encoding/json"
	"errors"
	"net/http"
	apperrors "salonbook/pkg/errors"
	"salonbook/pkg/model"
)

const internalErrorMessage = "Internal server error"

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an {ok:false, message} envelope. Errors that are
// not AppErrors never leak their text to the client.
func WriteError(w http.ResponseWriter, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return WriteJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Message: internalErrorMessage,
			Code:    apperrors.CodeInternal,
		})
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return WriteJSON(w, status, model.ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

func WriteAvailability(w http.ResponseWriter, available bool) error {
	return WriteJSON(w, http.StatusOK, model.AvailabilityResponse{OK: true, Available: available})
}

func WriteBooking(w http.ResponseWriter, booking *model.Booking) error {
	return WriteJSON(w, http.StatusOK, model.BookingResponse{OK: true, Booking: booking})
}

// WriteList writes items as a bare JSON array; nil becomes [].
func WriteList[T any](w http.ResponseWriter, items []T) error {
	if items == nil {
		items = []T{}
	}
	return WriteJSON(w, http.StatusOK, items)
}
