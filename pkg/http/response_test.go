package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "salonbook/pkg/errors"
	"salonbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid input",
			err:        apperrors.InvalidInput("Missing date, time, or staff"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"ok":false,"message":"Missing date, time, or staff","code":"INVALID_INPUT"}`,
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("Slot unavailable for that staff member"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"ok":false,"message":"Slot unavailable for that staff member","code":"CONFLICT"}`,
		},
		{
			name:       "plain error hides text",
			err:        errors.New("disk full at /var/data"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"ok":false,"message":"Internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteList(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteList[model.Booking](rec, nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestWriteEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteAvailability(rec, false))
	assert.JSONEq(t, `{"ok":true,"available":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, WriteBooking(rec, &model.Booking{ID: "b1"}))
	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.Contains(t, rec.Body.String(), `"id":"b1"`)
}

func TestDecodeJSON(t *testing.T) {
	var dst model.AvailabilityRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"date":"d","time":"t","staff":"s"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "s", dst.Staff)

	for _, body := range []string{``, `{`, `[1,2]`, `{"date":"d"} trailing`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := DecodeJSON(r, &model.AvailabilityRequest{})
		require.Error(t, err, body)
		appErr := apperrors.AsAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, InvalidBodyMessage, appErr.Message)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	}
}
