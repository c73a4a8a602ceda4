package validator

import (
	"testing"

	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Name:    "Ann",
		Phone:   "555",
		Service: "Cut",
		Staff:   "Bo",
		Date:    "2024-06-01",
		Time:    "10:00",
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewBookingValidator(logger.NewNop())
	assert.NoError(t, v.Validate(validRequest()))

	withOptional := validRequest()
	withOptional.Email = "ann@example.com"
	withOptional.Notes = "first visit"
	assert.NoError(t, v.Validate(withOptional))
}

func TestValidate_MissingFields(t *testing.T) {
	v := NewBookingValidator(logger.NewNop())

	tests := []struct {
		name   string
		mutate func(r *model.BookingRequest)
		fields []string
	}{
		{"missing name", func(r *model.BookingRequest) { r.Name = "" }, []string{"name"}},
		{"missing phone", func(r *model.BookingRequest) { r.Phone = "" }, []string{"phone"}},
		{"missing service", func(r *model.BookingRequest) { r.Service = "" }, []string{"service"}},
		{"missing staff", func(r *model.BookingRequest) { r.Staff = "" }, []string{"staff"}},
		{"missing date", func(r *model.BookingRequest) { r.Date = "" }, []string{"date"}},
		{"missing time", func(r *model.BookingRequest) { r.Time = "" }, []string{"time"}},
		{
			"missing several",
			func(r *model.BookingRequest) { r.Name, r.Date = "", "" },
			[]string{"name", "date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.fields, verrs.Fields())
			assert.Contains(t, verrs[0].Message, "is required")
		})
	}
}

func TestValidateAvailability(t *testing.T) {
	v := NewBookingValidator(logger.NewNop())

	assert.NoError(t, v.ValidateAvailability(&model.AvailabilityRequest{Date: "2024-06-01", Time: "10:00", Staff: "Bo"}))

	err := v.ValidateAvailability(&model.AvailabilityRequest{Date: "2024-06-01"})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"time", "staff"}, verrs.Fields())
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())

	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "time", Message: "time is required"},
	}
	assert.Equal(t, "validation failed: 2 error(s): [name: name is required; time: time is required]", errs.Error())
}
