package model

// Response envelopes of the booking API. Every failure uses ErrorResponse.

type AvailabilityResponse struct {
	OK        bool `json:"ok"`
	Available bool `json:"available"`
}

type BookingResponse struct {
	OK      bool     `json:"ok"`
	Booking *Booking `json:"booking"`
}

type ErrorResponse struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
