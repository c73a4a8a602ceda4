package client

import (
	"context"
	"fmt"
	"net/http"

	"salonbook/pkg/model"
)

// APIError is a non-2xx answer from the booking API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api: %d %s", e.StatusCode, e.Message)
}

// IsConflict reports whether the requested slot was already taken.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) List(ctx context.Context) ([]model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/bookings")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var bookings []model.Booking
	if err := resp.DecodeJSON(&bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (c *BookingClient) CheckAvailability(ctx context.Context, slot model.Slot) (bool, error) {
	resp, err := c.httpClient.POST(ctx, "/api/availability", model.AvailabilityRequest{
		Date:  slot.Date,
		Time:  slot.Time,
		Staff: slot.Staff,
	})
	if err != nil {
		return false, err
	}
	if err := checkStatus(resp); err != nil {
		return false, err
	}

	var out model.AvailabilityResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return false, fmt.Errorf("failed to decode availability: %w", err)
	}
	return out.Available, nil
}

// Create submits a booking. A non-empty idempotencyKey makes retries of the
// same submission return the original booking.
func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest, idempotencyKey string) (*model.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	resp, err := c.httpClient.POSTWithHeaders(ctx, "/api/bookings", req, headers)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out model.BookingResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	if out.Booking == nil {
		return nil, fmt.Errorf("booking api returned no booking")
	}
	return out.Booking, nil
}

func (c *BookingClient) WaitForHealthy(ctx context.Context) error {
	return c.httpClient.WaitForHealthy(ctx, c.httpClient.HTTPClient.Timeout)
}

func checkStatus(resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body model.ErrorResponse
	if err := resp.DecodeJSON(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Details = body.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
