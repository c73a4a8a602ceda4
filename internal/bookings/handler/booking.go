package handler

import (
	"net/http"

	"salonbook/internal/bookings/service"
	httputil "salonbook/pkg/http"
	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteList(w, bookings); err != nil {
		h.log.Error("failed to write list response", "handler", "GetAll", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), req.Date, req.Time, req.Staff)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteAvailability(w, available); err != nil {
		h.log.Error("failed to write availability response", "handler", "CheckAvailability", "operation", "WriteAvailability", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteBooking(w, booking); err != nil {
		h.log.Error("failed to write booking response", "handler", "Create", "operation", "WriteBooking", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/bookings", h.GetAll)
	router.POST("/api/bookings", h.Create)
	router.POST("/api/availability", h.CheckAvailability)
}
