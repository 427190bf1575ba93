package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

const (
	entityBooking = "booking"
	entityInquiry = "inquiry"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	in, err := schema.DecodeBooking(r.Body)
	if err != nil {
		s.respondDecodeError(w, entityBooking, "create_booking", err)
		return
	}

	booking, err := s.storage.CreateBooking(r.Context(), in)
	if err != nil {
		s.internalError(w, "create_booking", "Failed to create booking", err)
		return
	}

	metrics.BookingsCreatedTotal.Inc()
	respondJSON(w, http.StatusOK, booking)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.storage.GetAllBookings(r.Context())
	if err != nil {
		s.internalError(w, "list_bookings", "Failed to fetch bookings", err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	booking, err := s.storage.GetBooking(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		s.internalError(w, "get_booking", "Failed to fetch booking", err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// handleUpdateBookingStatus succeeds for unknown ids too; the store treats
// them as a no-op.
func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	status, err := schema.DecodeStatus(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := s.storage.UpdateBookingStatus(r.Context(), id, status); err != nil {
		s.internalError(w, "update_booking_status", "Failed to update booking status", err)
		return
	}

	metrics.StatusUpdatesTotal.WithLabelValues(entityBooking).Inc()
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, entity, operation string, err error) {
	var validationErr *schema.ValidationError
	if errors.As(err, &validationErr) {
		metrics.ValidationFailuresTotal.WithLabelValues(entity).Inc()
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": validationErr.Details,
		})
		return
	}
	s.internalError(w, operation, "Failed to create "+entity, err)
}

func (s *Server) internalError(w http.ResponseWriter, operation, message string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	s.logger.Error(message, zap.String("operation", operation), zap.Error(err))
	respondError(w, http.StatusInternalServerError, message)
}
