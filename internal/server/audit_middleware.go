package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
)

var routeEntities = map[string]string{
	routeCreateBooking:       entityBooking,
	routeListBookings:        entityBooking,
	routeGetBooking:          entityBooking,
	routeUpdateBookingStatus: entityBooking,
	routeCreateInquiry:       entityInquiry,
	routeListInquiries:       entityInquiry,
	routeUpdateInquiryStatus: entityInquiry,
}

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeName(r)
		entry := audit.Entry{
			Timestamp:  time.Now().UTC(),
			Handler:    route,
			Method:     r.Method,
			Path:       r.URL.Path,
			EntityType: routeEntities[route],
			EntityID:   mux.Vars(r)["id"],
			RemoteAddr: clientIP(r),
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(requestBody))
			entry.Request = string(requestBody)

			if route == routeUpdateBookingStatus || route == routeUpdateInquiryStatus {
				if status, err := schema.DecodeStatus(bytes.NewReader(requestBody)); err == nil {
					entry.NewStatus = status
					entry.OldStatus = s.currentStatus(r, route, entry.EntityID)
				}
			}
		}

		wrw := wrapResponseWriter(w)
		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.StatusCode()
		entry.Response = string(wrw.Body())
		if entry.EntityID == "" && (route == routeCreateBooking || route == routeCreateInquiry) {
			entry.EntityID = createdID(wrw.Body())
		}

		s.auditor.LogEntry(entry)
	})
}

// currentStatus looks up the status a record has before it is updated.
// Unknown ids yield an empty string.
func (s *Server) currentStatus(r *http.Request, route, id string) string {
	switch route {
	case routeUpdateBookingStatus:
		if booking, err := s.storage.GetBooking(r.Context(), id); err == nil {
			return booking.BookingStatus
		}
	case routeUpdateInquiryStatus:
		if inquiry, err := s.storage.GetInquiry(r.Context(), id); err == nil {
			return inquiry.Status
		}
	}
	return ""
}

func createdID(body []byte) string {
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return ""
	}
	return created.ID
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unknown"
}
