package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
)

func (s *Server) handleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	in, err := schema.DecodeInquiry(r.Body)
	if err != nil {
		s.respondDecodeError(w, entityInquiry, "create_inquiry", err)
		return
	}

	inquiry, err := s.storage.CreateInquiry(r.Context(), in)
	if err != nil {
		s.internalError(w, "create_inquiry", "Failed to create inquiry", err)
		return
	}

	metrics.InquiriesCreatedTotal.Inc()
	respondJSON(w, http.StatusOK, inquiry)
}

func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := s.storage.GetAllInquiries(r.Context())
	if err != nil {
		s.internalError(w, "list_inquiries", "Failed to fetch inquiries", err)
		return
	}
	respondJSON(w, http.StatusOK, inquiries)
}

func (s *Server) handleUpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	status, err := schema.DecodeStatus(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := s.storage.UpdateInquiryStatus(r.Context(), id, status); err != nil {
		s.internalError(w, "update_inquiry_status", "Failed to update inquiry status", err)
		return
	}

	metrics.StatusUpdatesTotal.WithLabelValues(entityInquiry).Inc()
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, catalog.Get())
}
