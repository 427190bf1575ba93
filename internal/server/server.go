//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/audit"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

type Storage interface {
	CreateBooking(ctx context.Context, in storage.InsertBooking) (*storage.Booking, error)
	GetBooking(ctx context.Context, id string) (*storage.Booking, error)
	GetAllBookings(ctx context.Context) ([]storage.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	CreateInquiry(ctx context.Context, in storage.InsertInquiry) (*storage.Inquiry, error)
	GetInquiry(ctx context.Context, id string) (*storage.Inquiry, error)
	GetAllInquiries(ctx context.Context) ([]storage.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id, status string) error
}

type Auditor interface {
	LogEntry(entry audit.Entry)
}

type Config struct {
	Port string
	// StaticDir is served as a single-page site when set.
	StaticDir           string
	SubmitRatePerMinute int
	SubmitBurst         int
	// MaxBodyBytes caps /api request bodies, 100 KiB when zero.
	MaxBodyBytes int64
}

type Server struct {
	storage Storage
	auditor Auditor
	logger  *zap.Logger
	cfg     Config
	limiter *ipRateLimiter
	server  *http.Server
}

// New builds the server. A nil auditor disables the audit trail.
func New(storage Storage, auditor Auditor, logger *zap.Logger, cfg Config) *Server {
	s := &Server{
		storage: storage,
		auditor: auditor,
		logger:  logger,
		cfg:     cfg,
	}
	if cfg.SubmitRatePerMinute > 0 {
		s.limiter = newIPRateLimiter(cfg.SubmitRatePerMinute, cfg.SubmitBurst)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Run() error {
	s.logger.Info("Server starting", zap.String("port", s.cfg.Port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("HTTP server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.requestLogMiddleware, s.metricsMiddleware, s.bodyLimitMiddleware)
	if s.auditor != nil {
		api.Use(s.auditLogMiddleware)
	}

	api.HandleFunc("/bookings", s.rateLimited(s.handleCreateBooking)).Methods(http.MethodPost).Name(routeCreateBooking)
	api.HandleFunc("/bookings", s.handleListBookings).Methods(http.MethodGet).Name(routeListBookings)
	api.HandleFunc("/bookings/{id}", s.handleGetBooking).Methods(http.MethodGet).Name(routeGetBooking)
	api.HandleFunc("/bookings/{id}/status", s.handleUpdateBookingStatus).Methods(http.MethodPatch).Name(routeUpdateBookingStatus)

	api.HandleFunc("/inquiries", s.rateLimited(s.handleCreateInquiry)).Methods(http.MethodPost).Name(routeCreateInquiry)
	api.HandleFunc("/inquiries", s.handleListInquiries).Methods(http.MethodGet).Name(routeListInquiries)
	api.HandleFunc("/inquiries/{id}/status", s.handleUpdateInquiryStatus).Methods(http.MethodPatch).Name(routeUpdateInquiryStatus)

	api.HandleFunc("/catalog", s.handleGetCatalog).Methods(http.MethodGet).Name(routeGetCatalog)

	api.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	}).Name(routeNotFound)

	if s.cfg.StaticDir != "" {
		router.PathPrefix("/").Handler(newSPAHandler(s.cfg.StaticDir)).Methods(http.MethodGet, http.MethodHead).Name("static")
	}

	return router
}

const (
	routeCreateBooking       = "create_booking"
	routeListBookings        = "list_bookings"
	routeGetBooking          = "get_booking"
	routeUpdateBookingStatus = "update_booking_status"
	routeCreateInquiry       = "create_inquiry"
	routeListInquiries       = "list_inquiries"
	routeUpdateInquiryStatus = "update_inquiry_status"
	routeGetCatalog          = "get_catalog"
	routeNotFound            = "not_found"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
