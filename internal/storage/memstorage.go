package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/metrics"
)

// MemStorage keeps every record for the lifetime of the process. Lookups
// hand out copies so callers never share state with the store.
type MemStorage struct {
	mu sync.RWMutex

	users     map[string]*User
	userOrder []string

	bookings     map[string]*Booking
	bookingOrder []string

	inquiries    map[string]*Inquiry
	inquiryOrder []string

	timeNow func() time.Time
	newID   func() string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:     make(map[string]*User),
		bookings:  make(map[string]*Booking),
		inquiries: make(map[string]*Inquiry),
		timeNow:   func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

func (s *MemStorage) CreateUser(_ context.Context, in InsertUser) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{ID: s.newID(), InsertUser: in}
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	metrics.StoredRecords.WithLabelValues("user").Set(float64(len(s.users)))

	userCopy := *user
	return &userCopy, nil
}

func (s *MemStorage) GetUser(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, found := s.users[id]
	if !found {
		return nil, ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

// GetUserByUsername returns the first user created with the given name.
// The store itself does not keep usernames unique.
func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if user := s.users[id]; user.Username == username {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateBooking(_ context.Context, in InsertBooking) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking := &Booking{
		ID:            s.newID(),
		InsertBooking: in,
		PaymentStatus: PaymentStatusPending,
		BookingStatus: BookingStatusPending,
		CreatedAt:     s.timeNow(),
	}
	s.bookings[booking.ID] = booking
	s.bookingOrder = append(s.bookingOrder, booking.ID)
	metrics.StoredRecords.WithLabelValues("booking").Set(float64(len(s.bookings)))

	bookingCopy := *booking
	return &bookingCopy, nil
}

func (s *MemStorage) GetBooking(_ context.Context, id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, found := s.bookings[id]
	if !found {
		return nil, ErrNotFound
	}
	bookingCopy := *booking
	return &bookingCopy, nil
}

func (s *MemStorage) GetAllBookings(_ context.Context) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]Booking, 0, len(s.bookingOrder))
	for _, id := range s.bookingOrder {
		bookings = append(bookings, *s.bookings[id])
	}
	return bookings, nil
}

// UpdateBookingStatus overwrites bookingStatus. Unknown ids are ignored.
func (s *MemStorage) UpdateBookingStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking, found := s.bookings[id]; found {
		booking.BookingStatus = status
	}
	return nil
}

func (s *MemStorage) CreateInquiry(_ context.Context, in InsertInquiry) (*Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry := &Inquiry{
		ID:            s.newID(),
		InsertInquiry: in,
		Status:        InquiryStatusNew,
		CreatedAt:     s.timeNow(),
	}
	s.inquiries[inquiry.ID] = inquiry
	s.inquiryOrder = append(s.inquiryOrder, inquiry.ID)
	metrics.StoredRecords.WithLabelValues("inquiry").Set(float64(len(s.inquiries)))

	inquiryCopy := *inquiry
	return &inquiryCopy, nil
}

func (s *MemStorage) GetInquiry(_ context.Context, id string) (*Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inquiry, found := s.inquiries[id]
	if !found {
		return nil, ErrNotFound
	}
	inquiryCopy := *inquiry
	return &inquiryCopy, nil
}

func (s *MemStorage) GetAllInquiries(_ context.Context) ([]Inquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inquiries := make([]Inquiry, 0, len(s.inquiryOrder))
	for _, id := range s.inquiryOrder {
		inquiries = append(inquiries, *s.inquiries[id])
	}
	return inquiries, nil
}

// UpdateInquiryStatus overwrites status. Unknown ids are ignored.
func (s *MemStorage) UpdateInquiryStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inquiry, found := s.inquiries[id]; found {
		inquiry.Status = status
	}
	return nil
}
