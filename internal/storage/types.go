package storage

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

const (
	BookingStatusPending = "pending"
	PaymentStatusPending = "pending"
	InquiryStatusNew     = "new"
)

type InsertUser struct {
	Username string `json:"username" validate:"required" msg:"Username is required"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type User struct {
	ID string `json:"id"`
	InsertUser
}

// InsertBooking is the client-supplied part of a booking. Server-owned
// fields (id, statuses, createdAt) are not part of it.
type InsertBooking struct {
	CustomerName           string          `json:"customerName" validate:"required" msg:"Customer name is required"`
	CustomerEmail          string          `json:"customerEmail" validate:"required,email" msg:"Valid email is required"`
	CustomerPhone          string          `json:"customerPhone" validate:"required" msg:"Phone number is required"`
	EventDate              string          `json:"eventDate" validate:"required" msg:"Event date is required"`
	EventTime              string          `json:"eventTime" validate:"required" msg:"Event time is required"`
	EventType              string          `json:"eventType" validate:"required" msg:"Event type is required"`
	VenueAddress           string          `json:"venueAddress" validate:"required" msg:"Venue address is required"`
	NumberOfGuests         string          `json:"numberOfGuests" validate:"required" msg:"Number of guests is required"`
	PackageType            string          `json:"packageType" validate:"required,oneof=2-hour 3-hour 4-hour"`
	PackagePrice           int             `json:"packagePrice" validate:"min=1" msg:"Package price is required"`
	SelectedCustomizations json.RawMessage `json:"selectedCustomizations,omitempty"`
	AddOns                 json.RawMessage `json:"addOns,omitempty"`
	TotalPrice             int             `json:"totalPrice" validate:"min=1" msg:"Total price is required"`
	DepositAmount          int             `json:"depositAmount" validate:"min=1" msg:"Deposit amount is required"`
	PaymentMethod          string          `json:"paymentMethod" validate:"required,oneof=paypal venmo cashapp applepay"`
}

type Booking struct {
	ID string `json:"id"`
	InsertBooking
	PaymentStatus string    `json:"paymentStatus"`
	BookingStatus string    `json:"bookingStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

type InsertInquiry struct {
	FirstName string `json:"firstName" validate:"required" msg:"First name is required"`
	LastName  string `json:"lastName" validate:"required" msg:"Last name is required"`
	Email     string `json:"email" validate:"required,email" msg:"Valid email is required"`
	Phone     string `json:"phone" validate:"required" msg:"Phone number is required"`
	EventType string `json:"eventType" validate:"required" msg:"Event type is required"`
	Message   string `json:"message" validate:"required" msg:"Message is required"`
}

type Inquiry struct {
	ID string `json:"id"`
	InsertInquiry
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
