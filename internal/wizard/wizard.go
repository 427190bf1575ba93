//go:generate mockgen -source ./wizard.go -destination=./mocks/wizard.go -package=mock_wizard

// Package wizard holds the client-side state of the booking wizard and the
// contact form. Both submit through small interfaces so they can run
// against the HTTP client or directly against a store.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

type Step int

const (
	StepPackage Step = iota + 1
	StepDetails
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepPackage:
		return "Package"
	case StepDetails:
		return "Date & Time"
	case StepPayment:
		return "Booking Details"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

var (
	ErrDateTimeRequired = errors.New("event date and time are required")
	ErrNoNextStep       = errors.New("already on the last step")
	ErrNoPreviousStep   = errors.New("already on the first step")
	ErrNotReady         = errors.New("booking can only be submitted from the payment step")
	ErrWrongStep        = errors.New("package can only be changed on the package step")
)

type BookingSubmitter interface {
	CreateBooking(ctx context.Context, in storage.InsertBooking) (*storage.Booking, error)
}

type Details struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	EventDate      string
	EventTime      string
	EventType      string
	VenueAddress   string
	NumberOfGuests string
}

type Customizations struct {
	Template   string `json:"template,omitempty"`
	LEDColor   string `json:"ledColor,omitempty"`
	Backdrop   string `json:"backdrop,omitempty"`
	CustomText string `json:"customText,omitempty"`
}

type Summary struct {
	PackageName  string
	PackagePrice int
	AddOnsTotal  int
	TotalPrice   int
	Deposit      int
	DueToday     int
}

// BookingWizard walks a customer through package, date and details. It is
// not safe for concurrent use.
type BookingWizard struct {
	submitter BookingSubmitter

	step           Step
	pkg            catalog.Package
	details        Details
	customizations Customizations
	addOns         []string
	paymentMethod  string
}

func NewBookingWizard(submitter BookingSubmitter) *BookingWizard {
	w := &BookingWizard{submitter: submitter}
	w.Reset()
	return w
}

func (w *BookingWizard) Step() Step {
	return w.step
}

func (w *BookingWizard) Package() catalog.Package {
	return w.pkg
}

func (w *BookingWizard) Details() Details {
	return w.details
}

func (w *BookingWizard) PaymentMethod() string {
	return w.paymentMethod
}

func (w *BookingWizard) AddOns() []string {
	return append([]string(nil), w.addOns...)
}

func (w *BookingWizard) Customizations() Customizations {
	return w.customizations
}

// ChoosePackage highlights a package card without leaving the first step.
func (w *BookingWizard) ChoosePackage(packageType string) error {
	if w.step != StepPackage {
		return ErrWrongStep
	}
	pkg, err := catalog.GetPackage(packageType)
	if err != nil {
		return err
	}
	w.pkg = pkg
	return nil
}

// SelectPackage chooses a package and moves on to the details step.
func (w *BookingWizard) SelectPackage(packageType string) error {
	if err := w.ChoosePackage(packageType); err != nil {
		return err
	}
	w.step = StepDetails
	return nil
}

func (w *BookingWizard) SetDetails(d Details) {
	w.details = d
}

func (w *BookingWizard) SetEventDate(date string) {
	w.details.EventDate = date
}

func (w *BookingWizard) SetEventTime(slot string) {
	w.details.EventTime = slot
}

func (w *BookingWizard) SetCustomizations(c Customizations) {
	w.customizations = c
}

// SetAddOns replaces the selected add-ons. Unknown ids leave the selection
// unchanged.
func (w *BookingWizard) SetAddOns(ids []string) error {
	if _, err := catalog.AddOnsTotal(ids); err != nil {
		return err
	}
	w.addOns = append([]string(nil), ids...)
	return nil
}

func (w *BookingWizard) SetPaymentMethod(method string) error {
	pm, err := catalog.ParsePaymentMethod(method)
	if err != nil {
		return err
	}
	w.paymentMethod = string(pm)
	return nil
}

func (w *BookingWizard) Next() error {
	switch w.step {
	case StepPackage:
		w.step = StepDetails
	case StepDetails:
		if w.details.EventDate == "" || w.details.EventTime == "" {
			return ErrDateTimeRequired
		}
		w.step = StepPayment
	default:
		return ErrNoNextStep
	}
	return nil
}

func (w *BookingWizard) Previous() error {
	if w.step == StepPackage {
		return ErrNoPreviousStep
	}
	w.step--
	return nil
}

func (w *BookingWizard) Summary() Summary {
	addOnsTotal, _ := catalog.AddOnsTotal(w.addOns)
	deposit := catalog.Deposit(w.pkg.Price)
	return Summary{
		PackageName:  w.pkg.Name,
		PackagePrice: w.pkg.Price,
		AddOnsTotal:  addOnsTotal,
		TotalPrice:   w.pkg.Price + addOnsTotal,
		Deposit:      deposit,
		DueToday:     deposit,
	}
}

// Submit sends the booking. The wizard resets only when the submitter
// accepts it; on any error the collected data stays in place.
func (w *BookingWizard) Submit(ctx context.Context) (*storage.Booking, error) {
	if w.step != StepPayment {
		return nil, ErrNotReady
	}

	in, err := w.buildBooking()
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateBooking(in); err != nil {
		return nil, err
	}

	booking, err := w.submitter.CreateBooking(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to submit booking: %w", err)
	}

	w.Reset()
	return booking, nil
}

func (w *BookingWizard) Reset() {
	w.step = StepPackage
	w.pkg = catalog.DefaultPackage()
	w.details = Details{}
	w.customizations = Customizations{}
	w.addOns = nil
	w.paymentMethod = ""
}

func (w *BookingWizard) buildBooking() (storage.InsertBooking, error) {
	summary := w.Summary()

	customizations, err := json.Marshal(w.customizations)
	if err != nil {
		return storage.InsertBooking{}, fmt.Errorf("failed to encode customizations: %w", err)
	}

	selected := make(map[string]int, len(w.addOns))
	for _, id := range w.addOns {
		addOn, err := catalog.GetAddOn(id)
		if err != nil {
			return storage.InsertBooking{}, err
		}
		selected[addOn.ID] = addOn.Price
	}
	addOns, err := json.Marshal(selected)
	if err != nil {
		return storage.InsertBooking{}, fmt.Errorf("failed to encode add-ons: %w", err)
	}

	return storage.InsertBooking{
		CustomerName:           w.details.CustomerName,
		CustomerEmail:          w.details.CustomerEmail,
		CustomerPhone:          w.details.CustomerPhone,
		EventDate:              w.details.EventDate,
		EventTime:              w.details.EventTime,
		EventType:              w.details.EventType,
		VenueAddress:           w.details.VenueAddress,
		NumberOfGuests:         w.details.NumberOfGuests,
		PackageType:            string(w.pkg.Type),
		PackagePrice:           w.pkg.Price,
		SelectedCustomizations: customizations,
		AddOns:                 addOns,
		TotalPrice:             summary.TotalPrice,
		DepositAmount:          summary.Deposit,
		PaymentMethod:          w.paymentMethod,
	}, nil
}

// DateOption is one day offered by the date grid.
type DateOption struct {
	Date      string
	DayName   string
	DayNumber int
}

const upcomingDays = 14

// DateOptions lists the bookable days starting with the day of now.
func DateOptions(now time.Time) []DateOption {
	options := make([]DateOption, 0, upcomingDays)
	for i := 0; i < upcomingDays; i++ {
		d := now.AddDate(0, 0, i)
		options = append(options, DateOption{
			Date:      d.Format(time.DateOnly),
			DayName:   d.Format("Mon"),
			DayNumber: d.Day(),
		})
	}
	return options
}

// TimeSlots returns the half-hour start times from 10:00 AM to 9:30 PM.
func TimeSlots() []string {
	start := time.Date(2000, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 21, 30, 0, 0, time.UTC)

	var slots []string
	for t := start; !t.After(end); t = t.Add(30 * time.Minute) {
		slots = append(slots, t.Format("3:04 PM"))
	}
	return slots
}
