// Package cli implements the line-oriented booking console used by cmd/booker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/apiclient"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/wizard"
)

type API interface {
	wizard.BookingSubmitter
	wizard.InquirySubmitter
	ListBookings(ctx context.Context) ([]storage.Booking, error)
	GetBooking(ctx context.Context, id string) (*storage.Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) error
	ListInquiries(ctx context.Context) ([]storage.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id, status string) error
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}

type Handler struct {
	api    API
	wizard *wizard.BookingWizard
	form   *wizard.ContactForm
	out    io.Writer
	now    func() time.Time
}

func New(api API, out io.Writer) *Handler {
	return &Handler{
		api:    api,
		wizard: wizard.NewBookingWizard(api),
		form:   wizard.NewContactForm(api),
		out:    out,
		now:    time.Now,
	}
}

// Handle runs one command line. It reports false when the session should end.
func (h *Handler) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		h.HandleHelp()
	case "catalog":
		h.HandleCatalog(ctx)
	case "package":
		h.HandlePackage(args, false)
	case "select":
		h.HandlePackage(args, true)
	case "dates":
		h.HandleDates()
	case "times":
		h.HandleTimes()
	case "date":
		h.HandleDate(args)
	case "time":
		h.HandleTime(args)
	case "set":
		h.HandleSet(args)
	case "addons":
		h.HandleAddOns(args)
	case "customize":
		h.HandleCustomize(args)
	case "next":
		h.HandleNext()
	case "back":
		h.HandleBack()
	case "summary":
		h.HandleSummary()
	case "submit":
		h.HandleSubmit(ctx)
	case "inquiry":
		h.HandleInquiryField(args)
	case "send-inquiry":
		h.HandleSendInquiry(ctx)
	case "bookings":
		h.HandleListBookings(ctx)
	case "booking":
		h.HandleGetBooking(ctx, args)
	case "booking-status":
		h.HandleBookingStatus(ctx, args)
	case "inquiries":
		h.HandleListInquiries(ctx)
	case "inquiry-status":
		h.HandleInquiryStatus(ctx, args)
	case "exit", "quit":
		return false
	default:
		h.printf("Unknown command %q. Type 'help' for the list of commands.\n", cmd)
	}
	return true
}

func (h *Handler) HandleHelp() {
	h.println(`Available commands:
	catalog - Show packages, add-ons and customization options
	package <2-hour|3-hour|4-hour> - Choose a package
	select <2-hour|3-hour|4-hour> - Choose a package and continue
	dates - List bookable dates
	times - List time slots
	date <YYYY-MM-DD> - Set the event date
	time <slot> - Set the event time, e.g. time 6:00 PM
	set <name|email|phone|event-type|venue|guests|payment> <value> - Fill a booking field
	addons [id...] - Replace the selected add-ons
	customize <template|led|backdrop|text> <value> - Set a customization
	next / back - Move between wizard steps
	summary - Show the price summary
	submit - Send the booking
	inquiry <first-name|last-name|email|phone|event-type|message> <value> - Fill the contact form
	send-inquiry - Send the contact form
	bookings / inquiries - List records
	booking <id> - Show a booking
	booking-status <id> <status> - Update a booking status
	inquiry-status <id> <status> - Update an inquiry status
	exit - Exit program`)
}

func (h *Handler) HandleCatalog(ctx context.Context) {
	cat, err := h.api.Catalog(ctx)
	if err != nil {
		h.printError(err)
		return
	}

	h.println("Packages:")
	for _, p := range cat.Packages {
		popular := ""
		if p.Popular {
			popular = " (most popular)"
		}
		h.printf("- %s | %s | $%d%s\n", p.Type, p.Name, p.Price, popular)
	}
	h.println("Add-ons:")
	for _, a := range cat.AddOns {
		h.printf("- %s | %s | $%d\n", a.ID, a.Name, a.Price)
	}
	h.printf("Deposit: %d%% of the package price\n", cat.DepositPercent)
}

func (h *Handler) HandlePackage(args []string, advance bool) {
	if len(args) != 1 {
		h.println("Usage: package <2-hour|3-hour|4-hour>")
		return
	}

	var err error
	if advance {
		err = h.wizard.SelectPackage(args[0])
	} else {
		err = h.wizard.ChoosePackage(args[0])
	}
	if err != nil {
		h.printError(err)
		return
	}
	p := h.wizard.Package()
	h.printf("Selected %s ($%d). Step: %s\n", p.Name, p.Price, h.wizard.Step())
}

func (h *Handler) HandleDates() {
	for _, d := range wizard.DateOptions(h.now()) {
		h.printf("- %s %s %d\n", d.Date, d.DayName, d.DayNumber)
	}
}

func (h *Handler) HandleTimes() {
	h.println(strings.Join(wizard.TimeSlots(), ", "))
}

func (h *Handler) HandleDate(args []string) {
	if len(args) != 1 {
		h.println("Usage: date <YYYY-MM-DD>")
		return
	}
	h.wizard.SetEventDate(args[0])
	h.printf("Event date set to %s\n", args[0])
}

func (h *Handler) HandleTime(args []string) {
	if len(args) == 0 {
		h.println("Usage: time <slot>")
		return
	}
	slot := strings.Join(args, " ")
	h.wizard.SetEventTime(slot)
	h.printf("Event time set to %s\n", slot)
}

func (h *Handler) HandleSet(args []string) {
	if len(args) < 2 {
		h.println("Usage: set <name|email|phone|event-type|venue|guests|payment> <value>")
		return
	}
	field, value := args[0], strings.Join(args[1:], " ")

	d := h.wizard.Details()
	switch field {
	case "name":
		d.CustomerName = value
	case "email":
		d.CustomerEmail = value
	case "phone":
		d.CustomerPhone = value
	case "event-type":
		d.EventType = value
	case "venue":
		d.VenueAddress = value
	case "guests":
		d.NumberOfGuests = value
	case "payment":
		if err := h.wizard.SetPaymentMethod(value); err != nil {
			h.printError(err)
			return
		}
		h.printf("Payment method set to %s\n", value)
		return
	default:
		h.printf("Unknown field %q\n", field)
		return
	}
	h.wizard.SetDetails(d)
	h.printf("%s set\n", field)
}

func (h *Handler) HandleAddOns(args []string) {
	if err := h.wizard.SetAddOns(args); err != nil {
		h.printError(err)
		return
	}
	if len(args) == 0 {
		h.println("Add-ons cleared")
		return
	}
	h.printf("Add-ons: %s\n", strings.Join(args, ", "))
}

func (h *Handler) HandleCustomize(args []string) {
	if len(args) < 2 {
		h.println("Usage: customize <template|led|backdrop|text> <value>")
		return
	}
	field, value := args[0], strings.Join(args[1:], " ")

	c := h.wizard.Customizations()
	switch field {
	case "template":
		c.Template = value
	case "led":
		c.LEDColor = value
	case "backdrop":
		c.Backdrop = value
	case "text":
		c.CustomText = value
	default:
		h.printf("Unknown customization %q\n", field)
		return
	}
	h.wizard.SetCustomizations(c)
	h.printf("%s set\n", field)
}

func (h *Handler) HandleNext() {
	if err := h.wizard.Next(); err != nil {
		if errors.Is(err, wizard.ErrDateTimeRequired) {
			h.println("Please select both a date and a time before continuing")
			return
		}
		h.printError(err)
		return
	}
	h.printf("Step: %s\n", h.wizard.Step())
}

func (h *Handler) HandleBack() {
	if err := h.wizard.Previous(); err != nil {
		h.printError(err)
		return
	}
	h.printf("Step: %s\n", h.wizard.Step())
}

func (h *Handler) HandleSummary() {
	s := h.wizard.Summary()
	h.printf("Package: %s ($%d)\n", s.PackageName, s.PackagePrice)
	if s.AddOnsTotal > 0 {
		h.printf("Add-ons: $%d\n", s.AddOnsTotal)
	}
	h.printf("Total: $%d\n", s.TotalPrice)
	h.printf("Deposit (%d%%): $%d\n", catalog.DepositPercent, s.Deposit)
	h.printf("Due today: $%d\n", s.DueToday)
}

func (h *Handler) HandleSubmit(ctx context.Context) {
	booking, err := h.wizard.Submit(ctx)
	if err != nil {
		h.println("Booking Failed")
		h.printError(err)
		return
	}
	h.println("Booking Successful!")
	h.printf("Booking %s is %s. We'll contact you soon with payment details.\n", booking.ID, booking.BookingStatus)
}

func (h *Handler) HandleInquiryField(args []string) {
	if len(args) < 2 {
		h.println("Usage: inquiry <first-name|last-name|email|phone|event-type|message> <value>")
		return
	}
	field, value := args[0], strings.Join(args[1:], " ")

	switch field {
	case "first-name":
		h.form.FirstName = value
	case "last-name":
		h.form.LastName = value
	case "email":
		h.form.Email = value
	case "phone":
		h.form.Phone = value
	case "event-type":
		h.form.EventType = value
	case "message":
		h.form.Message = value
	default:
		h.printf("Unknown field %q\n", field)
		return
	}
	h.printf("%s set\n", field)
}

func (h *Handler) HandleSendInquiry(ctx context.Context) {
	inquiry, err := h.form.Submit(ctx)
	if err != nil {
		h.println("Failed to Send Message")
		h.printError(err)
		return
	}
	h.println("Message Sent!")
	h.printf("Inquiry %s received. We'll get back to you within 24 hours.\n", inquiry.ID)
}

func (h *Handler) HandleListBookings(ctx context.Context) {
	bookings, err := h.api.ListBookings(ctx)
	if err != nil {
		h.printError(err)
		return
	}
	if len(bookings) == 0 {
		h.println("No bookings found")
		return
	}

	h.println("Bookings:")
	for _, b := range bookings {
		h.printf("- %s | %s | %s %s | %s | [%s]\n",
			b.ID, b.CustomerName, b.EventDate, b.EventTime, b.PackageType, b.BookingStatus)
	}
}

func (h *Handler) HandleGetBooking(ctx context.Context, args []string) {
	if len(args) != 1 {
		h.println("Usage: booking <id>")
		return
	}

	b, err := h.api.GetBooking(ctx, args[0])
	if err != nil {
		h.printError(err)
		return
	}
	h.printf("Booking %s\n", b.ID)
	h.printf("Customer: %s <%s> %s\n", b.CustomerName, b.CustomerEmail, b.CustomerPhone)
	h.printf("Event: %s at %s on %s %s, %s guests\n", b.EventType, b.VenueAddress, b.EventDate, b.EventTime, b.NumberOfGuests)
	h.printf("Package: %s | Total: $%d | Deposit: $%d | Payment: %s\n", b.PackageType, b.TotalPrice, b.DepositAmount, b.PaymentMethod)
	h.printf("Status: %s | Payment status: %s | Created: %s\n", b.BookingStatus, b.PaymentStatus, b.CreatedAt.Format(time.RFC3339))
}

func (h *Handler) HandleBookingStatus(ctx context.Context, args []string) {
	if len(args) < 2 {
		h.println("Usage: booking-status <id> <status>")
		return
	}
	if err := h.api.UpdateBookingStatus(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		h.printError(err)
		return
	}
	h.println("Booking status updated")
}

func (h *Handler) HandleListInquiries(ctx context.Context) {
	inquiries, err := h.api.ListInquiries(ctx)
	if err != nil {
		h.printError(err)
		return
	}
	if len(inquiries) == 0 {
		h.println("No inquiries found")
		return
	}

	h.println("Inquiries:")
	for _, i := range inquiries {
		h.printf("- %s | %s %s | %s | %s | [%s]\n", i.ID, i.FirstName, i.LastName, i.Email, i.EventType, i.Status)
	}
}

func (h *Handler) HandleInquiryStatus(ctx context.Context, args []string) {
	if len(args) < 2 {
		h.println("Usage: inquiry-status <id> <status>")
		return
	}
	if err := h.api.UpdateInquiryStatus(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		h.printError(err)
		return
	}
	h.println("Inquiry status updated")
}

func (h *Handler) printError(err error) {
	var validationErr *schema.ValidationError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &validationErr):
		for _, d := range validationErr.Details {
			h.printf("Error: %s: %s\n", d.Field, d.Message)
		}
	case errors.As(err, &apiErr) && len(apiErr.Details) > 0:
		h.printf("Error: %s\n", apiErr.Message)
		for _, d := range apiErr.Details {
			h.printf("  %s: %s\n", d.Field, d.Message)
		}
	default:
		h.println("Error:", err)
	}
}

func (h *Handler) printf(format string, a ...interface{}) {
	fmt.Fprintf(h.out, format, a...)
}

func (h *Handler) println(a ...interface{}) {
	fmt.Fprintln(h.out, a...)
}
