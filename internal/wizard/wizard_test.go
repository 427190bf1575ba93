package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
	mock_wizard "gitlab.ozon.dev/pupkingeorgij/photobooth/internal/wizard/mocks"
)

func sampleDetails() Details {
	return Details{
		CustomerName:   "Jane Doe",
		CustomerEmail:  "jane@example.com",
		CustomerPhone:  "0400000000",
		EventDate:      "2026-11-14",
		EventTime:      "6:00 PM",
		EventType:      "wedding",
		VenueAddress:   "1 Harbour St",
		NumberOfGuests: "100-200",
	}
}

// readyWizard returns a wizard on the payment step with all fields filled.
func readyWizard(t *testing.T, submitter BookingSubmitter) *BookingWizard {
	t.Helper()
	w := NewBookingWizard(submitter)
	require.NoError(t, w.SelectPackage("3-hour"))
	w.SetDetails(sampleDetails())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPaymentMethod("paypal"))
	require.Equal(t, StepPayment, w.Step())
	return w
}

func TestNewBookingWizard(t *testing.T) {
	w := NewBookingWizard(nil)

	assert.Equal(t, StepPackage, w.Step())
	assert.Equal(t, catalog.ThreeHour, w.Package().Type)
	assert.Equal(t, Details{}, w.Details())
	assert.Empty(t, w.PaymentMethod())
}

func TestBookingWizard_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(w *BookingWizard)
		action   func(w *BookingWizard) error
		wantErr  error
		wantStep Step
	}{
		{
			name:     "package to details is ungated",
			prepare:  func(*BookingWizard) {},
			action:   (*BookingWizard).Next,
			wantStep: StepDetails,
		},
		{
			name:     "details needs date and time",
			prepare:  func(w *BookingWizard) { _ = w.Next() },
			action:   (*BookingWizard).Next,
			wantErr:  ErrDateTimeRequired,
			wantStep: StepDetails,
		},
		{
			name: "details needs time",
			prepare: func(w *BookingWizard) {
				_ = w.Next()
				w.SetEventDate("2026-11-14")
			},
			action:   (*BookingWizard).Next,
			wantErr:  ErrDateTimeRequired,
			wantStep: StepDetails,
		},
		{
			name: "details needs date",
			prepare: func(w *BookingWizard) {
				_ = w.Next()
				w.SetEventTime("6:00 PM")
			},
			action:   (*BookingWizard).Next,
			wantErr:  ErrDateTimeRequired,
			wantStep: StepDetails,
		},
		{
			name: "details to payment with date and time",
			prepare: func(w *BookingWizard) {
				_ = w.Next()
				w.SetEventDate("2026-11-14")
				w.SetEventTime("6:00 PM")
			},
			action:   (*BookingWizard).Next,
			wantStep: StepPayment,
		},
		{
			name: "no step after payment",
			prepare: func(w *BookingWizard) {
				_ = w.Next()
				w.SetEventDate("2026-11-14")
				w.SetEventTime("6:00 PM")
				_ = w.Next()
			},
			action:   (*BookingWizard).Next,
			wantErr:  ErrNoNextStep,
			wantStep: StepPayment,
		},
		{
			name:     "no step before package",
			prepare:  func(*BookingWizard) {},
			action:   (*BookingWizard).Previous,
			wantErr:  ErrNoPreviousStep,
			wantStep: StepPackage,
		},
		{
			name:     "back from details",
			prepare:  func(w *BookingWizard) { _ = w.Next() },
			action:   (*BookingWizard).Previous,
			wantStep: StepPackage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewBookingWizard(nil)
			tc.prepare(w)

			err := tc.action(w)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantStep, w.Step())
		})
	}
}

func TestBookingWizard_PreviousKeepsData(t *testing.T) {
	w := readyWizard(t, nil)
	require.NoError(t, w.SetAddOns([]string{"photo-book"}))

	require.NoError(t, w.Previous())
	require.NoError(t, w.Previous())
	assert.Equal(t, StepPackage, w.Step())

	assert.Equal(t, sampleDetails(), w.Details())
	assert.Equal(t, "paypal", w.PaymentMethod())
	assert.Equal(t, []string{"photo-book"}, w.AddOns())
	assert.Equal(t, catalog.ThreeHour, w.Package().Type)
}

func TestBookingWizard_PackageChoice(t *testing.T) {
	w := NewBookingWizard(nil)

	require.NoError(t, w.ChoosePackage("4-hour"))
	assert.Equal(t, StepPackage, w.Step())
	assert.Equal(t, 550, w.Package().Price)

	assert.ErrorIs(t, w.SelectPackage("5-hour"), catalog.ErrUnknownPackage)
	assert.Equal(t, StepPackage, w.Step())
	assert.Equal(t, catalog.FourHour, w.Package().Type)

	require.NoError(t, w.SelectPackage("2-hour"))
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, 350, w.Package().Price)

	assert.ErrorIs(t, w.ChoosePackage("3-hour"), ErrWrongStep)
}

func TestBookingWizard_Setters(t *testing.T) {
	w := NewBookingWizard(nil)

	assert.ErrorIs(t, w.SetPaymentMethod("cash"), catalog.ErrUnknownPaymentMethod)
	assert.Empty(t, w.PaymentMethod())

	require.NoError(t, w.SetAddOns([]string{"custom-neon"}))
	assert.ErrorIs(t, w.SetAddOns([]string{"custom-neon", "smoke"}), catalog.ErrUnknownAddOn)
	assert.Equal(t, []string{"custom-neon"}, w.AddOns())

	w.SetCustomizations(Customizations{LEDColor: "purple"})
	assert.Equal(t, "purple", w.Customizations().LEDColor)
}

func TestBookingWizard_Summary(t *testing.T) {
	tests := []struct {
		packageType string
		addOns      []string
		want        Summary
	}{
		{
			packageType: "2-hour",
			want:        Summary{PackageName: "2 Hour Package", PackagePrice: 350, TotalPrice: 350, Deposit: 105, DueToday: 105},
		},
		{
			packageType: "3-hour",
			want:        Summary{PackageName: "3 Hour Package", PackagePrice: 425, TotalPrice: 425, Deposit: 128, DueToday: 128},
		},
		{
			packageType: "4-hour",
			addOns:      []string{"video-guestbook", "photo-book"},
			want:        Summary{PackageName: "4 Hour Package", PackagePrice: 550, AddOnsTotal: 250, TotalPrice: 800, Deposit: 165, DueToday: 165},
		},
	}

	for _, tc := range tests {
		t.Run(tc.packageType, func(t *testing.T) {
			w := NewBookingWizard(nil)
			require.NoError(t, w.ChoosePackage(tc.packageType))
			require.NoError(t, w.SetAddOns(tc.addOns))

			assert.Equal(t, tc.want, w.Summary())
		})
	}
}

func TestBookingWizard_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	submitter := mock_wizard.NewMockBookingSubmitter(ctrl)

	tests := []struct {
		name       string
		prepare    func(w *BookingWizard)
		setupMocks func()
		wantErr    func(t *testing.T, err error)
		wantReset  bool
	}{
		{
			name:    "success resets the wizard",
			prepare: func(w *BookingWizard) { require.NoError(t, w.SetAddOns([]string{"photo-book"})) },
			setupMocks: func() {
				submitter.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in storage.InsertBooking) (*storage.Booking, error) {
						assert.Equal(t, "3-hour", in.PackageType)
						assert.Equal(t, 425, in.PackagePrice)
						assert.Equal(t, 128, in.DepositAmount)
						assert.Equal(t, 525, in.TotalPrice)
						assert.Equal(t, "paypal", in.PaymentMethod)
						assert.Equal(t, "6:00 PM", in.EventTime)
						assert.JSONEq(t, `{"photo-book":100}`, string(in.AddOns))
						assert.JSONEq(t, `{}`, string(in.SelectedCustomizations))
						return &storage.Booking{ID: "b-1", InsertBooking: in}, nil
					})
			},
			wantReset: true,
		},
		{
			name:    "failure keeps the data",
			prepare: func(*BookingWizard) {},
			setupMocks: func() {
				submitter.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "connection refused")
			},
		},
		{
			name: "invalid details never reach the submitter",
			prepare: func(w *BookingWizard) {
				d := sampleDetails()
				d.CustomerEmail = "not-an-email"
				w.SetDetails(d)
			},
			setupMocks: func() {},
			wantErr: func(t *testing.T, err error) {
				var validationErr *schema.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, "customerEmail", validationErr.Details[0].Field)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := readyWizard(t, submitter)
			tc.prepare(w)
			before := w.Details()
			tc.setupMocks()

			booking, err := w.Submit(context.Background())

			if tc.wantErr != nil {
				tc.wantErr(t, err)
				assert.Nil(t, booking)
				assert.Equal(t, StepPayment, w.Step())
				assert.Equal(t, before, w.Details())
				assert.Equal(t, "paypal", w.PaymentMethod())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", booking.ID)
			if tc.wantReset {
				assert.Equal(t, StepPackage, w.Step())
				assert.Equal(t, Details{}, w.Details())
				assert.Empty(t, w.PaymentMethod())
				assert.Empty(t, w.AddOns())
				assert.Equal(t, catalog.ThreeHour, w.Package().Type)
			}
		})
	}
}

func TestBookingWizard_SubmitRecomputesDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	submitter := mock_wizard.NewMockBookingSubmitter(ctrl)
	w := NewBookingWizard(submitter)
	require.NoError(t, w.SelectPackage("2-hour"))
	w.SetDetails(sampleDetails())
	require.NoError(t, w.Next())
	require.NoError(t, w.SetPaymentMethod("venmo"))

	// switch package after visiting the later steps
	require.NoError(t, w.Previous())
	require.NoError(t, w.Previous())
	require.NoError(t, w.ChoosePackage("4-hour"))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	submitter.EXPECT().
		CreateBooking(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in storage.InsertBooking) (*storage.Booking, error) {
			assert.Equal(t, 550, in.PackagePrice)
			assert.Equal(t, 165, in.DepositAmount)
			return &storage.Booking{ID: "b-2"}, nil
		})

	_, err := w.Submit(context.Background())
	require.NoError(t, err)
}

func TestBookingWizard_SubmitOutsidePayment(t *testing.T) {
	w := NewBookingWizard(nil)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestDateOptions(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 4, 0, 0, time.UTC)

	opts := DateOptions(now)
	require.Len(t, opts, 14)
	assert.Equal(t, DateOption{Date: "2026-10-16", DayName: "Fri", DayNumber: 16}, opts[0])
	assert.Equal(t, DateOption{Date: "2026-10-29", DayName: "Thu", DayNumber: 29}, opts[13])
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	require.Len(t, slots, 24)
	assert.Equal(t, "10:00 AM", slots[0])
	assert.Equal(t, "12:00 PM", slots[4])
	assert.Equal(t, "1:30 PM", slots[7])
	assert.Equal(t, "9:30 PM", slots[23])
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Package", StepPackage.String())
	assert.Equal(t, "Date & Time", StepDetails.String())
	assert.Equal(t, "Booking Details", StepPayment.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}
