package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
	mock_wizard "gitlab.ozon.dev/pupkingeorgij/photobooth/internal/wizard/mocks"
)

func filledForm(submitter InquirySubmitter) *ContactForm {
	f := NewContactForm(submitter)
	f.FirstName = "Jane"
	f.LastName = "Doe"
	f.Email = "jane@example.com"
	f.Phone = "0400000000"
	f.EventType = "wedding"
	f.Message = "Need a booth for 100 guests"
	return f
}

func TestContactForm_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	submitter := mock_wizard.NewMockInquirySubmitter(ctrl)

	t.Run("success clears the form", func(t *testing.T) {
		f := filledForm(submitter)
		submitter.EXPECT().
			CreateInquiry(gomock.Any(), storage.InsertInquiry{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Phone:     "0400000000",
				EventType: "wedding",
				Message:   "Need a booth for 100 guests",
			}).
			Return(&storage.Inquiry{ID: "i-1", Status: storage.InquiryStatusNew, CreatedAt: time.Now()}, nil)

		inquiry, err := f.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "i-1", inquiry.ID)
		assert.Empty(t, f.FirstName)
		assert.Empty(t, f.Message)
		assert.Equal(t, submitter, f.submitter)
	})

	t.Run("failure keeps the fields", func(t *testing.T) {
		f := filledForm(submitter)
		submitter.EXPECT().
			CreateInquiry(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("503"))

		_, err := f.Submit(context.Background())
		assert.ErrorContains(t, err, "failed to send inquiry")
		assert.Equal(t, "Jane", f.FirstName)
		assert.Equal(t, "Need a booth for 100 guests", f.Message)
	})

	t.Run("missing fields are rejected locally", func(t *testing.T) {
		f := filledForm(submitter)
		f.Message = ""
		f.Phone = ""

		_, err := f.Submit(context.Background())
		var validationErr *schema.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Details, 2)
		assert.Equal(t, "Jane", f.FirstName)
	})
}
