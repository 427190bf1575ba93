//go:generate mockgen -source ./form.go -destination=./mocks/form.go -package=mock_wizard
package wizard

import (
	"context"
	"fmt"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

type InquirySubmitter interface {
	CreateInquiry(ctx context.Context, in storage.InsertInquiry) (*storage.Inquiry, error)
}

// ContactForm is the single-step inquiry form.
type ContactForm struct {
	submitter InquirySubmitter

	FirstName string
	LastName  string
	Email     string
	Phone     string
	EventType string
	Message   string
}

func NewContactForm(submitter InquirySubmitter) *ContactForm {
	return &ContactForm{submitter: submitter}
}

func (f *ContactForm) Submit(ctx context.Context) (*storage.Inquiry, error) {
	in := storage.InsertInquiry{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		EventType: f.EventType,
		Message:   f.Message,
	}
	if err := schema.ValidateInquiry(in); err != nil {
		return nil, err
	}

	inquiry, err := f.submitter.CreateInquiry(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to send inquiry: %w", err)
	}

	f.Reset()
	return inquiry, nil
}

func (f *ContactForm) Reset() {
	*f = ContactForm{submitter: f.submitter}
}
