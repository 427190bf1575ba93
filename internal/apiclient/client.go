// Package apiclient talks to the booking API over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/catalog"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/schema"
	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Details    []schema.FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d.Field == "" {
			parts = append(parts, d.Message)
			continue
		}
		parts = append(parts, d.Field+": "+d.Message)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) CreateBooking(ctx context.Context, in storage.InsertBooking) (*storage.Booking, error) {
	var booking storage.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", in, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) ListBookings(ctx context.Context) ([]storage.Booking, error) {
	var bookings []storage.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (*storage.Booking, error) {
	var booking storage.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/status", statusBody{Status: status}, nil)
}

func (c *Client) CreateInquiry(ctx context.Context, in storage.InsertInquiry) (*storage.Inquiry, error) {
	var inquiry storage.Inquiry
	if err := c.do(ctx, http.MethodPost, "/api/inquiries", in, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (c *Client) ListInquiries(ctx context.Context) ([]storage.Inquiry, error) {
	var inquiries []storage.Inquiry
	if err := c.do(ctx, http.MethodGet, "/api/inquiries", nil, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (c *Client) UpdateInquiryStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPatch, "/api/inquiries/"+url.PathEscape(id)+"/status", statusBody{Status: status}, nil)
}

func (c *Client) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

type statusBody struct {
	Status string `json:"status"`
}

type errorBody struct {
	Error   string              `json:"error"`
	Details []schema.FieldError `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
			apiErr.Details = eb.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
