// Package schema decodes and validates the request bodies accepted by the
// API. Constraints are declared with validate tags on the storage insert
// types; the message for a failed field comes from its msg tag.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitlab.ozon.dev/pupkingeorgij/photobooth/internal/storage"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d.Field == "" {
			parts = append(parts, d.Message)
			continue
		}
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrStatusRequired is returned by DecodeStatus when the body has no usable status.
var ErrStatusRequired = errors.New("status is required")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

func DecodeBooking(r io.Reader) (storage.InsertBooking, error) {
	var in storage.InsertBooking
	if err := decode(r, &in); err != nil {
		return storage.InsertBooking{}, err
	}
	if err := ValidateBooking(in); err != nil {
		return storage.InsertBooking{}, err
	}
	return in, nil
}

func DecodeInquiry(r io.Reader) (storage.InsertInquiry, error) {
	var in storage.InsertInquiry
	if err := decode(r, &in); err != nil {
		return storage.InsertInquiry{}, err
	}
	if err := ValidateInquiry(in); err != nil {
		return storage.InsertInquiry{}, err
	}
	return in, nil
}

func ValidateBooking(in storage.InsertBooking) error {
	return check(in)
}

func ValidateInquiry(in storage.InsertInquiry) error {
	return check(in)
}

func ValidateUser(in storage.InsertUser) error {
	return check(in)
}

// DecodeStatus reads a {"status": "..."} body.
func DecodeStatus(r io.Reader) (string, error) {
	fields, err := readObject(r)
	if err != nil {
		return "", ErrStatusRequired
	}
	var status string
	if err := json.Unmarshal(fields["status"], &status); err != nil || status == "" {
		return "", ErrStatusRequired
	}
	return status, nil
}

// decode fills dest from a single JSON object. Keys are matched against the
// json tags of dest exactly; anything else is dropped.
func decode(r io.Reader, dest any) error {
	fields, err := readObject(r)
	if err != nil {
		return invalidBody()
	}

	known := jsonKeys(reflect.TypeOf(dest).Elem())
	for key := range fields {
		if !known[key] {
			delete(fields, key)
		}
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return invalidBody()
	}
	err = json.Unmarshal(raw, dest)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{Details: []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}}}
	}
	return invalidBody()
}

// readObject reads the whole body as one JSON object. Trailing data after
// the object is an error.
func readObject(r io.Reader) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("body is not a JSON object")
	}
	return fields, nil
}

func invalidBody() error {
	return &ValidationError{Details: []FieldError{{Message: "Invalid request body"}}}
}

func jsonKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			for k := range jsonKeys(sf.Type) {
				keys[k] = true
			}
			continue
		}
		if name := jsonName(sf); name != "" {
			keys[name] = true
		}
	}
	return keys
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %T: %w", in, err)
	}

	t := reflect.TypeOf(in)
	details := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: message(t, fe),
		})
	}
	return &ValidationError{Details: details}
}

func message(t reflect.Type, fe validator.FieldError) string {
	if fe.Tag() == "oneof" {
		allowed := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s', received '%v'", strings.Join(allowed, "' | '"), fe.Value())
	}
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	if fe.Tag() == "required" {
		return "Required"
	}
	return fmt.Sprintf("Failed on %s", fe.Tag())
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
