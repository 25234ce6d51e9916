// Package validation checks request bodies and decodes query strings.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/jobly/api/internal/types"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	queryDecoder = newQueryDecoder()
)

// FieldError describes one failed field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned for any malformed or invalid request input.
type Error struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// GetValidator returns the shared validator. Field names in errors use the
// json tag so messages match the request body.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate.RegisterCustomTypeFunc(nullableValue, types.Nullable[int]{}, types.Nullable[string]{})
	})
	return validate
}

// nullableValue validates a Nullable by its inner value. Absent and null
// fields yield nil, which omitempty skips.
func nullableValue(field reflect.Value) interface{} {
	if n, ok := field.Interface().(interface{ SQLValue() interface{} }); ok {
		return n.SQLValue()
	}
	return nil
}

// ValidateStruct runs struct tag validation on s.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Error{Message: err.Error()}
	}

	fields := make([]FieldError, len(validationErrs))
	messages := make([]string, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translate(fe)}
		messages[i] = fields[i].Message
	}
	return &Error{Message: strings.Join(messages, "; "), Fields: fields}
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "numeric":
		return field + " must be numeric"
	case "lowercase":
		return field + " must be lower case"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// DecodeJSON strictly decodes body into dst and validates it. Unknown
// fields, trailing data and an empty body are rejected.
func DecodeJSON(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return invalid("request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return invalid("invalid request body: %v", err)
	}
	if dec.More() {
		return invalid("invalid request body: unexpected trailing data")
	}

	return ValidateStruct(dst)
}

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("query")
	d.IgnoreUnknownKeys(false)
	return d
}

// DecodeQuery decodes a query string into dst, a struct tagged with `query`.
// Unknown keys and unparsable values are rejected.
func DecodeQuery(values url.Values, dst interface{}) error {
	if err := queryDecoder.Decode(dst, values); err != nil {
		return invalid("invalid query: %v", err)
	}
	return ValidateStruct(dst)
}

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
