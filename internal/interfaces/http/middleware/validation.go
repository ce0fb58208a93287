package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: errors carry JSON field names
// and the phone_ru tag checks contact phones.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("phone_ru", func(fl validator.FieldLevel) bool {
			return identity.PhonePattern.MatchString(fl.Field().String())
		})
	})
}

// BindingError converts a request binding failure into a validation error
// naming the offending fields.
func BindingError(err error) *shared.DomainError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]shared.FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, shared.FieldError{
				Field:   fieldPath(e),
				Message: getValidationMessage(e),
			})
		}
		return shared.ErrValidation.WithDetails(details...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return shared.NewValidationError(typeErr.Field, fmt.Sprintf("Must be of type %s", typeErr.Type))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return shared.ErrValidation.WithMessage("Request body is not valid JSON")
	}
	if errors.Is(err, io.EOF) {
		return shared.ErrValidation.WithMessage("Request body is empty")
	}
	return shared.ErrValidation.WithMessage("Invalid request body")
}

// fieldPath drops the top-level struct name from the namespace, so
// "AddItemsRequest.items[0].quantity" becomes "items[0].quantity"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " entries"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "url":
		return "Invalid URL format"
	case "phone_ru":
		return "Phone must be +7 followed by 10 digits"
	default:
		return "Invalid value"
	}
}
