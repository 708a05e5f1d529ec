package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// InitValidator builds the shared validator. Safe to call more than once.
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields by their JSON names so clients can match them to the request
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation(TagExternalID, validateExternalID)

		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field's JSON name to a message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": ErrMsgInvalidRequestFormat}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fieldMessage(e)
	}
	return fields
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case TagExternalID:
		return "Must not contain whitespace or control characters"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	default:
		return "Invalid value"
	}
}

// validateExternalID rejects IDs containing whitespace or control characters
func validateExternalID(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
