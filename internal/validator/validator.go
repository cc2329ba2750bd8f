package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Course codes are short uppercase alphanumerics, e.g. CS101, MATH302.
var courseCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// Validator wraps go-playground/validator with domain rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	_ = validate.RegisterValidation("course_code", func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate runs struct validation and returns field-level errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateCourseCode checks a bare code outside of struct validation
// (path params, assignment lists).
func (v *Validator) ValidateCourseCode(code string) ValidationErrors {
	if courseCodePattern.MatchString(code) {
		return nil
	}
	return ValidationErrors{{
		Field:   "code",
		Message: "course code must be 2-10 uppercase alphanumeric characters",
		Value:   code,
		Rule:    "course_code",
	}}
}

// ===== ERROR TYPES =====

type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts library errors into the field-level form.
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var out ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return out
	}

	return ValidationErrors{{
		Field:   "request",
		Message: err.Error(),
		Rule:    "struct",
	}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "course_code":
		return "must be 2-10 uppercase alphanumeric characters"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}
