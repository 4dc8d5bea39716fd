package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key used for errors that concern more than one field.
const NonFieldErrors = "non_field_errors"

const (
	MsgRequired   = "This field is required."
	MsgBlank      = "This field may not be blank."
	MsgIncorrect  = "Incorrect type."
	MsgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgTimeFormat = "Time has wrong format. Use one of these formats instead: hh:mm[:ss]."
)

// FieldErrors is the structured validation result: field name to messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fe[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Has reports whether field already carries an error.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// Merge folds another set of errors into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		fe[k] = append(fe[k], msgs...)
	}
}

// Err returns nil when there is nothing to report.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// NewFieldError is shorthand for a single-field error.
func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

// AsFieldErrors extracts FieldErrors from an error chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// FromValidator converts validator output into FieldErrors keyed by the json
// field name. Other errors are reported under non_field_errors.
func FromValidator(err error) FieldErrors {
	out := FieldErrors{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(NonFieldErrors, err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "email":
		return "Enter a valid email address."
	case "min":
		if isString {
			if fe.Param() == "1" {
				return MsgBlank
			}
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
