package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidationError carries one message per invalid field of a record.
type ValidationError struct {
	Model  string
	Errors map[string]string
	fields []string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, field := range e.fields {
		parts = append(parts, field+": "+e.Errors[field])
	}

	return fmt.Sprintf("%s validation failed: %s", e.Model, strings.Join(parts, ", "))
}

type Validator struct {
	Model  string
	Errors map[string]string
	fields []string
}

func NewValidator(model string) *Validator {
	return &Validator{Model: model, Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
		v.fields = append(v.fields, field)
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Struct runs the validate tags declared on s and records the first failure of
// each field, in declaration order.
func (v *Validator) Struct(s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		v.AddError("_", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), fieldMessage(fe))
	}
}

func (v *Validator) ValidationError() error {
	return ValidationError{Model: v.Model, Errors: v.Errors, fields: v.fields}
}

// MinLengthMessage is the message recorded for a string shorter than min. The
// value is omitted when it must not be echoed back, as for passwords.
func MinLengthMessage(field string, value *string, min int) string {
	if value == nil {
		return fmt.Sprintf("Path `%s` is shorter than the minimum allowed length (%d).", field, min)
	}
	return fmt.Sprintf("Path `%s` (`%s`) is shorter than the minimum allowed length (%d).", field, *value, min)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", fe.Field(), fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is less than minimum allowed value (%s).", fe.Field(), fe.Value(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Path `%s` (`%v`) is longer than the maximum allowed length (%s).", fe.Field(), fe.Value(), fe.Param())
		}
		return fmt.Sprintf("Path `%s` (%v) is more than maximum allowed value (%s).", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("Path `%s` failed the `%s` check.", fe.Field(), fe.Tag())
	}
}
