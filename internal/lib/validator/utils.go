package validator

import (
	"errors"
	"fmt"
	"mymdb/proj/internal/utils"
	"reflect"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

// jsonFieldName names struct fields in validation errors the way clients
// see them.
func jsonFieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" {
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return utils.CamelToSnake(field.Name)
}

// errorKey is the path to the invalid field without the root struct name,
// e.g. "roles[1].person_id".
func errorKey(e govalidator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[errorKey(e)] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		var errs govalidator.ValidationErrors
		if !errors.As(err, &errs) {
			return map[string]string{"": err.Error()}
		}
		validationErrs = ProcessValidationErrors(obj, errs)
	}
	return
}

// GetErrorMsgForField prefers the errorMsg tag of a top level field and
// falls back to a message derived from the failed rule.
func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if field, found := t.FieldByName(err.StructField()); found {
			errorMsg = field.Tag.Get("errorMsg")
		}
	}
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "lt":
			errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "eqfield", "eq":
			errorMsg = fmt.Sprintf("Value should be equal to %s", err.Param())
		case "nefield", "ne":
			errorMsg = fmt.Sprintf("Value should not be equal to %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "nooneof":
			errorMsg = fmt.Sprintf("Value should not be one of %s", err.Param())
		case "len":
			errorMsg = fmt.Sprintf("Length should be equal to %s", err.Param())
		case "votevalue":
			errorMsg = "Value must be 1 (upvote) or -1 (downvote)"
		case "unique":
			errorMsg = "Value must not contain duplicate values"
		case "url":
			errorMsg = "Value must be a valid URL"
		case "email":
			errorMsg = "Value must be a valid email address"
		case "alphanum":
			errorMsg = "Value must be alphanumeric"
		case "datetime":
			errorMsg = fmt.Sprintf("Value must be a date in %s format", err.Param())
		case "dive":
			errorMsg = "One of the values is invalid"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// ValidateVoteValue accepts 1 and -1 only. Registered as "votevalue".
func ValidateVoteValue(fl govalidator.FieldLevel) bool {
	v := fl.Field().Int()
	return v == 1 || v == -1
}

func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterValidation("votevalue", ValidateVoteValue)
	return v
}
