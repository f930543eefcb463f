package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator reports field names by their json (or form) tag
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
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
	}
}

// ValidationDetails turns validator errors into per-field messages.
// It returns nil when err is not a validator error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: validationMessage(e),
		})
	}
	return details
}

// fieldMessages maps validator tags to messages; %s is the tag parameter
var fieldMessages = map[string]string{
	"required":  "This field is required",
	"email":     "Invalid email format",
	"uuid":      "Invalid UUID format",
	"url":       "Invalid URL format",
	"oneof":     "Must be one of: %s",
	"gte":       "Must be greater than or equal to %s",
	"lte":       "Must be less than or equal to %s",
	"gt":        "Must be greater than %s",
	"latitude":  "Must be a latitude between -90 and 90",
	"longitude": "Must be a longitude between -180 and 180",
	"e164":      "Must be a phone number in international format",
}

func validationMessage(e validator.FieldError) string {
	switch tag := e.Tag(); tag {
	case "min", "max":
		bound := "at least"
		if tag == "max" {
			bound = "at most"
		}
		switch e.Kind() {
		case reflect.String:
			return fmt.Sprintf("Must be %s %s characters", bound, e.Param())
		case reflect.Slice:
			return fmt.Sprintf("Must contain %s %s items", bound, e.Param())
		}
		return fmt.Sprintf("Must be %s %s", bound, e.Param())
	default:
		msg, ok := fieldMessages[tag]
		if !ok {
			return "Invalid value"
		}
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, e.Param())
		}
		return msg
	}
}
