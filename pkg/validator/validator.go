package validator

import (
	"time"

	"dailywag-backend/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("weekday", validateWeekday)
	_ = v.RegisterValidation("clock", validateClock)
	_ = v.RegisterValidation("bookingstatus", validateBookingStatus)
	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "weekday":
				errors[field] = field + " must be a day name from Monday to Sunday"
			case "clock":
				errors[field] = field + " must be a time in HH:MM format"
			case "bookingstatus":
				errors[field] = field + " must be one of: Pending, Confirmed, Checked-In, Completed, Cancelled, No-Show"
			case "datetime":
				errors[field] = field + " must match the format " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := entity.ParseWeekday(fl.Field().String())
	return ok
}

// validateClock accepts HH:MM and HH:MM:SS.
func validateClock(fl validator.FieldLevel) bool {
	_, ok := ParseClock(fl.Field().String())
	return ok
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	_, ok := entity.ParseBookingStatus(fl.Field().String())
	return ok
}

// ParseClock returns the offset from midnight of an HH:MM or HH:MM:SS value.
func ParseClock(value string) (time.Duration, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}
