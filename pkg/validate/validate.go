// Package validate wires go-playground/validator with the planner's custom
// types and rules.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/pilot/pkg/timeutil"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("validate: invalid")

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
			d := f.Interface().(timeutil.Date)
			if d.IsZero() {
				return ""
			}
			return d.String()
		}, timeutil.Date{})
		v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
			return f.Interface().(timeutil.Clock).String()
		}, timeutil.Clock(0))
		v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
			return f.Interface().(timeutil.WeekdaySet).Len()
		}, timeutil.WeekdaySet(0))
		_ = v.RegisterValidation("isodate", ValidateDateRule)
		_ = v.RegisterValidation("clock", ValidateClockRule)
		instance = v
	})
	return instance
}

// Struct validates s and flattens validator errors into a single readable error.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// ValidateDateRule accepts YYYY-MM-DD strings naming a real day.
func ValidateDateRule(fl validator.FieldLevel) bool {
	_, err := time.Parse(timeutil.LayoutISO, fl.Field().String())
	return err == nil
}

// ValidateClockRule accepts HH:MM strings inside one day.
func ValidateClockRule(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseClock(fl.Field().String())
	return err == nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "isodate":
		return fmt.Sprintf("%s must be a valid YYYY-MM-DD date", fe.Field())
	case "clock":
		return fmt.Sprintf("%s must be a valid HH:MM time", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be an email address", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}
