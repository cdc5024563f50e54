package validations

import (
	"reflect"

	"gopkg.in/go-playground/validator.v9"

	"github.com/mover-dashboard/dispatch/internal/entity"
	"github.com/mover-dashboard/dispatch/internal/ingest"
)

// Job_flags accepts a slice of strings where every item is a known job flag
// after trimming and lower-casing.
func Job_flags(fl validator.FieldLevel) bool {

	if fl.Field().Type().Kind() != reflect.Slice {
		return false
	}

	sl, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}

	for _, item := range sl {
		if !entity.IsValidJobFlag(item) {
			return false
		}
	}

	return true
}

// Clock_time accepts the clock strings understood by ingest.ParseClock, such
// as "9:30 AM" or "14:05".
func Clock_time(fl validator.FieldLevel) bool {

	if fl.Field().Type().Kind() != reflect.String {
		return false
	}

	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, _, valid := ingest.ParseClock(s)
	return valid
}

// Register adds the custom rules to v.
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("job_flags", Job_flags)
	_ = v.RegisterValidation("clock_time", Clock_time)
}
