package dashboard

import (
	"reflect"

	"gopkg.in/go-playground/validator.v9"

	"github.com/mover-dashboard/dispatch/internal/entity"
)

func job_status(fl validator.FieldLevel) bool {
	if fl.Field().Type().Kind() != reflect.String {
		return false
	}

	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return entity.IsValidJobStatus(s)
}
