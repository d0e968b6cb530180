package middleware

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/loja/backend/internal/domain/shared/valueobject"
)

// TagHasDigits is the validation tag rejecting strings without any digit
const TagHasDigits = "hasdigits"

var setupOnce sync.Once

// SetupValidator configures gin's validator: field names come from json tags and
// the hasdigits tag is registered. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation(TagHasDigits, func(fl validator.FieldLevel) bool {
			return valueobject.HasDigits(fl.Field().String())
		})
	})
}

// ValidationFields lists the failed fields as "namespace:tag", for logging
func ValidationFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Namespace()+":"+e.Tag())
	}
	return fields
}
