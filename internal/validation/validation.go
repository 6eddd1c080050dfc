package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
)

var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates s and returns a ValidationFailed error listing the
// failing fields and the tag that rejected each of them.
func Struct(s any) error {
	err := V.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.NewValidation("Validation error", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		tag := fe.Tag()
		if fe.Param() != "" {
			tag += "=" + fe.Param()
		}
		fields[fe.Field()] = tag
	}
	return apperr.NewValidation("Validation error", fields)
}
