package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"roomfinder_backend/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		return model.PropertyType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("tenant_preference", func(fl validator.FieldLevel) bool {
		return model.TenantPreference(fl.Field().String()).Valid()
	})
	v.RegisterValidation("user_type", func(fl validator.FieldLevel) bool {
		return model.UserType(fl.Field().String()).Valid()
	})
	return v
}

// validateInput runs the struct tags and turns the first failure into the
// message returned to the client.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return errors.New("Missing required fields")
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "email":
		return errors.New("Invalid email address")
	case "property_type":
		return errors.New("Invalid property type")
	case "tenant_preference":
		return errors.New("Invalid tenant preference")
	case "user_type":
		return errors.New("Invalid user type")
	case "gt", "gte", "min":
		return fmt.Errorf("Invalid %s: must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("Invalid %s", fe.Field())
	}
}
