package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/types"
)

// RegisterValidations installs the custom type func and tags on gin's validator.
// Call once at startup, before the router handles requests.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return Register(v)
}

// Register installs the custom validations on v.
func Register(v *validator.Validate) error {
	// Decimals validate as float64 so gte/lte/gt apply to measures.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	validations := map[string]validator.Func{
		"sortorder": func(fl validator.FieldLevel) bool {
			s := strings.ToLower(fl.Field().String())
			return s == "asc" || s == "desc"
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"isodate": func(fl validator.FieldLevel) bool {
			_, err := types.ParseDate(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}

	// Column limits, so out-of-range values fail binding instead of the INSERT.
	v.RegisterAlias("measure", "gte=0,lte="+types.MaxMeasure.String())
	v.RegisterAlias("count", fmt.Sprintf("gte=0,lte=%d", types.MaxCount))
	return nil
}

// BindingError converts a gin binding error into a 400 AppError naming the
// first offending field.
func BindingError(err error, message string) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		appErr := apperror.NewFieldValidation(fe.Field(), fieldMessage(fe))
		if len(verrs) > 1 {
			fields := make(map[string]string, len(verrs))
			for _, e := range verrs {
				fields[e.Field()] = fieldMessage(e)
			}
			appErr = appErr.WithDetail("fields", fields)
		}
		return appErr
	}
	return apperror.NewValidation(message).WithDetail("error", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "isodate":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "sortorder":
		return fe.Field() + " must be asc or desc"
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "measure":
		return fmt.Sprintf("%s must be between 0 and %s", fe.Field(), types.MaxMeasure)
	case "count":
		return fmt.Sprintf("%s must be between 0 and %d", fe.Field(), types.MaxCount)
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
