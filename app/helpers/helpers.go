package helpers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/errs"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type contextKey string

const ContextKeyUserID contextKey = "userID"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// UserIDFromContext returns the caller identity placed by the identity middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(string)
	return id, ok && id != ""
}

// NewValidator returns a validator that understands decimal.Decimal fields and the
// halfstep rule used for ratings.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		doubled := fl.Field().Float() * 2
		return doubled == math.Trunc(doubled)
	})
	return v
}

func FormatValidationErrors(verrs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range verrs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "halfstep":
			errorMessages[field] = fmt.Sprintf("%s must be a multiple of 0.5", field)
		default:
			errorMessages[field] = fmt.Sprintf("%s failed the %s check", field, err.Tag())
		}
	}
	return errorMessages
}

// ValidateStruct runs v over s and reports failures as an errs.ErrValidation listing every
// offending field.
func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Validation("%v", err)
	}

	messages := FormatValidationErrors(verrs)
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, messages[field])
	}
	return errs.Validation("%s", strings.Join(parts, "; "))
}
