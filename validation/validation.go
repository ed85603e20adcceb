// Package validation binds request payloads and checks them against their
// `validate` struct tags.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racedb/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate decodes the request body into payload and validates it.
// Malformed bodies, wrong JSON types and failed rules all come back as a
// 422 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, payload); err != nil {
		return bindError(err)
	}
	return Struct(payload)
}

// Struct validates payload and converts failures to a 422 with field errors.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.NewInvalidInputError(err.Error(), nil)
	}

	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errs.FieldError{Field: fe.Field(), Error: fieldMessage(fe)})
	}
	return errs.NewInvalidInputError("Validation failed", fields)
}

// Params converts errors from echo's query/path value binders into a single
// 422 listing every offending field.
func Params(bindErrs ...error) error {
	fields := make([]errs.FieldError, 0, len(bindErrs))
	for _, err := range bindErrs {
		if err == nil {
			continue
		}
		var be *echo.BindingError
		if !errors.As(err, &be) {
			return errs.NewInvalidInputError(err.Error(), nil)
		}
		msg := "is required"
		if len(be.Values) > 0 && be.Values[0] != "" {
			msg = "must be an integer"
		}
		fields = append(fields, errs.FieldError{Field: be.Field, Error: msg})
	}
	if len(fields) == 0 {
		return nil
	}
	return errs.NewInvalidInputError("Validation failed", fields)
}

// QueryString returns the named query parameter. Only an absent key is an
// error; an empty value is returned as is.
func QueryString(c echo.Context, name string) (string, error) {
	params := c.QueryParams()
	if !params.Has(name) {
		return "", errs.NewInvalidInputError("Validation failed", []errs.FieldError{{Field: name, Error: "is required"}})
	}
	return params.Get(name), nil
}

func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusUnsupportedMediaType {
			return errs.NewInvalidInputError("request body must be JSON", nil)
		}
		return errs.NewInvalidInputError(fmt.Sprint(he.Message), nil)
	}
	return errs.NewInvalidInputError(err.Error(), nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
