package http

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "ratepulse/internal/errors"
)

// maxBodySize caps request bodies; comparison requests are tiny.
const maxBodySize = 1 << 20

// newValidator builds the request validator, keyed by JSON field names so
// validation errors point at the field the caller actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. A missing body leaves dst at its zero value, which every
// request contract treats as "use defaults".
func decodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	if r.Body != nil && r.ContentLength != 0 {
		decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
		if err := decoder.Decode(dst); err != nil {
			return apierrors.InvalidRequestWithError(err)
		}
	}

	if err := v.Struct(dst); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apierrors.ErrValidationFailed
		}

		errs := make([]apierrors.ValidationError, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			errs = append(errs, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return apierrors.NewValidationErrors(errs)
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
