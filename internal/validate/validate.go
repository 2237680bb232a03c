// Package validate decodes untyped request payloads into typed inputs and
// checks the shape constraints declared on the input struct. It has no side
// effects and runs before any guard consumes the input.
package validate

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/totegamma/quill/internal/domain"
)

var check = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report field names as they appear on the wire
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode parses raw JSON into T and validates it. Required string fields are
// declared as pointers with a `validate:"required"` tag so that a present
// empty string passes while a missing field does not. With strict set,
// unknown fields are rejected (update inputs). Every failing field is
// collected into a single domain.ValidationError.
func Decode[T any](raw []byte, strict bool) (T, error) {
	var input T

	decoder := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&input); err != nil {
		return input, decodeError(err)
	}

	if err := check.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]domain.FieldError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, domain.FieldError{
					Field:  fe.Field(),
					Reason: reason(fe),
				})
			}
			return input, domain.ValidationError{Fields: fields}
		}
		return input, errors.Wrap(err, "validate.Decode")
	}

	return input, nil
}

func reason(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "required"
	}
	return "failed " + fe.Tag() + " constraint"
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.ValidationError{Fields: []domain.FieldError{{
			Field:  typeErr.Field,
			Reason: "expected " + typeErr.Type.String(),
		}}}
	}

	// DisallowUnknownFields surfaces unknown fields as opaque errors; pull
	// the field name back out for the structured response.
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return domain.ValidationError{Fields: []domain.FieldError{{
			Field:  field,
			Reason: "unknown field",
		}}}
	}

	return domain.ValidationError{Fields: []domain.FieldError{{
		Reason: "malformed payload",
	}}}
}
