package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"time"

	"billiard/shared/failure"
	"billiard/shared/nullable"

	val "github.com/go-playground/validator/v10"
)

const msgInvalidRequest = "invalid request"

var (
	validate *val.Validate

	// E.164, optional leading plus.
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

func registerPhoneValidation(field val.FieldLevel) bool {
	return phonePattern.MatchString(field.Field().String())
}

// Nullable values validate as their inner value; absent and null values validate as nil so omitempty applies.
func nullableValue[T any](field reflect.Value) any {
	if n, ok := field.Interface().(nullable.Nullable[T]); ok && n.Valid {
		return n.Value
	}

	return nil
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterCustomTypeFunc(nullableValue[string], nullable.Nullable[string]{})
	validate.RegisterCustomTypeFunc(nullableValue[time.Time], nullable.Nullable[time.Time]{})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("phone", registerPhoneValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct reports every failing field, the first one doubling as the message.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		errs := messages(err)
		if len(errs) == 0 {
			return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
		}

		return failure.Validation(errs[0], errs) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateParam validates a single request parameter and names it in the error message.
func ValidateParam(name string, value any, tag string) error {
	err := validate.Var(value, tag)

	if err != nil {
		msg := message(err)
		if errs := messages(err); len(errs) > 0 {
			msg = name + errs[0]
		}

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
