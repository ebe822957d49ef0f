package endpoint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// SchemaValidator parses an untyped payload into its validated form.
//
// Implementations fail with *ValidationError for rule violations and with an
// error wrapping ErrUnexpectedValidation for anything else, so callers only
// ever see those two kinds.
type SchemaValidator interface {
	Parse(input any) (any, error)
}

// StructSchema validates payloads against the struct type T. Field names come
// from json tags and rules from validate tags:
//
//	type createNote struct {
//	    Title string `json:"title" validate:"required,max=200"`
//	}
//
//	schema := endpoint.NewStructSchema[createNote]()
type StructSchema[T any] struct {
	validate *validator.Validate
}

// NewStructSchema creates a schema for T.
func NewStructSchema[T any]() *StructSchema[T] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &StructSchema[T]{validate: v}
}

// Parse coerces input into T and validates it. input may be raw JSON bytes or
// an already decoded JSON value. On success the returned value is a T.
func (s *StructSchema[T]) Parse(input any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: panic: %v", ErrUnexpectedValidation, r)
		}
	}()

	raw, ok := input.([]byte)
	if !ok {
		raw, err = json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("%w: encode input: %w", ErrUnexpectedValidation, err)
		}
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, decodeFailure(err)
	}

	if err := s.validate.Struct(value); err != nil {
		return nil, ruleFailure(err)
	}

	return value, nil
}

func decodeFailure(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "value"
		}
		return &ValidationError{
			Message: fmt.Sprintf("%s: expected %s, got %s", field, typeErr.Type, typeErr.Value),
		}
	}
	return fmt.Errorf("%w: decode input: %w", ErrUnexpectedValidation, err)
}

func ruleFailure(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrUnexpectedValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' rule", fieldPath(fe), fe.Tag()))
	}

	return &ValidationError{Message: strings.Join(msgs, "; ")}
}

// fieldPath drops the struct type name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}
