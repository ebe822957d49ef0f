package endpoint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/endpoint"
)

type stringPayload struct {
	A string `json:"a" validate:"required"`
}

type signup struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Age     int     `json:"age" validate:"gte=13"`
	Address address `json:"address"`
}

type address struct {
	City string `json:"city" validate:"required"`
}

func TestStructSchema_ParseValid(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[stringPayload]()

	got, err := schema.Parse(map[string]any{"a": "x"})
	require.NoError(t, err)
	assert.Equal(t, stringPayload{A: "x"}, got)
}

func TestStructSchema_ParseRawJSON(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[stringPayload]()

	got, err := schema.Parse([]byte(`{"a":"raw"}`))
	require.NoError(t, err)
	assert.Equal(t, stringPayload{A: "raw"}, got)
}

func TestStructSchema_TypeMismatch(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[stringPayload]()

	got, err := schema.Parse(map[string]any{"a": 1})
	require.Error(t, err)
	assert.Nil(t, got)

	var validationErr *endpoint.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "string")
	assert.NotErrorIs(t, err, endpoint.ErrUnexpectedValidation)
}

func TestStructSchema_RuleViolationsAreAggregated(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[signup]()

	_, err := schema.Parse(map[string]any{
		"email": "not-an-email",
		"age":   9,
	})
	require.Error(t, err)

	var validationErr *endpoint.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "name: failed 'required' rule")
	assert.Contains(t, validationErr.Message, "email: failed 'email' rule")
	assert.Contains(t, validationErr.Message, "age: failed 'gte' rule")
	assert.Contains(t, validationErr.Message, "address.city: failed 'required' rule")
	assert.Contains(t, validationErr.Message, "; ")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestStructSchema_NonStructIsUnexpected(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[int]()

	_, err := schema.Parse(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrUnexpectedValidation)

	var validationErr *endpoint.ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestStructSchema_UnencodableInputIsUnexpected(t *testing.T) {
	t.Parallel()

	schema := endpoint.NewStructSchema[stringPayload]()

	_, err := schema.Parse(map[string]any{"a": make(chan int)})
	require.Error(t, err)
	assert.ErrorIs(t, err, endpoint.ErrUnexpectedValidation)
}

func TestStructSchema_ImplementsSchemaValidator(t *testing.T) {
	t.Parallel()

	var schema endpoint.SchemaValidator = endpoint.NewStructSchema[signup]()

	got, err := schema.Parse(map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"age":     36,
		"address": map[string]any{"city": "London"},
	})
	require.NoError(t, err)
	assert.Equal(t, signup{Name: "Ada", Email: "ada@example.com", Age: 36, Address: address{City: "London"}}, got)
}
