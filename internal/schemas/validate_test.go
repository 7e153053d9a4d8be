package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"packages": {"type": ["array", "object", "null"]}
	}
}`

func TestValidateBytes_Valid(t *testing.T) {
	err := ValidateBytes([]byte(collectionSchema), []byte(`{"packages": [{"name": "zlib"}]}`))
	assert.NoError(t, err)
}

func TestValidateBytes_WrongType(t *testing.T) {
	err := ValidateBytes([]byte(collectionSchema), []byte(`{"packages": "zlib"}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "packages", validationErr.Errors[0].Field)
}

func TestValidateBytes_RootType(t *testing.T) {
	err := ValidateBytes([]byte(collectionSchema), []byte(`["zlib"]`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateBytes_MalformedSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{ invalid json }`), []byte(`{}`))
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected SchemaLoadError, got %T", err)
	assert.Contains(t, err.Error(), "(embedded schema)")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "packages", Message: "is required"},
			{Field: "files", Message: "must be an array"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. packages")
	assert.Contains(t, errorMsg, "2. files")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	err := &SchemaLoadError{Path: "x.json", Message: "bad", Cause: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "failed to load schema x.json: bad: "+assert.AnError.Error(), err.Error())
}
