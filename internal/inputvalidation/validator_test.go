package inputvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Limit int    `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.ValidateStruct(sample{Name: "x", Limit: 1}))

	err := v.ValidateStruct(sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample.Name: required")
	assert.Contains(t, err.Error(), "sample.Limit: gt=0")
}

func TestValidateStructRejectsNonStruct(t *testing.T) {
	err := NewValidator().ValidateStruct("not a struct")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
