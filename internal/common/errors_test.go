package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	assert.Equal(t, "CONFIG_ERROR: OPENAI_API_KEY is required: invalid input", err.Error())

	bare := NewAppError("CONFIG_ERROR", "something off", nil)
	assert.Equal(t, "CONFIG_ERROR: something off", bare.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("CONFIG_ERROR", "bad value", ErrInvalidInput)
	require.ErrorIs(t, err, ErrInvalidInput)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestValidateErrorIsInvalidInput(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	err := LoadConfig().Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
