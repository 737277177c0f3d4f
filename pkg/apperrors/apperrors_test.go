package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUnwrapsWrappedError(t *testing.T) {
	inner := NotFound("review not found")
	wrapped := fmt.Errorf("registering asset: %w", inner)

	got := From(wrapped)
	assert.NotNil(t, got)
	assert.Equal(t, CategoryNotFound, got.Category)
}

func TestFromPlainError(t *testing.T) {
	assert.Nil(t, From(errors.New("boom")))
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("could not complete upload", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upstream")
	assert.Contains(t, err.Error(), "connection reset")
}
