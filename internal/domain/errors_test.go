package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	assert.Equal(t, "[VALIDATION_ERROR] keyword is required", ErrEmptyKeyword.Error())
	assert.Equal(t, "[NETWORK_ERROR] vendor request failed: dial tcp: connection refused",
		NewNetworkError("vendor request failed", cause).Error())
	assert.Equal(t, "[PARSE_ERROR]", ErrParse.Error())
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	netErr := NewNetworkError("vendor request failed", errors.New("timeout"))
	wrapped := fmt.Errorf("expansion %q: %w", "red shoes", netErr)

	assert.True(t, errors.Is(wrapped, ErrNetwork))
	assert.False(t, errors.Is(wrapped, ErrParse))
	assert.False(t, errors.Is(wrapped, ErrValidation))
}

func TestDomainError_IsThroughJoin(t *testing.T) {
	joined := errors.Join(
		NewParseError("body is not text", nil),
		NewNetworkError("status 503", nil),
	)

	assert.True(t, errors.Is(joined, ErrParse))
	assert.True(t, errors.Is(joined, ErrNetwork))
}

func TestDomainError_SpecificSentinelNotMatchedByClassmate(t *testing.T) {
	other := NewDomainError(ErrCodeValidation, "something else")

	assert.False(t, errors.Is(other, ErrEmptyKeyword))
	assert.True(t, errors.Is(other, ErrValidation))
	assert.True(t, errors.Is(ErrEmptyKeyword, ErrEmptyKeyword))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewNetworkError("vendor request failed", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}
