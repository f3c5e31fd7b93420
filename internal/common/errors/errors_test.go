package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
	}{
		{ErrCodeInvalidParameter, "VALIDATION"},
		{ErrCodeRequestFailed, "NETWORK"},
		{ErrCodeRequestTimeout, "NETWORK"},
		{ErrCodeBadHTTPStatus, "NETWORK"},
		{ErrCodeTableParseFailed, "PARSE"},
		{ErrCodeImageParseFailed, "PARSE"},
		{ErrCodeEmptyTable, "DATA"},
		{ErrCodeMetadataReadFailed, "METADATA"},
		{ErrCodeMetadataWriteFailed, "METADATA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, GetErrorCategory(tt.code), "code %s", tt.code)
	}
}

func TestRetryability(t *testing.T) {
	assert.True(t, IsRetryable(NewRequestFailedError(fmt.Errorf("refused"))))
	assert.True(t, IsRetryable(NewRequestTimeoutError(fmt.Errorf("deadline"))))
	assert.True(t, IsRetryable(NewBadHTTPStatusError(503, "503 Service Unavailable")))

	assert.False(t, IsRetryable(NewInvalidParameterError("bad date")))
	assert.False(t, IsRetryable(NewTableParseError(3, "bad float")))
	assert.False(t, IsRetryable(NewEmptyTableError()))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}

func TestCodeOf(t *testing.T) {
	err := NewEmptyTableError()
	assert.Equal(t, ErrCodeEmptyTable, CodeOf(err))
	assert.True(t, IsCode(err, ErrCodeEmptyTable))
	assert.False(t, IsCode(err, ErrCodeInvalidParameter))

	wrapped := fmt.Errorf("annotating: %w", err)
	assert.Equal(t, ErrCodeEmptyTable, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))
}
