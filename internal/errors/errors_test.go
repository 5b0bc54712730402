package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrPrefs,
		ErrTelemetry,
		ErrSource,
		ErrTTY,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Interval out of range", "Use a value between 100ms and 10s")

	require.NotNil(t, err)
	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Interval out of range", err.Message)
	assert.Equal(t, "Use a value between 100ms and 10s", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestError_Format(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		expect string
	}{
		{
			name:   "message only",
			err:    New(ErrTTY, "Not a terminal", ""),
			expect: "✗ Not a terminal\n",
		},
		{
			name:   "message and suggestion",
			err:    New(ErrSource, "rocm-smi not found", "Install ROCm or pass --smi-path"),
			expect: "✗ rocm-smi not found\n\n  Install ROCm or pass --smi-path\n",
		},
		{
			name:   "with cause",
			err:    WrapWithCode(fmt.Errorf("permission denied"), ErrPrefs, "Could not save preferences", "Check the file permissions"),
			expect: "✗ Could not save preferences\n\n  permission denied\n\n  Check the file permissions\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Error())
		})
	}
}

func TestWrap_DefaultsToSourceCode(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(cause, "rocm-smi failed")

	assert.Equal(t, ErrSource, err.Code)
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New(ErrConfig, "bad config", ""))

	assert.True(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(wrapped, ErrPrefs))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrConfig))
}
