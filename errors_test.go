package aguiagent

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewBackendError("remote endpoint error: 503")
		assert.Equal(t, "remote endpoint error: 503", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewTransportError("failed to connect", cause)
		assert.Equal(t, "failed to connect: connection refused", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		kind      ErrorKind
		retryable bool
	}{
		{"transport", NewTransportError("conn", nil), ErrorTransport, true},
		{"timeout", NewTimeoutError("deadline", nil), ErrorTimeout, false},
		{"decode", NewDecodeError("bad json", nil), ErrorDecode, false},
		{"protocol", NewProtocolError("event before run start"), ErrorProtocol, false},
		{"tool", NewToolError("tool failed", nil), ErrorTool, false},
		{"backend", NewBackendError("run error"), ErrorBackend, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestKindOfWrappedError(t *testing.T) {
	inner := NewTimeoutError("run exceeded 120s", nil)
	wrapped := fmt.Errorf("run aborted: %w", inner)

	assert.Equal(t, ErrorTimeout, KindOf(wrapped))
	assert.True(t, IsTimeout(wrapped))
	assert.False(t, IsTransport(wrapped))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
