package errors_test

import (
	"io"
	"testing"

	"github.com/soartravel/soar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusError(t *testing.T) {
	err := errors.HTTPStatus(502, "bad gateway")

	assert.True(t, errors.Is(err, errors.ErrHTTPStatus))
	assert.False(t, errors.Is(err, errors.ErrTransport))

	var statusErr *errors.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 502, statusErr.StatusCode)
	assert.Equal(t, "bad gateway", statusErr.Body)
	assert.Contains(t, err.Error(), "502")
}

func TestWrapKind(t *testing.T) {
	t.Run("keeps the cause", func(t *testing.T) {
		err := errors.Transport(io.ErrUnexpectedEOF, "failed to call %s", "mem0")
		assert.True(t, errors.Is(err, errors.ErrTransport))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.Contains(t, err.Error(), "failed to call mem0")
	})

	t.Run("without a cause", func(t *testing.T) {
		err := errors.InvalidRequest(nil, "user id is required")
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
		assert.Contains(t, err.Error(), "user id is required")
	})

	t.Run("decode", func(t *testing.T) {
		err := errors.Decode(io.EOF, "invalid search response")
		assert.True(t, errors.Is(err, errors.ErrDecode))
		assert.False(t, errors.Is(err, errors.ErrHTTPStatus))
	})
}
