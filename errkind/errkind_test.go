package errkind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesSameKind(t *testing.T) {
	err := New(OutOfBounds, "row %d exceeds height %d", 10, 5)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.False(t, errors.Is(err, ErrIo))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Io, cause, "read failed")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestOfExtractsKind(t *testing.T) {
	err := New(PayloadTooLarge, "too big")
	kind, ok := Of(err)
	assert.True(t, ok)
	assert.Equal(t, PayloadTooLarge, kind)

	_, ok = Of(errors.New("plain"))
	assert.False(t, ok)
}
