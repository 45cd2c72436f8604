package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessCode(t *testing.T) {
	err := ErrBusiness("too_soon")

	assert.Equal(t, "too_soon", Code(err))
	assert.True(t, IsBusiness(err, "too_soon"))
	assert.False(t, IsBusiness(err, "unknown_service"))

	// envuelto también funciona
	wrapped := fmt.Errorf("commit: %w", err)
	assert.Equal(t, "too_soon", Code(wrapped))

	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "", Code(nil))
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrStorage(cause)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage_unavailable")

	assert.Nil(t, ErrStorage(nil))
	assert.False(t, IsStorage(ErrBusiness("overlap_conflict")))
}
