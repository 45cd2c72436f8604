package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Run("already international", func(t *testing.T) {
		assert.Equal(t, "+584141234567", NormalizePhone("+58 414-123-4567", ""))
	})

	t.Run("local number gets default country code", func(t *testing.T) {
		assert.Equal(t, "+584141234567", NormalizePhone("4141234567", ""))
	})

	t.Run("trunk zero stripped", func(t *testing.T) {
		assert.Equal(t, "+584141234567", NormalizePhone("0414-123-4567", ""))
	})

	t.Run("country code digits not duplicated", func(t *testing.T) {
		assert.Equal(t, "+584141234567", NormalizePhone("584141234567", ""))
	})

	t.Run("explicit country code", func(t *testing.T) {
		assert.Equal(t, "+51987654321", NormalizePhone("987654321", "+51"))
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		assert.Equal(t, "+584141234567", NormalizePhone("  414 123 4567  ", ""))
	})
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+584141234567"))
	assert.True(t, IsValidPhone("12345678"))
	assert.False(t, IsValidPhone("1234567"))
	assert.False(t, IsValidPhone("+123456789012345678"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("no-digits"))
}
