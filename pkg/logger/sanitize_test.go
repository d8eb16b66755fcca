package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizedPhone(t *testing.T) {
	assert.Equal(t, "98******10", SanitizedPhone("9876543210"))
	assert.Equal(t, "98**10", SanitizedPhone("987610"))
	assert.Equal(t, "[invalid-phone]", SanitizedPhone("98"))
	assert.Equal(t, "[invalid-phone]", SanitizedPhone(""))
}

func TestSanitizedEmail(t *testing.T) {
	assert.Equal(t, "a***@*******.com", SanitizedEmail("asha@example.com"))
	assert.Equal(t, "[invalid-email]", SanitizedEmail("not-an-email"))
}

func TestSanitizeQueryString(t *testing.T) {
	assert.True(t, SanitizeQueryString("otp=482913"))
	assert.True(t, SanitizeQueryString("phone=9876543210"))
	assert.True(t, SanitizeQueryString("TOKEN=abc"))
	assert.False(t, SanitizeQueryString("genre_id=g_1&limit=20"))
}
