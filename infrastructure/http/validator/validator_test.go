package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice.smith+tag@example.co.uk",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@example.com",
		"alice@",
		"alice example@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, ValidateRequired("value"))
	assert.False(t, ValidateRequired(""))
	assert.False(t, ValidateRequired("   "))
}

func TestValidateJWT(t *testing.T) {
	assert.True(t, ValidateJWT("header.payload.signature"))
	assert.False(t, ValidateJWT(""))
	assert.False(t, ValidateJWT("only-one-part"))
	assert.False(t, ValidateJWT("two.parts"))
}
