package otp

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, re, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "otp:verify:jane@example.com", codeKey(PurposeVerify, "Jane@Example.com"))
	assert.Equal(t, "otp:reset:jane@example.com:attempts", attemptsKey(PurposeReset, "jane@example.com"))
	assert.Equal(t, "otp:rl:jane@example.com", limitKey("JANE@example.com"))
}
