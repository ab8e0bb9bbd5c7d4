package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGenerateRandom(t *testing.T) {
	code := GenerateRandom()
	assert.Len(t, code, Length)
	assert.True(t, IsValid(code), "generated code %q out of range", code)
}

func TestGenerateRandomAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := GenerateRandom()
		if !IsValid(code) {
			t.Fatalf("invalid code %q", code)
		}
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("1000"))
	assert.True(t, IsValid("9999"))
	assert.False(t, IsValid("0999"))
	assert.False(t, IsValid("999"))
	assert.False(t, IsValid("10000"))
	assert.False(t, IsValid("12a4"))
	assert.False(t, IsValid("+123"))
}
