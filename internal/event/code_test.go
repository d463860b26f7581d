package event

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAccessCode_Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateAccessCode()
		assert.Len(t, code, 6)
		assert.Equal(t, strings.ToUpper(code), code)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
	}
}

func TestGenerateAccessCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateAccessCode()] = true
	}
	// 50 independent draws from a 36^6 space collapsing to a handful would
	// mean a broken generator.
	assert.Greater(t, len(seen), 40)
}
