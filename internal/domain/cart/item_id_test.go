package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveItemID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mixed punctuation", "Cool T-Shirt!!", "COOLTSHIRT"},
		{"empty name", "", "ITEM001"},
		{"only symbols", "###", "ITEM001"},
		{"lowercase", "urban hoodie", "URBANHOODI"},
		{"digits kept", "Denim 501", "DENIM501"},
		{"short name", "Cap", "CAP"},
		{"truncated at ten", "Classic Logo Tee Black", "CLASSICLOG"},
		{"whitespace only", "   ", "ITEM001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveItemID(tt.input))
		})
	}
}

func TestDeriveItemID_Deterministic(t *testing.T) {
	// Same input, same output, no hidden state.
	for range 3 {
		assert.Equal(t, "COOLTSHIRT", DeriveItemID("Cool T-Shirt!!"))
	}
}
