package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "ascii", input: "zlib 1.3.1", expected: "zlib 1.3.1"},
		{name: "latin-1", input: "café", expected: "caf\xe9"},
		{name: "ellipsis", input: "abc…", expected: "abc\x85"},
		{name: "euro sign", input: "€5", expected: "\x805"},
		{name: "cjk", input: "包a", expected: "?a"},
		{name: "emoji", input: "ok 🚀", expected: "ok ?"},
		{name: "one byte per rune", input: "ÄÖÜ→x", expected: "\xc4\xd6\xdc?x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeText(tt.input))
		})
	}
}
