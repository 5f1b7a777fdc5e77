package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "通常の文字列はそのまま", input: "journey", expected: "journey"},
		{name: "パーセントはエスケープされる", input: "100% space", expected: `100\% space`},
		{name: "アンダースコアはエスケープされる", input: "black_hole", expected: `black\_hole`},
		{name: "バックスラッシュはエスケープされる", input: `a\b`, expected: `a\\b`},
		{name: "空文字列", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLikePattern(tt.input))
		})
	}
}
