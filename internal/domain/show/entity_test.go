package show

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_Validate(t *testing.T) {
	t.Run("有効な番組", func(t *testing.T) {
		s := NewShow("Journey to Mars", "A tour of the red planet", []int64{1, 2})
		require.NoError(t, s.Validate())
	})

	t.Run("タイトルなし", func(t *testing.T) {
		s := NewShow("", "desc", nil)
		assert.ErrorIs(t, s.Validate(), ErrTitleRequired)
	})
}

func TestParseThemeIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{"空文字列", "", nil, false},
		{"単一ID", "1", []int64{1}, false},
		{"複数ID", "1,2,3", []int64{1, 2, 3}, false},
		{"空白を含む", "1, 2, 3", []int64{1, 2, 3}, false},
		{"整数以外", "1,abc,3", nil, true},
		{"空要素", "1,,3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThemeIDs(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidThemeID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
