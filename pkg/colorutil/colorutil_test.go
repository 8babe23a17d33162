package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#1f2937", Ink, false},
		{"#FF0000", color.RGBA{R: 255, A: 255}, false},
		{"#000", Black, false},
		{"#fff", White, false},
		{"none", color.RGBA{}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#059669", Hex(Wire))
	assert.Equal(t, "none", Hex(color.RGBA{}))
}

func TestBlend(t *testing.T) {
	assert.Equal(t, White, Blend(Black, White, 0))
	assert.Equal(t, Black, Blend(Black, White, 1))
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, Blend(White, Black, 0.5))
}
