package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreelectronics/glowbit-orb/palette"
)

var normalizeAccepts = []struct {
	name string
	in   interface{}
	want palette.RGB
}{
	{"rgb value", palette.RGB{1, 2, 3}, palette.RGB{1, 2, 3}},
	{"int triple", [3]int{255, 160, 64}, palette.RGB{255, 160, 64}},
	{"name lower", "cyan", palette.RGB{0, 255, 255}},
	{"name mixed case", " Yellow ", palette.RGB{255, 255, 0}},
	{"native packed", palette.Native(0xFF9911), palette.RGB{0xFF, 0x99, 0x11}},
}

func TestNormalizeAcceptedForms(t *testing.T) {
	for _, tc := range normalizeAccepts {
		t.Run(tc.name, func(t *testing.T) {
			got, err := palette.Normalize(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

var normalizeRejects = []struct {
	name string
	in   interface{}
}{
	{"unknown name", "ultraviolet"},
	{"channel too large", [3]int{0, 300, 0}},
	{"channel negative", [3]int{-1, 0, 0}},
	{"unsupported type", 3.14},
	{"nil", nil},
}

func TestNormalizeRejections(t *testing.T) {
	for _, tc := range normalizeRejects {
		t.Run(tc.name, func(t *testing.T) {
			_, err := palette.Normalize(tc.in)
			assert.ErrorIs(t, err, palette.ErrInvalidColor)
		})
	}
}

func TestScale(t *testing.T) {
	c := palette.RGB{200, 100, 50}
	assert.Equal(t, palette.RGB{100, 50, 25}, palette.Scale(c, 0.5))
	assert.Equal(t, c, palette.Scale(c, 1.0))
	assert.Equal(t, c, palette.Scale(c, 2.0))
	assert.Equal(t, palette.RGB{}, palette.Scale(c, -1))
}

func TestWheelEndpoints(t *testing.T) {
	assert.Equal(t, palette.RGB{R: 255}, palette.Wheel(0))
	assert.Equal(t, palette.RGB{G: 255}, palette.Wheel(1.0/3.0))
	assert.Equal(t, palette.RGB{B: 255}, palette.Wheel(2.0/3.0))
	// wraps
	assert.Equal(t, palette.Wheel(0.25), palette.Wheel(1.25))
}
