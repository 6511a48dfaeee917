package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		space  Space
		values [3]float64
		alpha  float64
	}{
		{"#ff0000", SpaceRGB, [3]float64{255, 0, 0}, 1},
		{"ff0000", SpaceRGB, [3]float64{255, 0, 0}, 1},
		{"#F00", SpaceRGB, [3]float64{255, 0, 0}, 1},
		{"#f008", SpaceRGB, [3]float64{255, 0, 0}, 136.0 / 255},
		{"#3b82f6ff", SpaceRGB, [3]float64{59, 130, 246}, 1},
		{"#3b82f680", SpaceRGB, [3]float64{59, 130, 246}, 128.0 / 255},
		{"rgb(12 34 56)", SpaceRGB, [3]float64{12, 34, 56}, 1},
		{"rgb(12 34 56 / 0.5)", SpaceRGB, [3]float64{12, 34, 56}, 0.5},
		{"rgb(255 0 0 / 50%)", SpaceRGB, [3]float64{255, 0, 0}, 0.5},
		{"rgba(12 34 56 / 100%)", SpaceRGB, [3]float64{12, 34, 56}, 1},
		{"rgb(12, 34, 56)", SpaceRGB, [3]float64{12, 34, 56}, 1},
		{"rgba(12,34,56,0.25)", SpaceRGB, [3]float64{12, 34, 56}, 0.25},
		{"RGB(1, 2, 3)", SpaceRGB, [3]float64{1, 2, 3}, 1},
		{"hsl(120, 50%, 25%)", SpaceHSL, [3]float64{120, 50, 25}, 1},
		{"hsla(200,100%,50%,0.3)", SpaceHSL, [3]float64{200, 100, 50}, 0.3},
		{"black", SpaceRGB, [3]float64{0, 0, 0}, 1},
		{"Green", SpaceRGB, [3]float64{0, 128, 0}, 1},
		{"tomato", SpaceRGB, [3]float64{255, 99, 71}, 1},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			c, err := Parse(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.space, c.Space)
			assert.Equal(t, test.values, c.Values)
			assert.InDelta(t, test.alpha, c.Alpha, 1e-9)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"#12",
		"#12345",
		"#1234567",
		"#ggg",
		"rgb(256, 0, 0)",
		"rgb(1, 2)",
		"rgb(1 2 3 4)",
		"rgba(1, 2, 3, 1.5)",
		"rgb(1 2 3 / 150%)",
		"rgb(1 2 3 / %)",
		"hsl(120, 50, 50)",
		"hsl(120, 150%, 50%)",
		"not-a-color",
		"gradient(red, blue)",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidColor)
		})
	}
}

func TestCanonicalStringRoundTrips(t *testing.T) {
	for _, input := range []string{
		"#abc",
		"#abcd",
		"#3b82f6",
		"#3b82f680",
		"rgb(12 34 56 / 0.5)",
		"rgba(0, 0, 0, 0)",
		"hsl(359, 12.5%, 80%)",
		"hsla(10, 20%, 30%, 0.75)",
		"white",
		"cornflowerblue",
	} {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)

			second, err := Parse(first.String())
			require.NoError(t, err)

			assert.Equal(t, first.Space, second.Space)
			assert.Equal(t, first.Values, second.Values)
			assert.Equal(t, first.Alpha, second.Alpha)
			assert.Equal(t, first.String(), second.String())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "#ff0000", MustParse("red").String())
	assert.Equal(t, "#aabbcc", MustParse("#ABC").String())
	assert.Equal(t, "rgba(1, 2, 3, 0.5)", MustParse("rgb(1 2 3 / .5)").String())
	assert.Equal(t, "rgba(255, 0, 0, 0.5)", MustParse("rgb(255 0 0 / 50%)").String())
	assert.Equal(t, "hsl(120, 50%, 25%)", MustParse("hsl(120,50%,25%)").String())
}

func TestForegroundDiffersFromBackground(t *testing.T) {
	for _, input := range []string{
		"#000000", "#ffffff", "#808080", "#777777", "#ff0000", "#00ff00",
		"#0000ff", "#ffff00", "#3b82f6", "hsl(60, 100%, 50%)", "#010101", "#fefefe",
	} {
		t.Run(input, func(t *testing.T) {
			c := MustParse(input)
			fg := c.Foreground()
			assert.NotEqual(t, c.Hex(), fg)
			assert.Regexp(t, `^#[0-9a-f]{6}$`, fg)
		})
	}
}

func TestForegroundDirection(t *testing.T) {
	light := MustParse("#ffffff")
	assert.True(t, light.IsLight())
	assert.Less(t, MustParse(light.Foreground()).Lightness(), light.Lightness())

	dark := MustParse("#000000")
	assert.True(t, dark.IsDark())
	assert.Greater(t, MustParse(dark.Foreground()).Lightness(), dark.Lightness())
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestRandomIsAlwaysValid(t *testing.T) {
	c := Random(fixedRand(300))
	assert.Equal(t, [3]float64{44, 44, 44}, c.Values)
	assert.True(t, c.Opaque())

	again, err := Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c.Values, again.Values)
}
