package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	lightThreshold      = 0.6
	darkThreshold       = 0.4
	brightnessThreshold = 0.5
)

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// Colorful converts the color to a go-colorful value. The alpha channel is
// dropped.
func (c *Color) Colorful() colorful.Color {
	if c.Space == SpaceHSL {
		return colorful.Hsl(c.Values[0], c.Values[1]/100, c.Values[2]/100).Clamped()
	}
	return colorful.Color{R: c.Values[0] / 255, G: c.Values[1] / 255, B: c.Values[2] / 255}
}

// Hex returns the color as #rrggbb, ignoring the alpha channel.
func (c *Color) Hex() string {
	return c.Colorful().Hex()
}

// Lightness returns the perceived lightness (CIE L*) in [0, 1].
func (c *Color) Lightness() float64 {
	l, _, _ := c.Colorful().Lab()
	return l
}

// Brightness returns the weighted RGB brightness in [0, 1], as defined by the
// W3C accessibility guidelines.
func (c *Color) Brightness() float64 {
	cf := c.Colorful()
	return (cf.R*299 + cf.G*587 + cf.B*114) / 1000
}

// IsLight tells if the color is clearly light.
func (c *Color) IsLight() bool {
	return c.Lightness() >= lightThreshold
}

// IsDark tells if the color is clearly dark.
func (c *Color) IsDark() bool {
	return c.Lightness() <= darkThreshold
}

// Foreground returns a color that stays readable on top of c: a shade for
// light backgrounds, a tint for dark ones. It is never equal to c.
func (c *Color) Foreground() string {
	bg := c.Colorful()
	shade := bg.BlendLab(black, 0.5).Clamped()
	tint := bg.BlendLab(white, 0.5).Clamped()

	var fg colorful.Color
	switch {
	case c.IsLight():
		fg = shade
	case c.IsDark():
		fg = tint
	case c.Brightness() > brightnessThreshold:
		fg = shade
	default:
		fg = tint
	}

	if fg.Hex() == bg.Hex() {
		if c.Brightness() > brightnessThreshold {
			return black.Hex()
		}
		return white.Hex()
	}
	return fg.Hex()
}
