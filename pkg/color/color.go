// Package color parses the color expressions accepted by the avatar API
// (hex, rgb(), hsl() and named colors) and computes a readable foreground
// color for a given background.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Space is the color space in which the channels of a Color are expressed.
type Space string

const (
	// SpaceRGB is used for hex, rgb() and named colors. Channels are in
	// [0, 255].
	SpaceRGB Space = "rgb"
	// SpaceHSL is used for hsl() colors. The hue is in degrees, saturation
	// and lightness are percentages.
	SpaceHSL Space = "hsl"
)

// ErrInvalidColor is returned when the input doesn't match any of the
// supported color grammars.
var ErrInvalidColor = errors.New("invalid color")

// Color is a parsed color expression.
type Color struct {
	Space  Space
	Values [3]float64
	Alpha  float64
}

var (
	hexPattern = regexp.MustCompile(`(?i)^#?([0-9a-f]{3,4}|[0-9a-f]{6}|[0-9a-f]{8})$`)

	// rgb(255 0 0), rgb(255 0 0 / 0.5), rgb(255 0 0 / 50%)
	rgbSpacePattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s+(\d+)\s+(\d+)(?:\s*/\s*([\d.]+%?))?\s*\)$`)
	// rgb(255, 0, 0), rgba(255, 0, 0, 0.5)
	rgbCommaPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)(?:\s*,\s*([\d.]+))?\s*\)$`)
	// hsl(120, 50%, 50%), hsla(120, 50%, 50%, 0.5)
	hslPattern = regexp.MustCompile(`(?i)^hsla?\(\s*(\d+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%(?:\s*,\s*([\d.]+))?\s*\)$`)
)

// namedColors is looked up before the CSS table, so that these names keep
// their historical values.
var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// Parse parses a color expression. The grammars are tried in this order: hex,
// rgb(), hsl() and named colors.
func Parse(input string) (*Color, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidColor
	}

	if hexPattern.MatchString(input) {
		return parseHex(strings.TrimPrefix(input, "#"))
	}

	lower := strings.ToLower(input)
	switch {
	case strings.HasPrefix(lower, "rgb"):
		return parseRGB(input)
	case strings.HasPrefix(lower, "hsl"):
		return parseHSL(input)
	}

	if hex, ok := namedColors[lower]; ok {
		return Parse(hex)
	}
	if rgba, ok := colornames.Map[lower]; ok {
		return Parse(fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B))
	}
	return nil, ErrInvalidColor
}

// MustParse is like Parse but panics on invalid input. It is meant for
// constants and tests.
func MustParse(input string) *Color {
	c, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("color: invalid color %q: %s", input, err))
	}
	return c
}

func parseHex(hex string) (*Color, error) {
	if len(hex) == 3 || len(hex) == 4 {
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	}

	c := &Color{Space: SpaceRGB, Alpha: 1}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, ErrInvalidColor
		}
		c.Values[i] = float64(v)
	}
	if len(hex) == 8 {
		v, err := strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return nil, ErrInvalidColor
		}
		c.Alpha = float64(v) / 255
	}
	return c, nil
}

func parseRGB(input string) (*Color, error) {
	match := rgbSpacePattern.FindStringSubmatch(input)
	if match == nil {
		match = rgbCommaPattern.FindStringSubmatch(input)
	}
	if match == nil {
		return nil, ErrInvalidColor
	}

	c := &Color{Space: SpaceRGB}
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(match[i+1])
		if err != nil || v > 255 {
			return nil, ErrInvalidColor
		}
		c.Values[i] = float64(v)
	}
	alpha, err := parseAlpha(match[4])
	if err != nil {
		return nil, err
	}
	c.Alpha = alpha
	return c, nil
}

func parseHSL(input string) (*Color, error) {
	match := hslPattern.FindStringSubmatch(input)
	if match == nil {
		return nil, ErrInvalidColor
	}

	hue, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, ErrInvalidColor
	}
	c := &Color{Space: SpaceHSL, Values: [3]float64{float64(hue % 360)}}
	for i := 1; i < 3; i++ {
		v, err := strconv.ParseFloat(match[i+1], 64)
		if err != nil || v > 100 {
			return nil, ErrInvalidColor
		}
		c.Values[i] = v
	}
	alpha, err := parseAlpha(match[4])
	if err != nil {
		return nil, err
	}
	c.Alpha = alpha
	return c, nil
}

func parseAlpha(raw string) (float64, error) {
	if raw == "" {
		return 1, nil
	}
	percent := strings.HasSuffix(raw, "%")
	alpha, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if percent {
		alpha /= 100
	}
	if err != nil || alpha < 0 || alpha > 1 {
		return 0, ErrInvalidColor
	}
	return alpha, nil
}

// Opaque returns true if the color has no transparency.
func (c *Color) Opaque() bool {
	return c.Alpha >= 1
}

// String returns the canonical representation of the color. Parsing it gives
// back the same channels and alpha.
func (c *Color) String() string {
	switch c.Space {
	case SpaceHSL:
		h, s, l := formatFloat(c.Values[0]), formatFloat(c.Values[1]), formatFloat(c.Values[2])
		if c.Opaque() {
			return fmt.Sprintf("hsl(%s, %s%%, %s%%)", h, s, l)
		}
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", h, s, l, formatFloat(c.Alpha))
	default:
		r, g, b := c.rgbBytes()
		if c.Opaque() {
			return fmt.Sprintf("#%02x%02x%02x", r, g, b)
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFloat(c.Alpha))
	}
}

func (c *Color) rgbBytes() (uint8, uint8, uint8) {
	return uint8(math.Round(c.Values[0])), uint8(math.Round(c.Values[1])), uint8(math.Round(c.Values[2]))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
