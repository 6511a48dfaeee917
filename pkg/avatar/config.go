package avatar

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cozy/exavatar/pkg/color"
	"github.com/cozy/exavatar/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode tells how the avatar is produced.
type Mode int

const (
	// ModeImage loads a pre-rendered image from the asset store.
	ModeImage Mode = iota
	// ModeText generates an SVG with the text on a colored background.
	ModeText
)

func (m Mode) String() string {
	if m == ModeText {
		return "text"
	}
	return "image"
}

// Format is the encoding of an image asset.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
)

// Formats is the list of the supported image formats.
var Formats = []Format{PNG, JPEG, WEBP}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Shape is the outline of a generated avatar.
type Shape string

const (
	Square  Shape = "square"
	Circle  Shape = "circle"
	Rounded Shape = "rounded"
)

// Shapes is the list of the supported shapes.
var Shapes = []Shape{Square, Circle, Rounded}

// Sizes is the list of the available sizes, in pixels.
var Sizes = []int{16, 32, 64, 128, 256, 512, 1024}

const (
	DefaultSize       = 256
	DefaultFormat     = WEBP
	DefaultShape      = Square
	DefaultTextLength = 2

	maxExamples = 10
)

// Raw is the untrusted input of a configuration, indexed by parameter name
// (set, id, size, format, color, text, shape).
type Raw map[string]any

// RawFromValues builds a Raw from query parameters.
func RawFromValues(values url.Values) Raw {
	raw := make(Raw, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

// Options changes how a Config is resolved.
type Options struct {
	// Rand is used to pick the default collection, id and color.
	Rand utils.Rand
	// TextLength is the only accepted length for a non-empty text.
	TextLength int
	// Lenient makes invalid size, color and text fall back to their default
	// instead of failing. The format is always validated.
	Lenient bool
	// DefaultColor is used when no color is given. A random color is picked
	// when it is nil.
	DefaultColor *color.Color
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = utils.DefaultRand
	}
	if o.TextLength <= 0 {
		o.TextLength = DefaultTextLength
	}
	return o
}

// Config is the validated configuration of an avatar. It is immutable.
type Config struct {
	set    Set
	id     string
	size   int
	format Format
	color  color.Color
	text   string
	shape  Shape
}

var upper = cases.Upper(language.Und)

// NewConfig validates the raw input. Fields are resolved in a fixed order:
// the id depends on the collection, the others are independent.
func NewConfig(raw Raw, opts Options) (*Config, error) {
	opts = opts.withDefaults()
	r := opts.Rand

	set, err := setField().resolve(raw["set"], r)
	if err != nil {
		return nil, err
	}
	id, err := idField(set).resolve(raw["id"], r)
	if err != nil {
		return nil, err
	}
	size, err := sizeField(opts.Lenient).resolve(raw["size"], r)
	if err != nil {
		return nil, err
	}
	format, err := formatField().resolve(raw["format"], r)
	if err != nil {
		return nil, err
	}
	c, err := colorField(opts).resolve(raw["color"], r)
	if err != nil {
		return nil, err
	}
	text, err := textField(opts).resolve(raw["text"], r)
	if err != nil {
		return nil, err
	}
	shape, err := shapeField().resolve(raw["shape"], r)
	if err != nil {
		return nil, err
	}

	return &Config{
		set:    set,
		id:     id,
		size:   size,
		format: format,
		color:  *c,
		text:   text,
		shape:  shape,
	}, nil
}

func setField() *field[Set] {
	f := enum("set", "a valid set", Sets, Set.String, func(r utils.Rand) Set {
		return utils.PickOne(r, Sets)
	})
	f.lenient = true
	return f
}

func idField(set Set) *field[string] {
	ids := setIDs[set]
	examples := ids
	if len(examples) > maxExamples {
		examples = examples[:maxExamples]
	}
	return &field[string]{
		name:     "id",
		expected: fmt.Sprintf("a valid id of the %s set", set),
		examples: examples,
		parse: func(s string) (string, bool) {
			return s, set.Has(s)
		},
		fallback: func(r utils.Rand) string {
			return utils.PickOne(r, ids)
		},
		lenient: true,
	}
}

func sizeField(lenient bool) *field[int] {
	f := enum("size", "a valid size", Sizes, strconv.Itoa, func(utils.Rand) int {
		return DefaultSize
	})
	f.numeric = true
	f.lenient = lenient
	return f
}

func formatField() *field[Format] {
	return enum("format", "a valid image format", Formats, func(f Format) string {
		return string(f)
	}, func(utils.Rand) Format {
		return DefaultFormat
	})
}

func shapeField() *field[Shape] {
	return enum("shape", "a valid shape", Shapes, func(s Shape) string {
		return string(s)
	}, func(utils.Rand) Shape {
		return DefaultShape
	})
}

func colorField(opts Options) *field[*color.Color] {
	return &field[*color.Color]{
		name:     "color",
		expected: "a valid CSS color",
		examples: []string{"#3b82f6", "rgb(59 130 246)", "hsl(217, 91%, 60%)", "blue"},
		parse: func(s string) (*color.Color, bool) {
			c, err := color.Parse(s)
			return c, err == nil
		},
		fallback: func(r utils.Rand) *color.Color {
			if opts.DefaultColor != nil {
				c := *opts.DefaultColor
				return &c
			}
			return color.Random(r)
		},
		lenient: opts.Lenient,
	}
}

func textField(opts Options) *field[string] {
	n := opts.TextLength
	return &field[string]{
		name:     "text",
		expected: fmt.Sprintf("a valid text with length %d", n),
		parse: func(s string) (string, bool) {
			// upper-casing can add runes (ß is SS), so count after it
			u := upper.String(strings.Join(strings.Fields(s), ""))
			return u, utf8.RuneCountInString(u) == n
		},
		fallback: func(utils.Rand) string { return "" },
		lenient:  opts.Lenient,
	}
}

// Set returns the collection of the avatar.
func (c *Config) Set() Set { return c.set }

// ID returns the identifier of the image in its collection.
func (c *Config) ID() string { return c.id }

// Size returns the width and height of the avatar, in pixels.
func (c *Config) Size() int { return c.size }

// Format returns the encoding of the image asset.
func (c *Config) Format() Format { return c.format }

// Color returns a copy of the background color used for text avatars.
func (c *Config) Color() *color.Color {
	bg := c.color
	return &bg
}

// Text returns the text of the avatar, empty in image mode.
func (c *Config) Text() string { return c.text }

// Shape returns the outline used for text avatars.
func (c *Config) Shape() Shape { return c.shape }

// Mode returns ModeText when there is a text, ModeImage else.
func (c *Config) Mode() Mode {
	if c.text != "" {
		return ModeText
	}
	return ModeImage
}

// Filename returns the name of the image asset: {id}.{format}
func (c *Config) Filename() string {
	return c.id + "." + string(c.format)
}

// Path returns the canonical path of the image asset in the store:
// {set}/{size}/{id}.{format}
func (c *Config) Path() string {
	return fmt.Sprintf("%s/%d/%s", c.set, c.size, c.Filename())
}

// Key returns an identifier of what will be served for this configuration.
// It can be used as a cache key.
func (c *Config) Key() string {
	if c.Mode() == ModeText {
		return fmt.Sprintf("svg:%d:%s:%s:%s", c.size, c.shape, c.color.String(), url.QueryEscape(c.text))
	}
	return "img:" + c.Path()
}
