package avatar

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

const (
	svgContentType = "image/svg+xml"
	svgNamespace   = "http://www.w3.org/2000/svg"

	fontFamily        = "sans-serif"
	defaultFontWeight = 400
	baselineRatio     = 0.55
	strokeRatio       = 0.01
	roundedRatio      = 0.25
)

var fontWeights = map[int]int{
	16:   400,
	32:   400,
	64:   500,
	128:  500,
	256:  600,
	512:  600,
	1024: 600,
}

type svgAvatar struct {
	size       int
	text       string
	background string
	foreground string
	shape      Shape
}

// Encode an unclosed XML tag with the provided attributes
func encodeXMLElement(encoder *xml.Encoder, name string, attrs ...xml.Attr) (*xml.StartElement, error) {
	result := &xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := encoder.EncodeToken(*result); err != nil {
		return nil, err
	}
	return result, nil
}

// Encode the opening and closing XML tags for an element, which
// is provided to the `body` callback to add child elements or text
func encodeClosedXMLElement(encoder *xml.Encoder, name string, body func(encoder *xml.Encoder) error, attrs ...xml.Attr) error {
	element, err := encodeXMLElement(encoder, name, attrs...)
	if err != nil {
		return err
	}
	if body != nil {
		if err := body(encoder); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(element.End())
}

func makeCharDataEncoder(text string) func(encoder *xml.Encoder) error {
	return func(encoder *xml.Encoder) error {
		return encoder.EncodeToken(xml.CharData(text))
	}
}

func makeXMLAttr(name, val string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: val}
}

func makeIntXMLAttr(name string, val int) xml.Attr {
	return makeXMLAttr(name, strconv.Itoa(val))
}

func makeFloatXMLAttr(name string, val float64) xml.Attr {
	return makeXMLAttr(name, strconv.FormatFloat(val, 'f', -1, 64))
}

func (a *svgAvatar) fontSize() int {
	k := 1.0
	if utf8.RuneCountInString(a.text) > 1 {
		k = 1.5
	}
	return int(math.Floor(float64(a.size) * 0.5 / k))
}

func (a *svgAvatar) fontWeight() int {
	if w, ok := fontWeights[a.size]; ok {
		return w
	}
	return defaultFontWeight
}

func (a *svgAvatar) strokeWidth() float64 {
	return math.Max(1, float64(a.size)*strokeRatio)
}

// <rect width="100%" height="100%" fill="..." />
// <circle cx="128" cy="128" r="128" fill="..." />
func (a *svgAvatar) encodeBackground(encoder *xml.Encoder) error {
	fill := makeXMLAttr("fill", a.background)
	switch a.shape {
	case Circle:
		half := float64(a.size) / 2
		return encodeClosedXMLElement(encoder, "circle", nil,
			makeFloatXMLAttr("cx", half),
			makeFloatXMLAttr("cy", half),
			makeFloatXMLAttr("r", half),
			fill,
		)
	case Rounded:
		radius := float64(a.size) * roundedRatio
		return encodeClosedXMLElement(encoder, "rect", nil,
			makeXMLAttr("width", "100%"),
			makeXMLAttr("height", "100%"),
			makeFloatXMLAttr("rx", radius),
			makeFloatXMLAttr("ry", radius),
			fill,
		)
	default:
		return encodeClosedXMLElement(encoder, "rect", nil,
			makeXMLAttr("width", "100%"),
			makeXMLAttr("height", "100%"),
			fill,
		)
	}
}

// MarshalXML implements encoding/xml.Marshaler.
//
//	<svg>
//	  <rect...
//	  <text...
func (a *svgAvatar) MarshalXML(encoder *xml.Encoder, _ xml.StartElement) error {
	svgElement, err := encodeXMLElement(encoder, "svg",
		makeXMLAttr("xmlns", svgNamespace),
		makeIntXMLAttr("width", a.size),
		makeIntXMLAttr("height", a.size),
		makeXMLAttr("viewBox", fmt.Sprintf("0 0 %d %d", a.size, a.size)),
		makeXMLAttr("role", "img"),
		makeXMLAttr("aria-label", "Generated avatar"),
	)
	if err != nil {
		return err
	}

	if err := a.encodeBackground(encoder); err != nil {
		return err
	}

	if err := encodeClosedXMLElement(encoder, "text", makeCharDataEncoder(a.text),
		makeXMLAttr("x", "50%"),
		makeFloatXMLAttr("y", float64(a.size)*baselineRatio),
		makeXMLAttr("dominant-baseline", "middle"),
		makeXMLAttr("text-anchor", "middle"),
		makeXMLAttr("font-family", fontFamily),
		makeIntXMLAttr("font-size", a.fontSize()),
		makeIntXMLAttr("font-weight", a.fontWeight()),
		makeXMLAttr("fill", a.foreground),
		makeXMLAttr("stroke", a.foreground),
		makeFloatXMLAttr("stroke-width", a.strokeWidth()),
		makeXMLAttr("paint-order", "stroke"),
	); err != nil {
		return err
	}

	return encoder.EncodeToken(svgElement.End())
}

func (a *svgAvatar) bytes() ([]byte, error) {
	var buf bytes.Buffer
	encoder := xml.NewEncoder(&buf)
	if err := encoder.Encode(a); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSVG returns the markup of a text avatar for the given configuration.
// The output only depends on the size, text, color and shape of the
// configuration.
func BuildSVG(cfg *Config) ([]byte, error) {
	bg := cfg.Color()
	avatar := &svgAvatar{
		size:       cfg.Size(),
		text:       cfg.Text(),
		background: bg.String(),
		foreground: bg.Foreground(),
		shape:      cfg.Shape(),
	}
	svg, err := avatar.bytes()
	if err != nil {
		return nil, &BuildError{cause: err}
	}
	return svg, nil
}
