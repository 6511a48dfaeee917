package avatar

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Rect    *struct {
		Fill string `xml:"fill,attr"`
		Rx   string `xml:"rx,attr"`
	} `xml:"rect"`
	Circle *struct {
		R    string `xml:"r,attr"`
		Fill string `xml:"fill,attr"`
	} `xml:"circle"`
	Text struct {
		Y           string `xml:"y,attr"`
		FontSize    string `xml:"font-size,attr"`
		FontWeight  string `xml:"font-weight,attr"`
		Fill        string `xml:"fill,attr"`
		Stroke      string `xml:"stroke,attr"`
		StrokeWidth string `xml:"stroke-width,attr"`
		PaintOrder  string `xml:"paint-order,attr"`
		Content     string `xml:",chardata"`
	} `xml:"text"`
}

func buildDoc(t *testing.T, raw Raw, opts Options) (string, svgDoc) {
	t.Helper()
	cfg, err := NewConfig(raw, opts)
	require.NoError(t, err)
	svg, err := BuildSVG(cfg)
	require.NoError(t, err)
	var doc svgDoc
	require.NoError(t, xml.Unmarshal(svg, &doc))
	return string(svg), doc
}

func TestBuildSVG(t *testing.T) {
	svg, doc := buildDoc(t, Raw{"text": "AB", "color": "#3b82f6"}, strict())

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256" viewBox="0 0 256 256" role="img" aria-label="Generated avatar">`))
	assert.Equal(t, "256", doc.Width)
	require.NotNil(t, doc.Rect)
	assert.Equal(t, "#3b82f6", doc.Rect.Fill)
	assert.Nil(t, doc.Circle)

	assert.Equal(t, "AB", doc.Text.Content)
	assert.Equal(t, "140.8", doc.Text.Y)
	assert.Equal(t, "85", doc.Text.FontSize)
	assert.Equal(t, "600", doc.Text.FontWeight)
	assert.Equal(t, "2.56", doc.Text.StrokeWidth)
	assert.Equal(t, "stroke", doc.Text.PaintOrder)
	assert.Equal(t, doc.Text.Fill, doc.Text.Stroke)
	assert.NotEqual(t, doc.Rect.Fill, doc.Text.Fill)
}

func TestBuildSVGSizes(t *testing.T) {
	tests := []struct {
		size, fontSize, weight, y, stroke string
	}{
		{"16", "5", "400", "8.8", "1"},
		{"32", "10", "400", "17.6", "1"},
		{"64", "21", "500", "35.2", "1"},
		{"128", "42", "500", "70.4", "1.28"},
		{"512", "170", "600", "281.6", "5.12"},
		{"1024", "341", "600", "563.2", "10.24"},
	}
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			_, doc := buildDoc(t, Raw{"text": "AB", "size": tt.size}, strict())
			assert.Equal(t, tt.fontSize, doc.Text.FontSize)
			assert.Equal(t, tt.weight, doc.Text.FontWeight)
			assert.Equal(t, tt.y, doc.Text.Y)
			assert.Equal(t, tt.stroke, doc.Text.StrokeWidth)
		})
	}
}

func TestBuildSVGSingleRune(t *testing.T) {
	_, doc := buildDoc(t, Raw{"text": "z"}, Options{Rand: fixedRand(0), TextLength: 1})
	assert.Equal(t, "Z", doc.Text.Content)
	assert.Equal(t, "128", doc.Text.FontSize)
}

func TestBuildSVGShapes(t *testing.T) {
	_, doc := buildDoc(t, Raw{"text": "AB", "shape": "circle", "color": "red"}, strict())
	assert.Nil(t, doc.Rect)
	require.NotNil(t, doc.Circle)
	assert.Equal(t, "128", doc.Circle.R)
	assert.Equal(t, "#ff0000", doc.Circle.Fill)

	_, doc = buildDoc(t, Raw{"text": "AB", "shape": "rounded"}, strict())
	require.NotNil(t, doc.Rect)
	assert.Equal(t, "64", doc.Rect.Rx)
}

func TestBuildSVGEscape(t *testing.T) {
	svg, doc := buildDoc(t, Raw{"text": `<&`}, strict())
	assert.Contains(t, svg, "&lt;&amp;")
	assert.NotContains(t, svg, "<&")
	assert.Equal(t, "<&", doc.Text.Content)

	svg, doc = buildDoc(t, Raw{"text": `"'`}, strict())
	assert.Contains(t, svg, "&#34;&#39;")
	assert.Equal(t, `"'`, doc.Text.Content)
}

func TestBuildSVGDeterministic(t *testing.T) {
	cfg, err := NewConfig(Raw{"text": "xy", "color": "hsla(120, 50%, 50%, 0.5)", "shape": "rounded"}, strict())
	require.NoError(t, err)
	first, err := BuildSVG(cfg)
	require.NoError(t, err)
	second, err := BuildSVG(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), `fill="hsla(120, 50%, 50%, 0.5)"`)
}
