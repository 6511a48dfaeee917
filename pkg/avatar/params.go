package avatar

import (
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
)

// Params are the query parameters of an avatar request. Empty fields are
// left to their default.
type Params struct {
	Set    string `url:"set,omitempty"`
	ID     string `url:"id,omitempty"`
	Size   string `url:"size,omitempty"`
	Format string `url:"format,omitempty"`
	Color  string `url:"color,omitempty"`
	Text   string `url:"text,omitempty"`
	Shape  string `url:"shape,omitempty"`
}

// Values encodes the parameters as a query string.
func (p Params) Values() (url.Values, error) {
	return query.Values(p)
}

// Raw returns the parameters in the form expected by NewConfig.
func (p Params) Raw() Raw {
	raw := make(Raw)
	for k, v := range map[string]string{
		"set":    p.Set,
		"id":     p.ID,
		"size":   p.Size,
		"format": p.Format,
		"color":  p.Color,
		"text":   p.Text,
		"shape":  p.Shape,
	} {
		if v != "" {
			raw[k] = v
		}
	}
	return raw
}

// Params returns the parameters that designate this configuration
// explicitly, without any default left.
func (c *Config) Params() Params {
	p := Params{
		Set:    string(c.set),
		ID:     c.id,
		Size:   strconv.Itoa(c.size),
		Format: string(c.format),
	}
	if c.Mode() == ModeText {
		p.Color = c.color.String()
		p.Text = c.text
		p.Shape = string(c.shape)
	}
	return p
}
