package avatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	cfg, err := ParsePath("animals/256/cat.webp")
	require.NoError(t, err)
	assert.Equal(t, Animals, cfg.Set())
	assert.Equal(t, "cat", cfg.ID())
	assert.Equal(t, 256, cfg.Size())
	assert.Equal(t, WEBP, cfg.Format())
	assert.Equal(t, ModeImage, cfg.Mode())
	assert.Equal(t, "animals/256/cat.webp", cfg.Path())

	cfg, err = ParsePath("/rick_morty/1024/671.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "rick_morty/1024/671.jpeg", cfg.Path())

	for _, invalid := range []string{
		"animals/cat.webp",
		"planets/256/earth.webp",
		"animals/100/cat.webp",
		"animals/256/cat.gif",
		"animals/256/cat",
		"animals/256/unicorn.png",
		"rick_morty/256/672.png",
		"animals/256/cat.webp/extra",
	} {
		_, err := ParsePath(invalid)
		assert.Error(t, err, invalid)
	}
}
