package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cozy/exavatar/pkg/assets"
	"github.com/cozy/exavatar/pkg/avatar"
	build "github.com/cozy/exavatar/pkg/config"
	"github.com/cozy/exavatar/pkg/initials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagAvatar = avatar.Params{}
	flagOutput = ""
	flagBaseURL = ""
	flagCanonical = false
	flagName = ""
	flagConcurrency = assets.DefaultConcurrency
	flagSkipDecode = false

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(append(args, "--assets-url", "mem://", "--log-level", "error"))
	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, build.Summary()+"\n", out)
}

func TestURL(t *testing.T) {
	out, err := run(t, "url", "--text", "ab", "--color", "red", "--base-url", "https://avatars.example.net/")
	require.NoError(t, err)
	assert.Equal(t, "https://avatars.example.net/api/avatar?color=red&text=ab\n", out)

	out, err = run(t, "url")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/avatar\n", out)

	out, err = run(t, "url", "--canonical", "--set", "animals", "--id", "cat", "--size", "64")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/avatar?format=webp&id=cat&set=animals&size=64\n", out)

	_, err = run(t, "url", "--canonical", "--format", "bmp")
	assert.True(t, avatar.IsValidationError(err))
}

func TestURLWithName(t *testing.T) {
	color := url.QueryEscape(initials.Color("Alice Martin"))
	out, err := run(t, "url", "--name", "Alice Martin")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/avatar?color="+color+"&text=AM\n", out)

	out, err = run(t, "url", "--name", "Alice Martin", "--text", "zz", "--color", "red")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/avatar?color=red&text=zz\n", out)

	_, err = run(t, "url", "--name", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no initials")
}

func TestGenerate(t *testing.T) {
	output := filepath.Join(t.TempDir(), "ab.svg")
	_, err := run(t, "generate", "--text", "ab", "--shape", "circle", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, string(data), ">AB</text>")
	assert.Contains(t, string(data), "<circle")

	out, err := run(t, "generate", "--text", "xy", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, ">XY</text>")

	_, err = run(t, "generate", "--set", "animals", "--id", "cat", "--output", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image for id=cat&set=animals in the fs store")
}

func TestOutputName(t *testing.T) {
	cfg, err := avatar.ParsePath("animals/64/cat.png")
	require.NoError(t, err)
	assert.Equal(t, "animals-64-cat.png", outputName(cfg))
}

func writePNG(t *testing.T, name string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, size, size))))
}

func TestAssetsCheck(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "animals", "32", "cat.png"), 32)
	writePNG(t, filepath.Join(dir, "rick_morty", "16", "1.png"), 16)

	out, err := run(t, "assets", "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 files")
	assert.Contains(t, out, "no problem")

	writePNG(t, filepath.Join(dir, "animals", "64", "dog.png"), 32)
	out, err = run(t, "assets", "check", dir, "--concurrency", "1")
	require.Error(t, err)
	assert.Contains(t, out, "animals/64/dog.png: image is 32x32, expected 64x64")
	assert.Contains(t, out, "1 problem")

	out, err = run(t, "assets", "check", dir, "--skip-decode")
	require.NoError(t, err)
	assert.Contains(t, out, "3 files")

	_, err = run(t, "assets", "check", filepath.Join(dir, "animals", "32", "cat.png"))
	assert.Error(t, err)
}

func TestConfigPrint(t *testing.T) {
	out, err := run(t, "config", "print")
	require.NoError(t, err)

	var printed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &printed))
	assert.Equal(t, "development", printed["environment"])
	assets := printed["assets"].(map[string]interface{})
	assert.Equal(t, "mem:", assets["url"])
	cache := printed["cache"].(map[string]interface{})
	assert.Equal(t, "memory", cache["backend"])
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "exavatar")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}
