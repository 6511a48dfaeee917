package stack

import (
	"context"
	"testing"

	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	config.UseTestFile(t)

	svc, processes, err := Start(context.Background(), Quiet)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "fs", svc.Store().Kind())
	assert.Equal(t, "memory", svc.Cache().Kind())

	res, err := svc.Resolve(context.Background(), map[string]any{"text": "ab"})
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", res.ContentType)

	assert.NoError(t, processes.Shutdown(context.Background()))
}

func TestStartUnknownStore(t *testing.T) {
	config.UseTestFile(t)
	u := *config.GetConfig().Assets.URL
	u.Scheme = "ftp"
	config.GetConfig().Assets.URL = &u

	_, _, err := Start(context.Background(), Quiet, NoStoreCheck)
	assert.Error(t, err)
}
