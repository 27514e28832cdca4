package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ratel-online/assistant/config"
	"github.com/ratel-online/assistant/consts"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "assistant.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:7860", c.EngineURL)
	require.Equal(t, "http", c.Transport)
	require.Equal(t, "en", c.Language)
	require.True(t, c.Colors)
	require.False(t, c.GuardOutstanding)
	require.Zero(t, c.RequestTimeout())
}

func TestLoadOverridesDefaults(t *testing.T) {
	c, err := config.Load(write(t, `{"transport":"WS","language":"zh","request_timeout_seconds":1.5,"guard_outstanding":true}`))
	require.NoError(t, err)
	require.Equal(t, consts.DefaultEngineURL, c.EngineURL)
	require.Equal(t, "ws", c.Transport)
	require.Equal(t, "zh", c.Language)
	require.Equal(t, 1500*time.Millisecond, c.RequestTimeout())
	require.True(t, c.GuardOutstanding)
}

func TestLoadRejects(t *testing.T) {
	_, err := config.Load(write(t, `{"transport":"grpc"}`))
	require.True(t, errors.Is(err, consts.ErrorsTransportInvalid))

	_, err = config.Load(write(t, `{"request_timeout_seconds":-1}`))
	require.Error(t, err)

	_, err = config.Load(write(t, `{`))
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
