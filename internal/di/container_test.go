package di

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mikey/mailsift/internal/config"
	"github.com/mikey/mailsift/internal/pipeline"
)

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestBuildContainerProvidesCoreDependencies(t *testing.T) {
	isolate(t)

	container, err := BuildContainer(Options{})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config, logger *zap.Logger, newService pipeline.ServiceFactory) {
		assert.NotNil(t, cfg)
		assert.NotNil(t, logger)
		require.NotNil(t, newService)

		svc, err := newService("test-key")
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
	require.NoError(t, err)
}

func TestBuildContainerLoggerFollowsConfig(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("config.yaml", []byte("logging:\n  level: debug\n"), 0600))

	container, err := BuildContainer(Options{ConfigFile: "config.yaml"})
	require.NoError(t, err)

	err = container.Invoke(func(logger *zap.Logger) {
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
	require.NoError(t, err)

	// Flags take precedence over the configuration file.
	container, err = BuildContainer(Options{ConfigFile: "config.yaml", JSONLog: true})
	require.NoError(t, err)

	err = container.Invoke(func(logger *zap.Logger) {
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
	require.NoError(t, err)
}

func TestBuildContainerWithConfigFile(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile("config.yaml", []byte("api_key: from-file\n"), 0600))

	container, err := BuildContainer(Options{ConfigFile: "config.yaml"})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config) {
		key, err := cfg.ResolveAPIKey("")
		require.NoError(t, err)
		assert.Equal(t, "from-file", key)
	})
	require.NoError(t, err)
}
