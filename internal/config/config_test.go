package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("Should fall back to defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, "localhost:8080", cfg.HTTPServer.Addr)
		assert.Equal(t, "", cfg.Client.APIBase)
		assert.Equal(t, VariantFlat, cfg.Client.Variant)
		assert.Equal(t, 10, cfg.Client.PageSize)
		assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	})

	t.Run("Should read overrides from the environment", func(t *testing.T) {
		t.Setenv("API_BASE", "http://api.test:9090/")
		t.Setenv("API_VARIANT", VariantResource)
		t.Setenv("PAGE_SIZE", "25")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "http://api.test:9090/", cfg.Client.APIBase)
		assert.Equal(t, VariantResource, cfg.Client.Variant)
		assert.Equal(t, 25, cfg.Client.PageSize)
	})

	t.Run("Should reject an unknown variant", func(t *testing.T) {
		t.Setenv("API_VARIANT", "graphql")

		_, err := Load("")
		assert.ErrorContains(t, err, "unknown api variant")
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: "prod"
storage_path: "data/test.db"
http_server:
  address: "localhost:8082"
client:
  api_base: "http://localhost:8082"
  variant: "resource"
  page_size: 5
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "data/test.db", cfg.StoragePath)
	assert.Equal(t, "localhost:8082", cfg.HTTPServer.Addr)
	assert.Equal(t, VariantResource, cfg.Client.Variant)
	assert.Equal(t, 5, cfg.Client.PageSize)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_BASE=http://from-dotenv:8080\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("API_BASE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:8080", cfg.Client.APIBase)
}

func TestConfigPathFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CONFIG_PATH=local.yaml\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), []byte(`
client:
  variant: "resource"
  page_size: 7
`), 0o600))
	t.Cleanup(func() { os.Unsetenv("CONFIG_PATH") })

	t.Run("Should take CONFIG_PATH from .env over the flag", func(t *testing.T) {
		path, err := resolvePath("ignored.yaml")
		require.NoError(t, err)
		assert.Equal(t, "local.yaml", path)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, VariantResource, cfg.Client.Variant)
		assert.Equal(t, 7, cfg.Client.PageSize)
	})

	t.Run("Should fall back to the flag without CONFIG_PATH", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		require.NoError(t, os.Remove(filepath.Join(dir, ".env")))

		path, err := resolvePath("from-flag.yaml")
		require.NoError(t, err)
		assert.Equal(t, "from-flag.yaml", path)
	})
}

// chdir moves into dir for the duration of the test so that godotenv does
// not pick up a .env file from the package directory.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
