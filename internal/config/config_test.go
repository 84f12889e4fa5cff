package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.Equal(t, ModeBytes, cfg.Keys.Mode)
	require.Equal(t, "/", cfg.Keys.Separator)
	require.Equal(t, 1024, cfg.Cache.Size)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ptrie.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keys:
  file: words.txt
  mode: segments
  separator: "."
cache:
  size: 8
`), 0o600))

	t.Setenv("PTRIE_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("cache-size", 1024, "")
	require.NoError(t, flags.Parse([]string{"--cache-size=32"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	require.Equal(t, "words.txt", cfg.Keys.File)
	require.Equal(t, ModeSegments, cfg.Keys.Mode)
	require.Equal(t, ".", cfg.Keys.Separator)
	require.Equal(t, 32, cfg.Cache.Size)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Keys: KeysConfig{Mode: "words"}}
	require.Error(t, cfg.Validate())

	cfg = Config{Keys: KeysConfig{Mode: ModeSegments}}
	require.Error(t, cfg.Validate())

	cfg = Config{Keys: KeysConfig{Mode: ModeRunes}, Cache: CacheConfig{Size: -1}}
	require.Error(t, cfg.Validate())

	cfg = Config{Keys: KeysConfig{Mode: ModeRunes}}
	require.NoError(t, cfg.Validate())
}
