package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, 64, cfg.HashMB)
	require.Equal(t, 0, cfg.SoftTimeMs)
	require.Equal(t, 0, cfg.MaxDepth)
	require.Equal(t, 0, cfg.Contempt)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysSetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meneldor.toml")
	contents := "hash_mb = 256\ncontempt = -15\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 256, cfg.HashMB)
	require.Equal(t, -15, cfg.Contempt)
	require.Equal(t, 0, cfg.MaxDepth, "fields absent from the file keep their default")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("hash_mb = ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
