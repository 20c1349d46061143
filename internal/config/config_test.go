package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zenus/pkg/core"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	for _, k := range []string{"ZENUS_HOST", "ZENUS_PORT", "ZENUS_AUTH", "ZENUS_PATH", "ZENUS_REMOTE", "ZENUS_READ_ONLY", "ZENUS_VERBOSE"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8888", cfg.Addr())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeFile(t, "port: 9000\nauth: secret\npath: /srv/notes\nread_only: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "secret", cfg.Auth)
	assert.Equal(t, "/srv/notes", cfg.Path)
	assert.True(t, cfg.ReadOnly)
}

func TestLoad_DefaultFile(t *testing.T) {
	isolate(t)
	path, err := DefaultFile()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("remote: http://peer:8888\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://peer:8888", cfg.Remote)
}

func TestLoad_EmptyFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	isolate(t)

	_, err := Load(writeFile(t, "prot: 9000\n"))
	assert.ErrorIs(t, err, core.ErrConfig)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "auth: from-file\nport: 9000\n")
	t.Setenv("ZENUS_AUTH", "from-env")
	t.Setenv("ZENUS_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth)
	assert.Equal(t, 9100, cfg.Port)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"ZENUS_PORT":      "eighty",
		"ZENUS_READ_ONLY": "maybe",
		"ZENUS_VERBOSE":   "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnv(func(k string) string {
				if k == key {
					return value
				}
				return ""
			})
			assert.ErrorIs(t, err, core.ErrConfig)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		serving bool
		wantErr bool
	}{
		{name: "Local", cfg: Config{Path: "/notes"}},
		{name: "Remote", cfg: Config{Remote: "http://peer"}},
		{name: "Remote And Path", cfg: Config{Remote: "http://peer", Path: "/notes"}, wantErr: true},
		{name: "Serve Local", cfg: Config{Port: 8888}, serving: true},
		{name: "Serve Remote", cfg: Config{Remote: "http://peer", Port: 8888}, serving: true, wantErr: true},
		{name: "Serve Bad Port", cfg: Config{Port: 70000}, serving: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.serving)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
