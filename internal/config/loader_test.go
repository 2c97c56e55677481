package config

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const configPath = "/home/user/.config/hostos/config.jsonc"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.True(t, cfg.Host.AtomicWrite)
	assert.Equal(t, FileMode(0o644), cfg.Host.FileMode)
	assert.Equal(t, buffer.PolicyReplace, cfg.Host.Policy())
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_JSONCWithComments(t *testing.T) {
	configJSONC := `{
		// strict text handling for this host
		"host": {
			"invalid_utf8": "reject",
			"atomic_write": false, /* explicit false overrides default */
		},
		"log": {"level": "debug", "format": "json",},
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(configJSONC)},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, buffer.PolicyReject, cfg.Host.Policy())
	assert.False(t, cfg.Host.AtomicWrite)
	assert.Equal(t, FileMode(0o644), cfg.Host.FileMode) // Default
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFrom_MissingFileIsError(t *testing.T) {
	fs := &MockFileSystem{Files: map[string][]byte{}}

	_, err := NewLoaderWithFS(fs).LoadFrom("/etc/hostos.jsonc")

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_FileModeForms(t *testing.T) {
	cases := map[string]FileMode{
		`"0600"`:  0o600,
		`"0o640"`: 0o640,
		`"755"`:   0o755,
		`420`:     0o644,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			fs := &MockFileSystem{
				HomeDir: "/home/user",
				Files:   map[string][]byte{configPath: []byte(`{"host": {"file_mode": ` + raw + `}}`)},
			}

			cfg, err := NewLoaderWithFS(fs).Load()

			require.NoError(t, err)
			assert.Equal(t, want, cfg.Host.FileMode)
		})
	}
}

func TestLoad_FileModeNotOctal(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(`{"host": {"file_mode": "0689"}}`)},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not octal")
}

// --- ERROR TESTS ---

func TestLoad_PermissionError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", ReadFileErr: os.ErrPermission}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_MalformedJSON(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(`{"host": {`)},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_ValidationFailure(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{configPath: []byte(`{"host": {"invalid_utf8": "latin1"}}`)},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "host.invalid_utf8")
}

func TestNewLogger_RespectsLevelAndFormat(t *testing.T) {
	var out bytes.Buffer
	logger := LogConfig{Level: "info", Format: "json"}.NewLogger(&out)

	logger.Debug("hidden")
	logger.Info("shown", "path", "/tmp/x")

	assert.NotContains(t, out.String(), "hidden")
	assert.True(t, strings.HasPrefix(out.String(), "{"), "expected JSON output, got %q", out.String())
	assert.Contains(t, out.String(), `"path":"/tmp/x"`)
}
