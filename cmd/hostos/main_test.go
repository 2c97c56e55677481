package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

// writeConfig drops a config file into a temp dir so tests never read the
// user's own configuration.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfg := writeConfig(t, `{ "log": { "level": "error" }, }`)
	var stdout, stderr bytes.Buffer
	err := run(append([]string{"--config", cfg}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_NoCommandPrintsHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(nil, strings.NewReader(""), &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "Commands:")
	assert.Empty(t, stdout.String())
}

func TestRun_UnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "", "frobnicate")

	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestRun_MissingConfigFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", filepath.Join(t.TempDir(), "nope.jsonc"), "env"},
		strings.NewReader(""), &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestRun_InvalidLogLevelOverride(t *testing.T) {
	cfg := writeConfig(t, `{}`)
	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", cfg, "--log-level", "loud", "env"},
		strings.NewReader(""), &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestEnv_SingleVariable(t *testing.T) {
	t.Setenv("HOSTOS_CLI_TEST", "bar")

	stdout, _, err := runCLI(t, "", "env", "HOSTOS_CLI_TEST")

	require.NoError(t, err)
	assert.Equal(t, "bar\n", stdout)
}

func TestEnv_UnsetVariable(t *testing.T) {
	_, _, err := runCLI(t, "", "env", "HOSTOS_CLI_DEFINITELY_UNSET")

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestEnv_Formats(t *testing.T) {
	t.Setenv("HOSTOS_CLI_TEST", "bar")

	t.Run("text", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "env")
		require.NoError(t, err)
		assert.Contains(t, stdout, "HOSTOS_CLI_TEST=bar\n")
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "env", "--output", "json")
		require.NoError(t, err)

		var vars map[string]string
		require.NoError(t, json.Unmarshal([]byte(stdout), &vars))
		assert.Equal(t, "bar", vars["HOSTOS_CLI_TEST"])
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "env", "-o", "yaml")
		require.NoError(t, err)

		var vars map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &vars))
		assert.Equal(t, "bar", vars["HOSTOS_CLI_TEST"])
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := runCLI(t, "", "env", "--output", "xml")
		require.Error(t, err)
		assert.Equal(t, 2, exitCode(err))
	})
}

func TestEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nFOO=\"bar\"\nexport BAZ=qux\n"), 0o644))

	stdout, _, err := runCLI(t, "", "env", "--env-file", path)

	require.NoError(t, err)
	assert.Equal(t, "BAZ=qux\nFOO=bar\n", stdout)
}

func TestWriteThenRead_Stdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	payload := "\x00\x01\xffhello"

	_, _, err := runCLI(t, payload, "write", path)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "read", path)
	require.NoError(t, err)
	assert.Equal(t, payload, stdout)
}

func TestWrite_TextFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	_, _, err := runCLI(t, "ignored", "write", path, "--text", "héllo")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "héllo", string(data))
}

func TestWrite_EmptyTextFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	_, _, err := runCLI(t, "stdin content", "write", path, "--text", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWrite_MissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	_, _, err := runCLI(t, "x", "write", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotFound")
	assert.NoDirExists(t, filepath.Dir(path))
}

func TestRead_TextReplacesInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\xffb"), 0o644))

	stdout, _, err := runCLI(t, "", "read", "--text", path)

	require.NoError(t, err)
	assert.Equal(t, "a�b", stdout)
}

func writeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte("\x7fELF\x00\x00\x01"), 0o644))
	return path
}

func fakeTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return true }
	t.Cleanup(func() { isTerminal = orig })
}

func TestRead_BinaryToTerminalRefused(t *testing.T) {
	fakeTerminal(t)
	path := writeBinary(t)

	stdout, _, err := runCLI(t, "", "read", path)

	var binErr *BinaryFileError
	require.True(t, errors.As(err, &binErr))
	assert.Equal(t, 7, binErr.Size)
	assert.Equal(t, buffer.New([]byte("\x7fELF\x00\x00\x01")).Digest(), binErr.Digest)
	assert.Equal(t, 1, exitCode(err))
	assert.Empty(t, stdout)
}

func TestRead_BinaryToTerminalForced(t *testing.T) {
	fakeTerminal(t)
	path := writeBinary(t)

	stdout, _, err := runCLI(t, "", "read", "--force", path)

	require.NoError(t, err)
	assert.Equal(t, "\x7fELF\x00\x00\x01", stdout)
}

func TestRead_TextToTerminal(t *testing.T) {
	fakeTerminal(t)
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	stdout, _, err := runCLI(t, "", "read", path)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
}

func TestRead_BinaryAsTextRefused(t *testing.T) {
	path := writeBinary(t)

	_, _, err := runCLI(t, "", "read", "--text", path)

	var binErr *BinaryFileError
	require.True(t, errors.As(err, &binErr))
}

func TestRead_BinarySampleSizeFromConfig(t *testing.T) {
	fakeTerminal(t)
	path := filepath.Join(t.TempDir(), "late-null.bin")
	require.NoError(t, os.WriteFile(path, []byte("abcd\x00"), 0o644))
	cfg := writeConfig(t, `{"host": {"binary_sample_size": 4}, "log": {"level": "error"}}`)
	var stdout, stderr bytes.Buffer

	err := run([]string{"--config", cfg, "read", path}, strings.NewReader(""), &stdout, &stderr)

	require.NoError(t, err, "a null byte past the sample must not count")
	assert.Equal(t, "abcd\x00", stdout.String())
}

func TestRead_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "read", filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "NotFound")
}

func TestRead_WrongArgumentCount(t *testing.T) {
	_, _, err := runCLI(t, "", "read")

	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.bin")
	content := []byte("digest me")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	stdout, _, err := runCLI(t, "", "digest", path)

	require.NoError(t, err)
	want := buffer.New(content).Digest()
	assert.Equal(t, want+"  9  "+path+"\n", stdout)
}
