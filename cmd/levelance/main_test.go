package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/levelance/internal/config"
	"github.com/aretw0/levelance/internal/logging"
	"github.com/aretw0/levelance/pkg/domain"
)

// execute runs the CLI in an empty working directory so no stray
// levelance.yaml is picked up.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Delimited", []string{"LPSAAA.BBBLP"}, "3.0\n"},
		{"Empty body", []string{"LPSLP"}, "\n"},
		{"Markers only", []string{"LPS...LP"}, "...\n"},
		{"Quote", []string{"--quote", "LPS.AAA..LP"}, "\".3..\"\n"},
		{"Strict", []string{"--strict", "LPSJJJBBBLP"}, "30\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"--no-color"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDecodeCommand_Errors(t *testing.T) {
	t.Run("Decode failure", func(t *testing.T) {
		out, _, err := execute(t, "LPXAAALP")
		assert.ErrorIs(t, err, domain.ErrBadEnvelope)
		assert.Empty(t, out)
	})

	t.Run("Strict rejects delimiters", func(t *testing.T) {
		_, _, err := execute(t, "--strict", "LPSAAA.BBBLP")
		assert.ErrorIs(t, err, domain.ErrBadGroupLength)
	})

	t.Run("Missing input", func(t *testing.T) {
		_, _, err := execute(t)
		assert.Error(t, err)
	})

	t.Run("Explicit config must exist", func(t *testing.T) {
		_, _, err := execute(t, "--config", "missing.yaml", "LPSAAALP")
		assert.ErrorContains(t, err, "failed to read config")
	})
}

func TestDecodeCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "levelance.toml")
	require.NoError(t, os.WriteFile(path, []byte("strict = true\nno_color = true\n"), 0o644))

	out, _, err := execute(t, "--config", path, "LPSAAABBBLP")
	require.NoError(t, err)
	assert.Equal(t, "30\n", out)

	// Flags win over the file.
	_, _, err = execute(t, "--config", path, "--strict=false", "LPSAAA.BBBLP")
	assert.NoError(t, err)
}

func TestExplainCommand(t *testing.T) {
	out, _, err := execute(t, "explain", "LPSAAA.BBBLP")
	require.NoError(t, err)
	assert.Contains(t, out, "AAA")
	assert.Contains(t, out, "BBB")
	assert.Contains(t, out, "3.0")

	_, _, err = execute(t, "explain", "LPSAALP")
	assert.ErrorIs(t, err, domain.ErrBadGroupLength)
}

func TestCheckCommand(t *testing.T) {
	out, _, err := execute(t, "--no-color", "check", "LPSAAALP", "LPSAALP", "LPXAAALP")
	assert.ErrorContains(t, err, "2 of 3 inputs failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "✓ LPSAAALP"))
	assert.True(t, strings.HasPrefix(lines[1], "✗ LPSAALP"))
	assert.True(t, strings.HasPrefix(lines[2], "✗ LPXAAALP"))

	_, _, err = execute(t, "check", "LPSAAALP", "LPS.LP")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "levelance version "))
}

func TestMCPCommand_UnknownTransport(t *testing.T) {
	_, _, err := execute(t, "mcp", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestServeHandler(t *testing.T) {
	a := &app{
		cfg:     config.Default(),
		strict:  true,
		logger:  logging.NewNop(),
		closeFn: func() error { return nil },
	}

	handler, err := newServeHandler(a)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	t.Run("Default mode follows config", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/decode/LPSAAABBBLP")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "30", body["output"])
	})

	t.Run("Other mode is served", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/decode/LPSAAA.BBBLP?mode=delimited")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Metrics are exposed", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
