package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/educats/cli/internal/errors"
)

func TestConfigInit(t *testing.T) {
	t.Setenv("EDUCATS_CONFIG", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "educats.toml")

	out, err := execute(t, nil, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file created: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[modules]")
	assert.Contains(t, string(data), "npm install --force")

	_, err = execute(t, nil, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))

	_, err = execute(t, nil, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	_, err = execute(t, nil, "config", "vet", "--config", path)
	require.NoError(t, err, "a freshly initialized config is valid")
}

func TestConfigInit_Format(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		args     []string
		want     string
		wantCode int
	}{
		{name: "yaml from extension", file: "educats.yaml", want: "modules:"},
		{name: "yaml from flag", file: "educats.conf", args: []string{"--format", "yml"}, want: "modules:"},
		{name: "toml from flag", file: "educats.yaml", args: []string{"--format", "toml"}, want: "[modules]"},
		{name: "invalid format", file: "educats.toml", args: []string{"--format", "json"}, wantCode: oerrors.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDUCATS_CONFIG", "")
			path := filepath.Join(t.TempDir(), tt.file)

			_, err := execute(t, nil, append([]string{"config", "init", "--config", path}, tt.args...)...)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, oerrors.ExitCodeFromError(err))
				assert.NoFileExists(t, path)
				return
			}
			require.NoError(t, err)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestConfigInit_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.toml")
	t.Setenv("EDUCATS_CONFIG", path)

	_, err := execute(t, nil, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := testWorkspace(t, "", "admin")
		out, err := execute(t, nil, "config", "vet", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid")
		assert.NotContains(t, out, "Warning:")
	})

	t.Run("reports the file it read", func(t *testing.T) {
		t.Setenv("EDUCATS_CONFIG", "")
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, "projects"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(home, "educats.toml"),
			[]byte("[modules]\nroots = [\""+filepath.ToSlash(filepath.Join(home, "projects"))+"\"]\n"), 0o644))

		out, err := execute(t, nil, "config", "vet", "--config", "~/educats.toml")
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid: "+filepath.Join(home, "educats.toml"))
		assert.NotContains(t, out, "~/educats.toml")
	})

	t.Run("missing root warns", func(t *testing.T) {
		t.Setenv("EDUCATS_CONFIG", "")
		path := filepath.Join(t.TempDir(), "educats.toml")
		require.NoError(t, os.WriteFile(path, []byte("[modules]\nroots = [\"./does-not-exist\"]\n"), 0o644))

		out, err := execute(t, nil, "config", "vet", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Warning: module root ./does-not-exist")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("EDUCATS_CONFIG", "")
		_, err := execute(t, nil, "config", "vet", "--config", filepath.Join(t.TempDir(), "educats.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrConfig)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("EDUCATS_CONFIG", "")
		path := filepath.Join(t.TempDir(), "educats.toml")
		require.NoError(t, os.WriteFile(path, []byte("[modules]\ndepth = -1\n"), 0o644))

		_, err := execute(t, nil, "config", "vet", "--config", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrConfig)
		assert.Contains(t, err.Error(), "modules.depth")
		assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
	})
}
