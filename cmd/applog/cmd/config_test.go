package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/applog/configs"
	"github.com/Aman-CERP/applog/internal/config"
	"github.com/Aman-CERP/applog/internal/errors"
)

func writeProjectConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(config.ProjectFiles[0], []byte(content), 0o644))
}

func TestConfigInit_CreatesUserConfig(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Created configuration")
	data, err := os.ReadFile(config.GetUserConfigPath())
	require.NoError(t, err)
	assert.Equal(t, configs.ConfigTemplate, string(data))
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "config", "init")
	require.NoError(t, err)

	stdout, _, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")
}

func TestConfigInit_ForceKeepsBackup(t *testing.T) {
	isolate(t)
	path := config.GetUserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	stdout, _, err := execute(t, "config", "init", "--force")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Backup:")

	backups, err := config.ListBackups(path)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestConfigInit_Project(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "config", "init", "--project")

	require.NoError(t, err)
	_, err = os.Stat(config.ProjectFiles[0])
	assert.NoError(t, err)
}

func TestConfigShow_MergedJSON(t *testing.T) {
	isolate(t)
	writeProjectConfig(t, "logging:\n  level: warn\n")

	stdout, _, err := execute(t, "config", "show", "--json")

	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, config.DefaultPackage, cfg.Logging.Package)
}

func TestConfigShow_DefaultsYAML(t *testing.T) {
	isolate(t)
	writeProjectConfig(t, "logging:\n  level: warn\n")

	stdout, _, err := execute(t, "config", "show", "--source", "defaults")

	require.NoError(t, err)
	assert.Contains(t, stdout, "log_name: app.log")
	assert.NotContains(t, stdout, "level: warn")
}

func TestConfigShow_UnknownSource(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "config", "show", "--source", "bogus")

	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}

func TestConfigShow_InvalidProjectConfig(t *testing.T) {
	isolate(t)
	writeProjectConfig(t, "console:\n  color: rainbow\n")

	_, _, err := execute(t, "config", "show")

	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetUserConfigPath(), strings.TrimSpace(stdout))
}
