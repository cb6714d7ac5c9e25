package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateCommandFlags(t *testing.T) {
	connectFlag := validateCmd.Flags().Lookup("connect")
	assert.NotNil(t, connectFlag, "validate command should have a connect flag")
	assert.Equal(t, "false", connectFlag.DefValue)
}

func TestValidateCommandExample(t *testing.T) {
	// Verify the command has example usage documentation
	assert.Contains(t, validateCmd.Long, "Example:")
	assert.Contains(t, validateCmd.Long, "godepend validate")
}

func TestRunValidate(t *testing.T) {
	// Save original value and restore after test
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "godepend.yaml")

	configContent := `
server:
  host: localhost
  port: 3306
  user: reader
  password: secret
  database: shop
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfgFile = configPath

	var buf bytes.Buffer
	validateCmd.SetOut(&buf)

	err := runValidate(validateCmd, []string{})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration is valid")
	assert.Contains(t, buf.String(), "localhost:3306")
}

func TestRunValidate_MissingFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	cfgFile = "/nonexistent/godepend.yaml"

	err := runValidate(validateCmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "godepend.yaml")

	// Missing host and user
	configContent := `
server:
  port: 3306
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfgFile = configPath

	err := runValidate(validateCmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.host")
}
