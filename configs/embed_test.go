package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigTemplate_IsValidYAML(t *testing.T) {
	require.NotEmpty(t, ConfigTemplate)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(ConfigTemplate), &parsed))

	for _, section := range []string{"logging", "persist", "console"} {
		assert.Contains(t, parsed, section)
	}
}
