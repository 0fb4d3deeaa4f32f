package classifier

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeTempBundle(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadModelWeights_YAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultModelWeights())
	require.NoError(t, err)
	path := writeTempBundle(t, "model.yaml", data)

	loaded, err := LoadModelWeights(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultModelWeights(), loaded)
}

func TestLoadModelWeights_JSON(t *testing.T) {
	data, err := json.Marshal(DefaultModelWeights())
	require.NoError(t, err)
	path := writeTempBundle(t, "model.json", data)

	loaded, err := LoadModelWeights(path)
	require.NoError(t, err)
	assert.Equal(t, "qrguard-ensemble-v1", loaded.Version)
	require.NoError(t, loaded.Validate())
}

func TestLoadModelWeights_LegacyJSONUpgraded(t *testing.T) {
	legacy := `{
  "weights": [0.8, 0.5, 0.3, 1.5, -1.5, 2.0, 1.0, 0.5, 0.5, 2.0, 0.5, 1.0, 1.0, 1.5, 2.0],
  "bias": -3.0
}`
	path := writeTempBundle(t, "model.json", []byte(legacy))

	loaded, err := LoadModelWeights(path)
	require.NoError(t, err)

	assert.Equal(t, "legacy-logistic", loaded.Version)
	assert.Equal(t, -3.0, loaded.Logistic.Bias)
	require.Len(t, loaded.Logistic.Weights, 15)
	// Legacy bundles inherit the default stump set.
	assert.NotEmpty(t, loaded.Stumps)
	assert.NotEmpty(t, loaded.Overrides)
}

func TestLoadModelWeights_LegacyWrongLengthRejected(t *testing.T) {
	path := writeTempBundle(t, "model.json", []byte(`{"weights": [0.1, 0.2], "bias": 0}`))

	_, err := LoadModelWeights(path)
	assert.Error(t, err)
}

func TestLoadModelWeights_Malformed(t *testing.T) {
	t.Run("Unreadable path", func(t *testing.T) {
		_, err := LoadModelWeights(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		path := writeTempBundle(t, "model.yaml", []byte("version: [broken"))
		_, err := LoadModelWeights(path)
		assert.Error(t, err)
	})

	t.Run("Valid YAML failing validation", func(t *testing.T) {
		broken := DefaultModelWeights()
		broken.Blend.Stumps = 0.0
		data, err := yaml.Marshal(broken)
		require.NoError(t, err)
		path := writeTempBundle(t, "model.yaml", data)

		_, err = LoadModelWeights(path)
		assert.Error(t, err)
	})
}
