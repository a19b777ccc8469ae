package diagnosis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, TieBreakDeclaration, cfg.TieBreak)
	assert.Equal(t, DefaultConnector, cfg.Connector)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, ModeAuto, cfg.Mode)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptomcheck.yaml")
	content := `topK: 5
tieBreak: name-desc
color: never
mode: demo
knowledgeBasePath: kb.yaml
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, TieBreakNameDesc, cfg.TieBreak)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, ModeDemo, cfg.Mode)
	assert.Equal(t, "kb.yaml", cfg.KnowledgeBasePath)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, DefaultConnector, cfg.Connector)
}

func TestLoadConfigColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptomcheck.yml")
	content := `columns:
  symptoms: [signs, complaint]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"signs", "complaint"}, cfg.Columns.Symptoms)
	assert.Nil(t, cfg.Columns.Index)
}

func TestLoadConfigRejectsUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptomcheck.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tieBreak":"alphabetical"}`), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte(`{"topK":`), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/cfg.json", "nested/cfg.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := Config{TopK: 4, TieBreak: TieBreakNameDesc, Color: ColorAlways}
			require.NoError(t, SaveConfig(path, want))
			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))

			got, err := LoadConfig(path)
			require.NoError(t, err)
			want.ApplyDefaults()
			assert.Equal(t, want, got)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := Config{TopK: 2, Log: LogConfig{Level: "info"}}
	clone := cfg.Clone()
	clone.Log.Level = "debug"
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2, clone.TopK)
}
