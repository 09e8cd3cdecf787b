package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcost/core/currency"
	"eventcost/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, currency.BRL, cfg.Currency)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventcost.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "pricing": {"schedule_file": "tiers.hcl"},
  "output": {"default_format": "json"}
}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tiers.hcl", cfg.Pricing.ScheduleFile)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, currency.BRL, cfg.Currency)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventcost.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
currency:
  symbol: "$"
  symbol_position: prefix
  grouping_separator: ","
  decimal_separator: "."
  places: 2
server:
  addr: ":9090"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, ",", cfg.Currency.GroupingSeparator)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`{not json`), 0644))
	_, err := Load(garbage)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))

	sameSeps := filepath.Join(dir, "seps.json")
	require.NoError(t, os.WriteFile(sameSeps, []byte(`{"currency": {"grouping_separator": ",", "decimal_separator": ","}}`), 0644))
	_, err = Load(sameSeps)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeFormat))

	format := filepath.Join(dir, "format.json")
	require.NoError(t, os.WriteFile(format, []byte(`{"output": {"default_format": "html"}}`), 0644))
	_, err = Load(format)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/eventcost.json", "nested/eventcost.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := Default()
			cfg.Pricing.ScheduleFile = "custom.hcl"
			cfg.Output.ShowReference = true

			require.NoError(t, cfg.Save(path))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}
