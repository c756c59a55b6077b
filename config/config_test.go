package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/angas/elpris-go/logging"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
price:
  zone: SE4
  http_timeout: 3s
display:
  timezone: UTC
  locale: sv-SE
  unit: ore
charging:
  hours: 4
  power_kw: 11
energy_price:
  tax_including_vat: 0.439
  grid_benefit: 0.05
logging:
  console_level: debug
  db_path: /tmp/elpris.db
  db_attrs_format: text
  db_max_entries: 500
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	c, err := Load(writeConfig(t, testConfig), nil)
	require.NoError(t, err)

	t.Run("price", func(t *testing.T) {
		assert.Equal(t, "SE4", c.Price.Zone)
		assert.Equal(t, 3*time.Second, c.Price.GetHttpTimeout())
	})

	t.Run("display", func(t *testing.T) {
		assert.Equal(t, "UTC", c.Display.GetTimezone())
		assert.Equal(t, "sv-SE", c.Display.Locale)
		assert.Equal(t, "ore", c.Display.Unit)
	})

	t.Run("charging", func(t *testing.T) {
		require.NotNil(t, c.Charging.Hours)
		assert.Equal(t, 4, *c.Charging.Hours)
		assert.Equal(t, 11.0, c.Charging.Power)
		assert.Equal(t, 0.439, c.EnergyPrice.Tax)
		assert.Equal(t, 0.05, c.EnergyPrice.GridBenefit)
	})

	t.Run("logging", func(t *testing.T) {
		assert.Equal(t, slog.LevelDebug, c.Logging.GetConsoleLevel())
		assert.Equal(t, slog.LevelInfo, c.Logging.GetDbLevel())
		assert.Equal(t, "/tmp/elpris.db", c.Logging.DbPath)
		assert.Equal(t, logging.LogAttrFormatText, c.Logging.GetDbAttrsFormat())
		assert.Equal(t, 500, c.Logging.GetDbMaxEntries())
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "price:\n  zone: SE3\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, c.Price.GetHttpTimeout())
	assert.Equal(t, "Europe/Stockholm", c.Display.GetTimezone())
	assert.Nil(t, c.Charging.Hours)
	assert.Equal(t, slog.LevelWarn, c.Logging.GetConsoleLevel())
	assert.Equal(t, logging.LogAttrFormatJSON, c.Logging.GetDbAttrsFormat())
	assert.Equal(t, 10000, c.Logging.GetDbMaxEntries())
	assert.Empty(t, c.Logging.DbPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PRICE_ZONE", "SE1")
	t.Setenv("CHARGING_HOURS", "8")

	c, err := Load(writeConfig(t, testConfig), nil)
	require.NoError(t, err)
	assert.Equal(t, "SE1", c.Price.Zone)
	require.NotNil(t, c.Charging.Hours)
	assert.Equal(t, 8, *c.Charging.Hours)
}

func TestLoadConfigFlagOverride(t *testing.T) {
	t.Setenv("PRICE_ZONE", "SE1")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("zone", "", "")
	flags.Bool("sorted", false, "")
	flags.String("locale", "plain", "")
	flags.String("unit", "sek", "")
	require.NoError(t, flags.Parse([]string{"--zone", "SE2", "--sorted"}))

	c, err := Load(writeConfig(t, testConfig), flags)
	require.NoError(t, err)
	assert.Equal(t, "SE2", c.Price.Zone)
	assert.Equal(t, "price_descending", c.Display.Mode)
	// Flags that were not given do not override the file
	assert.Equal(t, "sv-SE", c.Display.Locale)
	assert.Equal(t, "ore", c.Display.Unit)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfigNoDefaultFile(t *testing.T) {
	// No config/config.yaml relative to the package directory is fine
	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, c.Price.Zone)
}
