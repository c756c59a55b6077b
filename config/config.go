package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angas/elpris-go/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type AppConfigPrice struct {
	Zone string `mapstructure:"zone"` // "SE1", "SE2", "SE3", "SE4"
	// Base URL of the primary provider (elprisetjustnu.se), default: public API
	PrimaryURL string `mapstructure:"primary_url"`
	// Base URL of the secondary provider (Nord Pool data portal), default: public API
	SecondaryURL string `mapstructure:"secondary_url"`
	// Timeout for each HTTP request, default: 10s
	HttpTimeout *time.Duration `mapstructure:"http_timeout"`
}

func (p AppConfigPrice) GetHttpTimeout() time.Duration {
	if p.HttpTimeout == nil {
		return 10 * time.Second
	}
	return *p.HttpTimeout
}

type AppConfigDisplay struct {
	// Timezone for the listed hours, default: Europe/Stockholm
	Timezone *string `mapstructure:"timezone"`
	// "chronological" or "price_descending", default: "chronological"
	Mode string `mapstructure:"mode"`
	// "plain" or a BCP 47 tag like "sv-SE", default: "plain"
	Locale string `mapstructure:"locale"`
	// "sek" (SEK/kWh) or "ore" (öre/kWh), default: "sek"
	Unit string `mapstructure:"unit"`
}

func (d AppConfigDisplay) GetTimezone() string {
	if d.Timezone == nil {
		return "Europe/Stockholm"
	}
	return *d.Timezone
}

type AppConfigCharging struct {
	Hours *int    `mapstructure:"hours"`    // Length of the charging window, 2, 4 or 8
	Power float64 `mapstructure:"power_kw"` // Charger power in kW, used for the estimated cost
}

type AppConfigEnergyPrice struct {
	Tax         float64 `mapstructure:"tax_including_vat"` // Energy tax in SEK/kWh including VAT (energiskatt inkl. moms)
	GridBenefit float64 `mapstructure:"grid_benefit"`      // Grid benefit in SEK/kWh (nätnytta)
}

type AppConfigLogging struct {
	// Min log level for the console: "DEBUG", "INFO", "WARN", "ERROR", default: "WARN"
	ConsoleLevel *string `mapstructure:"console_level"`
	// Path to an SQLite database for log entries, no database logging if empty
	DbPath string `mapstructure:"db_path"`
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	if l.ConsoleLevel == nil {
		return slog.LevelWarn
	}
	return logging.LevelFromString(l.ConsoleLevel)
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat != nil && strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

type AppConfig struct {
	Price       AppConfigPrice       `mapstructure:"price"`
	Display     AppConfigDisplay     `mapstructure:"display"`
	Charging    AppConfigCharging    `mapstructure:"charging"`
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Logging     AppConfigLogging     `mapstructure:"logging"`
}

// FlagKeys maps command line flags to the config keys they override.
var FlagKeys = map[string]string{
	"zone":   "price.zone",
	"sorted": "display.mode",
	"locale": "display.locale",
	"unit":   "display.unit",
}

// Load reads the config file at path, or config/config.yaml if path is
// empty and that file exists. Environment variables (PRICE_ZONE etc.) and
// the given flags override the file.
func Load(path string, flags *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{
		"price.zone", "price.primary_url", "price.secondary_url", "price.http_timeout",
		"display.timezone", "display.mode", "display.locale", "display.unit",
		"charging.hours", "charging.power_kw",
		"energy_price.tax_including_vat", "energy_price.grid_benefit",
		"logging.console_level", "logging.db_path", "logging.db_level",
		"logging.db_attrs_format", "logging.db_max_entries",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if name == "sorted" {
				// --sorted is a switch, the config value is the mode name
				if flag.Value.String() == "true" {
					v.Set(key, "price_descending")
				}
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
