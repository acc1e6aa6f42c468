package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "mapedit.cfg.json"

// EnvPrefix is prepended to environment overrides, e.g. MAPEDIT_LOGLEVEL.
const EnvPrefix = "MAPEDIT"

// EditConfig holds the defaults applied to shapes put on the map
type EditConfig struct {
	ZIndex         float64 `json:"zIndex" mapstructure:"zIndex"`
	MarkersVisible bool    `json:"markersVisible" mapstructure:"markersVisible"`
}

// SQLiteConfig holds sqlite feature store settings. An empty path keeps the
// store in memory.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// DBConfig holds postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects and configures the feature store backend
type StorageConfig struct {
	Enabled bool         `json:"enabled" mapstructure:"enabled"`
	Driver  string       `json:"driver" mapstructure:"driver"`
	SQLite  SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	DB      DBConfig     `json:"db" mapstructure:"-"`
}

// GraylogConfig holds the optional GELF log sink settings
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// LoadDefaults applies defaults and environment overrides without reading a
// file, for runs that have no config directory.
func LoadDefaults() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./mapeditlogs")

	viper.SetDefault("edit.zIndex", 0)
	viper.SetDefault("edit.markersVisible", true)

	viper.SetDefault("storage.enabled", false)
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.sqlite.path", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "mapedit")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// GetEditConfig returns the shape defaults.
func GetEditConfig() EditConfig {
	return EditConfig{
		ZIndex:         viper.GetFloat64("edit.zIndex"),
		MarkersVisible: viper.GetBool("edit.markersVisible"),
	}
}

// GetStorageConfig returns the feature store settings, postgres connection included.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Enabled: viper.GetBool("storage.enabled"),
		Driver:  viper.GetString("storage.driver"),
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
