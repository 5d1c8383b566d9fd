// Package config loads process configuration: a JSON config file, with
// environment variables overriding individual fields for deployment
// wrappers (Docker, systemd units).
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"panelfx/internal/colormanager"
	"panelfx/internal/grid"
)

// EngineSection configures the panel grid and tick rate.
type EngineSection struct {
	TargetFPS       int               `json:"targetFPS"`
	Columns         int               `json:"columns"`
	RowsPerColumn   int               `json:"rowsPerColumn"`
	InitialTopology grid.TopologyMode `json:"initialTopology"`
}

// ArtNetSection configures the Art-Net output sink.
type ArtNetSection struct {
	Enabled          bool    `json:"enabled"`
	Host             string  `json:"host"`
	Port             int     `json:"port"`
	Net              int     `json:"net"`
	Subnet           int     `json:"subnet"`
	Universe         int     `json:"universe"`
	StartChannel     int     `json:"startChannel"`
	ChannelsPerPanel int     `json:"channelsPerPanel"`
	RefreshRate      float64 `json:"refreshRate"`
}

// Config is the fully-resolved process configuration.
type Config struct {
	Env  string
	Port string

	Engine  EngineSection                   `json:"engine"`
	Presets []colormanager.RawPresetConfig `json:"presets"`
	ArtNet  ArtNetSection                   `json:"artnet"`

	PresetStorePath string
	SettingsDBPath  string
	CORSOrigin      string
	LogLevel        string
}

// Default returns the built-in configuration, before file/env overrides.
func Default() *Config {
	return &Config{
		Env:  "development",
		Port: "4000",
		Engine: EngineSection{
			TargetFPS:       60,
			Columns:         2,
			RowsPerColumn:   7,
			InitialTopology: grid.TopologyCircular,
		},
		ArtNet: ArtNetSection{
			Enabled:          true,
			Host:             "255.255.255.255",
			Port:             6454,
			Net:              0,
			Subnet:           0,
			Universe:         0,
			StartChannel:     1,
			ChannelsPerPanel: 5,
			RefreshRate:      44,
		},
		PresetStorePath: "./data/presets.json",
		SettingsDBPath:  "./data/settings.db",
		CORSOrigin:      "http://localhost:3000",
		LogLevel:        "info",
	}
}

// Load starts from Default(), applies a JSON config file at path (if it
// exists), then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.PresetStorePath = getEnv("PRESET_STORE_PATH", cfg.PresetStorePath)
	cfg.SettingsDBPath = getEnv("SETTINGS_DB_PATH", cfg.SettingsDBPath)
	cfg.CORSOrigin = getEnv("CORS_ORIGIN", cfg.CORSOrigin)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Engine.TargetFPS = getEnvInt("ENGINE_TARGET_FPS", cfg.Engine.TargetFPS)
	cfg.Engine.Columns = getEnvInt("ENGINE_COLUMNS", cfg.Engine.Columns)
	cfg.Engine.RowsPerColumn = getEnvInt("ENGINE_ROWS_PER_COLUMN", cfg.Engine.RowsPerColumn)
	if mode := os.Getenv("ENGINE_INITIAL_TOPOLOGY"); mode != "" {
		cfg.Engine.InitialTopology = grid.TopologyMode(mode)
	}

	cfg.ArtNet.Enabled = getEnvBool("ARTNET_ENABLED", cfg.ArtNet.Enabled)
	cfg.ArtNet.Host = getEnv("ARTNET_HOST", cfg.ArtNet.Host)
	cfg.ArtNet.Port = getEnvInt("ARTNET_PORT", cfg.ArtNet.Port)
	cfg.ArtNet.Net = getEnvInt("ARTNET_NET", cfg.ArtNet.Net)
	cfg.ArtNet.Subnet = getEnvInt("ARTNET_SUBNET", cfg.ArtNet.Subnet)
	cfg.ArtNet.Universe = getEnvInt("ARTNET_UNIVERSE", cfg.ArtNet.Universe)
	cfg.ArtNet.StartChannel = getEnvInt("ARTNET_START_CHANNEL", cfg.ArtNet.StartChannel)
	cfg.ArtNet.ChannelsPerPanel = getEnvInt("ARTNET_CHANNELS_PER_PANEL", cfg.ArtNet.ChannelsPerPanel)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
