package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from
// config.yml, then fills in defaults for anything left unset.
func LoadAppConfig() error {
	paths := []string{"config.yml", "/etc/nexttrain/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	ApplyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// ApplyDefaults fills in the zero-valued fields of cfg.
func ApplyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Line.ServiceCode == "" {
		cfg.Line.ServiceCode = "CASCAIS"
	}
	if cfg.Line.Timezone == "" {
		cfg.Line.Timezone = "Europe/Lisbon"
	}
	if cfg.Line.PerStationTransitMinutes == 0 {
		cfg.Line.PerStationTransitMinutes = 2
	}
	if cfg.LiveFeed.Source == "" {
		cfg.LiveFeed.Source = "vehicles"
	}
	if cfg.LiveFeed.TimeoutMS == 0 {
		cfg.LiveFeed.TimeoutMS = 5000
	}
	if cfg.TravelAPI.BaseURL == "" {
		cfg.TravelAPI.BaseURL = "https://api-gateway.cp.pt"
	}
	if cfg.TravelAPI.TimeoutMS == 0 {
		cfg.TravelAPI.TimeoutMS = 8000
	}
	if cfg.Engine.DirectPageSize == 0 {
		cfg.Engine.DirectPageSize = 10
	}
	if cfg.Engine.BoardPageSize == 0 {
		cfg.Engine.BoardPageSize = 4
	}
	if cfg.Engine.FreezeThresholdMinutes == 0 {
		cfg.Engine.FreezeThresholdMinutes = 3
	}
	if cfg.Engine.MatchWindowMinutes == 0 {
		cfg.Engine.MatchWindowMinutes = 30
	}
}

// Default returns a configuration populated entirely from defaults,
// for callers that run without a config.yml (tests, the probe command).
func Default() AppConfig {
	var cfg AppConfig
	ApplyDefaults(&cfg)
	return cfg
}
