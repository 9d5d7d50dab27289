package qcircuit

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

/*
Config carries the knobs shared by engines, runners and samplers. A Seed of 0
means measurements draw from the runtime-seeded generator; any other value
makes every run reproducible.
*/
type Config struct {
	Seed     uint64
	Shots    int
	Workers  int
	LogLevel string
}

func NewConfig() *Config {
	return &Config{
		Seed:     0,
		Shots:    1024,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

/*
LoadConfig layers an optional config file (any format viper understands) and
QCIRCUIT_* environment variables over the defaults from NewConfig.
*/
func LoadConfig(path string) (*Config, error) {
	def := NewConfig()

	v := viper.New()
	v.SetDefault("seed", def.Seed)
	v.SetDefault("shots", def.Shots)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetEnvPrefix("QCIRCUIT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Seed:     v.GetUint64("seed"),
		Shots:    v.GetInt("shots"),
		Workers:  v.GetInt("workers"),
		LogLevel: v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Shots < 1 {
		return fmt.Errorf("shots must be at least 1, got %d", cfg.Shots)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (cfg *Config) Level() log.Level {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Source returns the measurement source the config asks for.
func (cfg *Config) Source() Source {
	if cfg.Seed == 0 {
		return RuntimeSource{}
	}
	return NewSource(cfg.Seed)
}
