package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Sim    SimConfig    `mapstructure:"sim"`
	Batch  BatchConfig  `mapstructure:"batch"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port    string        `mapstructure:"port"`
	MapsDir string        `mapstructure:"maps_dir"`
	Timeout time.Duration `mapstructure:"timeout"`
	// DayDelay paces streamed sessions so a watcher can follow them.
	DayDelay time.Duration `mapstructure:"day_delay"`
}

type SimConfig struct {
	Aliens int `mapstructure:"aliens"`
	Days   int `mapstructure:"days"`
	// Seed 0 picks a time based seed per run.
	Seed int64 `mapstructure:"seed"`
}

type BatchConfig struct {
	Runs    int `mapstructure:"runs"`
	Workers int `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.maps_dir", "maps")
	v.SetDefault("server.timeout", 200*time.Millisecond)
	v.SetDefault("server.day_delay", 0)
	v.SetDefault("sim.aliens", 10)
	v.SetDefault("sim.days", 10000)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("batch.runs", 1)
	v.SetDefault("batch.workers", 4)
}

// Load merges defaults, the optional config file at path and INVASION_*
// environment variables. PORT is honoured for the server port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("invasion")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "INVASION_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	return conf, nil
}
