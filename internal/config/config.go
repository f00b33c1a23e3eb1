package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the tank engine and its
// tournament driver.
type Config struct {
	Engine     EngineConfig     `mapstructure:"engine"`
	Tournament TournamentConfig `mapstructure:"tournament"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// EngineConfig holds engine tunables. The CLIs pass ZeroShellCountdown
// and the Algorithm settings into each match at construction time; an
// in-flight match never re-reads them mid-match (spec.md §5: ticks are
// indivisible). ShootCooldownTicks and BackwardPhaseLength are loaded
// and validated but not read by the engine, which always uses a shoot
// cooldown of 5 and a three-request backward ramp.
type EngineConfig struct {
	ShootCooldownTicks  int `mapstructure:"shoot_cooldown_ticks"`
	BackwardPhaseLength int `mapstructure:"backward_phase_length"`
	ZeroShellCountdown  int `mapstructure:"zero_shell_countdown"`
	Algorithm           ReferenceAlgorithmConfig `mapstructure:"algorithm"`
}

// ReferenceAlgorithmConfig tunes the optional reference hybrid
// algorithm (spec.md §4.10).
type ReferenceAlgorithmConfig struct {
	InfoInterval int     `mapstructure:"info_interval"`
	ThreatRadius float64 `mapstructure:"threat_radius"`
}

// TournamentConfig holds defaults for the comparative/competition CLI
// driver (spec.md §6).
type TournamentConfig struct {
	NumThreads int  `mapstructure:"num_threads"`
	Verbose    bool `mapstructure:"verbose"`
}

// LoggingConfig holds the logging settings. Level sets zerolog's global
// level in both CLIs; Format is loaded but not read — both CLIs always
// write through zerolog.ConsoleWriter.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("engine.shoot_cooldown_ticks", 5)
	v.SetDefault("engine.backward_phase_length", 3)
	v.SetDefault("engine.zero_shell_countdown", 40)
	v.SetDefault("engine.algorithm.info_interval", 4)
	v.SetDefault("engine.algorithm.threat_radius", 3.0)

	v.SetDefault("tournament.num_threads", 4)
	v.SetDefault("tournament.verbose", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration, loading an optional file at
// configPath over the defaults above.
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tanks-game3")
	}

	v.SetEnvPrefix("TANKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// A specific file was requested but is missing; fall back
			// to defaults rather than fail the whole process.
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance, initializing it with
// defaults on first use.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage.
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// WatchConfig enables hot-reloading of config file, for a long-running
// tournament CLI process to pick up new tunables between batches. A
// running engine.Engine never observes these changes mid-match.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Set allows runtime config updates.
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// GetString gets a string value from config.
func GetString(key string) string { return v.GetString(key) }

// GetInt gets an int value from config.
func GetInt(key string) int { return v.GetInt(key) }

// GetBool gets a bool value from config.
func GetBool(key string) bool { return v.GetBool(key) }

// GetFloat64 gets a float64 value from config.
func GetFloat64(key string) float64 { return v.GetFloat64(key) }

// ConfigFilePath returns the path of the loaded config file.
func ConfigFilePath() string { return v.ConfigFileUsed() }

// Validate validates the configuration values (spec.md §7 ConfigError).
func Validate(c *Config) error {
	if c.Engine.ShootCooldownTicks <= 0 {
		return fmt.Errorf("engine.shoot_cooldown_ticks must be positive")
	}
	if c.Engine.BackwardPhaseLength <= 0 {
		return fmt.Errorf("engine.backward_phase_length must be positive")
	}
	if c.Engine.ZeroShellCountdown <= 0 {
		return fmt.Errorf("engine.zero_shell_countdown must be positive")
	}
	if c.Engine.Algorithm.InfoInterval <= 0 {
		return fmt.Errorf("engine.algorithm.info_interval must be positive")
	}
	if c.Engine.Algorithm.ThreatRadius <= 0 {
		return fmt.Errorf("engine.algorithm.threat_radius must be positive")
	}
	if c.Tournament.NumThreads <= 0 {
		return fmt.Errorf("tournament.num_threads must be positive")
	}
	return nil
}
