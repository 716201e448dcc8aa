package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound   = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing = errors.New("config file is missing version field")
)

// CurrentVersion is the expected version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Vote       Vote       `koanf:"vote"`
	Reputation Reputation `koanf:"reputation"`
	RateLimit  RateLimit  `koanf:"rate_limit"`
	Worker     Worker     `koanf:"worker"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	DBName       string `koanf:"db_name"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	// Connection lifetime limits in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// Vote contains vote weighting and aggregation configuration.
type Vote struct {
	// Weight applied to votes from identified voters.
	RegisteredWeight float64 `koanf:"registered_weight"`
	// Weight applied to votes from anonymous voters.
	AnonymousWeight float64 `koanf:"anonymous_weight"`
	// Per-day decay multiplier applied to vote weights during the
	// nightly sweep, e.g. 0.995 loses about half a percent per day.
	DecayRate float64 `koanf:"decay_rate"`
	// Whether the nightly sweep applies time decay at all.
	TimeDecayEnabled bool `koanf:"time_decay_enabled"`
	// Whether casting a vote with a price records a price snapshot.
	PriceSnapshotEnabled bool `koanf:"price_snapshot_enabled"`
}

// Reputation contains point award configuration.
type Reputation struct {
	BasePoints     int `koanf:"base_points"`
	PriceBonus     int `koanf:"price_bonus"`
	StoreBonus     int `koanf:"store_bonus"`
	GPSBonus       int `koanf:"gps_bonus"`
	NewItemBonus   int `koanf:"new_item_bonus"`
	StreakBonus    int `koanf:"streak_bonus"`
	StreakBonusMin int `koanf:"streak_bonus_min"`
}

// RateLimit contains token bucket settings per action type.
type RateLimit struct {
	VoteCast     Bucket `koanf:"vote_cast"`
	ItemMutation Bucket `koanf:"item_mutation"`
}

// Bucket describes a single token bucket.
type Bucket struct {
	// Maximum tokens the bucket holds.
	Capacity int `koanf:"capacity"`
	// Tokens refilled per period.
	RefillTokens int `koanf:"refill_tokens"`
	// Refill period in milliseconds.
	RefillPeriodMS int `koanf:"refill_period_ms"`
}

// Worker contains worker specific configuration.
type Worker struct {
	// How many items each catalog recompute batch covers.
	RecomputeBatchSize int `koanf:"recompute_batch_size"`
	// Delay between recompute batches in milliseconds.
	RecomputeBatchDelayMS int `koanf:"recompute_batch_delay_ms"`
	// How many outbox jobs a dispatch loop claims per poll.
	DispatchBatchSize int `koanf:"dispatch_batch_size"`
	// Poll interval for the dispatch loop in milliseconds.
	DispatchPollMS int `koanf:"dispatch_poll_ms"`
}

// DefaultConfig returns a config populated with safe defaults. Feature
// flags default to off and decay to disabled so a missing config key never
// changes aggregation results.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Debug:   Debug{LogLevel: "info"},
		PostgreSQL: PostgreSQL{
			Host: "localhost", Port: 5432,
			MaxOpenConns: 8, MaxIdleConns: 8,
			MaxLifetime: 10, MaxIdleTime: 10,
		},
		Redis: Redis{Host: "localhost", Port: 6379},
		Vote: Vote{
			RegisteredWeight: 2,
			AnonymousWeight:  1,
			DecayRate:        0,
			TimeDecayEnabled: false,
		},
		Reputation: Reputation{
			BasePoints:     10,
			PriceBonus:     2,
			StoreBonus:     2,
			GPSBonus:       3,
			NewItemBonus:   15,
			StreakBonus:    5,
			StreakBonusMin: 3,
		},
		RateLimit: RateLimit{
			VoteCast:     Bucket{Capacity: 15, RefillTokens: 10, RefillPeriodMS: 60000},
			ItemMutation: Bucket{Capacity: 5, RefillTokens: 5, RefillPeriodMS: 60000},
		},
		Worker: Worker{
			RecomputeBatchSize:    25,
			RecomputeBatchDelayMS: 1000,
			DispatchBatchSize:     10,
			DispatchPollMS:        500,
		},
	}
}

// LoadConfig loads the configuration from the first config.toml found in the
// search paths. Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configPaths := []string{
		".safebite",
		homeDir + "/.safebite/config",
		"/etc/safebite/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := path + "/config.toml"
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: config.toml", ErrConfigFileNotFound)
	}

	config := DefaultConfig()
	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version == 0 {
		return nil, "", fmt.Errorf("%w: config.toml", ErrConfigVersionMissing)
	}

	return config, usedConfigPath, nil
}
