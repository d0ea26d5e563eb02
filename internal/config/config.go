// Package config manages the server's JSON configuration using koanf/v2,
// following the teacher's layered-provider loader: defaults first, then
// the on-disk file, then environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	jsonparser "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the complete server configuration.
type Config struct {
	IP        string          `koanf:"ip" json:"ip"`
	Port      uint16          `koanf:"port" json:"port"`
	Log       LogConfig       `koanf:"log" json:"log"`
	Lobby     LobbyConfig     `koanf:"lobby" json:"lobby"`
	Generator GeneratorConfig `koanf:"generator" json:"generator"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
}

// LobbyConfig holds lobby-level behavior toggles.
type LobbyConfig struct {
	RecordGames bool `koanf:"recordGames" json:"recordGames"`
}

// NestPosConfig describes where the generator places the nest tile.
type NestPosConfig struct {
	Randomized bool   `koanf:"randomized" json:"randomized"`
	X          uint32 `koanf:"x" json:"x"`
	Y          uint32 `koanf:"y" json:"y"`
}

// GeneratorConfig holds the difficulty-to-dimension mapping used by the
// maze generator.
type GeneratorConfig struct {
	ColumnMin     uint32        `koanf:"columnMin" json:"columnMin"`
	LineMin       uint32        `koanf:"lineMin" json:"lineMin"`
	ColumnCoeff   float64       `koanf:"columnCoeff" json:"columnCoeff"`
	LineCoeff     float64       `koanf:"lineCoeff" json:"lineCoeff"`
	NbFoodMin     uint32        `koanf:"nbFoodMin" json:"nbFoodMin"`
	NbFoodCoeff   float64       `koanf:"nbFoodCoeff" json:"nbFoodCoeff"`
	CarvingAmount uint32        `koanf:"carvingAmount" json:"carvingAmount"`
	NestPos       NestPosConfig `koanf:"nestPos" json:"nestPos"`
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		IP:   "0.0.0.0",
		Port: 8080,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Lobby: LobbyConfig{
			RecordGames: false,
		},
		Generator: GeneratorConfig{
			ColumnMin:     5,
			LineMin:       4,
			ColumnCoeff:   3.0,
			LineCoeff:     3.0,
			NbFoodMin:     1,
			NbFoodCoeff:   0.25,
			CarvingAmount: 2,
			NestPos:       NestPosConfig{Randomized: false, X: 1, Y: 1},
		},
	}
}

// envPrefix is the environment variable prefix for server configuration.
// Variables are named ANTD_<section>_<key>, e.g., ANTD_GENERATOR_COLUMNMIN.
const envPrefix = "ANTD_"

// Load reads configuration from a JSON file at path, overlays environment
// variable overrides (ANTD_ prefix), and merges on top of DefaultConfig().
// A missing file is regenerated with the default configuration before
// loading continues.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeDefault(path); err != nil {
			return nil, fmt.Errorf("regenerate default config at %s: %w", path, err)
		}
	}

	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), jsonparser.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

func writeDefault(path string) error {
	body, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

// envKeyMapper transforms ANTD_GENERATOR_COLUMNMIN -> generator.columnmin.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", ".")
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"ip":                           defaults.IP,
		"port":                         defaults.Port,
		"log.level":                    defaults.Log.Level,
		"log.format":                   defaults.Log.Format,
		"lobby.recordgames":            defaults.Lobby.RecordGames,
		"generator.columnmin":          defaults.Generator.ColumnMin,
		"generator.linemin":            defaults.Generator.LineMin,
		"generator.columncoeff":        defaults.Generator.ColumnCoeff,
		"generator.linecoeff":          defaults.Generator.LineCoeff,
		"generator.nbfoodmin":          defaults.Generator.NbFoodMin,
		"generator.nbfoodcoeff":        defaults.Generator.NbFoodCoeff,
		"generator.carvingamount":      defaults.Generator.CarvingAmount,
		"generator.nestpos.randomized": defaults.Generator.NestPos.Randomized,
		"generator.nestpos.x":          defaults.Generator.NestPos.X,
		"generator.nestpos.y":          defaults.Generator.NestPos.Y,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// Validation errors.
var (
	ErrEmptyIP          = errors.New("ip must not be empty")
	ErrInvalidPort      = errors.New("port must be nonzero")
	ErrInvalidDimension = errors.New("generator columnMin and lineMin must be > 0")
	ErrInvalidCarving   = errors.New("generator carvingAmount must be >= 1")
)

// Validate checks the configuration for logical errors.
func Validate(cfg *Config) error {
	if cfg.IP == "" {
		return ErrEmptyIP
	}
	if cfg.Port == 0 {
		return ErrInvalidPort
	}
	if cfg.Generator.ColumnMin == 0 || cfg.Generator.LineMin == 0 {
		return ErrInvalidDimension
	}
	if cfg.Generator.CarvingAmount < 1 {
		return ErrInvalidCarving
	}
	return nil
}

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
