// Package config loads the game configuration from a yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/decawise/internal/apperrors"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Snapshot codecs
const (
	CodecJSON  = "json"
	CodecProto = "proto"
)

// Winner rules
const (
	WinnerFirst   = "first"   // first player in list order over the target
	WinnerHighest = "highest" // highest score over the target, list order breaks ties
)

const (
	defaultBackend       = BackendFile
	defaultCodec         = CodecJSON
	defaultTimeoutMS     = 2000
	defaultRedisAddr     = "localhost:6379"
	defaultSQLiteFile    = "decawise.db"
	defaultQuestionsPath = "data/questions.json"
	defaultPoints        = 10
	defaultWinnerRule    = WinnerFirst
	defaultSoundDir      = "assets/sounds"
)

var defaultPointChoices = []int{5, 10, 15, 20, 25, 30}

// Config 客户端配置
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	SQLite  SQLiteConfig  `yaml:"sqlite"`
	Game    GameConfig    `yaml:"game"`
	Sound   SoundConfig   `yaml:"sound"`
}

// StorageConfig selects where the saved game and the result history live.
type StorageConfig struct {
	Backend   string `yaml:"backend"`    // file | redis | sqlite | memory
	Path      string `yaml:"path"`       // directory for the file backend
	Codec     string `yaml:"codec"`      // json | proto
	TimeoutMS int    `yaml:"timeout_ms"` // per-operation timeout
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SQLiteConfig SQLite 配置
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// GameConfig 游戏配置
type GameConfig struct {
	QuestionsPath string `yaml:"questions_path"`
	DefaultPoints int    `yaml:"default_points"`
	PointChoices  []int  `yaml:"point_choices"`
	WinnerRule    string `yaml:"winner_rule"`
	Seed          int64  `yaml:"seed"` // 0 seeds from the clock
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Timeout returns the per-operation storage timeout.
func (c *StorageConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{Sound: SoundConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if c.Storage.Codec == "" {
		c.Storage.Codec = defaultCodec
	}
	if c.Storage.TimeoutMS == 0 {
		c.Storage.TimeoutMS = defaultTimeoutMS
	}
	if c.Storage.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Storage.Path = filepath.Join(home, ".decawise")
		} else {
			c.Storage.Path = ".decawise"
		}
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = filepath.Join(c.Storage.Path, defaultSQLiteFile)
	}
	if c.Game.QuestionsPath == "" {
		c.Game.QuestionsPath = defaultQuestionsPath
	}
	if c.Game.DefaultPoints == 0 {
		c.Game.DefaultPoints = defaultPoints
	}
	if len(c.Game.PointChoices) == 0 {
		c.Game.PointChoices = slices.Clone(defaultPointChoices)
	}
	if c.Game.WinnerRule == "" {
		c.Game.WinnerRule = defaultWinnerRule
	}
	if c.Sound.Dir == "" {
		c.Sound.Dir = defaultSoundDir
	}
}

// Validate rejects values the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownBackend, c.Storage.Backend)
	}
	switch c.Storage.Codec {
	case CodecJSON, CodecProto:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownCodec, c.Storage.Codec)
	}
	switch c.Game.WinnerRule {
	case WinnerFirst, WinnerHighest:
	default:
		return fmt.Errorf("%w: winner_rule %q", apperrors.ErrInvalidConfig, c.Game.WinnerRule)
	}
	if c.Storage.TimeoutMS < 0 {
		return fmt.Errorf("%w: timeout_ms must not be negative", apperrors.ErrInvalidConfig)
	}
	for _, p := range c.Game.PointChoices {
		if p <= 0 {
			return fmt.Errorf("%w: point choice %d must be positive", apperrors.ErrInvalidConfig, p)
		}
	}
	if c.Game.DefaultPoints <= 0 {
		return fmt.Errorf("%w: default_points must be positive", apperrors.ErrInvalidConfig)
	}
	return nil
}
