package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port    int `yaml:"port"`
	Workers int `yaml:"workers"` // pipeline worker pool size
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type UploadConfig struct {
	Dir          string `yaml:"dir"`            // where raw videos are stored
	MaxSizeBytes int64  `yaml:"max_size_bytes"` // reject larger uploads
}

type AIConfig struct {
	OpenAIKey          string        `yaml:"openai_key"`
	GeminiKey          string        `yaml:"gemini_key"`
	ChatModel          string        `yaml:"chat_model"`
	WhisperModel       string        `yaml:"whisper_model"`
	TranscribeTimeout  time.Duration `yaml:"transcribe_timeout"`
	GenerateTimeout    time.Duration `yaml:"generate_timeout"`
	QuestionsPerWindow int           `yaml:"questions_per_window"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Upload   UploadConfig   `yaml:"upload"`
	AI       AIConfig       `yaml:"ai"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.Workers <= 0 {
		cfg.Server.Workers = 4
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = "uploads"
	}
	if cfg.Upload.MaxSizeBytes <= 0 {
		cfg.Upload.MaxSizeBytes = 500 << 20 // 500 MB
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = "gpt-4o-mini"
	}
	if cfg.AI.WhisperModel == "" {
		cfg.AI.WhisperModel = "whisper-1"
	}
	if cfg.AI.TranscribeTimeout <= 0 {
		cfg.AI.TranscribeTimeout = 10 * time.Minute
	}
	if cfg.AI.GenerateTimeout <= 0 {
		cfg.AI.GenerateTimeout = 2 * time.Minute
	}
	if cfg.AI.QuestionsPerWindow <= 0 {
		cfg.AI.QuestionsPerWindow = 3
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if !dev && cfg.AI.OpenAIKey == "" && cfg.AI.GeminiKey == "" {
		return nil, errors.New("ai.openai_key or ai.gemini_key is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
