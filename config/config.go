package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Minio    MinioConfig    `yaml:"minio"`
	Document DocumentConfig `yaml:"document"`
	Rating   RatingConfig   `yaml:"rating"`
	Users    []User         `yaml:"users"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type StoreConfig struct {
	MaxRecords int `yaml:"max_records"` // 0 = unlimited
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// DocumentConfig tunes the generation pipeline. MinPDFBytes is the hard
// integrity floor for a rendered document; MaxImageBytes is the soft
// per-image decoded-size threshold that only produces a warning.
type DocumentConfig struct {
	MinPDFBytes   int `yaml:"min_pdf_bytes"`
	MaxImageBytes int `yaml:"max_image_bytes"`
}

type RatingConfig struct {
	Secret           string `yaml:"secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Store.MaxRecords < 0 {
		cfg.Store.MaxRecords = 0
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Document.MinPDFBytes == 0 {
		cfg.Document.MinPDFBytes = 1000
	}
	if cfg.Document.MaxImageBytes == 0 {
		cfg.Document.MaxImageBytes = 5 * 1024 * 1024
	}
	if cfg.Rating.TokenExpireHours == 0 {
		cfg.Rating.TokenExpireHours = 7 * 24
	}
	if cfg.Rating.Secret == "" {
		cfg.Rating.Secret = cfg.Auth.JWTSecret
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
