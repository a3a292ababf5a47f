package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the command-line tools and the server.
// Empty resource paths select the embedded resources.
type Config struct {
	Dictionary Dictionary `yaml:"dictionary"`
	HMM        HMM        `yaml:"hmm"`
	Keywords   Keywords   `yaml:"keywords"`
	Server     Server     `yaml:"server"`
}

type Dictionary struct {
	Base  string   `yaml:"base"`
	Extra []string `yaml:"extra"`
}

type HMM struct {
	Model     string `yaml:"model"`
	CacheSize int    `yaml:"cache_size"`
}

type Keywords struct {
	IDF       string `yaml:"idf"`
	StopWords string `yaml:"stop_words"`
	TopK      int    `yaml:"top_k"`
}

type Server struct {
	Addr      string `yaml:"addr"`
	Store     string `yaml:"store"`
	AccessLog string `yaml:"access_log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		HMM:      HMM{CacheSize: 4096},
		Keywords: Keywords{TopK: 20},
		Server:   Server{Addr: ":8080", Store: "data/userdict"},
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.HMM.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("hmm.cache_size must not be negative, got %d", c.HMM.CacheSize))
	}
	if c.Keywords.TopK < 0 {
		errs = append(errs, fmt.Errorf("keywords.top_k must not be negative, got %d", c.Keywords.TopK))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
