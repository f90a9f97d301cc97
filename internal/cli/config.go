package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the on-disk configuration, read from config.toml. Command-line
// flags override it.
//
//	solver = "zielonka"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//	solve_timeout = "30s"
//	max_nodes = 100000
type Config struct {
	Solver string       `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the solution cache.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis or none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// StoreConfig selects where solve records go.
type StoreConfig struct {
	Backend    string `toml:"backend"` // file (default), mongo or none
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	SolveTimeout string `toml:"solve_timeout"`
	MaxBody      int64  `toml:"max_body"`
	MaxNodes     int    `toml:"max_nodes"`
	Metrics      *bool  `toml:"metrics"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: backendFile},
		Store:  StoreConfig{Backend: backendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads path on top of the defaults. An empty path falls back to
// configPath(); a missing default file is not an error, a missing explicit
// one is.
func loadConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil, nil
		}
		return cfg, nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, nil, fmt.Errorf("config %s: %w", path, err)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return cfg, unknown, nil
}

func (c *Config) validate() error {
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	c.Store.Backend = strings.ToLower(c.Store.Backend)

	switch c.Cache.Backend {
	case "", backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case "", backendFile, backendNone:
	case backendMongo:
		if c.Store.MongoURI == "" {
			return errors.New("store.mongo_uri is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if _, err := c.Server.timeout(); err != nil {
		return err
	}
	return nil
}

// timeout parses SolveTimeout; zero means the server default.
func (s ServerConfig) timeout() (time.Duration, error) {
	if s.SolveTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.SolveTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.solve_timeout: %w", err)
	}
	return d, nil
}

// metricsEnabled defaults to true.
func (s ServerConfig) metricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// configPath returns $XDG_CONFIG_HOME/gamesolver/config.toml, falling back
// to ~/.config.
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
