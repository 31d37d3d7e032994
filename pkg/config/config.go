// Package config loads hubrank's TOML configuration file.
//
// The file is optional. It is located in this order:
//
//  1. the --config flag
//  2. $HUBRANK_CONFIG
//  3. $XDG_CONFIG_HOME/hubrank/config.toml (~/.config/hubrank/config.toml)
//
// An explicitly named file must exist; a missing default file yields
// [Default]. Command-line flags override file values.
//
// Example:
//
//	[data]
//	airports = "data/airports.csv"
//	routes   = "data/routes.csv"
//
//	[data.columns.airports]
//	key = "ICAO"
//
//	[graph]
//	mode   = "undirected"
//	dedupe = "unique"
//
//	[rank]
//	top = 25
//
//	[cache]
//	backend   = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend   = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hubrank/pkg/dataset"
	"github.com/matzehuels/hubrank/pkg/errors"
	"github.com/matzehuels/hubrank/pkg/pipeline"
)

// AppName is used for config and cache directory names.
const AppName = "hubrank"

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "HUBRANK_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the full configuration file.
type Config struct {
	Data   Data   `toml:"data"`
	Graph  Graph  `toml:"graph"`
	Rank   Rank   `toml:"rank"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
}

// Data locates the input relations.
type Data struct {
	Airports    string          `toml:"airports"`
	Routes      string          `toml:"routes"`
	SkipInvalid bool            `toml:"skip_invalid"`
	Columns     dataset.Columns `toml:"columns"`
}

// Graph selects the graph construction.
type Graph struct {
	Mode   string `toml:"mode"`
	Dedupe string `toml:"dedupe"`
}

// Rank configures ranking output.
type Rank struct {
	Top int `toml:"top"`
}

// Cache selects the result cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisURL  string `toml:"redis_url"`
	Namespace string `toml:"namespace"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Store selects where reports are saved.
type Store struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Data: Data{
			Airports: "airports.csv",
			Routes:   "routes.csv",
			Columns:  dataset.DefaultColumns(),
		},
		Graph: Graph{
			Mode:   pipeline.DefaultMode,
			Dedupe: pipeline.DefaultDedupe,
		},
		Rank: Rank{Top: pipeline.DefaultTop},
		Cache: Cache{
			Backend:   CacheFile,
			Namespace: AppName + ":",
		},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: Store{Backend: StoreMemory},
	}
}

// Load reads the config file chosen by explicit, $HUBRANK_CONFIG or the
// default location, layered over Default. It returns the path actually
// read, or "" when no file was used.
func Load(explicit string) (*Config, string, error) {
	path, required := explicit, true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		dir, err := ConfigDir()
		if err != nil {
			return Default(), "", nil
		}
		path, required = filepath.Join(dir, "config.toml"), false
	}

	cfg, err := LoadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) && !required {
		return Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// LoadFile decodes the file at path over Default and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated values and URLs.
func (c *Config) Validate() error {
	if err := pipeline.ValidateMode(c.Graph.Mode); err != nil {
		return err
	}
	if err := pipeline.ValidateDedupe(c.Graph.Dedupe); err != nil {
		return err
	}
	if c.Rank.Top < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rank.top must not be negative")
	}
	for _, name := range []string{
		c.Data.Columns.Airports.Key, c.Data.Columns.Airports.Name,
		c.Data.Columns.Routes.Source, c.Data.Columns.Routes.Destination,
	} {
		if err := errors.ValidateColumnName(name); err != nil {
			return err
		}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if err := errors.ValidateURL(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "store.mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid store.backend: %q (must be one of: memory, mongo)", c.Store.Backend)
	}
	return nil
}

// PipelineOptions converts the file's data, graph and rank sections.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		AirportsPath: c.Data.Airports,
		RoutesPath:   c.Data.Routes,
		Columns:      c.Data.Columns,
		Mode:         c.Graph.Mode,
		Dedupe:       c.Graph.Dedupe,
		Top:          c.Rank.Top,
		SkipInvalid:  c.Data.SkipInvalid,
	}
}

// ConfigDir returns the config directory using the XDG standard
// (~/.config/hubrank/).
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/hubrank/). A configured cache.dir wins.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns $XDG_CACHE_HOME/hubrank or ~/.cache/hubrank.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
