// Package cli implements the hubrank command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/buildinfo"
	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/config"
	"github.com/matzehuels/hubrank/pkg/pipeline"
	"github.com/matzehuels/hubrank/pkg/report"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value.
	configPath string
	// cfg is loaded by the root command before any subcommand runs.
	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Hubrank ranks airports by how many routes they serve",
		Long: `Hubrank builds a graph from an airport table and a route table and ranks
airports by degree centrality, the number of routes touching each airport.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/hubrank/config.toml)")

	// Register all subcommands
	root.AddCommand(c.rankCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.idsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file for the command about to run.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}

	switch c.cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       c.cfg.Cache.RedisURL,
			Namespace: c.cfg.Cache.Namespace,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return rc, cache.NewScopedKeyer(nil, c.cfg.Cache.Namespace), nil
	default:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, nil, nil
	}
}

// newStore opens the configured report store.
func (c *CLI) newStore(ctx context.Context) (report.Store, error) {
	if c.cfg.Store.Backend != config.StoreMongo {
		return report.NewMemoryStore(), nil
	}
	return report.NewMongoStore(ctx, report.MongoConfig{
		URI:        c.cfg.Store.MongoURI,
		Database:   c.cfg.Store.Database,
		Collection: c.cfg.Store.Collection,
	})
}

// =============================================================================
// Options Helpers
// =============================================================================

// dataFlags are the input and graph flags shared by every pipeline command.
// They override the config file only when set on the command line.
type dataFlags struct {
	airports    string
	routes      string
	mode        string
	dedupe      string
	skipInvalid bool
}

func addDataFlags(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().StringVarP(&f.airports, "airports", "a", "", "airports CSV file")
	cmd.Flags().StringVarP(&f.routes, "routes", "r", "", "routes CSV file")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "graph mode: directed (default), undirected")
	cmd.Flags().StringVar(&f.dedupe, "dedupe", "", "duplicate routes: keep (default), unique")
	cmd.Flags().BoolVar(&f.skipInvalid, "skip-invalid", false, "skip malformed records instead of failing")
}

// pipelineOptions layers command-line flags over the config file.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *dataFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("airports") {
		opts.AirportsPath = f.airports
	}
	if flags.Changed("routes") {
		opts.RoutesPath = f.routes
	}
	if flags.Changed("mode") {
		opts.Mode = f.mode
	}
	if flags.Changed("dedupe") {
		opts.Dedupe = f.dedupe
	}
	if flags.Changed("skip-invalid") {
		opts.SkipInvalid = f.skipInvalid
	}
	opts.Logger = c.Logger
	return opts
}
