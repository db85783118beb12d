package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/adapter"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/repository"
	"github.com/Ziaullahkhan-Ai/analytics-dashboard-pro/pkg/utils/logging"
)

// config holds configuration values
type config struct {
	// Paths
	configPath string
	dbPath     string

	// Logging
	logLevel string

	// Data source
	baseURL string

	// Assistant
	geminiProject  string
	geminiLocation string
	geminiModel    string

	// Tunables from the optional config file
	file fileConfig
}

// duration wraps time.Duration so the YAML file can carry "90s" style values.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return goerr.Wrap(err, "invalid duration", goerr.V("value", raw))
	}
	*d = duration(v)
	return nil
}

// fileConfig carries the dashboard tunables. All fields have working
// defaults; the YAML file only overrides what it names.
type fileConfig struct {
	RefreshInterval duration `yaml:"refresh_interval"`
	NotificationTTL duration `yaml:"notification_ttl"`
	NotificationCap int      `yaml:"notification_cap"`
	TableRows       int      `yaml:"table_rows"`
	RequestTimeout  duration `yaml:"request_timeout"`
	HistoryDays     int      `yaml:"history_days"`
	RatePerSec      float64  `yaml:"rate_per_sec"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		RefreshInterval: duration(60 * time.Second),
		NotificationTTL: duration(6 * time.Second),
		NotificationCap: 5,
		TableRows:       100,
		RequestTimeout:  duration(30 * time.Second),
		HistoryDays:     120,
		RatePerSec:      2,
	}
}

func (f fileConfig) refreshInterval() time.Duration { return time.Duration(f.RefreshInterval) }
func (f fileConfig) notificationTTL() time.Duration { return time.Duration(f.NotificationTTL) }
func (f fileConfig) requestTimeout() time.Duration  { return time.Duration(f.RequestTimeout) }

// load applies the YAML config file over the defaults. A missing default
// path is fine; an explicitly named file must exist.
func (cfg *config) load() error {
	cfg.file = defaultFileConfig()

	path := cfg.configPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(defaultHome(), "config.yml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := yaml.Unmarshal(data, &cfg.file); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".covidash")
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML config file",
			Sources:     cli.EnvVars("COVIDASH_CONFIG"),
			Destination: &cfg.configPath,
		},
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Path to local database file",
			Value:       filepath.Join(defaultHome(), "covidash.db"),
			Sources:     cli.EnvVars("COVIDASH_DB"),
			Destination: &cfg.dbPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("COVIDASH_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL of the data API",
			Sources:     cli.EnvVars("COVIDASH_BASE_URL"),
			Destination: &cfg.baseURL,
		},
	}
}

// llmFlags returns flags for assistant configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model for the assistant",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
	}
}

// setup loads the config file and installs the logger. Every command action
// calls it first.
func (cfg *config) setup() error {
	if err := cfg.load(); err != nil {
		return err
	}
	logging.SetDefault(logging.New(cfg.logLevel, os.Stderr))
	return nil
}

// newRepository creates the identity repository
func (cfg *config) newRepository() (repository.Repository, error) {
	if cfg.dbPath == "" {
		return nil, goerr.New("db path is required")
	}
	return repository.Open(cfg.dbPath)
}

// newDataSource creates the remote data source client
func (cfg *config) newDataSource() adapter.DataSource {
	opts := []adapter.DiseaseOption{
		adapter.WithHTTPTimeout(cfg.file.requestTimeout()),
		adapter.WithRateLimit(cfg.file.RatePerSec),
	}
	if cfg.baseURL != "" {
		opts = append(opts, adapter.WithBaseURL(cfg.baseURL))
	}
	return adapter.NewDiseaseClient(opts...)
}

// newGemini creates the assistant transport
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}
	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
		adapter.WithGenerativeModel(cfg.geminiModel))
}
