package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

const (
	configEnvironmentVariable = "VID2AUDIO_CONFIG"
	configDirectoryName       = "vid2audio"
	configFileName            = "config.yaml"
	journalFileName           = "history.db"

	// DefaultOutputDirectoryName is created under the source directory when
	// no output directory is given.
	DefaultOutputDirectoryName = "audio_exports"

	maxRecentSources = 10
)

type Config struct {
	// Paths come from flags or prompts only and are never persisted.
	Paths         Paths       `yaml:"-"`
	Vid2Audio     Vid2Audio   `yaml:"vid2audio"`
	Transcoding   Transcoding `yaml:"transcoding"`
	Journal       Journal     `yaml:"journal"`
	RecentSources []string    `yaml:"recent_sources"`

	// Runtime holds the command line switches that are never persisted.
	Runtime Runtime `yaml:"-"`
}

type Vid2Audio struct {
	LogLevel logrus.Level `yaml:"log_level"`
	Verbose  bool         `yaml:"verbose"`
	Quiet    bool         `yaml:"quiet"`
}

type Paths struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

type Transcoding struct {
	Format       string `yaml:"format"`
	FFmpeg       string `yaml:"ffmpeg"`
	Parallel     int    `yaml:"parallel"`
	SkipExisting bool   `yaml:"skip_existing"`
}

type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Runtime struct {
	ConfigPath  string
	Batch       bool
	ListFormats bool
	SaveConfig  bool
	History     bool
	ShowVersion bool
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Vid2Audio: Vid2Audio{
			LogLevel: logrus.InfoLevel,
		},
		Transcoding: Transcoding{
			FFmpeg: "ffmpeg",
		},
		Journal: Journal{
			Enabled: true,
			Path:    filepath.Join(defaultConfigDirectory(), journalFileName),
		},
	}
}

// New builds the configuration from command line arguments (without the
// program name) layered over the config file layered over defaults.
func New(args []string) (*Config, error) {
	cmdline, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(defaultConfigDirectory(), configFileName)
	if customPath, ok := os.LookupEnv(configEnvironmentVariable); ok {
		configPath = customPath
	}

	if cmdline.configPath != "" {
		configPath = cmdline.configPath
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	cmdline.apply(config)

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Load reads the YAML config file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	config := Default()
	config.Runtime.ConfigPath = path

	rawConfig, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}

		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantReadConfigFile, err)
	}

	err = yaml.Unmarshal(rawConfig, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantParseConfigFile, err)
	}

	return config, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	rawConfig, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantWriteConfigFile, err)
	}

	err = os.MkdirAll(filepath.Dir(c.Runtime.ConfigPath), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantWriteConfigFile, err)
	}

	err = os.WriteFile(c.Runtime.ConfigPath, rawConfig, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantWriteConfigFile, err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Vid2Audio.Verbose && c.Vid2Audio.Quiet {
		return fmt.Errorf("%w: %w (%s)", ErrConfiguration, ErrConflictingFlags, "verbose and quiet")
	}

	if c.Transcoding.Parallel < 0 {
		return fmt.Errorf("%w: %w (%d)", ErrConfiguration, ErrInvalidParallel, c.Transcoding.Parallel)
	}

	if c.Transcoding.Format != "" {
		if _, err := formats.Parse(c.Transcoding.Format); err != nil {
			return fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrInvalidFormat, err)
		}
	}

	// Listing modes need neither a source nor a format.
	if c.Runtime.ListFormats || c.Runtime.History || c.Runtime.ShowVersion || !c.Runtime.Batch {
		return nil
	}

	if c.Paths.Source == "" {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrSourceDirectoryNotSpecified)
	}

	if c.Transcoding.Format == "" {
		return fmt.Errorf("%w: %w", ErrConfiguration, ErrFormatNotSpecified)
	}

	return nil
}

// NeedsInteraction reports whether the user has to be prompted for the
// source directory or the format.
func (c *Config) NeedsInteraction() bool {
	return !c.Runtime.Batch && (c.Paths.Source == "" || c.Transcoding.Format == "")
}

// Parallel returns the worker pool size, defaulting to the number of CPUs.
func (c *Config) Parallel() int {
	if c.Transcoding.Parallel > 0 {
		return c.Transcoding.Parallel
	}

	return runtime.NumCPU()
}

// OutputDirectory returns the configured output directory or the default
// one under the source directory.
func (c *Config) OutputDirectory() string {
	if c.Paths.Output != "" {
		return c.Paths.Output
	}

	return filepath.Join(c.Paths.Source, DefaultOutputDirectoryName)
}

// LogLevel returns the effective log level, taking -verbose and -quiet into account.
func (c *Config) LogLevel() logrus.Level {
	switch {
	case c.Vid2Audio.Verbose:
		return logrus.DebugLevel
	case c.Vid2Audio.Quiet:
		return logrus.ErrorLevel
	default:
		return c.Vid2Audio.LogLevel
	}
}

// AddRecentSource puts dir at the head of the recent sources list.
func (c *Config) AddRecentSource(dir string) {
	c.RecentSources = slices.DeleteFunc(c.RecentSources, func(existing string) bool {
		return existing == dir
	})
	c.RecentSources = slices.Insert(c.RecentSources, 0, dir)

	if len(c.RecentSources) > maxRecentSources {
		c.RecentSources = c.RecentSources[:maxRecentSources]
	}
}

func defaultConfigDirectory() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(dir, configDirectoryName)
}
