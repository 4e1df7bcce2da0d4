package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "coamigrate.yaml"

// EnvPrefix prefixes the environment overrides, e.g. COAMIGRATE_INPUT.
const EnvPrefix = "COAMIGRATE"

// Config represents the top-level coamigrate.yaml configuration.
type Config struct {
	Project        ProjectConfig        `yaml:"project"`
	Paths          PathsConfig          `yaml:"paths"`
	Classification ClassificationConfig `yaml:"classification"`
	Report         ReportConfig         `yaml:"report"`
	Database       DatabaseConfig       `yaml:"database,omitempty"`
	Log            LogConfig            `yaml:"log"`
	Git            GitConfig            `yaml:"git"`
}

// ProjectConfig identifies the migration project.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	Standard string `yaml:"standard"` // accounting standard of the chart
}

// PathsConfig locates the source file and output directory, relative to the workspace.
type PathsConfig struct {
	Input     string `yaml:"input"`
	OutputDir string `yaml:"output_dir"`
}

// ClassificationConfig tunes the category rules.
type ClassificationConfig struct {
	AuxiliaryFirst bool `yaml:"auxiliary_first"`
	TopLevelLength int  `yaml:"top_level_length"`
}

// ReportConfig controls the Markdown report.
type ReportConfig struct {
	DetailLimit int `yaml:"detail_limit"` // rows per category; 0 = unlimited
}

// DatabaseConfig points at the Postgres database holding subject_mapping.
type DatabaseConfig struct {
	DSN string `yaml:"dsn,omitempty"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a coamigrate.yaml file from disk. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(projectName string) *Config {
	return &Config{
		Project: ProjectConfig{
			Name:     projectName,
			Standard: "小企业会计准则",
		},
		Paths: PathsConfig{
			Input:     "input/default-subjects.csv",
			OutputDir: "output",
		},
		Classification: ClassificationConfig{
			AuxiliaryFirst: true,
			TopLevelLength: 4,
		},
		Report: ReportConfig{
			DetailLimit: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "coamigrate",
			AuthorEmail: "coamigrate@localhost",
		},
	}
}

// overrides are the settings that may come from the environment.
type overrides struct {
	Input     string `envconfig:"INPUT"`
	OutputDir string `envconfig:"OUTPUT_DIR"`
	DSN       string `envconfig:"DATABASE_DSN"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`
}

// ApplyEnv overlays COAMIGRATE_* environment variables onto cfg. Unset
// variables leave the file values alone.
func ApplyEnv(cfg *Config) error {
	var o overrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Paths.Input, o.Input)
	set(&cfg.Paths.OutputDir, o.OutputDir)
	set(&cfg.Database.DSN, o.DSN)
	set(&cfg.Log.Level, o.LogLevel)
	set(&cfg.Log.Format, o.LogFormat)
	return nil
}
