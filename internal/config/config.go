package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ehrqa/internal/qa"
)

// Config holds the application configuration: logging, output locations,
// and QA pipeline defaults. Precedence is defaults < config file <
// environment (EHRQA_* variables).
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	QA      QAConfig      `yaml:"qa" envconfig:"QA"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// OutputConfig names the artifacts written after a QA run.
type OutputConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" validate:"required"`
	CleanedName string `yaml:"cleaned_name" envconfig:"CLEANED_NAME" validate:"required"`
	FlagsName   string `yaml:"flags_name" envconfig:"FLAGS_NAME" validate:"required"`
	ReportName  string `yaml:"report_name" envconfig:"REPORT_NAME" validate:"required"`
}

// QAConfig carries pipeline tuning defaults. Per-run role bindings
// (age/time/id/outlier columns) come from the command line, not here.
type QAConfig struct {
	IQRMultiplier float64  `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" validate:"gt=0"`
	MissingTokens []string `yaml:"missing_tokens" envconfig:"MISSING_TOKENS" validate:"min=1"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Output: OutputConfig{
			Dir:         "outputs",
			CleanedName: "cleaned.csv",
			FlagsName:   "outlier_flags.csv",
			ReportName:  "qa_report.json",
		},
		QA: QAConfig{
			IQRMultiplier: qa.DefaultIQRMultiplier,
			MissingTokens: qa.DefaultMissingTokens,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// EHRQA_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("EHRQA", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
