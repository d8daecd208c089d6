// Package config loads layered configuration for the diagnostics system:
// built-in defaults, an optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

var configLog = logger.New("config:config")

// EnvPrefix is the prefix for environment overrides. Nested keys use a
// double underscore, e.g. PAGESMEDIC_LOGGING__LEVEL=DEBUG.
const EnvPrefix = "PAGESMEDIC_"

// defaultLocations are searched in order when no config file is given.
var defaultLocations = []string{
	"./pagesmedic.yml",
	"./config/pagesmedic.yml",
	"~/.config/pagesmedic/config.yml",
}

// LoggingConfig controls diagnostic log output.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	File        string `yaml:"file"`
	MaxFileSize int    `yaml:"max_file_size"`
	BackupCount int    `yaml:"backup_count"`
}

// GitHubConfig holds GitHub endpoint settings used by future hosted checks.
type GitHubConfig struct {
	APIBaseURL   string  `yaml:"api_base_url"`
	PagesBaseURL string  `yaml:"pages_base_url"`
	Timeout      int     `yaml:"timeout"`
	Retries      int     `yaml:"retries"`
	RetryDelay   float64 `yaml:"retry_delay"`
}

// TestingConfig holds settings for site reachability testing.
type TestingConfig struct {
	HTTPTimeout           int     `yaml:"http_timeout"`
	HTTPRetries           int     `yaml:"http_retries"`
	HTTPRetryDelay        float64 `yaml:"http_retry_delay"`
	UserAgent             string  `yaml:"user_agent"`
	MaxConcurrentRequests int     `yaml:"max_concurrent_requests"`
}

// ValidationConfig holds settings for content validation.
type ValidationConfig struct {
	HTMLValidatorURL    string `yaml:"html_validator_url"`
	CheckExternalLinks  bool   `yaml:"check_external_links"`
	ExternalLinkTimeout int    `yaml:"external_link_timeout"`
	MaxLinkCheckDepth   int    `yaml:"max_link_check_depth"`
}

// RepairConfig controls repair behavior. Dry run and backups default to on
// so a misconfigured run cannot silently modify a repository.
type RepairConfig struct {
	DryRun           bool   `yaml:"dry_run"`
	BackupEnabled    bool   `yaml:"backup_enabled"`
	BackupDirectory  string `yaml:"backup_directory"`
	MaxBackupAgeDays int    `yaml:"max_backup_age_days"`
}

// ReportingConfig controls session report output.
type ReportingConfig struct {
	OutputDirectory string `yaml:"output_directory"`
	ReportFormat    string `yaml:"report_format"`
	IncludeMetadata bool   `yaml:"include_metadata"`
	CompressReports bool   `yaml:"compress_reports"`
}

// RepositoryConfig holds repository conventions.
type RepositoryConfig struct {
	DefaultBranch string `yaml:"default_branch"`
	PagesBranch   string `yaml:"pages_branch"`
	CloneTimeout  int    `yaml:"clone_timeout"`
	MaxFileSizeMB int    `yaml:"max_file_size_mb"`
}

// Config is the full configuration tree.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	GitHub     GitHubConfig     `yaml:"github"`
	Testing    TestingConfig    `yaml:"testing"`
	Validation ValidationConfig `yaml:"validation"`
	Repair     RepairConfig     `yaml:"repair"`
	Reporting  ReportingConfig  `yaml:"reporting"`
	Repository RepositoryConfig `yaml:"repository"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "INFO",
			MaxFileSize: 10 * 1024 * 1024,
			BackupCount: 5,
		},
		GitHub: GitHubConfig{
			APIBaseURL:   "https://api.github.com",
			PagesBaseURL: "https://pages.github.com",
			Timeout:      30,
			Retries:      3,
			RetryDelay:   1.0,
		},
		Testing: TestingConfig{
			HTTPTimeout:           30,
			HTTPRetries:           3,
			HTTPRetryDelay:        1.0,
			UserAgent:             "pagesmedic/1.0",
			MaxConcurrentRequests: 10,
		},
		Validation: ValidationConfig{
			HTMLValidatorURL:    "https://validator.w3.org/nu/",
			CheckExternalLinks:  true,
			ExternalLinkTimeout: 10,
			MaxLinkCheckDepth:   3,
		},
		Repair: RepairConfig{
			DryRun:           true,
			BackupEnabled:    true,
			BackupDirectory:  "./backups",
			MaxBackupAgeDays: 30,
		},
		Reporting: ReportingConfig{
			OutputDirectory: "./reports",
			ReportFormat:    "json",
			IncludeMetadata: true,
		},
		Repository: RepositoryConfig{
			DefaultBranch: "main",
			PagesBranch:   "gh-pages",
			CloneTimeout:  300,
			MaxFileSizeMB: 100,
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the YAML
// file at configFile (or the first default location that exists when
// configFile is empty), overlaid with PAGESMEDIC_ environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findDefaultConfigFile()
	}
	if configFile != "" {
		if err := cfg.loadFile(configFile); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefaultConfigFile() string {
	for _, location := range defaultLocations {
		path := location
		if strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			path = filepath.Join(home, path[2:])
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFile overlays the YAML file onto the current configuration. Only keys
// present in the file are overwritten.
func (c *Config) loadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	configLog.Printf("loaded configuration from %s", path)
	return nil
}

// applyEnvironment overlays PAGESMEDIC_ variables. Each supported key is
// bound explicitly so values are parsed into their proper types.
func (c *Config) applyEnvironment() {
	envString("LOGGING__LEVEL", &c.Logging.Level)
	envString("LOGGING__FILE", &c.Logging.File)
	envInt("LOGGING__MAX_FILE_SIZE", &c.Logging.MaxFileSize)
	envInt("LOGGING__BACKUP_COUNT", &c.Logging.BackupCount)

	envString("GITHUB__API_BASE_URL", &c.GitHub.APIBaseURL)
	envString("GITHUB__PAGES_BASE_URL", &c.GitHub.PagesBaseURL)
	envInt("GITHUB__TIMEOUT", &c.GitHub.Timeout)
	envInt("GITHUB__RETRIES", &c.GitHub.Retries)
	envFloat("GITHUB__RETRY_DELAY", &c.GitHub.RetryDelay)

	envInt("TESTING__HTTP_TIMEOUT", &c.Testing.HTTPTimeout)
	envInt("TESTING__HTTP_RETRIES", &c.Testing.HTTPRetries)
	envFloat("TESTING__HTTP_RETRY_DELAY", &c.Testing.HTTPRetryDelay)
	envString("TESTING__USER_AGENT", &c.Testing.UserAgent)
	envInt("TESTING__MAX_CONCURRENT_REQUESTS", &c.Testing.MaxConcurrentRequests)

	envString("VALIDATION__HTML_VALIDATOR_URL", &c.Validation.HTMLValidatorURL)
	envBool("VALIDATION__CHECK_EXTERNAL_LINKS", &c.Validation.CheckExternalLinks)
	envInt("VALIDATION__EXTERNAL_LINK_TIMEOUT", &c.Validation.ExternalLinkTimeout)
	envInt("VALIDATION__MAX_LINK_CHECK_DEPTH", &c.Validation.MaxLinkCheckDepth)

	envBool("REPAIR__DRY_RUN", &c.Repair.DryRun)
	envBool("REPAIR__BACKUP_ENABLED", &c.Repair.BackupEnabled)
	envString("REPAIR__BACKUP_DIRECTORY", &c.Repair.BackupDirectory)
	envInt("REPAIR__MAX_BACKUP_AGE_DAYS", &c.Repair.MaxBackupAgeDays)

	envString("REPORTING__OUTPUT_DIRECTORY", &c.Reporting.OutputDirectory)
	envString("REPORTING__REPORT_FORMAT", &c.Reporting.ReportFormat)
	envBool("REPORTING__INCLUDE_METADATA", &c.Reporting.IncludeMetadata)
	envBool("REPORTING__COMPRESS_REPORTS", &c.Reporting.CompressReports)

	envString("REPOSITORY__DEFAULT_BRANCH", &c.Repository.DefaultBranch)
	envString("REPOSITORY__PAGES_BRANCH", &c.Repository.PagesBranch)
	envInt("REPOSITORY__CLONE_TIMEOUT", &c.Repository.CloneTimeout)
	envInt("REPOSITORY__MAX_FILE_SIZE_MB", &c.Repository.MaxFileSizeMB)
}

func envString(key string, target *string) {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		*target = value
	}
}

func envInt(key string, target *int) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		configLog.Printf("ignoring %s%s: %v", EnvPrefix, key, err)
		return
	}
	*target = parsed
}

func envFloat(key string, target *float64) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		configLog.Printf("ignoring %s%s: %v", EnvPrefix, key, err)
		return
	}
	*target = parsed
}

func envBool(key string, target *bool) {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return
	}
	switch strings.ToLower(value) {
	case "true", "yes", "1", "on":
		*target = true
	case "false", "no", "0", "off":
		*target = false
	default:
		configLog.Printf("ignoring %s%s: not a boolean: %q", EnvPrefix, key, value)
	}
}

// Validate checks the configuration for values that would break a run.
func (c *Config) Validate() error {
	switch strings.ToUpper(c.Logging.Level) {
	case "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("invalid github timeout: %d", c.GitHub.Timeout)
	}
	if c.Testing.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid testing http_timeout: %d", c.Testing.HTTPTimeout)
	}
	if c.GitHub.Retries < 0 {
		return fmt.Errorf("invalid github retries: %d", c.GitHub.Retries)
	}
	if c.Testing.HTTPRetries < 0 {
		return fmt.Errorf("invalid testing http_retries: %d", c.Testing.HTTPRetries)
	}

	switch c.Reporting.ReportFormat {
	case "json", "yaml", "html":
	default:
		return fmt.Errorf("invalid report format: %s", c.Reporting.ReportFormat)
	}

	return nil
}

// Save writes the configuration to a YAML file, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	content, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	configLog.Printf("saved configuration to %s", path)
	return nil
}
