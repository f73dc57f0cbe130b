// Package config holds the jetpack command line configuration: defaults,
// loading through viper and persistence through the safe writer.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"jetpack/internal/domain"
	"jetpack/internal/errors"
	"jetpack/internal/fileops"
	"jetpack/internal/logging"
	"jetpack/internal/utils"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. JETPACK_WRITE_SAFE.
	EnvPrefix = "JETPACK"

	filePermissions = 0o600
)

// Config represents the jetpack configuration structure.
type Config struct {
	Log   LogSettings   `mapstructure:"log" yaml:"log"`
	Write WriteSettings `mapstructure:"write" yaml:"write"`
	Read  ReadSettings  `mapstructure:"read" yaml:"read"`
	Async AsyncSettings `mapstructure:"async" yaml:"async"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// WriteSettings holds write defaults. Modes are octal strings.
type WriteSettings struct {
	Safe       bool   `mapstructure:"safe" yaml:"safe"`
	Mode       string `mapstructure:"mode" yaml:"mode"`
	DirMode    string `mapstructure:"dir_mode" yaml:"dir_mode"`
	JSONIndent int    `mapstructure:"json_indent" yaml:"json_indent"`
	StagingExt string `mapstructure:"staging_ext" yaml:"staging_ext"`
	BackupExt  string `mapstructure:"backup_ext" yaml:"backup_ext"`
}

// ReadSettings holds read defaults.
type ReadSettings struct {
	Safe         bool   `mapstructure:"safe" yaml:"safe"`
	ReturnAs     string `mapstructure:"return_as" yaml:"return_as"`
	StrictBackup bool   `mapstructure:"strict_backup" yaml:"strict_backup"`
}

// AsyncSettings holds the async scheduler limits.
type AsyncSettings struct {
	MaxInFlight  int     `mapstructure:"max_in_flight" yaml:"max_in_flight"`
	OpsPerSecond float64 `mapstructure:"ops_per_second" yaml:"ops_per_second"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogSettings{
			Level:  string(logging.LevelWarn),
			Format: "text",
		},
		Write: WriteSettings{
			Safe:       true,
			Mode:       utils.FormatFileMode(fileops.DefaultFileMode),
			DirMode:    utils.FormatFileMode(fileops.DefaultDirMode),
			StagingExt: fileops.StagingExt,
			BackupExt:  fileops.BackupExt,
		},
		Read: ReadSettings{
			Safe:     true,
			ReturnAs: domain.ReturnUTF8.String(),
		},
		Async: AsyncSettings{
			MaxInFlight: 4,
		},
	}
}

// SetDefaults registers the built-in values and environment overrides on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("write.safe", d.Write.Safe)
	v.SetDefault("write.mode", d.Write.Mode)
	v.SetDefault("write.dir_mode", d.Write.DirMode)
	v.SetDefault("write.json_indent", d.Write.JSONIndent)
	v.SetDefault("write.staging_ext", d.Write.StagingExt)
	v.SetDefault("write.backup_ext", d.Write.BackupExt)
	v.SetDefault("read.safe", d.Read.Safe)
	v.SetDefault("read.return_as", d.Read.ReturnAs)
	v.SetDefault("read.strict_backup", d.Read.StrictBackup)
	v.SetDefault("async.max_in_flight", d.Async.MaxInFlight)
	v.SetDefault("async.ops_per_second", d.Async.OpsPerSecond)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds a Config from v, which may already have a config file read in.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigurationError("config_format", v.ConfigFileUsed(), "failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch logging.LogLevel(strings.ToLower(c.Log.Level)) {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, "warning", logging.LevelError:
	default:
		return errors.NewConfigurationError("log.level", c.Log.Level, "must be one of debug, info, warn, error", nil)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.NewConfigurationError("log.format", c.Log.Format, "must be text or json", nil)
	}

	if _, err := utils.ParseFileMode(c.Write.Mode); err != nil {
		return errors.NewConfigurationError("write.mode", c.Write.Mode, "invalid file mode", err)
	}
	if _, err := utils.ParseFileMode(c.Write.DirMode); err != nil {
		return errors.NewConfigurationError("write.dir_mode", c.Write.DirMode, "invalid directory mode", err)
	}
	if c.Write.JSONIndent < 0 {
		return errors.NewConfigurationError("write.json_indent", fmt.Sprint(c.Write.JSONIndent), "must not be negative", nil)
	}
	if ext := c.Extensions(); ext.Staging == ext.Backup {
		return errors.NewConfigurationError("write.backup_ext", ext.Backup, "must differ from write.staging_ext", nil)
	}

	if !domain.ReturnAs(c.Read.ReturnAs).Valid() {
		return errors.NewConfigurationError("read.return_as", c.Read.ReturnAs, "must be one of utf8, buf, json, jsonWithDates", nil)
	}

	if c.Async.MaxInFlight < 0 {
		return errors.NewConfigurationError("async.max_in_flight", fmt.Sprint(c.Async.MaxInFlight), "must not be negative", nil)
	}
	if c.Async.OpsPerSecond < 0 {
		return errors.NewConfigurationError("async.ops_per_second", fmt.Sprint(c.Async.OpsPerSecond), "must not be negative", nil)
	}

	return nil
}

// FileMode returns the parsed write mode. Invalid values yield 0, which the
// writer treats as its default.
func (c *Config) FileMode() os.FileMode {
	mode, _ := utils.ParseFileMode(c.Write.Mode)
	return mode
}

// DirMode returns the parsed directory mode, 0 when invalid.
func (c *Config) DirMode() os.FileMode {
	mode, _ := utils.ParseFileMode(c.Write.DirMode)
	return mode
}

// Extensions returns the effective staging and backup suffixes. An empty
// setting means the built-in suffix.
func (c *Config) Extensions() fileops.Extensions {
	ext := fileops.DefaultExtensions()
	if c.Write.StagingExt != "" {
		ext.Staging = c.Write.StagingExt
	}
	if c.Write.BackupExt != "" {
		ext.Backup = c.Write.BackupExt
	}
	return ext
}

// WriteOptions returns the configured write defaults.
func (c *Config) WriteOptions() fileops.WriteOptions {
	return fileops.WriteOptions{
		Safe:       c.Write.Safe,
		Mode:       c.FileMode(),
		JSONIndent: c.Write.JSONIndent,
	}
}

// ReadOptions returns the configured read defaults.
func (c *Config) ReadOptions() fileops.ReadOptions {
	return fileops.ReadOptions{
		ReturnAs:     domain.ReturnAs(c.Read.ReturnAs),
		Safe:         c.Read.Safe,
		StrictBackup: c.Read.StrictBackup,
	}
}

// SchedulerConfig returns the async limits.
func (c *Config) SchedulerConfig() fileops.SchedulerConfig {
	return fileops.SchedulerConfig{
		MaxInFlight:  c.Async.MaxInFlight,
		OpsPerSecond: c.Async.OpsPerSecond,
	}
}

// LoggingConfig returns the logger settings.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(strings.ToLower(c.Log.Level))
	cfg.Format = c.Log.Format
	return cfg
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.NewConfigurationError("config_format", "yaml", "failed to marshal config", err)
	}
	return data, nil
}

// Save persists the configuration to path with the safe write protocol,
// readable by the owner only.
func (c *Config) Save(ctx context.Context, ops *fileops.Ops, path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := ops.Write(ctx, path, data, fileops.WriteOptions{Safe: true, Mode: filePermissions}); err != nil {
		return errors.NewConfigurationError("config_path", path, "failed to write config file", err)
	}
	return nil
}
