/*
Package config manages the TOML config shared by the cadprompt front ends.

The file lives at [UserConfigDir]/cadprompt/config.toml and is created with
defaults on first run. A file that fails to decode as a whole is recovered
section by section, so one bad value never discards the rest.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/cadprompt/internal/utils"
	"github.com/charmbracelet/log"
)

// AppName names the config and data directories.
const AppName = "cadprompt"

// Config holds the entire config structure
type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Templates TemplatesConfig `toml:"templates"`
	Server    ServerConfig    `toml:"server"`
	CLI       CliConfig       `toml:"cli"`
}

// EngineConfig tunes the planner.
type EngineConfig struct {
	MaxSuggestions   int  `toml:"max_suggestions"`
	MaxInput         int  `toml:"max_input"`
	BuiltinTemplates bool `toml:"builtin_templates"`
}

// TemplatesConfig points at user template files, TOML or YAML.
type TemplatesConfig struct {
	Dir   string   `toml:"dir"`
	Files []string `toml:"files"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxInput     int  `toml:"max_input"`
	EnableTiming bool `toml:"enable_timing"`
}

// CliConfig holds the interactive front end options.
type CliConfig struct {
	ShowPreview bool `toml:"show_preview"`
	Color       bool `toml:"color"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/cadprompt or ~/.config/cadprompt
// 2. ~/Library/Application Support/cadprompt (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	resolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		log.Errorf("Failed to resolve paths: %v", err)
		return utils.GetExecutableDir()
	}
	if result := utils.CheckDirStatus(resolver.ConfigDir()); result.Writable {
		return resolver.ConfigDir(), nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(resolver.HomeDir(), "Library", "Application Support", AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	return resolver.ExecutableDir(), nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/cadprompt/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxSuggestions:   8,
			MaxInput:         512,
			BuiltinTemplates: true,
		},
		Templates: TemplatesConfig{
			Dir:   "",
			Files: []string{},
		},
		Server: ServerConfig{
			MaxInput:     4096,
			EnableTiming: true,
		},
		CLI: CliConfig{
			ShowPreview: true,
			Color:       true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse salvages every section that still decodes on its own.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "templates"); ok {
		extractTemplatesConfig(section, &config.Templates)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.normalize()
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		engine.MaxSuggestions = val
	}
	if val, ok := utils.ExtractInt64(data, "max_input"); ok {
		engine.MaxInput = val
	}
	if val, ok := utils.ExtractBool(data, "builtin_templates"); ok {
		engine.BuiltinTemplates = val
	}
}

func extractTemplatesConfig(data map[string]any, templates *TemplatesConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		templates.Dir = val
	}
	if val, ok := utils.ExtractStrings(data, "files"); ok {
		templates.Files = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_input"); ok {
		server.MaxInput = val
	}
	if val, ok := utils.ExtractBool(data, "enable_timing"); ok {
		server.EnableTiming = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "show_preview"); ok {
		cli.ShowPreview = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// normalize replaces values the front ends cannot work with by defaults.
func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Engine.MaxSuggestions < 0 {
		log.Warnf("engine.max_suggestions %d is negative, using %d", c.Engine.MaxSuggestions, defaults.Engine.MaxSuggestions)
		c.Engine.MaxSuggestions = defaults.Engine.MaxSuggestions
	}
	if c.Engine.MaxInput <= 0 {
		c.Engine.MaxInput = defaults.Engine.MaxInput
	}
	if c.Server.MaxInput <= 0 {
		c.Server.MaxInput = defaults.Server.MaxInput
	}
	if c.Templates.Files == nil {
		c.Templates.Files = []string{}
	}
}

// TemplatePaths returns the configured template files followed by the
// template directory, relative paths resolved against the config file.
func (c *Config) TemplatePaths(configPath string) (files []string, dir string) {
	base := ""
	if configPath != "" {
		base = filepath.Dir(configPath)
	}
	for _, f := range c.Templates.Files {
		files = append(files, resolveAgainst(base, f))
	}
	if c.Templates.Dir != "" {
		dir = resolveAgainst(base, c.Templates.Dir)
	}
	return files, dir
}

func resolveAgainst(base, path string) string {
	path = utils.ExpandHome(path)
	if filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
