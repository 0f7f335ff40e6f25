package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCommitLimit   = 5
	DefaultOutputPath    = "README.md"
	DefaultCommitMessage = "docs: README.md generated from the commit history"
	DefaultConcurrency   = 4
	DefaultHost          = "github"
	DefaultGenerator     = "gemini"
	DefaultAddress       = ":5000"
)

// Settings is the process-wide configuration. It is loaded once at startup
// and treated as read-only afterwards.
type Settings struct {
	Hosts     HostsSettings     `yaml:"hosts"`
	Generator GeneratorSettings `yaml:"generator"`
	Pipeline  PipelineSettings  `yaml:"pipeline"`
	Server    ServerSettings    `yaml:"server"`
}

// HostsSettings configures the repository hosts.
type HostsSettings struct {
	Default   string                  `yaml:"default"` // used when no host matches the URL
	Providers map[string]HostSettings `yaml:"providers"`
}

// HostSettings configures a single repository host.
type HostSettings struct {
	Token   string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	BaseURL string `yaml:"base_url"` // API endpoint override (enterprise installs)
	Branch  string `yaml:"branch"`   // Branch written to; empty means the default branch
}

// GeneratorSettings configures the text-generation service.
type GeneratorSettings struct {
	Provider string `yaml:"provider"` // "gemini", "openai", "ollama"
	Model    string `yaml:"model"` // empty means the provider default
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// PipelineSettings tunes the history-to-document pipeline.
type PipelineSettings struct {
	CommitLimit   int    `yaml:"commit_limit"`
	OutputPath    string `yaml:"output_path"`
	CommitMessage string `yaml:"commit_message"`
	Concurrency   int    `yaml:"concurrency"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Address string `yaml:"address"`
}

// environment lists the well-known variables honoured without a config file.
type environment struct {
	GitHubToken  string `envconfig:"GITHUB_TOKEN"`
	GitLabToken  string `envconfig:"GITLAB_TOKEN"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OllamaHost   string `envconfig:"OLLAMA_HOST"`
	Address      string `envconfig:"HISTORYDOC_ADDRESS"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Hosts: HostsSettings{
			Default: DefaultHost,
			Providers: map[string]HostSettings{
				"github": {},
				"gitlab": {},
				"local":  {},
			},
		},
		Generator: GeneratorSettings{
			Provider: DefaultGenerator,
		},
		Pipeline: PipelineSettings{
			CommitLimit:   DefaultCommitLimit,
			OutputPath:    DefaultOutputPath,
			CommitMessage: DefaultCommitMessage,
			Concurrency:   DefaultConcurrency,
		},
		Server: ServerSettings{Address: DefaultAddress},
	}
}

// LoadSettings loads the config file at path, or auto-detects one when path
// is empty. Without any config file the defaults plus environment are used.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults and environment: %v", err)
			return settingsFromEnvironment(DefaultSettings())
		}
		path = found
	}

	logger.Infof("Using config file: %s", path)
	return NewSettings(path)
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for name, host := range settings.Hosts.Providers {
		host.Token = resolveToken(host.Token)
		settings.Hosts.Providers[name] = host
	}
	settings.Generator.APIKey = resolveToken(settings.Generator.APIKey)

	return settingsFromEnvironment(settings)
}

func settingsFromEnvironment(settings *Settings) (*Settings, error) {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applyEnvironment(settings, env)

	if err := validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyEnvironment fills values left empty by the config file.
func applyEnvironment(settings *Settings, env environment) {
	if settings.Hosts.Providers == nil {
		settings.Hosts.Providers = map[string]HostSettings{}
	}
	fillToken := func(name, token string) {
		host := settings.Hosts.Providers[name]
		if host.Token == "" {
			host.Token = token
		}
		settings.Hosts.Providers[name] = host
	}
	fillToken("github", env.GitHubToken)
	fillToken("gitlab", env.GitLabToken)

	switch settings.Generator.Provider {
	case "gemini":
		if settings.Generator.APIKey == "" {
			settings.Generator.APIKey = env.GeminiAPIKey
		}
	case "openai":
		if settings.Generator.APIKey == "" {
			settings.Generator.APIKey = env.OpenAIAPIKey
		}
	case "ollama":
		if settings.Generator.BaseURL == "" {
			settings.Generator.BaseURL = env.OllamaHost
		}
	}

	if env.Address != "" && settings.Server.Address == DefaultAddress {
		settings.Server.Address = env.Address
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".historydoc.yaml",
		".historydoc.yml",
		"historydoc.yaml",
		"historydoc.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Hosts.Default == "" {
		return errors.New("hosts.default is required")
	}
	if settings.Generator.Provider == "" {
		return errors.New("generator.provider is required")
	}
	if settings.Pipeline.CommitLimit <= 0 {
		return fmt.Errorf("pipeline.commit_limit must be positive, got %d", settings.Pipeline.CommitLimit)
	}
	if settings.Pipeline.Concurrency <= 0 {
		return fmt.Errorf("pipeline.concurrency must be positive, got %d", settings.Pipeline.Concurrency)
	}
	if strings.TrimSpace(settings.Pipeline.OutputPath) == "" {
		return errors.New("pipeline.output_path is required")
	}
	if strings.TrimSpace(settings.Pipeline.CommitMessage) == "" {
		return errors.New("pipeline.commit_message is required")
	}
	return nil
}
