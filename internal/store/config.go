package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAIModel     = "gemini-2.5-flash"
	DefaultAPIKeyEnv   = "GEMINI_API_KEY"
	DefaultAITimeout   = 60 * time.Second
	defaultWorkspace   = "default"
	configFileName     = "config.yaml"
	defaultLogFileName = "wallet.log"
)

// Config is the user configuration in ~/.wallet/config.yaml. Every field is optional.
type Config struct {
	// Workspace selects ~/.wallet/workspaces/<name> when no --dir/--workspace is given.
	Workspace string        `yaml:"workspace"`
	AI        AIConfig      `yaml:"ai"`
	Logging   LoggingConfig `yaml:"logging"`
	TUI       TUIConfig     `yaml:"tui"`
}

type AIConfig struct {
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the Gemini key.
	APIKeyEnv string `yaml:"api_key_env"`
	// Timeout is a Go duration string ("45s").
	Timeout string `yaml:"timeout"`
}

type LoggingConfig struct {
	// Level is one of debug|info|warn|error.
	Level string `yaml:"level"`
	// File overrides the log path; relative paths are resolved against the config dir.
	File string `yaml:"file"`
}

type TUIConfig struct {
	// Glyphs selects "unicode" (default) or "ascii" code rendering.
	Glyphs string `yaml:"glyphs"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.wallet).
	if v := strings.TrimSpace(os.Getenv("WALLET_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wallet"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads config.yaml and fills defaults. A missing file is not an error.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Workspace) == "" {
		c.Workspace = defaultWorkspace
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = DefaultAIModel
	}
	if strings.TrimSpace(c.AI.APIKeyEnv) == "" {
		c.AI.APIKeyEnv = DefaultAPIKeyEnv
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "info"
	}
	if strings.TrimSpace(c.TUI.Glyphs) == "" {
		c.TUI.Glyphs = "unicode"
	}
}

// AITimeout parses AI.Timeout, falling back to DefaultAITimeout on empty or invalid values.
func (c *Config) AITimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.AI.Timeout))
	if err != nil || d <= 0 {
		return DefaultAITimeout
	}
	return d
}

// APIKey returns the configured key variable, then API_KEY as a fallback.
func (c *Config) APIKey() string {
	if v := strings.TrimSpace(os.Getenv(c.AI.APIKeyEnv)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("API_KEY"))
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	p := strings.TrimSpace(c.Logging.File)
	if p == "" {
		return filepath.Join(dir, "logs", defaultLogFileName), nil
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(dir, p), nil
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.New("workspace name must be a plain directory name")
	}
	return name, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
