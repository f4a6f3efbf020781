// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme_colors"`
	Keys   KeyMap        `toml:"keys"`
}

// EditorOptions controls the sizing of the embedded code editors
type EditorOptions struct {
	AutoHeight bool `toml:"auto_height"`
	MinHeight  int  `toml:"min_height"`
	MaxHeight  int  `toml:"max_height"`
	LineHeight int  `toml:"line_height"`
	ChromeRows int  `toml:"chrome_rows"`
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
}

// KeyMap defines key bindings
type KeyMap struct {
	NextEditor []string `toml:"next_editor"`
	Format     []string `toml:"format"`
	Complete   []string `toml:"complete"`
	Snippets   []string `toml:"snippets"`
	Reload     []string `toml:"reload"`
	Help       []string `toml:"help"`
	Exit       []string `toml:"exit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorOptions{
			AutoHeight: true,
			MinHeight:  3,
			MaxHeight:  15,
			LineHeight: 1,
			ChromeRows: 2,
		},
		Theme: Theme{
			// Dracula-ish defaults
			TextPrimary:   "#F8F8F2",
			TextSecondary: "#BD93F9",
			TextFaint:     "#6272A4",
			Accent:        "#8BE9FD",
			Success:       "#50FA7B",
			Error:         "#FF5555",
			Highlight:     "#FFB86C",
			Warning:       "#F1FA8C",
			BgPrimary:     "#282A36",
			BgSecondary:   "#44475A",
		},
		Keys: KeyMap{
			NextEditor: []string{"tab"},
			Format:     []string{"ctrl+f"},
			Complete:   []string{"ctrl+@", "ctrl+space"},
			Snippets:   []string{"ctrl+t"},
			Reload:     []string{"ctrl+r"},
			Help:       []string{"ctrl+h"},
			Exit:       []string{"ctrl+c"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("apibody/config.toml")
}

// Load loads the config from disk or creates default
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Populate defaults for missing fields (migration)
	defaults := DefaultConfig()
	updated := false

	if cfg.Theme.TextPrimary == "" {
		cfg.Theme = defaults.Theme
		updated = true
	}
	if len(cfg.Keys.NextEditor) == 0 {
		cfg.Keys = defaults.Keys
		updated = true
	}
	if cfg.Editor.MinHeight == 0 {
		cfg.Editor = defaults.Editor
		updated = true
	}

	if updated {
		// Save updated config to persist defaults so user can see/edit them
		if err := cfg.Save(); err != nil {
			// Proceed with in-memory defaults even if save fails
		}
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
