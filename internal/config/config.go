package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type ReplOptions struct {
	Prompt             string `toml:"prompt"`
	PromptContinuation string `toml:"prompt-continuation"`
	IndentWidth        int    `toml:"indent-width"`
}

type CompletionOptions struct {
	MaxHeight int  `toml:"max-height"`
	MinHeight int  `toml:"min-height"`
	NoColor   bool `toml:"no-color"`
}

type Theme struct {
	Foreground                     string `toml:"foreground"`
	Background                     string `toml:"background"`
	PromptForeground               string `toml:"prompt-foreground"`
	AutocompleteBackground         string `toml:"autocomplete-background"`
	AutocompleteHeader             string `toml:"autocomplete-header"`
	AutocompletePrefix             string `toml:"autocomplete-prefix"`
	AutocompleteSelectedForeground string `toml:"autocomplete-selected-foreground"`
	AutocompleteSelectedBackground string `toml:"autocomplete-selected-background"`
}

type Config struct {
	Repl       ReplOptions       `toml:"repl"`
	Completion CompletionOptions `toml:"completion"`
	Theme      Theme             `toml:"theme"`
}

func Default() Config {
	return Config{
		Repl: ReplOptions{
			Prompt:             "qrepl> ",
			PromptContinuation: "    -> ",
			IndentWidth:        2,
		},
		Completion: CompletionOptions{
			MaxHeight: 10,
			MinHeight: 0,
			NoColor:   false,
		},
		Theme: Theme{
			Foreground:                     "#B3B1AD",
			Background:                     "#0A0E14",
			PromptForeground:               "#59C2FF",
			AutocompleteBackground:         "#0F1419",
			AutocompleteHeader:             "#E6B450",
			AutocompletePrefix:             "#5CCFE6",
			AutocompleteSelectedForeground: "#0A0E14",
			AutocompleteSelectedBackground: "#E6B450",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Repl.Prompt != "" {
		cfg.Repl.Prompt = userCfg.Repl.Prompt
	}
	if userCfg.Repl.PromptContinuation != "" {
		cfg.Repl.PromptContinuation = userCfg.Repl.PromptContinuation
	}
	if userCfg.Repl.IndentWidth > 0 {
		cfg.Repl.IndentWidth = userCfg.Repl.IndentWidth
	}
	if userCfg.Completion.MaxHeight > 0 {
		cfg.Completion.MaxHeight = userCfg.Completion.MaxHeight
	}
	if userCfg.Completion.MinHeight > 0 {
		cfg.Completion.MinHeight = userCfg.Completion.MinHeight
	}
	if userCfg.Completion.NoColor {
		cfg.Completion.NoColor = true
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.PromptForeground != "" {
		dst.PromptForeground = src.PromptForeground
	}
	if src.AutocompleteBackground != "" {
		dst.AutocompleteBackground = src.AutocompleteBackground
	}
	if src.AutocompleteHeader != "" {
		dst.AutocompleteHeader = src.AutocompleteHeader
	}
	if src.AutocompletePrefix != "" {
		dst.AutocompletePrefix = src.AutocompletePrefix
	}
	if src.AutocompleteSelectedForeground != "" {
		dst.AutocompleteSelectedForeground = src.AutocompleteSelectedForeground
	}
	if src.AutocompleteSelectedBackground != "" {
		dst.AutocompleteSelectedBackground = src.AutocompleteSelectedBackground
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QREPL_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qrepl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qrepl"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
