// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName       = "cwtrainer"
	ConfigType    = "yaml"
	DefaultConfig = `# CW Trainer Configuration

# Practice mode: letters (A-Z ladder), digits (0-9), or words (generator-fed)
mode: "letters"

# Keyer timing
dit_unit_ms: 150        # Base timing unit in milliseconds
symbol_boundary: 1.5    # Press shorter than dit_unit * boundary = dit, else dah
gap_ratio: 3.0          # Quiet period (in dit units) that ends a character

# Session feedback delays
advance_delay_ms: 800   # Correct feedback shown before auto-advance
retry_delay_ms: 1500    # Incorrect feedback shown before retry

# Word mode
word_api_url: ""        # Word generator endpoint (empty = always use fallback)
word_timeout_ms: 10000  # Generator request timeout
fallback_word: "PARIS"  # Used when the generator fails or misbehaves

# Output
debug: false            # Enable debug output
`
)

// Practice modes.
const (
	ModeLetters = "letters"
	ModeDigits  = "digits"
	ModeWords   = "words"
)

// Settings holds all application configuration
type Settings struct {
	// Practice mode
	Mode string `mapstructure:"mode"`

	// Keyer timing
	DitUnitMs      int     `mapstructure:"dit_unit_ms"`
	SymbolBoundary float64 `mapstructure:"symbol_boundary"`
	GapRatio       float64 `mapstructure:"gap_ratio"`

	// Session feedback delays
	AdvanceDelayMs int `mapstructure:"advance_delay_ms"`
	RetryDelayMs   int `mapstructure:"retry_delay_ms"`

	// Word mode
	WordAPIURL    string `mapstructure:"word_api_url"`
	WordTimeoutMs int    `mapstructure:"word_timeout_ms"`
	FallbackWord  string `mapstructure:"fallback_word"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/cwtrainer/
func Init() error {
	// Set defaults
	viper.SetDefault("mode", ModeLetters)
	viper.SetDefault("dit_unit_ms", 150)
	viper.SetDefault("symbol_boundary", 1.5)
	viper.SetDefault("gap_ratio", 3.0)
	viper.SetDefault("advance_delay_ms", 800)
	viper.SetDefault("retry_delay_ms", 1500)
	viper.SetDefault("word_api_url", "")
	viper.SetDefault("word_timeout_ms", 10000)
	viper.SetDefault("fallback_word", "PARIS")
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/cwtrainer/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Practice mode
	validModes := map[string]bool{
		ModeLetters: true,
		ModeDigits:  true,
		ModeWords:   true,
	}
	if !validModes[s.Mode] {
		errs = append(errs, fmt.Errorf("mode must be one of letters, digits, words, got %q", s.Mode))
	}

	// Keyer timing
	if s.DitUnitMs < 20 || s.DitUnitMs > 2000 {
		errs = append(errs, fmt.Errorf("dit_unit_ms must be between 20 and 2000, got %d", s.DitUnitMs))
	}
	if s.SymbolBoundary <= 1.0 || s.SymbolBoundary >= 3.0 {
		errs = append(errs, fmt.Errorf("symbol_boundary must be greater than 1.0 and less than 3.0, got %v", s.SymbolBoundary))
	}
	if s.GapRatio < 1.0 || s.GapRatio > 10.0 {
		errs = append(errs, fmt.Errorf("gap_ratio must be between 1.0 and 10.0, got %v", s.GapRatio))
	}

	// Session feedback delays
	if s.AdvanceDelayMs < 100 || s.AdvanceDelayMs > 10000 {
		errs = append(errs, fmt.Errorf("advance_delay_ms must be between 100 and 10000, got %d", s.AdvanceDelayMs))
	}
	if s.RetryDelayMs < 100 || s.RetryDelayMs > 10000 {
		errs = append(errs, fmt.Errorf("retry_delay_ms must be between 100 and 10000, got %d", s.RetryDelayMs))
	}

	// Word mode
	if s.WordTimeoutMs < 100 || s.WordTimeoutMs > 60000 {
		errs = append(errs, fmt.Errorf("word_timeout_ms must be between 100 and 60000, got %d", s.WordTimeoutMs))
	}
	if s.FallbackWord == "" || strings.ContainsAny(s.FallbackWord, " \t") {
		errs = append(errs, fmt.Errorf("fallback_word must be a non-empty single word, got %q", s.FallbackWord))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
