// Package config provides Viper-based configuration loading for the dungeon
// simulator.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig holds the directories static game content is loaded from.
type ContentConfig struct {
	ItemsDir      string `mapstructure:"items_dir"`
	SkillsDir     string `mapstructure:"skills_dir"`
	ConditionsDir string `mapstructure:"conditions_dir"`
	ArchetypesDir string `mapstructure:"archetypes_dir"`
	NPCsDir       string `mapstructure:"npcs_dir"`
	ScriptsDir    string `mapstructure:"scripts_dir"`
	ImagesDir     string `mapstructure:"images_dir"`
}

// Resolve returns a copy with every relative directory joined onto base.
//
// Postcondition: absolute directories are returned unchanged.
func (c ContentConfig) Resolve(base string) ContentConfig {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	return ContentConfig{
		ItemsDir:      join(c.ItemsDir),
		SkillsDir:     join(c.SkillsDir),
		ConditionsDir: join(c.ConditionsDir),
		ArchetypesDir: join(c.ArchetypesDir),
		NPCsDir:       join(c.NPCsDir),
		ScriptsDir:    join(c.ScriptsDir),
		ImagesDir:     join(c.ImagesDir),
	}
}

// CombatConfig holds combat tuning.
type CombatConfig struct {
	// Seed selects the random source: 0 draws from crypto/rand, anything
	// else seeds a reproducible source.
	Seed uint64 `mapstructure:"seed"`
	// MaxTurns ends a duel in a draw after this many turns.
	MaxTurns int `mapstructure:"max_turns"`
	// ScriptInstructionLimit caps Lua instructions per hook call; 0 uses
	// the scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// SimulateConfig selects the duel the simulate command runs.
type SimulateConfig struct {
	PlayerName string `mapstructure:"player_name"`
	Archetype  string `mapstructure:"archetype"`
	Level      int    `mapstructure:"level"`
	// Opponent is an NPC template ID.
	Opponent string `mapstructure:"opponent"`
	// TurnDelay pauses between turns so a watcher can follow along.
	TurnDelay time.Duration `mapstructure:"turn_delay"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Content  ContentConfig  `mapstructure:"content"`
	Combat   CombatConfig   `mapstructure:"combat"`
	Simulate SimulateConfig `mapstructure:"simulate"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulate(c.Simulate); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	required := []struct{ key, val string }{
		{"content.items_dir", c.ItemsDir},
		{"content.skills_dir", c.SkillsDir},
		{"content.conditions_dir", c.ConditionsDir},
		{"content.archetypes_dir", c.ArchetypesDir},
		{"content.npcs_dir", c.NPCsDir},
	}
	for _, r := range required {
		if r.val == "" {
			errs = append(errs, r.key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("combat.max_turns must be >= 1, got %d", c.MaxTurns))
	}
	if c.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("combat.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulate(s SimulateConfig) error {
	var errs []string
	if s.PlayerName == "" {
		errs = append(errs, "simulate.player_name must not be empty")
	}
	if s.Archetype == "" {
		errs = append(errs, "simulate.archetype must not be empty")
	}
	if s.Level < 1 {
		errs = append(errs, fmt.Sprintf("simulate.level must be >= 1, got %d", s.Level))
	}
	if s.Opponent == "" {
		errs = append(errs, "simulate.opponent must not be empty")
	}
	if s.TurnDelay < 0 {
		errs = append(errs, "simulate.turn_delay must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DUNGEON_ prefix
	v.SetEnvPrefix("DUNGEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.skills_dir", "content/skills")
	v.SetDefault("content.conditions_dir", "content/conditions")
	v.SetDefault("content.archetypes_dir", "content/archetypes")
	v.SetDefault("content.npcs_dir", "content/npcs")
	v.SetDefault("content.scripts_dir", "content/scripts")
	v.SetDefault("content.images_dir", "")

	v.SetDefault("combat.seed", 0)
	v.SetDefault("combat.max_turns", 50)
	v.SetDefault("combat.script_instruction_limit", 0)

	v.SetDefault("simulate.player_name", "Hero")
	v.SetDefault("simulate.archetype", "knight")
	v.SetDefault("simulate.level", 1)
	v.SetDefault("simulate.opponent", "goblin")
	v.SetDefault("simulate.turn_delay", "0s")
}
