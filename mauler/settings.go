package mauler

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the attributes of maulers and the settings of their natural spawning.
type Settings struct {
	// Identifier is the entity identifier sent to clients. Clients only render custom identifiers if a resource
	// pack defines them, so maulers look like rabbits by default.
	Identifier    string  `yaml:"identifier"`
	MaxHealth     float64 `yaml:"max-health"`
	MovementSpeed float64 `yaml:"movement-speed"`
	AttackDamage  float64 `yaml:"attack-damage"`
	// FollowRange is the distance in blocks within which maulers pick and keep their targets.
	FollowRange float64       `yaml:"follow-range"`
	Spawn       SpawnSettings `yaml:"spawn"`
}

// SpawnSettings configures the natural spawning of maulers around players.
type SpawnSettings struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	// Chance is the chance per player per interval that a spawn is attempted.
	Chance float64 `yaml:"chance"`
	// MaxPopulation is the number of loaded maulers above which no more maulers spawn naturally.
	MaxPopulation int     `yaml:"max-population"`
	MinDistance   float64 `yaml:"min-distance"`
	MaxDistance   float64 `yaml:"max-distance"`
}

// DefaultSettings returns the default mauler settings.
func DefaultSettings() Settings {
	return Settings{
		Identifier:    "minecraft:rabbit",
		MaxHealth:     3,
		MovementSpeed: 0.35,
		AttackDamage:  2,
		FollowRange:   16,
		Spawn: SpawnSettings{
			Enabled:       true,
			Interval:      time.Second * 30,
			Chance:        0.1,
			MaxPopulation: 20,
			MinDistance:   24,
			MaxDistance:   48,
		},
	}
}

// LoadSettings reads the settings at the path passed. If no file exists there yet, the default settings are
// written to it and returned.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data, err = yaml.Marshal(s)
		if err != nil {
			return s, fmt.Errorf("encode default settings: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return s, fmt.Errorf("create settings file: %w", err)
		}
		return s, nil
	} else if err != nil {
		return s, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode settings file: %w", err)
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	switch {
	case s.Identifier == "":
		return fmt.Errorf("identifier must not be empty")
	case s.MaxHealth <= 0:
		return fmt.Errorf("max-health must be positive, got %v", s.MaxHealth)
	case s.MovementSpeed <= 0:
		return fmt.Errorf("movement-speed must be positive, got %v", s.MovementSpeed)
	case s.FollowRange <= 0:
		return fmt.Errorf("follow-range must be positive, got %v", s.FollowRange)
	case s.Spawn.Enabled && s.Spawn.Interval <= 0:
		return fmt.Errorf("spawn interval must be positive, got %v", s.Spawn.Interval)
	case s.Spawn.MinDistance > s.Spawn.MaxDistance:
		return fmt.Errorf("spawn min-distance %v exceeds max-distance %v", s.Spawn.MinDistance, s.Spawn.MaxDistance)
	}
	return nil
}
