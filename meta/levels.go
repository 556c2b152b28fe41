package meta

import (
	_ "embed"
	"errors"
	"fmt"
	"morris/game"
	"morris/utils"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrUnknownLevel = errors.New("unknown level")

//go:embed levels.yaml
var defaultLevels []byte

// Level is a named set of rules.
type Level struct {
	Name       string `yaml:"name" json:"name"`
	game.Rules `yaml:",inline"`
}

// DefaultLevels returns the built-in levels.
func DefaultLevels() []Level {
	levels, err := ParseLevels(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("built-in levels are broken: %v", err))
	}
	return levels
}

// LoadLevels reads levels from a YAML file.
func LoadLevels(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels: %w", err)
	}
	return ParseLevels(data)
}

// ParseLevels decodes a YAML list of levels. Every level must have a unique
// name and valid rules.
func ParseLevels(data []byte) ([]Level, error) {
	var levels []Level
	if err := yaml.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("failed to parse levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, errors.New("no levels defined")
	}

	var names []string
	for _, level := range levels {
		if level.Name == "" {
			return nil, errors.New("level without a name")
		}
		if utils.FindIndex(names, level.Name) >= 0 {
			return nil, fmt.Errorf("duplicate level %q", level.Name)
		}
		if err := level.Validate(); err != nil {
			return nil, fmt.Errorf("level %q: %w", level.Name, err)
		}
		names = append(names, level.Name)
	}
	return levels, nil
}

// FindLevel looks up a level by name.
func FindLevel(levels []Level, name string) (Level, error) {
	i := utils.FindIndexFunc(levels, func(l Level) bool { return l.Name == name })
	if i < 0 {
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return levels[i], nil
}
