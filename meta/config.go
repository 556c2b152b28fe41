package meta

import (
	"errors"
	"fmt"
	"io/fs"
	"morris/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	RateLimit      RateLimitConfig
	LogLevel       string
	PrettyLogs     bool
	LevelsFile     string // Empty for the built-in levels
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// LoadServerConfig reads the server settings from the environment, after
// loading the given .env files (".env" when none are given) if they exist.
func LoadServerConfig(envFiles ...string) (ServerConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Msgf("no %s file found, using the environment", file)
		} else if err != nil {
			return ServerConfig{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	rps, err := utils.GetEnvFloat("MORRIS_RATE_RPS", 20)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid MORRIS_RATE_RPS: %w", err)
	}
	burst, err := utils.GetEnvInt("MORRIS_RATE_BURST", 40)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid MORRIS_RATE_BURST: %w", err)
	}

	config := ServerConfig{
		Addr:           utils.GetEnv("MORRIS_ADDR", ":8080"),
		AllowedOrigins: utils.GetEnvList("MORRIS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimit: RateLimitConfig{
			Enabled:           rps > 0,
			RequestsPerSecond: rps,
			BurstSize:         burst,
		},
		LogLevel:   utils.GetEnv("MORRIS_LOG_LEVEL", "info"),
		PrettyLogs: utils.GetEnv("MORRIS_LOG_PRETTY", "true") == "true",
		LevelsFile: utils.GetEnv("MORRIS_LEVELS_FILE", ""),
	}
	if err := config.validate(); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (c ServerConfig) validate() error {
	if c.Addr == "" {
		return errors.New("MORRIS_ADDR is empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("MORRIS_ALLOWED_ORIGINS lists no origins")
	}
	if c.RateLimit.Enabled && c.RateLimit.BurstSize < 1 {
		return fmt.Errorf("MORRIS_RATE_BURST must be positive, got %d", c.RateLimit.BurstSize)
	}
	return nil
}

// Levels returns the configured levels.
func (c ServerConfig) Levels() ([]Level, error) {
	if c.LevelsFile == "" {
		return DefaultLevels(), nil
	}
	return LoadLevels(c.LevelsFile)
}
