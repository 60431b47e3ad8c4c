package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config configuration de l'application, chargée depuis l'environnement
type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"insights"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"insights"`
	DBName     string `env:"DB_NAME" envDefault:"insightsdb"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Fenêtre de récence pour le statut actif des clients
	RecencyWindowDays int           `env:"RECENCY_WINDOW_DAYS" envDefault:"90"`
	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Load charge .env puis parse l'environnement
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ConnString retourne la connection string PostgreSQL
func (c *Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RecencyWindow retourne la fenêtre de récence en durée
func (c *Config) RecencyWindow() time.Duration {
	return time.Duration(c.RecencyWindowDays) * 24 * time.Hour
}
