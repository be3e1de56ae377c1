// Package config loads settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database holds the PostgreSQL settings shared by every binary. Either
// DatabaseURL is set or the individual fields are.
type Database struct {
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string
}

// Config holds the API server configuration.
type Config struct {
	Database

	// JWT signing secret.
	JWTSecret string

	Debug      bool
	Port       string
	TLSDomains []string
	// Users allowed to mint password hashes through the API.
	AdminUsers []string

	// MySQL DSN of the legacy tables, read only by cmd/importlegacy.
	MySQLDSN string
}

// ScraperConfig holds the scraper's configuration.
type ScraperConfig struct {
	Database

	Debug bool

	BaseURL  string
	Headless bool
	// PageTimeout bounds a whole page visit, navigation included.
	PageTimeout time.Duration
	// WaitBudget bounds waiting for the grid on results and proposition
	// pages; StartListWait does the same for start lists, which render
	// slower.
	WaitBudget    time.Duration
	StartListWait time.Duration
	Workers       int
	PlanPath      string
	Location      *time.Location
}

func dbDefaults(v *viper.Viper) {
	v.SetDefault("DB_USER", "travscrape")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "trav")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DEBUG", false)
}

func readDatabase(v *viper.Viper) Database {
	return Database{
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
	}
}

// Load reads the API server configuration.
func Load() *Config {
	v := newViper()
	dbDefaults(v)
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("ADMIN_USERS", "admin")

	cfg := &Config{
		Database:   readDatabase(v),
		JWTSecret:  v.GetString("JWT_SECRET"),
		Debug:      v.GetBool("DEBUG"),
		Port:       v.GetString("PORT"),
		TLSDomains: splitTrimmed(v.GetString("TLS_DOMAINS")),
		AdminUsers: splitTrimmed(v.GetString("ADMIN_USERS")),
		MySQLDSN:   v.GetString("MYSQL_DSN"),
	}

	cfg.validate()
	return cfg
}

// LoadScraper reads the scraper configuration.
func LoadScraper() *ScraperConfig {
	v := newViper()
	dbDefaults(v)
	v.SetDefault("SCRAPE_BASE_URL", "https://sportapp.travsport.se")
	v.SetDefault("SCRAPE_HEADLESS", true)
	v.SetDefault("SCRAPE_PAGE_TIMEOUT", 120*time.Second)
	v.SetDefault("SCRAPE_WAIT_BUDGET", 10*time.Second)
	v.SetDefault("SCRAPE_STARTLIST_WAIT", 60*time.Second)
	v.SetDefault("SCRAPE_WORKERS", 1)
	v.SetDefault("SCRAPE_PLAN", "")
	v.SetDefault("SCRAPE_TIMEZONE", "Europe/Stockholm")

	loc, err := time.LoadLocation(v.GetString("SCRAPE_TIMEZONE"))
	if err != nil {
		log.Fatalf("config: SCRAPE_TIMEZONE: %v", err)
	}

	cfg := &ScraperConfig{
		Database:      readDatabase(v),
		Debug:         v.GetBool("DEBUG"),
		BaseURL:       strings.TrimRight(v.GetString("SCRAPE_BASE_URL"), "/"),
		Headless:      v.GetBool("SCRAPE_HEADLESS"),
		PageTimeout:   v.GetDuration("SCRAPE_PAGE_TIMEOUT"),
		WaitBudget:    v.GetDuration("SCRAPE_WAIT_BUDGET"),
		StartListWait: v.GetDuration("SCRAPE_STARTLIST_WAIT"),
		Workers:       v.GetInt("SCRAPE_WORKERS"),
		PlanPath:      v.GetString("SCRAPE_PLAN"),
		Location:      loc,
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (d Database) PostgresDSN() string {
	if d.DatabaseURL != "" {
		return d.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.DBUser,
		d.DBPass,
		d.DBHost,
		d.DBPort,
		d.DBName,
		d.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (d Database) validate() {
	if d.DatabaseURL == "" && d.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
}

func (c *Config) validate() {
	c.Database.validate()
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
}

func (c *ScraperConfig) validate() {
	c.Database.validate()
	if c.Workers < 1 {
		log.Fatal("config: SCRAPE_WORKERS must be at least 1")
	}
	if c.WaitBudget <= 0 || c.StartListWait <= 0 {
		log.Fatal("config: wait budgets must be positive")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
