package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func lookupRequired(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", name)
	}
	return v, nil
}

func loadPassword() (string, error) {
	if password, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		return password, nil
	}

	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}

	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func NewDatabase() (*Database, error) {
	c := &Database{SSLMode: "disable", Port: 5432}
	var err error

	if c.Username, err = lookupRequired("POSTGRES_USER"); err != nil {
		return nil, err
	}
	if c.Password, err = loadPassword(); err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}
	if c.Host, err = lookupRequired("POSTGRES_HOST"); err != nil {
		return nil, err
	}
	if c.DBName, err = lookupRequired("POSTGRES_DB"); err != nil {
		return nil, err
	}
	if portStr, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unable to parse POSTGRES_PORT: %w", err)
		}
		c.Port = uint16(port)
	}
	if sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE"); ok {
		c.SSLMode = sslMode
	}

	return c, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

// DbURL prefers DATABASE_URL and falls back to the POSTGRES_* variables.
func DbURL() (string, error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok && dbURL != "" {
		return dbURL, nil
	}

	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}

// DatabaseConfigured reports whether any database settings are present. The
// server falls back to an in-memory highscores board when they are not.
func DatabaseConfigured() bool {
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		return true
	}
	_, ok := os.LookupEnv("POSTGRES_HOST")
	return ok
}
