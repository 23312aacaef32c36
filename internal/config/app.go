package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAddr            = ":8080"
	defaultHighscoresLimit = 10
)

// Load reads variables from the given .env files (".env" when none are
// given) without overriding ones already set. Missing files are not an
// error.
func Load(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to load %s: %w", name, err)
		}
	}
	return nil
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Addr() string {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok && addr != "" {
		return addr
	}
	if port, ok := os.LookupEnv("APP_PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultAddr
}

// HighscoresLimit is both the number of best times kept per difficulty by
// the in-memory board and the default page size of the highscores route.
func HighscoresLimit() (int, error) {
	s, ok := os.LookupEnv("HIGHSCORES_LIMIT")
	if !ok || s == "" {
		return defaultHighscoresLimit, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse HIGHSCORES_LIMIT: %w", err)
	}
	if limit <= 0 {
		return 0, fmt.Errorf("HIGHSCORES_LIMIT must be positive, got %d", limit)
	}
	return limit, nil
}
