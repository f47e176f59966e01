package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvToggle disables .env loading when set to a false-like value.
const DotEnvToggle = "INTERCAMBIO_DOTENV"

// DefaultDotEnvFiles lists the files LoadDotEnv reads, most specific first.
var DefaultDotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads variables from the given files without overriding values
// already present in the environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if DotEnvDisabled() {
		return nil
	}
	if len(paths) == 0 {
		paths = DefaultDotEnvFiles
	}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		log.Printf("loaded env from %s", p)
	}
	return nil
}

// DotEnvDisabled reports whether DotEnvToggle turns .env loading off.
func DotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DotEnvToggle))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
