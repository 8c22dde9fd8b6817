package config // package config loads client configuration from environment variables

import (
	"os"            // os provides access to environment variables
	"path/filepath" // filepath joins the default session path
	"time"          // time parses the HTTP timeout duration

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration for the client.  Each field
// corresponds to an environment variable.  Unlike a server there are no
// required values: every setting has a sensible default so the tool works
// against a local backend out of the box.
type Config struct {
	BaseURL     string        // base URL of the backend REST API
	FrontendURL string        // base URL used when building shareable event links
	HTTPTimeout time.Duration // timeout applied to every outgoing request
	SessionFile string        // path of the persisted session file
}

// Load reads configuration from the environment, after loading a .env file
// if one exists in the working directory.  A missing .env is not an error;
// system environment variables are used instead.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:     getenv("API_BASE_URL", "http://localhost:8080"),
		FrontendURL: getenv("FRONTEND_BASE_URL", "http://localhost:5173"),
		HTTPTimeout: parseDur(getenv("HTTP_TIMEOUT", "15s")),
		SessionFile: getenv("SESSION_FILE", defaultSessionFile()),
	}
}

// defaultSessionFile places the session under the user's home directory.
// If the home directory cannot be resolved the file lands in the working
// directory, which keeps the tool usable in minimal environments.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".campusevents-session.json"
	}
	return filepath.Join(home, ".campusevents", "session.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Second
	}
	return d
}
