package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types

    "github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Defaults suit a single-machine install
// where the database file lives next to the binary; only the JWT secret
// has no sane default and must be provided.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBPath         string // path of the sqlite database file
    StylePath      string // optional external stylesheet file
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time‑to‑live in minutes
    RefreshTTLDays int    // refresh token time‑to‑live in days
    BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns
// a Config. A .env file in the working directory is loaded first if it
// exists; a missing file is not an error. JWT_SECRET is required and a
// missing value causes the program to exit with a fatal log message.
func Load() Config {
    _ = godotenv.Load() // best effort; env vars already set take precedence

    return Config{
        Env:            getenv("APP_ENV", "dev"),
        Port:           getenv("APP_PORT", "8080"),
        DBPath:         getenv("DB_PATH", "workshop.db"),
        StylePath:      getenv("STYLE_PATH", "estilo.css"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   getenvInt("ACCESS_TOKEN_TTL_MIN", 60),
        RefreshTTLDays: getenvInt("REFRESH_TOKEN_TTL_DAYS", 30),
        BcryptCost:     getenvInt("BCRYPT_COST", 10),
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the variable's value or a default when unset.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt is like getenv but converts the value into an integer. A
// value that does not parse falls back to the default.
func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
