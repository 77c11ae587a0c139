// Package config loads the console's runtime configuration from the
// environment. Every knob has a development default; the two secret keys
// fall back to random per-process values with a loud warning so a bare
// `go run` works but sessions do not survive a restart.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
)

type Config struct {
	// ListenAddr is the console's own HTTP listen address.
	ListenAddr string

	// BackendURL is the base URL of the backend REST API, including the
	// /api/ prefix.
	BackendURL string

	// RedisAddr is the display-name cache. Empty disables caching.
	RedisAddr string

	// SagaLogPath is the SQLite file holding the save audit log.
	SagaLogPath string

	// SessionKey encrypts the session cookie; CSRFKey signs CSRF tokens.
	// Both are base64, minimum 32 decoded bytes.
	SessionKey []byte
	CSRFKey    []byte

	// CookieSecure marks cookies Secure; enable behind TLS.
	CookieSecure bool

	// Debug lowers the log level.
	Debug bool
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		BackendURL:   getEnv("BACKEND_URL", "http://localhost:8000/api/"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		SagaLogPath:  getEnv("SAGA_LOG_PATH", "./sagalog.db"),
		SessionKey:   loadKey("SESSION_KEY"),
		CSRFKey:      loadKey("CSRF_KEY"),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		Debug:        getEnv("DEBUG", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// loadKey decodes a base64 key from the environment. Missing or invalid
// keys yield a random per-process key: fine for development, useless in
// production because every restart invalidates existing cookies.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("key not set, generating a random one; set it in production", "env", name)
		return randomKey(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("key invalid or shorter than 32 bytes, generating a random one", "env", name)
		return randomKey(32)
	}
	return decoded
}

func randomKey(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("config: crypto/rand unavailable: " + err.Error())
	}
	return b
}
