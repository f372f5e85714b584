package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries the knobs the auth and booking layers need. It is
// built once in main and handed to constructors, so no package keeps
// a mutable global secret.
type Config struct {
	JWTSecret []byte
	TokenTTL  time.Duration

	// Staff account assigned as handler for customer-originated
	// bookings. Seeded as the "Self-Serve Portal" user.
	SelfServeUserID uint
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// Load reads the app config from the environment. A missing JWT_SECRET
// is fatal: issuing unsigned-in-effect tokens is worse than not booting.
func Load() Config {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		} else {
			log.Printf("warning: invalid TOKEN_TTL_HOURS %q, keeping 24h", raw)
		}
	}

	selfServe := uint(2)
	if raw := strings.TrimSpace(os.Getenv("SELF_SERVE_USER_ID")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			selfServe = uint(id)
		} else {
			log.Printf("warning: invalid SELF_SERVE_USER_ID %q, keeping default", raw)
		}
	}

	return Config{
		JWTSecret:       []byte(secret),
		TokenTTL:        ttl,
		SelfServeUserID: selfServe,
	}
}
