package config

import (
	"log"
	"os"
	"time"
)

// Get returns the environment value for key, or fallback when unset/empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustGet returns the environment value for key or exits. Credentials and
// endpoints are never compiled in, so missing ones are a deployment error.
func MustGet(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s is required", key)
	}
	return v
}

// GetDuration parses the environment value for key as a duration, falling
// back when unset or malformed.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q (using %s)", key, v, fallback)
		return fallback
	}
	return d
}
