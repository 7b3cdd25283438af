package config

import "os"

// Env reads an environment variable with a fallback default.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Addr is the listen address of the HTTP server.
func Addr() string { return Env("ADDR", ":8080") }

// DataFile is the path of the JSON-file store, used when DB_URL is unset.
func DataFile() string { return Env("DATA_FILE", "students.json") }
