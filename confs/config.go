package confs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// MediaDir is the root directory for uploaded recipe images.
func MediaDir() string {
	if v := os.Getenv("MEDIA_DIR"); v != "" {
		return v
	}
	return "media"
}

// Addr is the listen address for the HTTP server.
func Addr() string {
	if v := os.Getenv("PORT"); v != "" {
		return "0.0.0.0:" + v
	}
	return "0.0.0.0:8000"
}
