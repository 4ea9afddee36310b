package globals

import "os"

// Context keys
type ContextKey string

const AdminIDKey ContextKey = "adminId"

var JwtSecret = []byte(Getenv("JWT_SECRET", "your-secret-key"))

// Getenv reads an environment variable with a fallback default.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
