// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds announcehub's app-level configuration. WAFFLE's
// CoreConfig covers ports, TLS, logging and CORS; everything here is
// specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// AuthGate selects how mutating announcement calls resolve identity:
	// "session" (signed-in teacher) or "query" (username query parameter).
	AuthGate string

	// Login throttling, applied per client IP and per username.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Audit logging destinations: "all", "db", "log" or "off".
	AuditLogAuth          string
	AuditLogAnnouncements string

	// Bootstrap teacher, upserted on startup when a username is set.
	BootstrapTeacherUsername string
	BootstrapTeacherPassword string
	BootstrapTeacherName     string
}
