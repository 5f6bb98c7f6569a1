package config

import "os"

// Config captures runtime configuration values used by the relay service.
type Config struct {
	// ServerAddress is the host:port pair the HTTP server listens on. Defaults to ":3000".
	ServerAddress string

	// RecurlyAPIKey is the private API key used to authenticate against the Recurly API.
	RecurlyAPIKey string

	// RecurlyPublicKey is the publishable key handed to the hosted payment page.
	RecurlyPublicKey string

	// RecurlySubdomain identifies the Recurly site (e.g. "mycompany").
	RecurlySubdomain string

	// BackendOrigin is the relay's base URL as seen by the mobile app, used to
	// build the embedded payment page URL (e.g. "http://10.0.2.2:3000").
	BackendOrigin string
}

const (
	defaultServerAddress = ":3000"
	defaultBackendOrigin = "http://localhost:3000"
	envServerAddress     = "BACKEND_ADDR"
	envRecurlyAPIKey     = "RECURLY_API_KEY"
	envRecurlyPublicKey  = "RECURLY_PUBLIC_KEY"
	envRecurlySubdomain  = "RECURLY_SUBDOMAIN"
	envBackendOrigin     = "BACKEND_ORIGIN"
)

// Load reads configuration from environment variables and applies defaults.
// The Recurly keys are not required here: a missing key surfaces as a
// provider error on the first billing call, so startup never blocks on it.
func Load() (Config, error) {
	cfg := Config{
		ServerAddress:    firstNonEmpty(os.Getenv(envServerAddress), defaultServerAddress),
		RecurlyAPIKey:    os.Getenv(envRecurlyAPIKey),
		RecurlyPublicKey: os.Getenv(envRecurlyPublicKey),
		RecurlySubdomain: os.Getenv(envRecurlySubdomain),
		BackendOrigin:    firstNonEmpty(os.Getenv(envBackendOrigin), defaultBackendOrigin),
	}
	return cfg, nil
}

// MissingKeys lists the provider credentials that are not configured, for a
// startup warning.
func (c Config) MissingKeys() []string {
	var missing []string
	if c.RecurlyAPIKey == "" {
		missing = append(missing, envRecurlyAPIKey)
	}
	if c.RecurlyPublicKey == "" {
		missing = append(missing, envRecurlyPublicKey)
	}
	return missing
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
