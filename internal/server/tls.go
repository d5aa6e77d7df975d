package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"todo-api/internal/logging"

	"github.com/sirupsen/logrus"
)

// TLSConfig holds HTTPS configuration. When Enabled, the API is served on Port
// with TLS and, if RedirectHTTP is set, plain HTTP on HTTPPort redirects to it.
type TLSConfig struct {
	Enabled      bool
	CertFile     string
	KeyFile      string
	Port         string
	HTTPPort     string
	RedirectHTTP bool
	MinVersion   uint16
}

// NewTLSConfigFromEnv creates TLS config from environment variables
func NewTLSConfigFromEnv() *TLSConfig {
	return &TLSConfig{
		Enabled:      getEnvBool("TLS_ENABLED", false),
		CertFile:     getEnv("TLS_CERT_FILE", "./certs/server.crt"),
		KeyFile:      getEnv("TLS_KEY_FILE", "./certs/server.key"),
		Port:         getEnv("TLS_PORT", "8443"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		RedirectHTTP: getEnvBool("TLS_REDIRECT_HTTP", false),
		MinVersion:   parseTLSVersion(getEnv("TLS_MIN_VERSION", "1.2")),
	}
}

// Build loads the key pair and returns the server *tls.Config
func (c *TLSConfig) Build() (*tls.Config, error) {
	if _, err := os.Stat(c.CertFile); err != nil {
		return nil, fmt.Errorf("certificate file not found: %s", c.CertFile)
	}
	if _, err := os.Stat(c.KeyFile); err != nil {
		return nil, fmt.Errorf("key file not found: %s", c.KeyFile)
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	logging.Logger.Infof("TLS configured: cert=%s, minVersion=%s", c.CertFile, tlsVersionString(c.MinVersion))

	return &tls.Config{
		Certificates:     []tls.Certificate{cert},
		MinVersion:       c.MinVersion,
		CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP256, tls.CurveP384},
	}, nil
}

// HTTPSRedirectHandler redirects every request to the same path on httpsPort
func HTTPSRedirectHandler(httpsPort string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if colonPos := strings.LastIndex(host, ":"); colonPos != -1 {
			host = host[:colonPos]
		}

		httpsURL := fmt.Sprintf("https://%s:%s%s", host, httpsPort, r.RequestURI)
		if httpsPort == "443" {
			httpsURL = fmt.Sprintf("https://%s%s", host, r.RequestURI)
		}

		logging.Logger.WithFields(logrus.Fields{
			"client_ip": r.RemoteAddr,
			"https_url": httpsURL,
			"method":    r.Method,
		}).Debug("HTTP to HTTPS redirect")

		// 308 keeps PUT and DELETE bodies intact
		http.Redirect(w, r, httpsURL, http.StatusPermanentRedirect)
	})
}

func parseTLSVersion(version string) uint16 {
	switch version {
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		logging.Logger.Warnf("Unsupported TLS version '%s', using TLS 1.2", version)
		return tls.VersionTLS12
	}
}

func tlsVersionString(version uint16) string {
	switch version {
	case tls.VersionTLS12:
		return "TLS 1.2"
	case tls.VersionTLS13:
		return "TLS 1.3"
	default:
		return fmt.Sprintf("Unknown (0x%04x)", version)
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
