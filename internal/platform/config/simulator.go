package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "secureid/pkg/platform/strings"
)

// Simulator captures configuration of the identity verification simulator.
type Simulator struct {
	Addr               string
	JWTSigningKey      string
	TokenIssuer        string
	TokenAudience      string
	TokenTTL           time.Duration
	SupportedCountries []string
	FaceImageRequired  bool
	IDScanBaseURL      string
	MaxAttempts        int
}

var TokenTTL = 15 * time.Minute

// SimulatorFromEnv builds a Simulator config from environment variables so main stays lean.
func SimulatorFromEnv() Simulator {
	addr := os.Getenv("SECUREID_SIMULATOR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tokenTTL := TokenTTL
	if raw := os.Getenv("SECUREID_TOKEN_TTL"); raw != "" {
		if duration, err := time.ParseDuration(raw); err == nil {
			tokenTTL = duration
		}
	}

	jwtSigningKey := os.Getenv("SECUREID_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden anywhere shared
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	countries := platformstrings.DedupeAndTrimUpper(platformstrings.SplitList(os.Getenv("SECUREID_SUPPORTED_COUNTRIES")))
	if len(countries) == 0 {
		countries = []string{"US"}
	}

	maxAttempts := 3
	if raw := os.Getenv("SECUREID_MAX_ATTEMPTS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxAttempts = n
		}
	}

	return Simulator{
		Addr:               addr,
		JWTSigningKey:      jwtSigningKey,
		TokenIssuer:        envOr("SECUREID_TOKEN_ISSUER", "secureid-simulator"),
		TokenAudience:      envOr("SECUREID_TOKEN_AUDIENCE", "identity-verification"),
		TokenTTL:           tokenTTL,
		SupportedCountries: countries,
		FaceImageRequired:  os.Getenv("SECUREID_FACE_IMAGE_REQUIRED") == "true",
		IDScanBaseURL:      os.Getenv("SECUREID_ID_SCAN_BASE_URL"),
		MaxAttempts:        maxAttempts,
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
