package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvSchemaVersion is the .env layout this build reads
const EnvSchemaVersion = "1.0"

// RequiredEnvVars must be present before the service starts
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"BOT_USERNAME",
}

// placeholders are the values shipped in .env.example
var placeholders = []struct {
	key   string
	value string
}{
	{"API_KEY", "generate_with_openssl_rand_hex_32"},
	{"DB_PASSWORD", "change_this_secure_password"},
	{"TELEGRAM_BOT_TOKEN", "your_telegram_bot_token"},
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); version {
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s)", EnvSchemaVersion)
	case EnvSchemaVersion:
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", EnvSchemaVersion, version)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports settings that work
// but are probably not what the operator intended.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, p := range placeholders {
		if os.Getenv(p.key) == p.value {
			warnings = append(warnings, fmt.Sprintf("%s still holds the .env.example placeholder", p.key))
		}
	}
	if os.Getenv("REFERRAL_BONUS") == "" {
		warnings = append(warnings, fmt.Sprintf("REFERRAL_BONUS is not set, crediting the default of %d", DefaultReferralBonus))
	}
	return warnings, nil
}
