package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL         = "https://api.microbiomedata.org"
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "nmdc-app/1.0"
	DefaultServerName     = "nmdc"
)

// Init wires environment, .env file and the root command's persistent flags
// into viper.
func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	loadEnvFile(viper.GetString(KeyEnvFile))
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

// loadEnvFile reads credentials the same way the minter expects them:
// plain NMDC_CLIENT_ID / NMDC_CLIENT_SECRET entries in a dotenv file.
func loadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)
}

func setDefaults() {
	viper.SetDefault(KeyAPIURL, DefaultAPIURL)
	viper.SetDefault(KeyRequestTimeout, DefaultRequestTimeout.String())
	viper.SetDefault(KeyUserAgent, DefaultUserAgent)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHTTPAddr, "127.0.0.1:8000")
	viper.SetDefault(KeyServerName, DefaultServerName)
}

func APIURL() string       { return strings.TrimRight(viper.GetString(KeyAPIURL), "/") }
func UserAgent() string    { return viper.GetString(KeyUserAgent) }
func ClientID() string     { return viper.GetString(KeyClientID) }
func ClientSecret() string { return viper.GetString(KeyClientSecret) }
func LogLevel() string     { return strings.ToLower(viper.GetString(KeyLogLevel)) }
func Transport() string    { return strings.ToLower(viper.GetString(KeyTransport)) }
func HTTPAddr() string     { return viper.GetString(KeyHTTPAddr) }
func ServerName() string   { return viper.GetString(KeyServerName) }

// RequestTimeout parses nmdc_request_timeout, falling back to the 30s default
// on empty or malformed values.
func RequestTimeout() time.Duration {
	return parseDuration(viper.GetString(KeyRequestTimeout), DefaultRequestTimeout)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
