// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type InvalidationCfg struct {
	Enabled bool
	Brokers string
	Topic   string
	GroupID string
}

type OrganizationCfg struct {
	ID          string
	Name        string
	Description string
	Address     string
	WelcomeURL  string
	ContactURL  string
	LogoURL     string
}

type Config struct {
	Addr       string
	LogLevel   string
	LogConsole bool

	BeaconID          string
	BeaconName        string
	BeaconDescription string
	BeaconVersion     string
	APIVersion        string
	Environment       string
	WelcomeURL        string
	AlternativeURL    string
	CreateDateTime    string
	UpdateDateTime    string
	Organization      OrganizationCfg

	RedisAddr      string
	CacheTTL       time.Duration
	CacheOpTimeout time.Duration

	Invalidation InvalidationCfg

	CORSOrigins []string
	DemoData    bool
}

func FromEnv() Config {
	return Config{
		Addr:       getenv("ADDR", ":8080"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		LogConsole: getbool("LOG_CONSOLE", false),

		BeaconID:          getenv("BEACON_ID", "org.example.beacon"),
		BeaconName:        getenv("BEACON_NAME", "Example Beacon"),
		BeaconDescription: getenv("BEACON_DESCRIPTION", "Beacon v2 API over example genomic datasets"),
		BeaconVersion:     getenv("BEACON_VERSION", "v2.0.0"),
		APIVersion:        getenv("BEACON_API_VERSION", "v2.0"),
		Environment:       getenv("BEACON_ENVIRONMENT", "PROD"),
		WelcomeURL:        getenv("BEACON_WELCOME_URL", "https://beacon.example.org"),
		AlternativeURL:    getenv("BEACON_ALTERNATIVE_URL", ""),
		CreateDateTime:    getenv("BEACON_CREATE_DATETIME", "2021-02-03T15:07:36Z"),
		UpdateDateTime:    getenv("BEACON_UPDATE_DATETIME", ""),
		Organization: OrganizationCfg{
			ID:          getenv("ORG_ID", "org.example"),
			Name:        getenv("ORG_NAME", "Example Organization"),
			Description: getenv("ORG_DESCRIPTION", ""),
			Address:     getenv("ORG_ADDRESS", ""),
			WelcomeURL:  getenv("ORG_WELCOME_URL", ""),
			ContactURL:  getenv("ORG_CONTACT_URL", ""),
			LogoURL:     getenv("ORG_LOGO_URL", ""),
		},

		RedisAddr:      getenv("REDIS_ADDR", ""),
		CacheTTL:       getduration("CACHE_TTL", 60*time.Second),
		CacheOpTimeout: getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),

		Invalidation: InvalidationCfg{
			Enabled: getbool("INVALIDATION_ENABLED", false),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			Topic:   getenv("KAFKA_TOPIC", "beacon-data-changes"),
			GroupID: getenv("KAFKA_GROUP_ID", "beacon-cache-invalidator"),
		},

		CORSOrigins: splitCSV(getenv("CORS_ORIGINS", "")),
		DemoData:    getbool("BEACON_DEMO_DATA", true),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
