package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080
	DefaultVerifyTicketExpiryMin = 1440
	DefaultResetTicketExpiryMin  = 60
	DefaultSweepIntervalMin      = 60
	DefaultLoginMaxAttempts      = 5
	DefaultLoginWindowMinutes    = 15
	DefaultSMTPPort              = 587
)

type Config struct {
	Env                   string
	Port                  string
	DBURL                 string
	AccessTokenSecret     string
	PreviousTokenSecrets  []string
	AccessExpiryMin       int
	RefreshExpiryMin      int
	VerifyTicketExpiryMin int
	ResetTicketExpiryMin  int
	SweepIntervalMin      int
	LoginMaxAttempts      int
	LoginWindowMinutes    int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
}

func Load() *Config {
	return &Config{
		Env:                   getEnv("ENV", "development"),
		Port:                  getEnv("PORT", DefaultPort),
		DBURL:                 mustGetEnv("DB_URL"),
		AccessTokenSecret:     mustGetEnv("ACCESS_TOKEN_SECRET"),
		PreviousTokenSecrets:  getEnvAsList("PREVIOUS_TOKEN_SECRETS"),
		AccessExpiryMin:       getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:      getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		VerifyTicketExpiryMin: getEnvAsInt("VERIFY_TICKET_EXPIRY", DefaultVerifyTicketExpiryMin),
		ResetTicketExpiryMin:  getEnvAsInt("RESET_TICKET_EXPIRY", DefaultResetTicketExpiryMin),
		SweepIntervalMin:      getEnvAsInt("SWEEP_INTERVAL", DefaultSweepIntervalMin),
		LoginMaxAttempts:      getEnvAsInt("LOGIN_MAX_ATTEMPTS", DefaultLoginMaxAttempts),
		LoginWindowMinutes:    getEnvAsInt("LOGIN_WINDOW_MINUTES", DefaultLoginWindowMinutes),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", DefaultSMTPPort),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "no-reply@famcare.app"),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsList(key string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return nil
	}
	parts := strings.Split(valStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
