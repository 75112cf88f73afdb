package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string
	RawReportDir string
	OutputDir    string
	CatalogPath  string

	MatchScoreCutoff  int
	SummaryPointLimit int

	OCRBaseURL      string
	OCRToken        string
	OCRTimeoutMs    int
	OCRRateLimitRPS int

	HTTPAddr string

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	ListenerProvider     string
	ListenerLabel        string
	ListenerIntervalSec  int
	ListenerFetchMax     int
	ListenerProcessBatch int
	ListenerAutoExport   bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawReportDir: getEnv("REPORT_RAW_DIR", filepath.Join(cwd, "data", "raw")),
		OutputDir:    getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		CatalogPath:  getEnv("CATALOG_PATH", ""),

		MatchScoreCutoff:  getEnvInt("MATCH_SCORE_CUTOFF", 75),
		SummaryPointLimit: getEnvInt("SUMMARY_POINT_LIMIT", 3),

		OCRBaseURL:      getEnv("OCR_BASE_URL", ""),
		OCRToken:        getEnv("OCR_TOKEN", ""),
		OCRTimeoutMs:    getEnvInt("OCR_TIMEOUT_MS", 60000),
		OCRRateLimitRPS: getEnvInt("OCR_RATE_LIMIT_RPS", 2),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		ListenerProvider:     getEnv("LISTENER_PROVIDER", "imap"),
		ListenerLabel:        getEnv("LISTENER_LABEL", "INBOX"),
		ListenerIntervalSec:  getEnvInt("LISTENER_INTERVAL_SEC", 30),
		ListenerFetchMax:     getEnvInt("LISTENER_FETCH_MAX", 20),
		ListenerProcessBatch: getEnvInt("LISTENER_PROCESS_BATCH", 20),
		ListenerAutoExport:   getEnvBool("LISTENER_AUTO_EXPORT", true),
	}

	if cfg.MatchScoreCutoff < 0 || cfg.MatchScoreCutoff > 100 {
		return Config{}, fmt.Errorf("MATCH_SCORE_CUTOFF must be in [0,100], got %d", cfg.MatchScoreCutoff)
	}
	if cfg.SummaryPointLimit < 1 {
		return Config{}, fmt.Errorf("SUMMARY_POINT_LIMIT must be at least 1, got %d", cfg.SummaryPointLimit)
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
