package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// Supported PDF rendering engines.
const (
	PDFEngineFPDF   = "fpdf"
	PDFEngineChrome = "chrome"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string
	HTTPAddr    string
	LogLevel    string
	Environment string

	// Report rendering
	PageSize       int
	DateFormat     string // Go time layout for completion dates
	Location       *time.Location
	IdentityFields []string // Extra user columns: email, idnumber
	PDFEngine      string

	// Telegram delivery; the bot is disabled when TelegramToken is empty
	TelegramToken     string
	AdminTelegramID   int64
	ManagerTelegramID int64

	// Scheduled exports
	ExportCronSpec  string
	ExportCourseIDs []int64
	ExportFormat    string
}

// TelegramEnabled reports whether a bot token was configured.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.PageSize = 25
	if v := os.Getenv("REPORT_PAGE_SIZE"); v != "" {
		cfg.PageSize, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_PAGE_SIZE: %w", err)
		}
		if cfg.PageSize <= 0 {
			return nil, fmt.Errorf("invalid REPORT_PAGE_SIZE: must be positive, got %d", cfg.PageSize)
		}
	}

	cfg.DateFormat = os.Getenv("REPORT_DATE_FORMAT")
	if cfg.DateFormat == "" {
		cfg.DateFormat = "Monday, 2 January 2006, 3:04 PM"
	}

	tz := os.Getenv("REPORT_TIMEZONE")
	if tz == "" {
		tz = "UTC"
	}
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	cfg.IdentityFields, err = parseIdentityFields(os.Getenv("REPORT_IDENTITY_FIELDS"))
	if err != nil {
		return nil, err
	}

	cfg.PDFEngine = strings.ToLower(os.Getenv("PDF_ENGINE"))
	switch cfg.PDFEngine {
	case "":
		cfg.PDFEngine = PDFEngineFPDF
	case PDFEngineFPDF, PDFEngineChrome:
	default:
		return nil, fmt.Errorf("invalid PDF_ENGINE: %q", cfg.PDFEngine)
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramEnabled() {
		adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
		if adminIDStr == "" {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
		}
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}

		managerIDStr := os.Getenv("MANAGER_TELEGRAM_ID")
		if managerIDStr == "" {
			return nil, fmt.Errorf("MANAGER_TELEGRAM_ID is not set")
		}
		cfg.ManagerTelegramID, err = strconv.ParseInt(managerIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MANAGER_TELEGRAM_ID: %w", err)
		}
	}

	cfg.ExportCronSpec = os.Getenv("EXPORT_CRON_SPEC")
	if cfg.ExportCronSpec == "" {
		cfg.ExportCronSpec = "0 7 * * 1" // Default: 07:00 every Monday
	}

	cfg.ExportCourseIDs, err = parseIDList(os.Getenv("EXPORT_COURSE_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_COURSE_IDS: %w", err)
	}

	cfg.ExportFormat = strings.ToLower(os.Getenv("EXPORT_FORMAT"))
	switch cfg.ExportFormat {
	case "":
		cfg.ExportFormat = "csv"
	case "csv", "excelcsv", "xlsx", "pdf":
	default:
		return nil, fmt.Errorf("invalid EXPORT_FORMAT: %q", cfg.ExportFormat)
	}

	return cfg, nil
}

func parseIdentityFields(raw string) ([]string, error) {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if f != "email" && f != "idnumber" {
			return nil, fmt.Errorf("invalid REPORT_IDENTITY_FIELDS entry: %q", f)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		if id <= 0 {
			return nil, fmt.Errorf("course id must be positive, got %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
