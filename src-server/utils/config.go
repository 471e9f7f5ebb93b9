package utils

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	dbPath   string
	location *time.Location

	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	smtpFrom     string

	metricPort               string
	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		dbPath: func() string {
			dbPath := os.Getenv("DB_PATH")
			if dbPath == "" {
				dbPath = "./sqlite.db"
			}
			slog.Debug("env", "DB_PATH", dbPath)
			return dbPath
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		smtpHost: func() string {
			smtpHost := os.Getenv("SMTP_HOST")
			if smtpHost == "" {
				slog.Warn("SMTP_HOST is not set, mail dispatch disabled")
			}
			slog.Debug("env", "SMTP_HOST", smtpHost)
			return smtpHost
		}(),
		smtpPort: func() int {
			smtpPortStr := os.Getenv("SMTP_PORT")
			if smtpPortStr == "" {
				smtpPortStr = "587"
			}
			smtpPort, err := strconv.Atoi(smtpPortStr)
			if err != nil {
				slog.Error("invalid SMTP_PORT", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "SMTP_PORT", smtpPort)
			return smtpPort
		}(),
		smtpUsername: os.Getenv("SMTP_USERNAME"),
		smtpPassword: os.Getenv("SMTP_PASSWORD"),
		smtpFrom: func() string {
			smtpFrom := os.Getenv("SMTP_FROM")
			if smtpFrom == "" && os.Getenv("SMTP_HOST") != "" {
				slog.Error("SMTP_FROM is not set")
				os.Exit(1)
			}
			slog.Debug("env", "SMTP_FROM", smtpFrom)
			return smtpFrom
		}(),

		metricPort: func() string {
			metricPort := os.Getenv("METRIC_PORT")
			if metricPort == "" {
				metricPort = "8080"
			}
			slog.Debug("env", "METRIC_PORT", metricPort)
			return metricPort
		}(),
		metricCollectionInterval: func() time.Duration {
			intervalStr := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if intervalStr == "" {
				intervalStr = "15s"
			}
			duration, err := time.ParseDuration(intervalStr)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", duration)
			return duration
		}(),
	}
}

// Get DB_PATH env, default to ./sqlite.db
func (c *Config) GetDBPath() string {
	return c.dbPath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get SMTP_HOST env; blank means mail dispatch is disabled
func (c *Config) GetSMTPHost() string {
	return c.smtpHost
}

// Get SMTP_PORT env, default to 587
func (c *Config) GetSMTPPort() int {
	return c.smtpPort
}

// Get SMTP_USERNAME env
func (c *Config) GetSMTPUsername() string {
	return c.smtpUsername
}

// Get SMTP_PASSWORD env
func (c *Config) GetSMTPPassword() string {
	return c.smtpPassword
}

// Get SMTP_FROM env
func (c *Config) GetSMTPFrom() string {
	return c.smtpFrom
}

// Get METRIC_PORT env, default to 8080
func (c *Config) GetMetricPort() string {
	return c.metricPort
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
