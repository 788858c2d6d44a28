package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	Environment       string
	CompanyName       string
	SeedAdminEmail    string
	SeedAdminPassword string
	RunMigrations     bool
	RunSeed           bool
	MaxBodyBytes      int64
	MetricsEnabled    bool

	// Payroll calculation defaults, overridable per run via the process request.
	WorkingDays int
	StampsFee   float64
	EPFEmpRate  float64
	EPFCoRate   float64
	ETFCoRate   float64
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		Environment:       getEnv("APP_ENV", "development"),
		CompanyName:       getEnv("COMPANY_NAME", "Sri Lanka Tourism Property Co."),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		WorkingDays:       getEnvInt("PAYROLL_WORKING_DAYS", 30),
		StampsFee:         getEnvFloat("PAYROLL_STAMPS_FEE", 25.0),
		EPFEmpRate:        getEnvFloat("PAYROLL_EPF_EMP_RATE", 0.08),
		EPFCoRate:         getEnvFloat("PAYROLL_EPF_CO_RATE", 0.12),
		ETFCoRate:         getEnvFloat("PAYROLL_ETF_CO_RATE", 0.03),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.StampsFee < 0 {
		return fmt.Errorf("PAYROLL_STAMPS_FEE must not be negative")
	}
	for name, rate := range map[string]float64{
		"PAYROLL_EPF_EMP_RATE": c.EPFEmpRate,
		"PAYROLL_EPF_CO_RATE":  c.EPFCoRate,
		"PAYROLL_ETF_CO_RATE":  c.ETFCoRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be a fraction between 0 and 1", name)
		}
	}
	return nil
}
