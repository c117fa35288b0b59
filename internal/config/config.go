package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ServerConfig struct {
	Env  string
	Port string
}

type AuthConfig struct {
	JWTSecret string
}

type DuesConfig struct {
	// MonthlyAmount is the fixed monthly due in Ghana cedis.
	MonthlyAmount decimal.Decimal
	// RolloverSpec is the cron spec for the monthly dues reset.
	RolloverSpec string
}

type GatewayConfig struct {
	// Delay applied by the simulated mobile-money gateway per call.
	Delay time.Duration
}

type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Dues    DuesConfig
	Gateway GatewayConfig
	IsDev   bool
}

func validateEnv() {
	environmentVariables := []string{
		// server
		"ENV",
		"PORT",
		// auth
		"JWT_SECRET",
	}
	for _, env := range environmentVariables {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s is not set", env)
		}
	}
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	validateEnv()

	monthlyDues := decimal.NewFromFloat(50.00)
	if v := os.Getenv("DUES_AMOUNT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			monthlyDues = d
		}
	}

	gatewayDelay := 2 * time.Second
	if v := os.Getenv("GATEWAY_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			gatewayDelay = time.Duration(ms) * time.Millisecond
		}
	}

	rolloverSpec := os.Getenv("DUES_ROLLOVER_SPEC")
	if rolloverSpec == "" {
		// midnight on the first of every month
		rolloverSpec = "0 0 1 * *"
	}

	return &Config{
		Server: ServerConfig{
			Env:  os.Getenv("ENV"),
			Port: os.Getenv("PORT"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Dues: DuesConfig{
			MonthlyAmount: monthlyDues,
			RolloverSpec:  rolloverSpec,
		},
		Gateway: GatewayConfig{
			Delay: gatewayDelay,
		},

		IsDev: os.Getenv("ENV") == "development",
	}
}
