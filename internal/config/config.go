package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	PaymentGatewayAddress string
	PaymentKeyID          string
	PaymentKeySecret      string
	SMSGatewayAddress     string
	SMSAPIKey             string
	SessionSecret         string
	SessionTTL            time.Duration
	OTPCodeTTL            time.Duration
	OTPResendCooldown     time.Duration
	OTPMaxAttempts        int
	DeliveryFee           float64
	FreeDeliveryAbove     float64
	PaymentPendingGrace   time.Duration
	ReconcileInterval     time.Duration
	WorkerPoolSize        int
	MaxOrdersBatch        int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultSessionSecret       = "change-me-in-production"
	defaultSessionTTL          = 30 * 24 * time.Hour
	defaultOTPCodeTTL          = 5 * time.Minute
	defaultOTPResendCooldown   = 30 * time.Second
	defaultOTPMaxAttempts      = 5
	defaultDeliveryFee         = 40
	defaultFreeDeliveryAbove   = 500
	defaultPaymentPendingGrace = 15 * time.Minute
	defaultReconcileInterval   = time.Minute
	defaultWorkerPoolSize      = 4
	defaultMaxOrdersBatch      = 32
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		PaymentGatewayAddress: getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		PaymentKeyID:          getString(lookup, "PAYMENT_KEY_ID", ""),
		PaymentKeySecret:      getString(lookup, "PAYMENT_KEY_SECRET", ""),
		SMSGatewayAddress:     getString(lookup, "SMS_GATEWAY_ADDRESS", ""),
		SMSAPIKey:             getString(lookup, "SMS_API_KEY", ""),
		SessionSecret:         getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:            getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		OTPCodeTTL:            getDuration(lookup, "OTP_CODE_TTL", defaultOTPCodeTTL),
		OTPResendCooldown:     getDuration(lookup, "OTP_RESEND_COOLDOWN", defaultOTPResendCooldown),
		OTPMaxAttempts:        getInt(lookup, "OTP_MAX_ATTEMPTS", defaultOTPMaxAttempts),
		DeliveryFee:           getFloat(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		FreeDeliveryAbove:     getFloat(lookup, "FREE_DELIVERY_ABOVE", defaultFreeDeliveryAbove),
		PaymentPendingGrace:   getDuration(lookup, "PAYMENT_PENDING_GRACE", defaultPaymentPendingGrace),
		ReconcileInterval:     getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxOrdersBatch:        getInt(lookup, "RECONCILE_BATCH_SIZE", defaultMaxOrdersBatch),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentGatewayAddress, "p", cfg.PaymentGatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.SMSGatewayAddress, "s", cfg.SMSGatewayAddress, "SMS gateway base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between payment reconcile polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxOrdersBatch, "reconcile-batch", cfg.MaxOrdersBatch, "Maximum orders per reconcile batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxOrdersBatch <= 0 {
		cfg.MaxOrdersBatch = defaultMaxOrdersBatch
	}

	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = defaultOTPMaxAttempts
	}

	if cfg.OTPCodeTTL <= 0 {
		cfg.OTPCodeTTL = defaultOTPCodeTTL
	}

	if cfg.OTPResendCooldown <= 0 {
		cfg.OTPResendCooldown = defaultOTPResendCooldown
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.PaymentPendingGrace <= 0 {
		cfg.PaymentPendingGrace = defaultPaymentPendingGrace
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DeliveryFee < 0 {
		cfg.DeliveryFee = defaultDeliveryFee
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentGatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	if cfg.SMSGatewayAddress == "" {
		return nil, fmt.Errorf("sms gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
