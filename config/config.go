package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	GatewayRazorpay = "razorpay"
	GatewayStripe   = "stripe"
)

type Config struct {
	HTTPAddr    string
	PostgresURL string
	RedisAddr   string

	PaymentGateway    string
	RazorpayKeyID     string
	RazorpayKeySecret string
	StripeSecretKey   string

	MailerSendAPIKey    string
	MailerSendFromEmail string
	MailerSendFromName  string

	CORSAllowOrigin string
	TrustProxy      bool
	StaticDir       string
}

// Load reads the configuration from the environment. Variables in a .env
// file in the working directory are loaded first, without overriding ones
// that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	trustProxy, err := strconv.ParseBool(getEnvOrDefault("TRUST_PROXY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing TRUST_PROXY: %w", err)
	}

	cfg := Config{
		HTTPAddr:    getEnvOrDefault("HTTP_ADDR", ":8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		PaymentGateway:    getEnvOrDefault("PAYMENT_GATEWAY", GatewayRazorpay),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),

		MailerSendAPIKey:    os.Getenv("MAILERSEND_API_KEY"),
		MailerSendFromEmail: os.Getenv("MAILERSEND_FROM_EMAIL"),
		MailerSendFromName:  getEnvOrDefault("MAILERSEND_FROM_NAME", "Explore India"),

		CORSAllowOrigin: getEnvOrDefault("CORS_ALLOW_ORIGIN", "*"),
		TrustProxy:      trustProxy,
		StaticDir:       os.Getenv("STATIC_DIR"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_URL environment variable is required")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR environment variable is required")
	}

	switch c.PaymentGateway {
	case GatewayRazorpay, GatewayStripe:
	default:
		return fmt.Errorf("unsupported PAYMENT_GATEWAY %q", c.PaymentGateway)
	}

	if c.MailerSendAPIKey != "" && c.MailerSendFromEmail == "" {
		return fmt.Errorf("MAILERSEND_FROM_EMAIL is required when MAILERSEND_API_KEY is set")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
