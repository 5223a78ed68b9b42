package config

import (
	"os"
	"strconv"
	"time"
)

// Config reúne toda a configuração da aplicação, lida do ambiente na
// inicialização. Não há reconfiguração em runtime.
type Config struct {
	// API
	Port int
	Env  string

	// Banco de dados (Postgres)
	DBHost         string
	DBPort         int
	DBName         string
	DBUser         string
	DBPassword     string
	DBPoolMin      int
	DBPoolMax      int
	DBIdleTimeout  time.Duration
	UseMemoryStore bool

	// JWT
	JWTSecret     string
	JWTExpiration time.Duration

	// Telegram
	TelegramEnabled       bool
	TelegramBotToken      string
	TelegramWebhookURL    string
	TelegramWebhookSecret string

	// WhatsApp
	WhatsAppEnabled       bool
	WhatsAppProvider      string // "meta" ou "twilio"
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
	WhatsAppVerifyToken   string
	TwilioAccountSID      string
	TwilioAuthToken       string
	TwilioWhatsAppFrom    string

	// Gráficos
	ChartsEnabled bool
	ChartWidth    int
	ChartHeight   int

	// Sessões
	SessionTimeout         time.Duration
	SessionCleanupInterval time.Duration

	// Relatórios: fuso fixo para derivação de períodos
	Timezone string

	LogLevel string
}

// Load lê a configuração do ambiente com defaults de desenvolvimento.
func Load() *Config {
	return &Config{
		Port: getEnvInt("API_PORT", 8000),
		Env:  getEnv("APP_ENV", "development"),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnvInt("DB_PORT", 5432),
		DBName:         getEnv("DB_NAME", "vendas"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASS", ""),
		DBPoolMin:      getEnvInt("DB_POOL_MIN", 5),
		DBPoolMax:      getEnvInt("DB_POOL_MAX", 15),
		DBIdleTimeout:  getEnvDuration("DB_IDLE_TIMEOUT", 30*time.Second),
		UseMemoryStore: getEnvBool("USE_MEMORY_STORE", false),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		JWTExpiration: getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour),

		TelegramEnabled:       getEnvBool("ENABLE_TELEGRAM", false),
		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramWebhookURL:    getEnv("TELEGRAM_WEBHOOK_URL", ""),
		TelegramWebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),

		WhatsAppEnabled:       getEnvBool("ENABLE_WHATSAPP", false),
		WhatsAppProvider:      getEnv("WHATSAPP_PROVIDER", "meta"),
		WhatsAppPhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WhatsAppAccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_WEBHOOK_VERIFY_TOKEN", ""),
		TwilioAccountSID:      getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:       getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom:    getEnv("TWILIO_WHATSAPP_FROM", ""),

		ChartsEnabled: getEnvBool("ENABLE_CHARTS", false),
		ChartWidth:    getEnvInt("CHART_WIDTH", 1200),
		ChartHeight:   getEnvInt("CHART_HEIGHT", 600),

		SessionTimeout:         getEnvDuration("SESSION_TIMEOUT", 24*time.Hour),
		SessionCleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour),

		Timezone: getEnv("REPORT_TIMEZONE", "America/Manaus"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
