package config

import "time"

// AppConfig — настройки HTTP-слоя, сессий, уведомлений и платежей.
type AppConfig struct {
	HTTPAddr string
	// Внешний адрес приложения (редиректы чекаута, ссылки в письмах).
	BaseURL string

	SessionTTL time.Duration

	ResendAPIKey string
	EmailFrom    string
	AdminEmail   string

	TelegramToken string

	// Queue — размер буфера очереди уведомлений.
	NotifyQueueSize int
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		EmailFrom:       getEnv("EMAIL_FROM", "FitBook <noreply@fitbook.local>"),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 256),
	}
}
