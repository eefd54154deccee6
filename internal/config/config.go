package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	StoreURL       string
	FrontendOrigin string

	// Notification settings. Missing values disable the related
	// delivery path instead of failing startup.
	NotifyProxyURL   string
	TelegramBotToken string
	TelegramChatID   string
	LineChannelToken string
	LineGroupID      string
	WebhookURL       string

	NotifierPort string
	RegistryPath string

	// Store emulator database.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	StorePort  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		StoreURL:       getEnv("STORE_URL", ""),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),

		NotifyProxyURL:   getEnv("NOTIFY_PROXY_URL", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		LineChannelToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineGroupID:      getEnv("LINE_GROUP_ID", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		NotifierPort: getEnv("NOTIFIER_PORT", "3001"),
		RegistryPath: getEnv("REGISTRY_PATH", "./notifier.db"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "teamtask_user"),
		DBPassword: getEnv("DB_PASSWORD", "teamtask_pass"),
		DBName:     getEnv("DB_NAME", "teamtask_db"),
		StorePort:  getEnv("STORE_PORT", "8090"),
	}
}

// Validate checks the settings the application server cannot run without.
// Notification credentials are deliberately not checked here: their absence
// disables the feature, it does not prevent startup.
func (c *Config) Validate() error {
	if c.StoreURL == "" {
		return errors.New("STORE_URL is not set: the task store endpoint is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
