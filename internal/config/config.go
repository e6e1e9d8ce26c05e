package config

import "os"

// Config содержит все параметры сервиса, читаемые из переменных окружения.
type Config struct {
	ServiceName string
	APIPort     string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	JWTSecret   string // обязателен, значения по умолчанию нет
	RedisAddr   string // пусто - кэш отключен
	RabbitMQURL string // пусто - публикация событий отключена
	LogLevel    string
}

// Load читает конфигурацию из переменных окружения.
// Отсутствие JWT_SECRET проверяется вызывающей стороной (main завершает процесс).
func Load() *Config {
	return &Config{
		ServiceName: getEnv("SERVICE_NAME", "grocery-api"),
		APIPort:     getEnv("API_PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      getEnv("DB_PASS", ""),
		DBName:      getEnv("DB_NAME", "grocery"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// DSN собирает строку подключения к PostgreSQL.
func (c *Config) DSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPass + " dbname=" + c.DBName + " sslmode=disable"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
