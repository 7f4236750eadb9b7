package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Booking  BookingConfig
	Watcher  WatcherConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSecs  int
}

type QueueConfig struct {
	URL string
}

type BookingConfig struct {
	GranularityMinutes int
	LeadMinutes        int
}

type WatcherConfig struct {
	IntervalSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("SLOT_GRANULARITY_MINUTES", 30)
	viper.SetDefault("BOOKING_LEAD_MINUTES", 30)
	viper.SetDefault("REMINDER_INTERVAL_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTLSecs:  viper.GetInt("CACHE_TTL_SECONDS"),
		},
		Queue: QueueConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Booking: BookingConfig{
			GranularityMinutes: viper.GetInt("SLOT_GRANULARITY_MINUTES"),
			LeadMinutes:        viper.GetInt("BOOKING_LEAD_MINUTES"),
		},
		Watcher: WatcherConfig{
			IntervalSeconds: viper.GetInt("REMINDER_INTERVAL_SECONDS"),
		},
	}

	return config, nil
}
