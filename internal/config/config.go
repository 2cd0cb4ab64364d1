package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Points   PointsConfig
	Upload   UploadConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// PointsConfig holds the reward schedule for the points engine.
// Milestones maps an uploads count (as a string key, viper-friendly)
// to the bonus awarded when that exact count is reached.
type PointsConfig struct {
	UploadReward int
	SwapReward   int
	RedeemCost   int
	Milestones   map[string]int
}

// UploadConfig holds limits applied to incoming listing images.
type UploadConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "8000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "rewoven")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Points.UploadReward", 5)
	viper.SetDefault("Points.SwapReward", 2)
	viper.SetDefault("Points.RedeemCost", 10)
	viper.SetDefault("Points.Milestones", map[string]int{
		"10": 10,
		"20": 25,
		"50": 50,
	})
	viper.SetDefault("Upload.MaxFileSize", 5*1024*1024) // 5MB
	viper.SetDefault("Upload.AllowedExtensions", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})
}
