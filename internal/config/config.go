package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Chain    ChainConfig
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

// JWTConfig holds session-token configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// ChainConfig holds blockchain RPC and contract configuration
type ChainConfig struct {
	RPCURL             string
	ChainID            int64
	Network            string
	QAContract         string
	TokenContract      string
	ExplorerURL        string
	TokenSymbol        string
	TokenDecimals      int
	PlatformPrivateKey string
	RequestTimeout     int // seconds, per RPC call
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
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "wakqa")
	viper.SetDefault("JWT.ExpiresIn", 7*24*60*60) // matches the 7-day session cookie
	viper.SetDefault("Chain.Network", "sepolia")
	viper.SetDefault("Chain.ChainID", 11155111)
	viper.SetDefault("Chain.ExplorerURL", "https://sepolia.etherscan.io")
	viper.SetDefault("Chain.TokenSymbol", "WAK")
	viper.SetDefault("Chain.TokenDecimals", 18)
	viper.SetDefault("Chain.RequestTimeout", 15)
	viper.SetDefault("LogLevel", "info")
}
