package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		TempDir     string `mapstructure:"temp_dir"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret   string `mapstructure:"jwt_secret"`
		TokenHours  int    `mapstructure:"token_hours"`
		AllowSignup bool   `mapstructure:"allow_signup"`
	} `mapstructure:"auth"`
	Storage struct {
		Provider string `mapstructure:"provider"` // "local" or "s3"
		LocalDir string `mapstructure:"local_dir"`
		KeyID    string `mapstructure:"key_id"`
		AppKey   string `mapstructure:"app_key"`
		Endpoint string `mapstructure:"endpoint"`
		Region   string `mapstructure:"region"`
		Bucket   string `mapstructure:"bucket"`
	} `mapstructure:"storage"`
	Bible struct {
		APIBaseURL string `mapstructure:"api_base_url"`
		Language   string `mapstructure:"language"`
	} `mapstructure:"bible"`
	Presets struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"presets"`
}

func Load() *Config {
	viper.SetEnvPrefix("SOLU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.temp_dir")

	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("auth.jwt_secret")
	viper.BindEnv("auth.token_hours")
	viper.BindEnv("auth.allow_signup")

	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.local_dir")
	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket")

	viper.BindEnv("bible.api_base_url")
	viper.BindEnv("bible.language")

	viper.BindEnv("presets.path")

	// Defaults
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.temp_dir", "/tmp/")

	viper.SetDefault("auth.token_hours", 24)
	viper.SetDefault("auth.allow_signup", false)

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_dir", "./media")

	viper.SetDefault("bible.api_base_url", "https://bible-api.com")
	viper.SetDefault("bible.language", "he")

	viper.SetDefault("presets.path", "./presets.yaml")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("Critical: JWT secret is missing (SOLU_AUTH_JWT_SECRET)")
	}
	if cfg.Storage.Provider == "s3" && cfg.Storage.KeyID == "" {
		log.Fatal("Critical: storage key id is missing (SOLU_STORAGE_KEY_ID)")
	}

	return &cfg
}
