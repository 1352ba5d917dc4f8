package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	Bucket         string

	AllowedMimeTypes []string
	RenditionWidths  []int
	MaxJobRetry      int
	StartupTimeout   time.Duration

	JWTPublicKey string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range []string{
		"MARIADB_DSN",
		"SERVER_PORT",
		"REDIS_ADDR",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("MARIADB_MAX_OPEN_CONN", 25)
	viper.SetDefault("MARIADB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("MARIADB_CONN_MAX_LIFETIME", 300)
	viper.SetDefault("BUCKET", "picstream")
	viper.SetDefault("ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp")
	viper.SetDefault("RENDITION_WIDTHS", "200,640,1280")
	viper.SetDefault("MAX_JOB_RETRY", 5)
	viper.SetDefault("STARTUP_TIMEOUT", 15)

	widths, err := parseWidths(viper.GetString("RENDITION_WIDTHS"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		Bucket:         viper.GetString("BUCKET"),

		AllowedMimeTypes: splitList(viper.GetString("ALLOWED_MIME_TYPES")),
		RenditionWidths:  widths,
		MaxJobRetry:      viper.GetInt("MAX_JOB_RETRY"),
		StartupTimeout:   time.Duration(viper.GetInt("STARTUP_TIMEOUT")) * time.Second,

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),
	}, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseWidths(raw string) ([]int, error) {
	var widths []int
	for _, p := range splitList(raw) {
		var w int
		if _, err := fmt.Sscanf(p, "%d", &w); err != nil || w <= 0 {
			return nil, fmt.Errorf("RENDITION_WIDTHS: invalid width %q", p)
		}
		widths = append(widths, w)
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("RENDITION_WIDTHS must list at least one width")
	}
	return widths, nil
}
