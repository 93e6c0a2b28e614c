package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port               string
	UploadDir          string
	ChouffeurUploadDir string
	MaxFileSize        int64
	AllowedMimeTypes   []string
	RateLimitWindow    time.Duration
	RateLimitMax       int
	CORSOrigins        []string
	CORSMethods        []string
	CORSHeaders        []string
	TrustedProxies     []string
	JWTSecret          string
	DeleteRole         string
	StrictContentCheck bool
	LogLevel           string
}

// Load reads an optional .env file and then the process environment into AppEnv.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv builds a Config from the current environment without touching AppEnv.
func FromEnv() Config {
	return Config{
		Port:               getEnvOrDefault("PORT", "5000"),
		UploadDir:          getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		ChouffeurUploadDir: getEnvOrDefault("UPLOAD_DIR_CHOUFFEUR", "./uploads/chouffeur"),
		MaxFileSize:        getInt64Env("MAX_FILE_SIZE", 10*1024*1024),
		AllowedMimeTypes:   getListEnv("ALLOWED_MIME_TYPES", []string{"image/jpeg", "image/png", "image/gif"}),
		RateLimitWindow:    getDurationEnv("RATE_LIMIT_WINDOW_MINUTES", 15, time.Minute),
		RateLimitMax:       getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		CORSOrigins:        getListEnv("CORS_ORIGINS", []string{"*"}),
		CORSMethods:        getListEnv("CORS_METHODS", []string{"GET", "POST", "OPTIONS"}),
		CORSHeaders:        getListEnv("CORS_HEADERS", []string{"Content-Type", "Authorization"}),
		TrustedProxies:     getListEnv("TRUSTED_PROXIES", nil),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", ""),
		DeleteRole:         getEnvOrDefault("DELETE_ROLE", "admin"),
		StrictContentCheck: getBoolEnv("STRICT_CONTENT_CHECK", false),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

// UploadDirs returns the upload roots in lookup order.
func (c Config) UploadDirs() []string {
	return []string{c.UploadDir, c.ChouffeurUploadDir}
}
