package config

import "os"

type Gemini struct {
	APIKey string
	APIURL string
}

type Config struct {
	PostgresURI string
	RedisURI    string
	FrontendURL string
	SecretKey   string
	CookieName  string
	Port        string
	Gemini      Gemini
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "contentdeck_session"),
		Port:        getEnv("PORT", "3000"),
		Gemini: Gemini{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			APIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
