package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgcfg "github.com/Skotchmaster/storefront/pkg/config"
)

type Config struct {
	ServiceName      string
	Port             string
	DatabaseURL      string
	LogLevel         string
	KafkaBrokers     []string
	RedisURL         string
	ProductsCacheTTL time.Duration
	PasswordScheme   string
	BcryptCost       int
	CORSOrigins      []string
}

// Load reads .env when present and then the process environment. DATABASE_URL is required.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	origins := pkgcfg.CSV(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return Config{
		ServiceName:      pkgcfg.EnvDefault("SERVICE_NAME", "storefront"),
		Port:             pkgcfg.EnvDefault("SERVER_PORT", "8080"),
		DatabaseURL:      pkgcfg.MustNonEmpty(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		LogLevel:         pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		KafkaBrokers:     pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
		RedisURL:         os.Getenv("REDIS_URL"),
		ProductsCacheTTL: pkgcfg.EnvDurationDefault("PRODUCTS_CACHE_TTL", 30*time.Second),
		PasswordScheme:   pkgcfg.EnvDefault("PASSWORD_SCHEME", "bcrypt"),
		BcryptCost:       pkgcfg.EnvIntDefault("BCRYPT_COST", 0),
		CORSOrigins:      origins,
	}
}
