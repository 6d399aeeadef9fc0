package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	JWTKey      string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	Sender     string
	SenderName string
	MailRPS    int

	// Independent knobs that happen to share a default.
	SweepInterval time.Duration
	UnverifiedTTL time.Duration

	SeedFile    string
	SeedWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotelbooking?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		JWTKey:      env("JWT_KEY", ""),
		JWTIssuer:   env("JWT_ISSUER", "hotelbooking"),
		JWTAudience: env("JWT_AUDIENCE", "hotelbooking"),
		JWTTTL:      time.Duration(atoi("JWT_EXPIRES_MINUTES", 60)) * time.Minute,

		SMTPHost:   env("SMTP_HOST", "localhost"),
		SMTPPort:   atoi("SMTP_PORT", 587),
		SMTPUser:   env("SMTP_USERNAME", ""),
		SMTPPass:   env("SMTP_PASSWORD", ""),
		Sender:     env("SMTP_SENDER", "noreply@hotelbooking.local"),
		SenderName: env("SMTP_SENDER_NAME", "Hotel Booking"),
		MailRPS:    atoi("MAIL_RPS", 1),

		SweepInterval: time.Duration(atoi("SWEEP_INTERVAL_MINUTES", 10)) * time.Minute,
		UnverifiedTTL: time.Duration(atoi("UNVERIFIED_TTL_MINUTES", 10)) * time.Minute,

		SeedFile:    env("SEED_FILE", "seed/hotels.json"),
		SeedWorkers: atoi("SEED_WORKERS", 4),
	}
	if c.JWTKey == "" {
		log.Warn().Msg("JWT_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
