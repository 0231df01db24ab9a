package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/lifetwin-backend/internal/data/db"
	"github.com/yungbote/lifetwin-backend/internal/platform/envutil"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	LogMode     string
	Environment string
	Location    *time.Location

	DB db.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	ScoreConfigPath string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	NarrativeCacheTTL time.Duration

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	NarratorTimeout time.Duration

	MetricsAddr string
	CORSOrigins []string
}

// LoadDotEnv loads .env.local then .env from the working directory. Variables already
// set in the environment win. DOTENV_DISABLED=true skips loading.
func LoadDotEnv() ([]string, error) {
	if envutil.Bool("DOTENV_DISABLED", false) {
		return nil, nil
	}
	var loaded []string
	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("load %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

func LoadConfig(log *logger.Logger) Config {
	tz := envutil.String("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn("invalid APP_TIMEZONE; using UTC", "timezone", tz, "error", err)
		loc = time.UTC
	}

	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "")
	if jwtSecretKey == "" {
		log.Warn("JWT_SECRET_KEY is not set; using an insecure development secret")
		jwtSecretKey = "defaultsecret"
	}

	return Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		Environment: envutil.String("APP_ENV", "development"),
		Location:    loc,
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "lifetwin"),
			SQLitePath:       envutil.String("SQLITE_PATH", ""),
		},
		JWTSecretKey:      jwtSecretKey,
		AccessTokenTTL:    envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		ScoreConfigPath:   envutil.String("SCORE_CONFIG_PATH", ""),
		RedisAddr:         envutil.String("REDIS_ADDR", ""),
		RedisPassword:     envutil.String("REDIS_PASSWORD", ""),
		RedisDB:           envutil.Int("REDIS_DB", 0),
		NarrativeCacheTTL: envutil.Seconds("NARRATIVE_CACHE_TTL_SECONDS", 6*time.Hour),
		OpenAIAPIKey:      envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     envutil.String("OPENAI_BASE_URL", ""),
		OpenAIModel:       envutil.String("OPENAI_MODEL", ""),
		NarratorTimeout:   envutil.Seconds("NARRATOR_TIMEOUT_SECONDS", 8*time.Second),
		MetricsAddr:       envutil.String("METRICS_ADDR", ":9090"),
		CORSOrigins:       envutil.List("CORS_ORIGINS", nil),
	}
}
