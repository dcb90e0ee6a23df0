package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrSecretRequired = errors.New("AUTH_SECRET, EMAIL_VERIFICATION_SECRET and PASSWORD_RESET_SECRET are required")

type Config struct {
	Port     string
	MongoURI string
	Database string

	AuthSecret              []byte
	EmailVerificationSecret []byte
	PasswordResetSecret     []byte

	// Mail is only sent through mailgun when both are set, otherwise it is logged.
	MailgunDomain string
	MailgunAPIKey string
	MailFrom      string
	FrontendURL   string

	// Events are only published when set.
	RabbitMQURL string

	EventName      string
	AllowedOrigins []string
	Debug          bool
}

// Database is the part of the configuration needed by tools that only talk to MongoDB.
type Database struct {
	URI  string
	Name string
}

// LoadDatabase reads the MongoDB settings, applying .env like Load.
func LoadDatabase() Database {
	_ = godotenv.Load()

	return Database{
		URI:  envOrDefaultString("MONGO_URI", "mongodb://localhost:27017"),
		Name: envOrDefaultString("MONGO_DATABASE", "hackathon"),
	}
}

func envOrDefaultString(env, def string) string {
	if val, ok := os.LookupEnv(env); ok {
		return val
	}

	return def
}

func envOrDefaultBool(env string, def bool) bool {
	val, ok := os.LookupEnv(env)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}

	return b
}

// Load reads the configuration from the environment. A .env file in the working
// directory is applied first, without overriding variables that are already set.
func Load() (*Config, error) {
	db := LoadDatabase()

	c := &Config{
		Port:                    envOrDefaultString("PORT", "8000"),
		MongoURI:                db.URI,
		Database:                db.Name,
		AuthSecret:              []byte(os.Getenv("AUTH_SECRET")),
		EmailVerificationSecret: []byte(os.Getenv("EMAIL_VERIFICATION_SECRET")),
		PasswordResetSecret:     []byte(os.Getenv("PASSWORD_RESET_SECRET")),
		MailgunDomain:           os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey:           os.Getenv("MAILGUN_API_KEY"),
		MailFrom:                envOrDefaultString("MAIL_FROM", "Hackathon <noreply@localhost>"),
		FrontendURL:             strings.TrimRight(envOrDefaultString("FRONTEND_URL", "http://localhost:3000"), "/"),
		RabbitMQURL:             os.Getenv("RABBITMQ_CONNSTRING"),
		EventName:               envOrDefaultString("EVENT_NAME", "TartanHacks"),
		AllowedOrigins:          splitList(envOrDefaultString("ALLOWED_ORIGINS", "http://localhost:3000")),
		Debug:                   envOrDefaultBool("DEBUG", false),
	}

	if len(c.AuthSecret) == 0 || len(c.EmailVerificationSecret) == 0 || len(c.PasswordResetSecret) == 0 {
		return nil, ErrSecretRequired
	}

	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
