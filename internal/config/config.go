package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Env   string
	Port  string
	FEURL string
}

type DataBaseConfig struct {
	URL string
}

type RedisConfig struct {
	URI string
}

type AuthConfig struct {
	JWTSecret string
}

type EmailConfig struct {
	From     string
	Password string
}

// MembershipConfig carries the party-level settings the membership workflow
// needs: who receives admin notifications, how membership numbers are
// prefixed and how long a membership stays valid after approval or renewal.
type MembershipConfig struct {
	PartyName    string
	AdminEmail   string
	NumberPrefix string
	ValidityDays int
}

type Config struct {
	Server     ServerConfig
	Database   DataBaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Email      EmailConfig
	Membership MembershipConfig
	IsDev      bool
}

func validateEnv() {
	environmentVariables := []string{
		// server
		"ENV",
		"PORT",
		"FE_URL",
		// database
		"DB_URL",
		// redis
		"REDIS_URI",
		// auth
		"JWT_SECRET",
		// email
		"EMAIL_FROM",
		"EMAIL_PASSWORD",
		// membership
		"ADMIN_EMAIL",
	}
	for _, env := range environmentVariables {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s is not set", env)
		}
	}

}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	validateEnv()

	return &Config{
		Server: ServerConfig{
			Env:   os.Getenv("ENV"),
			Port:  os.Getenv("PORT"),
			FEURL: os.Getenv("FE_URL"),
		},
		Database: DataBaseConfig{
			URL: os.Getenv("DB_URL"),
		},
		Redis: RedisConfig{
			URI: os.Getenv("REDIS_URI"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Email: EmailConfig{
			From:     os.Getenv("EMAIL_FROM"),
			Password: os.Getenv("EMAIL_PASSWORD"),
		},
		Membership: MembershipConfig{
			PartyName:    envOr("PARTY_NAME", "Kenya Great Party"),
			AdminEmail:   os.Getenv("ADMIN_EMAIL"),
			NumberPrefix: envOr("MEMBERSHIP_NUMBER_PREFIX", "KGP"),
			ValidityDays: 365,
		},

		IsDev: os.Getenv("ENV") == "development",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
