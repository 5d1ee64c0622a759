package server

import (
	"time"

	"github.com/devenkumar1/Portfolio-app/internal/storage"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	Security string // starttls | ssl | none
}

type Config struct {
	Addr            string
	MongoURI        string
	MongoDB         string
	UsersCollection string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	// AdminSetupEnabled gates the bootstrap endpoint; deployments must turn
	// it off after the first admin exists. The key is checked on every call.
	AdminSetupEnabled bool
	AdminSetupKey     string

	OwnerEmail   string // contact-form recipient
	SecureCookie bool   // set on HTTPS deployments

	SMTP SMTPConfig
	S3   storage.S3Config
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.UsersCollection == "" {
		c.UsersCollection = "users"
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = "portfolio-backend"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 30 * 24 * time.Hour
	}
	if c.SMTP.Security == "" {
		c.SMTP.Security = "starttls"
	}
}
