package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort            string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string   `env:"DATABASE_URL,required,notEmpty"`
	RunMigrations       bool     `env:"RUN_MIGRATIONS" envDefault:"true"`
	JWTSecret           string   `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int      `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	RedisAddr           string   `env:"REDIS_ADDR"`
	RedisPassword       string   `env:"REDIS_PASSWORD"`
	RedisDB             int      `env:"REDIS_DB" envDefault:"0"`
	FrontendURL         string   `env:"FRONTEND_URL"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	MatchRateLimit      int      `env:"MATCH_RATE_LIMIT" envDefault:"30"`
	MatchRateWindowSecs int      `env:"MATCH_RATE_WINDOW_SECONDS" envDefault:"60"`
	MatchCandidateLimit int      `env:"MATCH_CANDIDATE_LIMIT" envDefault:"500"`
	ConnectRateLimit    int      `env:"CONNECT_RATE_LIMIT" envDefault:"50"` // solicitudes por hora
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AllowedOrigins combina FRONTEND_URL con la lista explicita, sin duplicados ni vacios.
func (c *Config) AllowedOrigins() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range append([]string{c.FrontendURL}, c.CORSAllowedOrigins...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

// MatchRateWindow devuelve la ventana del limiter de matches.
func (c *Config) MatchRateWindow() time.Duration {
	if c.MatchRateWindowSecs <= 0 {
		return time.Minute
	}
	return time.Duration(c.MatchRateWindowSecs) * time.Second
}

// JWTAccessTTL devuelve la vida de los access tokens.
func (c *Config) JWTAccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}
