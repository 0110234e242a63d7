package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/th3funto/ninja-store/internal/pricing"
)

type Config struct {
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	Telegram Telegram `envPrefix:"TELEGRAM_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Pricing  Pricing  `envPrefix:"PRICING_"`
}

// Telegram is disabled when Token is empty.
type Telegram struct {
	Token          string        `env:"TOKEN"`
	Debug          bool          `env:"DEBUG"`
	UpdateTimeout  int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"1m"`
}

// Redis is optional. Without an address sessions live in process memory.
type Redis struct {
	Addr           string        `env:"ADDR"`
	Password       string        `env:"PASSWORD"`
	DB             int           `env:"DB" envDefault:"0"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"1m"`
}

type HTTP struct {
	Enabled         bool          `env:"ENABLED" envDefault:"true"`
	Addr            string        `env:"ADDR" envDefault:":8080"`
	RateLimit       float64       `env:"RATE_LIMIT" envDefault:"10"`
	RateBurst       int           `env:"RATE_BURST" envDefault:"30"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Pricing holds the values a fresh calculator session starts with.
type Pricing struct {
	ProductName   string  `env:"PRODUCT_NAME" envDefault:"Iphone 16 / 125gb"`
	USDPrice      float64 `env:"USD_PRICE" envDefault:"800"`
	ExchangeRate  float64 `env:"EXCHANGE_RATE" envDefault:"5.50"`
	ImportFeePct  float64 `env:"IMPORT_FEE_PCT" envDefault:"5"`
	MarginPct     float64 `env:"MARGIN_PCT" envDefault:"5"`
	SmartRounding bool    `env:"SMART_ROUNDING" envDefault:"true"`
	Profile       string  `env:"PROFILE" envDefault:"visaMaster"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	const operation = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: failed to read .env: %w", operation, err)
	}

	return Parse(env.Options{})
}

// Parse builds a Config from opts.Environment, or from the process
// environment when that is nil.
func Parse(opts env.Options) (*Config, error) {
	const operation = "config.Parse"

	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", operation, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" && !c.HTTP.Enabled {
		return errors.New("nothing to run: set TELEGRAM_TOKEN or HTTP_ENABLED=true")
	}
	if c.HTTP.Enabled && c.HTTP.Addr == "" {
		return errors.New("HTTP_ADDR is required when HTTP_ENABLED=true")
	}
	if c.HTTP.RateLimit <= 0 || c.HTTP.RateBurst <= 0 {
		return errors.New("HTTP_RATE_LIMIT and HTTP_RATE_BURST must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if _, err := pricing.Profile(pricing.ProfileID(c.Pricing.Profile)); err != nil {
		return fmt.Errorf("PRICING_PROFILE: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether the bot should run.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != ""
}

// Defaults converts the pricing defaults to calculator inputs.
func (p Pricing) Defaults() pricing.Inputs {
	return pricing.Inputs{
		ForeignPrice:  p.USDPrice,
		ExchangeRate:  p.ExchangeRate,
		ImportFeePct:  p.ImportFeePct,
		MarginPct:     p.MarginPct,
		SmartRounding: p.SmartRounding,
	}
}
