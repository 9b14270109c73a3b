package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	APIBaseURL string
	Store      string
	StorePath  string
	RedisAddr  string
	LinkMode   string
	Lang       string
	LogLevel   string
	Timeout    time.Duration
	Debug      bool

	// Args are the arguments left after flag parsing.
	Args []string
}

// NewConfig reads flags from args, then lets environment variables (and a
// .env file in the working directory) override them.
func NewConfig(name string, args []string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&config.APIBaseURL, "a", "http://localhost:8080", "API base URL")
	fs.StringVar(&config.Store, "s", "file", "credential store: file, memory or redis")
	fs.StringVar(&config.StorePath, "f", defaultStorePath(), "credential file path")
	fs.StringVar(&config.RedisAddr, "r", "", "redis address for the redis store")
	fs.StringVar(&config.LinkMode, "m", "user", "link mode: user or public")
	fs.StringVar(&config.Lang, "l", "en", "interface language")
	fs.StringVar(&config.LogLevel, "v", "info", "log level")
	fs.DurationVar(&config.Timeout, "t", 10*time.Second, "request timeout")
	fs.BoolVar(&config.Debug, "d", false, "dump submitted payloads")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	config.Args = fs.Args()

	if err := config.fromEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return config, nil
}

func (c *Config) fromEnv() error {
	strs := map[string]*string{
		"SHORTY_API_URL":    &c.APIBaseURL,
		"SHORTY_STORE":      &c.Store,
		"SHORTY_STORE_PATH": &c.StorePath,
		"SHORTY_REDIS_ADDR": &c.RedisAddr,
		"SHORTY_LINK_MODE":  &c.LinkMode,
		"SHORTY_LANG":       &c.Lang,
		"SHORTY_LOG_LEVEL":  &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("SHORTY_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "SHORTY_TIMEOUT")
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv("SHORTY_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "SHORTY_DEBUG")
		}
		c.Debug = b
	}
	return nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBaseURL, validation.Required),
		validation.Field(&c.Store, validation.Required, validation.In("file", "memory", "redis")),
		validation.Field(&c.StorePath, requiredFor(c.Store == "file")...),
		validation.Field(&c.RedisAddr, requiredFor(c.Store == "redis")...),
		validation.Field(&c.LinkMode, validation.Required, validation.In("user", "public")),
		validation.Field(&c.Timeout, validation.Required),
	)
}

func requiredFor(cond bool) []validation.Rule {
	if cond {
		return []validation.Rule{validation.Required}
	}
	return nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "shorty", "credentials.json")
}
