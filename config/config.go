package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the service.
type Config struct {
	DatabaseURL       string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	DBSlowQuery       time.Duration `envconfig:"DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
	DBLogQueries      bool          `envconfig:"DB_LOG_QUERIES" default:"false"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8090"`
	BasePath        string        `envconfig:"API_BASE_PATH" default:"/api"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	PageDefaultSize int `envconfig:"PAGE_DEFAULT_SIZE" default:"20"`
	PageMaxSize     int `envconfig:"PAGE_MAX_SIZE" default:"1000"`

	// DisabledMethods are refused on every exposed resource.
	DisabledMethods []string `envconfig:"EXPOSURE_DISABLED_METHODS" default:"POST,PUT,PATCH,DELETE"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Load reads an optional .env file and then the process environment.
func Load(logger logrus.FieldLogger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"http_addr": cfg.HTTPAddr,
		"base_path": cfg.BasePath,
		"origins":   cfg.AllowedOrigins,
		"disabled":  cfg.DisabledMethods,
	}).Info("Configuration loaded")
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.BasePath = strings.TrimRight(c.BasePath, "/")
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		c.BasePath = "/" + c.BasePath
	}

	methods := make([]string, 0, len(c.DisabledMethods))
	for _, m := range c.DisabledMethods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if !knownMethods[m] {
			return fmt.Errorf("EXPOSURE_DISABLED_METHODS: unknown HTTP method %q", m)
		}
		methods = append(methods, m)
	}
	c.DisabledMethods = methods

	if c.PageMaxSize < 1 {
		return fmt.Errorf("PAGE_MAX_SIZE must be positive, got %d", c.PageMaxSize)
	}
	if c.PageDefaultSize < 1 || c.PageDefaultSize > c.PageMaxSize {
		return fmt.Errorf("PAGE_DEFAULT_SIZE must be between 1 and %d, got %d", c.PageMaxSize, c.PageDefaultSize)
	}
	return nil
}

// ConfigureLogger applies the configured level and format to logger.
func (c *Config) ConfigureLogger(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}
