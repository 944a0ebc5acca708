package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/linggafajar/sarpras/pkg/kafka"
	"github.com/linggafajar/sarpras/pkg/logger"
	"github.com/linggafajar/sarpras/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"SARPRAS_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"SARPRAS_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

// BackendHTTPServer locates the school backend that owns the item
// catalog and the borrowing records.
type BackendHTTPServer struct {
	Host string `envconfig:"BACKEND_HTTP_HOST" default:"localhost"`
	Port string `envconfig:"BACKEND_HTTP_PORT" default:"3000"`
}

// Popup tunes the notification presenter timers.
type Popup struct {
	AutoClose      bool          `envconfig:"POPUP_AUTOCLOSE" default:"true"`
	AutoCloseDelay time.Duration `envconfig:"POPUP_AUTOCLOSE_DELAY" default:"3s"`
	Transition     time.Duration `envconfig:"POPUP_TRANSITION" default:"300ms"`
	Tick           time.Duration `envconfig:"POPUP_TICK" default:"50ms"`
}

type Session struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"30m"`
}

type Config struct {
	Server   HTTPServer `yaml:"server"`
	Backend  BackendHTTPServer
	Database postgres.Config
	Kafka    kafka.Config
	Popup    Popup
	Session  Session
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}
