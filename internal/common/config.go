package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Storage  StorageConfig
	Notify   NotifyConfig
	Queue    QueueConfig
	Ingest   IngestConfig
	Engine   EngineConfig
	LogLevel string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver           string // postgres | sqlite
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
	GRPCAddr string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Engine         string // tesseract | mistral
	Lang           string
	TessdataDir    string
	MistralAPIKey  string
	MistralBaseURL string
	MistralModel   string
	Timeout        time.Duration
}

type StorageConfig struct {
	Backend     string // local | s3
	Dir         string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           []string
}

type QueueConfig struct {
	Workers        int
	Size           int
	ProcessTimeout time.Duration
}

type IngestConfig struct {
	WatchDir string
}

type EngineConfig struct {
	DateYearWindow int
}

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	OCREngineTesseract = "tesseract"
	OCREngineMistral   = "mistral"

	StorageLocal = "local"
	StorageS3    = "s3"
)

var defaults = map[string]any{
	"db_driver":             DBDriverPostgres,
	"db_url":                "",
	"db_max_conns":          20,
	"db_min_conns":          5,
	"db_max_conn_lifetime":  30 * time.Minute,
	"db_max_conn_idle_time": 5 * time.Minute,
	"db_dial_timeout":       3 * time.Second,
	"db_statement_timeout":  time.Duration(0),
	"http_addr":             ":8081",
	"grpc_addr":             ":8080",
	"ocr_engine":            OCREngineTesseract,
	"ocr_lang":              "mar+eng",
	"tessdata_prefix":       "",
	"mistral_api_key":       "",
	"mistral_base_url":      "https://api.mistral.ai",
	"mistral_model":         "mistral-ocr-latest",
	"ocr_timeout":           2 * time.Minute,
	"storage_backend":       StorageLocal,
	"storage_dir":           "./data/letters",
	"s3_bucket":             "",
	"s3_region":             "auto",
	"s3_endpoint":           "",
	"s3_access_key_id":      "",
	"s3_secret_access_key":  "",
	"resend_api_key":        "",
	"notify_from":           "",
	"notify_to":             "",
	"queue_workers":         4,
	"queue_size":            256,
	"process_timeout":       3 * time.Minute,
	"watch_dir":             "",
	"date_year_window":      5,
	"log_level":             "info",
}

// BindFlags registers the daemon flags on fs. Flag names are the config keys
// with dashes, e.g. --db-url for DB_URL.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "optional config file (yaml, json or toml)")
	fs.String("db-driver", DBDriverPostgres, "database driver: postgres or sqlite")
	fs.String("db-url", "", "database DSN")
	fs.String("http-addr", ":8081", "HTTP listen address")
	fs.String("grpc-addr", ":8080", "gRPC listen address")
	fs.String("ocr-engine", OCREngineTesseract, "OCR engine: tesseract or mistral")
	fs.String("storage-backend", StorageLocal, "object storage: local or s3")
	fs.String("watch-dir", "", "directory to watch for new letters")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

// LoadConfig reads configuration from defaults, an optional config file,
// environment variables and, when fs is non-nil, parsed flags.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	configFile := v.GetString("config_file")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:           strings.ToLower(v.GetString("db_driver")),
			DSN:              v.GetString("db_url"),
			MaxConns:         v.GetInt32("db_max_conns"),
			MinConns:         v.GetInt32("db_min_conns"),
			MaxConnLifetime:  v.GetDuration("db_max_conn_lifetime"),
			MaxConnIdleTime:  v.GetDuration("db_max_conn_idle_time"),
			DialTimeout:      v.GetDuration("db_dial_timeout"),
			StatementTimeout: v.GetDuration("db_statement_timeout"),
		},
		Server: ServerConfig{
			HTTPAddr: v.GetString("http_addr"),
			GRPCAddr: v.GetString("grpc_addr"),
		},
		OCR: OCRConfig{
			Engine:         strings.ToLower(v.GetString("ocr_engine")),
			Lang:           v.GetString("ocr_lang"),
			TessdataDir:    v.GetString("tessdata_prefix"),
			MistralAPIKey:  v.GetString("mistral_api_key"),
			MistralBaseURL: v.GetString("mistral_base_url"),
			MistralModel:   v.GetString("mistral_model"),
			Timeout:        v.GetDuration("ocr_timeout"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(v.GetString("storage_backend")),
			Dir:         v.GetString("storage_dir"),
			S3Bucket:    v.GetString("s3_bucket"),
			S3Region:    v.GetString("s3_region"),
			S3Endpoint:  v.GetString("s3_endpoint"),
			S3AccessKey: v.GetString("s3_access_key_id"),
			S3SecretKey: v.GetString("s3_secret_access_key"),
		},
		Notify: NotifyConfig{
			ResendAPIKey: v.GetString("resend_api_key"),
			From:         v.GetString("notify_from"),
			To:           splitList(v.GetString("notify_to")),
		},
		Queue: QueueConfig{
			Workers:        v.GetInt("queue_workers"),
			Size:           v.GetInt("queue_size"),
			ProcessTimeout: v.GetDuration("process_timeout"),
		},
		Ingest: IngestConfig{
			WatchDir: v.GetString("watch_dir"),
		},
		Engine: EngineConfig{
			DateYearWindow: v.GetInt("date_year_window"),
		},
		LogLevel: v.GetString("log_level"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func configError(msg string) error {
	return NewAppError("CONFIG_ERROR", msg, ErrInvalidInput)
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return configError(fmt.Sprintf("DB_DRIVER %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		return configError("DB_URL is required")
	}
	if c.Server.GRPCAddr == "" && c.Server.HTTPAddr == "" {
		return configError("one of GRPC_ADDR or HTTP_ADDR is required")
	}
	switch c.OCR.Engine {
	case OCREngineTesseract:
	case OCREngineMistral:
		if c.OCR.MistralAPIKey == "" {
			return configError("MISTRAL_API_KEY is required when OCR_ENGINE=mistral")
		}
	default:
		return configError(fmt.Sprintf("OCR_ENGINE %q is not supported", c.OCR.Engine))
	}
	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.Dir == "" {
			return configError("STORAGE_DIR is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return configError("S3_BUCKET is required for s3 storage")
		}
	default:
		return configError(fmt.Sprintf("STORAGE_BACKEND %q is not supported", c.Storage.Backend))
	}
	if c.Notify.ResendAPIKey != "" && (c.Notify.From == "" || len(c.Notify.To) == 0) {
		return configError("NOTIFY_FROM and NOTIFY_TO are required when RESEND_API_KEY is set")
	}
	if c.Queue.Workers < 1 || c.Queue.Size < 1 {
		return configError("QUEUE_WORKERS and QUEUE_SIZE must be positive")
	}
	if c.Engine.DateYearWindow < 0 {
		return configError("DATE_YEAR_WINDOW must not be negative")
	}
	return nil
}
