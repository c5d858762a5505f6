package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Email    EmailConfig
	Registry RegistryConfig
	Engine   EngineConfig
	Report   ReportConfig
}

// EmailConfig holds invoice email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RegistryConfig holds the external GSTIN and IFSC lookup endpoints.
type RegistryConfig struct {
	GSTINEndpoint string `mapstructure:"gstin_endpoint"`
	GSTINKey      string `mapstructure:"gstin_key"`
	IFSCEndpoint  string `mapstructure:"ifsc_endpoint"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// Enabled reports whether a GSTIN registry key has been configured.
func (r *RegistryConfig) Enabled() bool {
	return r.GSTINKey != ""
}

// EngineConfig controls how invoice input is interpreted.
type EngineConfig struct {
	StrictNumbers   bool   `mapstructure:"strict_numbers"`
	DefaultCurrency string `mapstructure:"default_currency"`
	NumberTemplate  string `mapstructure:"number_template"`
}

// ReportConfig holds report export settings.
type ReportConfig struct {
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
	UploadExports bool          `mapstructure:"upload_exports"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"server.port":             "ONEBILL_SERVER_PORT",
	"server.read_timeout":     "ONEBILL_SERVER_READ_TIMEOUT",
	"server.write_timeout":    "ONEBILL_SERVER_WRITE_TIMEOUT",
	"server.environment":      "ONEBILL_SERVER_ENVIRONMENT",
	"db.host":                 "ONEBILL_DB_HOST",
	"db.port":                 "ONEBILL_DB_PORT",
	"db.user":                 "ONEBILL_DB_USER",
	"db.password":             "ONEBILL_DB_PASSWORD",
	"db.name":                 "ONEBILL_DB_NAME",
	"db.sslmode":              "ONEBILL_DB_SSLMODE",
	"db.max_open":             "ONEBILL_DB_MAX_OPEN",
	"db.max_idle":             "ONEBILL_DB_MAX_IDLE",
	"s3.region":               "ONEBILL_S3_REGION",
	"s3.bucket":               "ONEBILL_S3_BUCKET",
	"s3.endpoint":             "ONEBILL_S3_ENDPOINT",
	"s3.access_key":           "ONEBILL_S3_ACCESS_KEY",
	"s3.secret_key":           "ONEBILL_S3_SECRET_KEY",
	"s3.max_file_size_mb":     "ONEBILL_S3_MAX_FILE_SIZE_MB",
	"log.level":               "ONEBILL_LOG_LEVEL",
	"log.format":              "ONEBILL_LOG_FORMAT",
	"cors.allowed_origins":    "ONEBILL_CORS_ALLOWED_ORIGINS",
	"email.provider":          "ONEBILL_EMAIL_PROVIDER",
	"email.region":            "ONEBILL_EMAIL_REGION",
	"email.from_address":      "ONEBILL_EMAIL_FROM_ADDRESS",
	"email.from_name":         "ONEBILL_EMAIL_FROM_NAME",
	"email.frontend_url":      "ONEBILL_EMAIL_FRONTEND_URL",
	"registry.gstin_endpoint": "ONEBILL_REGISTRY_GSTIN_ENDPOINT",
	"registry.gstin_key":      "ONEBILL_REGISTRY_GSTIN_KEY",
	"registry.ifsc_endpoint":  "ONEBILL_REGISTRY_IFSC_ENDPOINT",
	"registry.timeout_secs":   "ONEBILL_REGISTRY_TIMEOUT_SECS",
	"engine.strict_numbers":   "ONEBILL_ENGINE_STRICT_NUMBERS",
	"engine.default_currency": "ONEBILL_ENGINE_DEFAULT_CURRENCY",
	"engine.number_template":  "ONEBILL_ENGINE_NUMBER_TEMPLATE",
	"report.presign_expiry":   "ONEBILL_REPORT_PRESIGN_EXPIRY",
	"report.upload_exports":   "ONEBILL_REPORT_UPLOAD_EXPORTS",
}

// Load reads configuration from environment variables with the ONEBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ONEBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "onebill")
	v.SetDefault("db.password", "onebill_secret")
	v.SetDefault("db.name", "onebill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "onebill-files")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "invoices@onebill.in")
	v.SetDefault("email.from_name", "OneBill")
	v.SetDefault("email.frontend_url", "http://localhost:5173")

	// Registry defaults
	v.SetDefault("registry.gstin_endpoint", "https://appyflow.in/api/verifyGST")
	v.SetDefault("registry.gstin_key", "")
	v.SetDefault("registry.ifsc_endpoint", "https://ifsc.razorpay.com")
	v.SetDefault("registry.timeout_secs", 10)

	// Engine defaults
	v.SetDefault("engine.strict_numbers", false)
	v.SetDefault("engine.default_currency", "INR")
	v.SetDefault("engine.number_template", "INV-{YYYY}{MM}-{SEQ4}")

	// Report defaults
	v.SetDefault("report.presign_expiry", "1h")
	v.SetDefault("report.upload_exports", false)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Hosting platforms set PORT. Use it if ONEBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ONEBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Registry = RegistryConfig{
		GSTINEndpoint: v.GetString("registry.gstin_endpoint"),
		GSTINKey:      v.GetString("registry.gstin_key"),
		IFSCEndpoint:  v.GetString("registry.ifsc_endpoint"),
		TimeoutSecs:   v.GetInt("registry.timeout_secs"),
	}
	cfg.Engine = EngineConfig{
		StrictNumbers:   v.GetBool("engine.strict_numbers"),
		DefaultCurrency: strings.ToUpper(v.GetString("engine.default_currency")),
		NumberTemplate:  v.GetString("engine.number_template"),
	}
	cfg.Report = ReportConfig{
		PresignExpiry: v.GetDuration("report.presign_expiry"),
		UploadExports: v.GetBool("report.upload_exports"),
	}

	if cfg.Engine.NumberTemplate == "" {
		return nil, fmt.Errorf("config: engine.number_template must not be empty")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
