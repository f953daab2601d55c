package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host string `yaml:"host" toml:"host"`
	Port int    `yaml:"port" toml:"port"`
	Env  string `yaml:"env" toml:"env"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // postgres, mysql, sqlite
	DSN    string `yaml:"url" toml:"url"`
}

type CompanyDomainSeed struct {
	Ticker      string   `yaml:"ticker" toml:"ticker"`
	CompanyName string   `yaml:"company_name" toml:"company_name"`
	Domains     []string `yaml:"domains" toml:"domains"`
}

type ReviewsConfig struct {
	Backend         string              `yaml:"backend" toml:"backend"` // gorm or mongo
	MongoURI        string              `yaml:"mongo_uri" toml:"mongo_uri"`
	MongoDatabase   string              `yaml:"mongo_database" toml:"mongo_database"`
	EmailHashSalt   string              `yaml:"email_hash_salt" toml:"email_hash_salt"`
	CodeTTL         Duration            `yaml:"code_ttl" toml:"code_ttl"`
	MaxCodesPerDay  int                 `yaml:"max_codes_per_day" toml:"max_codes_per_day"`
	CooldownDays    int                 `yaml:"cooldown_days" toml:"cooldown_days"`
	SweepInterval   Duration            `yaml:"sweep_interval" toml:"sweep_interval"`
	AdminEmails     []string            `yaml:"admin_emails" toml:"admin_emails"`
	CompanyDomains  []CompanyDomainSeed `yaml:"company_domains" toml:"company_domains"`
	MaxCommentRunes int                 `yaml:"max_comment_runes" toml:"max_comment_runes"`
}

type AnalysisConfig struct {
	Runner            string   `yaml:"runner" toml:"runner"` // exec or nats
	Command           []string `yaml:"command" toml:"command"`
	WorkDir           string   `yaml:"workdir" toml:"workdir"`
	Timeout           Duration `yaml:"timeout" toml:"timeout"`
	ResolveCommand    []string `yaml:"resolve_command" toml:"resolve_command"`
	ResolveTimeout    Duration `yaml:"resolve_timeout" toml:"resolve_timeout"`
	NATSURL           string   `yaml:"nats_url" toml:"nats_url"`
	NATSSubject       string   `yaml:"nats_subject" toml:"nats_subject"`
	NATSStatusSubject string   `yaml:"nats_status_subject" toml:"nats_status_subject"`
}

type JobsConfig struct {
	Backend  string   `yaml:"backend" toml:"backend"` // memory or redis
	RedisURL string   `yaml:"redis_url" toml:"redis_url"`
	TTL      Duration `yaml:"ttl" toml:"ttl"`
}

type NessieConfig struct {
	APIKey  string   `yaml:"api_key" toml:"api_key"`
	BaseURL string   `yaml:"base_url" toml:"base_url"`
	Timeout Duration `yaml:"timeout" toml:"timeout"`
}

type PlaidConfig struct {
	ClientID string   `yaml:"client_id" toml:"client_id"`
	Secret   string   `yaml:"secret" toml:"secret"`
	Env      string   `yaml:"env" toml:"env"` // sandbox, development, production
	Timeout  Duration `yaml:"timeout" toml:"timeout"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" toml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port" toml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user" toml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password" toml:"smtp_password"`
	FromEmail    string `yaml:"from_email" toml:"from_email"`
	FromName     string `yaml:"from_name" toml:"from_name"`
}

type JWTConfig struct {
	Secret string   `yaml:"secret" toml:"secret"`
	TTL    Duration `yaml:"ttl" toml:"ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

type DemoConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Reviews  ReviewsConfig  `yaml:"reviews" toml:"reviews"`
	Analysis AnalysisConfig `yaml:"analysis" toml:"analysis"`
	Jobs     JobsConfig     `yaml:"jobs" toml:"jobs"`
	Nessie   NessieConfig   `yaml:"nessie" toml:"nessie"`
	Plaid    PlaidConfig    `yaml:"plaid" toml:"plaid"`
	Email    EmailConfig    `yaml:"email" toml:"email"`
	JWT      JWTConfig      `yaml:"jwt" toml:"jwt"`
	CORS     CORSConfig     `yaml:"cors" toml:"cors"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Demo     DemoConfig     `yaml:"demo" toml:"demo"`
}

var AppConfig *Config

// LoadConfig loads .env, then CONFIG_PATH (default config/config.yaml), then
// environment overrides. It exits the process on a malformed file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	AppConfig = cfg
}

// Load reads path (a missing file is not an error), applies environment
// overrides and fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		log.Printf("Config file %s not found, using environment only", path)
	default:
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Reviews.EmailHashSalt, "EMAIL_HASH_SALT")
	setString(&cfg.Reviews.MongoURI, "MONGODB_URI")
	setString(&cfg.Nessie.APIKey, "NESSIE_API_KEY")
	setString(&cfg.Plaid.ClientID, "PLAID_CLIENT_ID")
	setString(&cfg.Plaid.Secret, "PLAID_SECRET")
	setString(&cfg.Plaid.Env, "PLAID_ENV")
	setString(&cfg.Jobs.RedisURL, "REDIS_URL")
	setString(&cfg.Analysis.NATSURL, "NATS_URL")

	if port, err := strconv.Atoi(os.Getenv("SERVER_PORT")); err == nil {
		cfg.Server.Port = port
	}
	if v := os.Getenv("DEMO_MODE_ENABLED"); v != "" {
		cfg.Demo.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Reviews.Backend == "" {
		cfg.Reviews.Backend = "gorm"
	}
	if cfg.Reviews.MongoDatabase == "" {
		cfg.Reviews.MongoDatabase = "hera"
	}
	if cfg.Reviews.CodeTTL.Duration == 0 {
		cfg.Reviews.CodeTTL.Duration = 15 * time.Minute
	}
	if cfg.Reviews.MaxCodesPerDay == 0 {
		cfg.Reviews.MaxCodesPerDay = 3
	}
	if cfg.Reviews.CooldownDays == 0 {
		cfg.Reviews.CooldownDays = 180
	}
	if cfg.Reviews.SweepInterval.Duration == 0 {
		cfg.Reviews.SweepInterval.Duration = 5 * time.Minute
	}
	if cfg.Reviews.MaxCommentRunes == 0 {
		cfg.Reviews.MaxCommentRunes = 200
	}
	if len(cfg.Reviews.CompanyDomains) == 0 {
		cfg.Reviews.CompanyDomains = DefaultCompanyDomains
	}
	if cfg.Analysis.Runner == "" {
		cfg.Analysis.Runner = "exec"
	}
	if len(cfg.Analysis.Command) == 0 {
		cfg.Analysis.Command = []string{"python3", "run.py", "--ticker", "{ticker}"}
	}
	if cfg.Analysis.Timeout.Duration == 0 {
		cfg.Analysis.Timeout.Duration = 30 * time.Minute
	}
	if cfg.Analysis.ResolveTimeout.Duration == 0 {
		cfg.Analysis.ResolveTimeout.Duration = 30 * time.Second
	}
	if cfg.Analysis.NATSSubject == "" {
		cfg.Analysis.NATSSubject = "hera.analysis.requests"
	}
	if cfg.Analysis.NATSStatusSubject == "" {
		cfg.Analysis.NATSStatusSubject = "hera.analysis.status"
	}
	if cfg.Jobs.Backend == "" {
		cfg.Jobs.Backend = "memory"
	}
	if cfg.Jobs.TTL.Duration == 0 {
		cfg.Jobs.TTL.Duration = 24 * time.Hour
	}
	if cfg.Nessie.BaseURL == "" {
		cfg.Nessie.BaseURL = "http://api.nessieisreal.com"
	}
	if cfg.Nessie.Timeout.Duration == 0 {
		cfg.Nessie.Timeout.Duration = 15 * time.Second
	}
	if cfg.Plaid.Env == "" {
		cfg.Plaid.Env = "sandbox"
	}
	if cfg.Plaid.Timeout.Duration == 0 {
		cfg.Plaid.Timeout.Duration = 15 * time.Second
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Hera"
	}
	if cfg.JWT.TTL.Duration == 0 {
		cfg.JWT.TTL.Duration = 24 * time.Hour
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
