package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-ranker/internal/secrets"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"name"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	APIKeyFile      string  `mapstructure:"api_key_file"`
	Model           string  `mapstructure:"model"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
	TopP            float32 `mapstructure:"top_p"`
	TopK            float32 `mapstructure:"top_k"`
}

type StorageConfig struct {
	UploadPath  string `mapstructure:"upload_path"`
	ReportsPath string `mapstructure:"reports_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Debug     bool `mapstructure:"debug"`
	MaxLength int  `mapstructure:"max_length"`
}

// envAliases maps flat environment names onto nested config keys.
var envAliases = map[string]string{
	"server.port":              "PORT",
	"server.env":               "ENV",
	"gemini.api_key":           "GEMINI_API_KEY",
	"gemini.api_key_file":      "GEMINI_API_KEY_FILE",
	"gemini.model":             "GEMINI_MODEL",
	"storage.upload_path":      "UPLOAD_PATH",
	"storage.reports_path":     "REPORTS_PATH",
	"storage.max_file_size":    "MAX_FILE_SIZE",
	"db.driver":                "DB_DRIVER",
	"db.host":                  "DB_HOST",
	"db.port":                  "DB_PORT",
	"db.user":                  "DB_USER",
	"db.password":              "DB_PASSWORD",
	"db.name":                  "DB_NAME",
	"db.sqlite_path":           "DB_SQLITE_PATH",
	"gemini.temperature":       "GEMINI_TEMPERATURE",
	"gemini.max_output_tokens": "GEMINI_MAX_OUTPUT_TOKENS",
	"gemini.top_p":             "GEMINI_TOP_P",
	"gemini.top_k":             "GEMINI_TOP_K",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "resume_ranker")
	v.SetDefault("db.sqlite_path", "data/resume_ranker.db")

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.2)
	v.SetDefault("gemini.max_output_tokens", 1024)
	v.SetDefault("gemini.top_p", 0.95)
	v.SetDefault("gemini.top_k", 40)

	v.SetDefault("storage.upload_path", "./uploads")
	v.SetDefault("storage.reports_path", "./reports")
	v.SetDefault("storage.max_file_size", 10485760)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.max_length", 500)
}

// Load reads .env, the optional config file and the environment into a Config.
// The API key is resolved last so that a key file wins over an inline value.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and defaults.")
	}

	if v == nil {
		v = viper.GetViper()
	}

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// ResolveAPIKey returns the Gemini API key from the key file or inline value.
func (c *Config) ResolveAPIKey() (string, error) {
	return secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: c.Gemini.APIKey,
		File:  c.Gemini.APIKeyFile,
	})
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
