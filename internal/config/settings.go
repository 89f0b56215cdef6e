package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is loaded once at start-up and treated as read-only afterwards.
type Settings struct {
	App     AppSettings     `yaml:"app" toml:"app"`
	HTTP    HTTPSettings    `yaml:"http" toml:"http"`
	LLM     LLMSettings     `yaml:"llm" toml:"llm"`
	Storage StorageSettings `yaml:"storage" toml:"storage"`
	Log     LogSettings     `yaml:"log" toml:"log"`
}

type AppSettings struct {
	Name    string `yaml:"name" toml:"name"`
	Version string `yaml:"version" toml:"version"`
	Env     string `yaml:"env" toml:"env"`
}

type HTTPSettings struct {
	ListenAddr         string   `yaml:"listen_addr" toml:"listen_addr"`
	AuthToken          string   `yaml:"auth_token" toml:"auth_token"`
	RateLimitPerSecond float64  `yaml:"rate_limit_per_second" toml:"rate_limit_per_second"`
	RateLimitBurst     int      `yaml:"rate_limit_burst" toml:"rate_limit_burst"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
}

type LLMSettings struct {
	Provider    string        `yaml:"provider" toml:"provider"`
	APIKey      string        `yaml:"api_key" toml:"api_key"`
	BaseURL     string        `yaml:"base_url" toml:"base_url"`
	Model       string        `yaml:"model" toml:"model"`
	Temperature float64       `yaml:"temperature" toml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" toml:"max_tokens"`
	Timeout     time.Duration `yaml:"-" toml:"-"`
}

type StorageSettings struct {
	UploadDir     string `yaml:"upload_dir" toml:"upload_dir"`
	MaxUploadMB   int    `yaml:"max_upload_mb" toml:"max_upload_mb"`
	IndexBackend  string `yaml:"index_backend" toml:"index_backend"`
	IndexFile     string `yaml:"index_file" toml:"index_file"`
	RedisAddr     string `yaml:"redis_addr" toml:"redis_addr"`
	RedisPassword string `yaml:"redis_password" toml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" toml:"redis_db"`
}

type LogSettings struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

func (s StorageSettings) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

func (a AppSettings) IsProd() bool {
	return strings.EqualFold(a.Env, "prod") || strings.EqualFold(a.Env, "production")
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type lookupFunc func(key string) (string, bool)

// Load reads defaults, the optional config file, the .env file and the process
// environment, in increasing priority, then validates the result.
func Load() (*Settings, error) {
	envFile := DefaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		envFile = v
	}
	dotenv, err := readDotEnv(envFile)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	configPath, _ := lookup("CONFIG_FILE")
	return load(lookup, configPath)
}

func load(lookup lookupFunc, configPath string) (*Settings, error) {
	settings := defaultSettings()

	if configPath != "" {
		if err := decodeFile(configPath, settings); err != nil {
			return nil, err
		}
	}

	parseErrs := overrideByEnv(settings, lookup)
	errs := append(parseErrs, settings.Validate()...)
	if len(errs) > 0 {
		joined := make([]error, 0, len(errs))
		for _, e := range errs {
			joined = append(joined, e)
		}
		return nil, fmt.Errorf("invalid settings: %w", errors.Join(joined...))
	}
	return settings, nil
}

func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("stat env file failed: %w", err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file failed: %w", err)
	}
	return values, nil
}

func decodeFile(path string, settings *Settings) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, settings); err != nil {
			return fmt.Errorf("decode config file failed: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file failed: %w", err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return fmt.Errorf("decode config file failed: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", path)
	}
	return nil
}

func defaultSettings() *Settings {
	return &Settings{
		App: AppSettings{
			Name:    DefaultAppName,
			Version: DefaultAppVersion,
			Env:     DefaultAppEnv,
		},
		HTTP: HTTPSettings{
			ListenAddr:         ServerListenAddr,
			RateLimitPerSecond: RATE_LIMIT_PER_SECOND,
			RateLimitBurst:     BURST_RATE_LIMIT_PER_SECOND,
			CORSAllowedOrigins: []string{"*"},
		},
		LLM: LLMSettings{
			Provider:    DefaultProvider,
			Model:       DefaultModelName,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultLLMTimeout,
		},
		Storage: StorageSettings{
			UploadDir:    DefaultUploadDir,
			MaxUploadMB:  DefaultMaxUploadMB,
			IndexBackend: IndexBackendFile,
			IndexFile:    DefaultIndexFile,
			RedisAddr:    RedisAddr,
			RedisDB:      RedisDocumentDB,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

func overrideByEnv(s *Settings, lookup lookupFunc) []ValidationError {
	r := envReader{lookup: lookup}

	s.App.Name = r.stringValue("APP_NAME", s.App.Name)
	s.App.Version = r.stringValue("APP_VERSION", s.App.Version)
	s.App.Env = r.stringValue("APP_ENV", s.App.Env)

	s.HTTP.ListenAddr = r.stringValue("LISTEN_ADDR", s.HTTP.ListenAddr)
	s.HTTP.AuthToken = r.stringValue("API_AUTH_TOKEN", s.HTTP.AuthToken)
	s.HTTP.RateLimitPerSecond = r.floatValue("RATE_LIMIT_PER_SECOND", s.HTTP.RateLimitPerSecond)
	s.HTTP.RateLimitBurst = r.intValue("RATE_LIMIT_BURST", s.HTTP.RateLimitBurst)
	s.HTTP.CORSAllowedOrigins = r.listValue("CORS_ALLOWED_ORIGINS", s.HTTP.CORSAllowedOrigins)

	s.LLM.Provider = strings.ToLower(r.stringValue("LLM_PROVIDER", s.LLM.Provider))
	s.LLM.APIKey = r.stringValue("LLM_API_KEY", s.LLM.APIKey)
	s.LLM.APIKey = r.stringValue("GROQ_API_KEY", s.LLM.APIKey)
	s.LLM.BaseURL = r.stringValue("LLM_BASE_URL", s.LLM.BaseURL)
	s.LLM.Model = r.stringValue("MODEL_NAME", s.LLM.Model)
	s.LLM.Temperature = r.floatValue("TEMPERATURE", s.LLM.Temperature)
	s.LLM.MaxTokens = r.intValue("MAX_TOKENS", s.LLM.MaxTokens)
	if secs := r.intValue("LLM_TIMEOUT_SECONDS", 0); secs > 0 {
		s.LLM.Timeout = time.Duration(secs) * time.Second
	}

	s.Storage.UploadDir = r.stringValue("UPLOAD_DIR", s.Storage.UploadDir)
	s.Storage.MaxUploadMB = r.intValue("MAX_UPLOAD_MB", s.Storage.MaxUploadMB)
	s.Storage.IndexBackend = strings.ToLower(r.stringValue("INDEX_BACKEND", s.Storage.IndexBackend))
	s.Storage.IndexFile = r.stringValue("INDEX_FILE", s.Storage.IndexFile)
	s.Storage.RedisAddr = r.stringValue("REDIS_ADDR", s.Storage.RedisAddr)
	s.Storage.RedisPassword = r.stringValue("REDIS_PASSWORD", s.Storage.RedisPassword)
	s.Storage.RedisDB = r.intValue("REDIS_DB", s.Storage.RedisDB)

	s.Log.Level = strings.ToLower(r.stringValue("LOG_LEVEL", s.Log.Level))
	s.Log.Format = strings.ToLower(r.stringValue("LOG_FORMAT", s.Log.Format))

	if s.LLM.Timeout <= 0 {
		s.LLM.Timeout = DefaultLLMTimeout
	}
	return r.errs
}

func (s *Settings) Validate() []ValidationError {
	var errs []ValidationError

	switch s.LLM.Provider {
	case ProviderGroq, ProviderGemini:
		if strings.TrimSpace(s.LLM.APIKey) == "" {
			errs = append(errs, ValidationError{
				Field:   "llm.api_key",
				Message: "an API key is required for provider " + s.LLM.Provider,
			})
		}
	case ProviderOllama:
	default:
		errs = append(errs, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unknown provider %q", s.LLM.Provider),
		})
	}

	if s.LLM.Model == "" {
		errs = append(errs, ValidationError{Field: "llm.model", Message: "model name is required"})
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}
	if s.LLM.MaxTokens <= 0 {
		errs = append(errs, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be positive",
		})
	}

	if strings.TrimSpace(s.Storage.UploadDir) == "" {
		errs = append(errs, ValidationError{Field: "storage.upload_dir", Message: "upload directory is required"})
	}
	if s.Storage.MaxUploadMB <= 0 {
		errs = append(errs, ValidationError{Field: "storage.max_upload_mb", Message: "max upload size must be positive"})
	}
	switch s.Storage.IndexBackend {
	case IndexBackendFile:
		if s.Storage.IndexFile == "" {
			errs = append(errs, ValidationError{Field: "storage.index_file", Message: "index file is required for the file backend"})
		}
	case IndexBackendRedis, IndexBackendMemory:
	default:
		errs = append(errs, ValidationError{
			Field:   "storage.index_backend",
			Message: fmt.Sprintf("unknown index backend %q", s.Storage.IndexBackend),
		})
	}

	if s.HTTP.RateLimitPerSecond > 0 && s.HTTP.RateLimitBurst < 1 {
		errs = append(errs, ValidationError{Field: "http.rate_limit_burst", Message: "burst must be at least 1"})
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown log level %q", s.Log.Level)})
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown log format %q", s.Log.Format)})
	}
	return errs
}

type envReader struct {
	lookup lookupFunc
	errs   []ValidationError
}

func (r *envReader) stringValue(key, fallback string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *envReader) intValue(key string, fallback int) int {
	raw, ok := r.lookup(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		r.errs = append(r.errs, ValidationError{Field: key, Message: fmt.Sprintf("not an integer: %q", raw)})
		return fallback
	}
	return parsed
}

func (r *envReader) floatValue(key string, fallback float64) float64 {
	raw, ok := r.lookup(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		r.errs = append(r.errs, ValidationError{Field: key, Message: fmt.Sprintf("not a number: %q", raw)})
		return fallback
	}
	return parsed
}

func (r *envReader) listValue(key string, fallback []string) []string {
	raw, ok := r.lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
