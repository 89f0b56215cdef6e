package config

import "time"

const (
	TRACE_HEADER = "X-Trace-Id"

	//serverTimeouts, body reads get a deadline per route
	ReadHeaderTimeout      = 15 * time.Second
	RequestBodyTimeout     = 15 * time.Second
	UploadBodyTimeout      = 10 * time.Minute  //50MB at roughly 85KB/s
	WriteTimeout           = 120 * time.Second //summaries can take a while on big reports
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//app defaults
	DefaultAppName    = "Financial Assistant"
	DefaultAppVersion = "0.1.0"
	DefaultAppEnv     = "dev"
	DefaultEnvFile    = ".env"

	//uploads
	DefaultUploadDir      = "./uploads/raw"
	DefaultIndexFile      = "./uploads/index.jsonl"
	DefaultMaxUploadMB    = 50
	MultipartOverheadSize = 1 << 20
	UploadDirPermission   = 0750
	UploadFilePermission  = 0640
	UploadTimestampLayout = "20060102_150405"

	//llm
	ProviderGroq         = "groq"
	ProviderGemini       = "gemini"
	ProviderOllama       = "ollama"
	DefaultProvider      = ProviderGroq
	DefaultModelName     = "llama-3.3-70b-versatile"
	DefaultTemperature   = 0.7
	DefaultMaxTokens     = 2000
	DefaultLLMTimeout    = 60 * time.Second
	GroqBaseURL          = "https://api.groq.com/openai/v1/"
	OllamaBaseURL        = "http://localhost:11434"
	StartupCheckTimeout  = 20 * time.Second

	//shared transport for llm clients
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 10
	IdleConnTimeout     = 90 * time.Second

	//analysis
	SummaryTemperature = 0.3
	SummaryMaxTokens   = 1500
	MaxPromptChars     = 60000 //rough guard for the model context window
	PDFPageTimeout     = 10 * time.Second

	//index backends
	IndexBackendFile   = "file"
	IndexBackendRedis  = "redis"
	IndexBackendMemory = "memory"

	//redis
	redisHost        = "127.0.0.1"
	redisPort        = "6379"
	RedisAddr        = redisHost + ":" + redisPort
	RedisDocumentDB  = 0
	RedisPingTimeout = 3 * time.Second
	RedisIOTimeout   = 5 * time.Second
	RedisIndexKey    = "documents:index"

	//rate limiting, 0 disables
	RATE_LIMIT_PER_SECOND       = 0
	BURST_RATE_LIMIT_PER_SECOND = 5
)
