package config

import (
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/soartravel/soar/errors"
)

type (
	LogConfig struct {
		LogLevel   string `yaml:"level" env:"LOG_LEVEL"`
		LogHandler string `yaml:"handler" env:"LOG_HANDLER"`
	}

	OpenAIConfig struct {
		APIKey  string `yaml:"apiKey" env:"OPENAI_API_KEY"`
		BaseURL string `yaml:"baseUrl" env:"OPENAI_BASE_URL"`

		ClassifierModel string `yaml:"classifierModel" env:"OPENAI_CLASSIFIER_MODEL"`
		ResponseModel   string `yaml:"responseModel" env:"OPENAI_RESPONSE_MODEL"`
		SearchModel     string `yaml:"searchModel" env:"OPENAI_SEARCH_MODEL"`
	}

	MemoryConfig struct {
		APIKey  string        `yaml:"apiKey" env:"MEM0_API_KEY"`
		BaseURL string        `yaml:"baseUrl" env:"MEM0_BASE_URL"`
		Timeout time.Duration `yaml:"timeout" env:"MEM0_TIMEOUT"`
	}

	LedgerConfig struct {
		Driver           string `yaml:"driver" env:"LEDGER_DRIVER"`
		SqlitePath       string `yaml:"sqlitePath" env:"LEDGER_SQLITE_PATH"`
		DynamoDBTable    string `yaml:"dynamodbTable" env:"LEDGER_DYNAMODB_TABLE"`
		DynamoDBEndpoint string `yaml:"dynamodbEndpoint" env:"LEDGER_DYNAMODB_ENDPOINT"`
		AWSRegion        string `yaml:"awsRegion" env:"AWS_REGION"`
	}

	ChatConfig struct {
		StatementWriteTimeout time.Duration `yaml:"statementWriteTimeout" env:"STATEMENT_WRITE_TIMEOUT"`
		StatementConcurrency  int           `yaml:"statementConcurrency" env:"STATEMENT_CONCURRENCY"`
	}

	SyncConfig struct {
		Concurrency int `yaml:"concurrency" env:"SYNC_CONCURRENCY"`
	}

	ServerConfig struct {
		Port int `yaml:"port" env:"PORT"`
	}

	Config struct {
		Log    LogConfig    `yaml:"log"`
		OpenAI OpenAIConfig `yaml:"openai"`
		Memory MemoryConfig `yaml:"memory"`
		Ledger LedgerConfig `yaml:"ledger"`
		Chat   ChatConfig   `yaml:"chat"`
		Sync   SyncConfig   `yaml:"sync"`
		Server ServerConfig `yaml:"server"`
	}
)

const (
	LedgerDriverSqlite   = "sqlite"
	LedgerDriverDynamoDB = "dynamodb"
	LedgerDriverMemory   = "memory"
)

func NewLogConfig() *LogConfig {
	return &LogConfig{
		LogLevel:   "debug",
		LogHandler: "default",
	}
}

func NewOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		BaseURL:         "https://api.openai.com/v1/",
		ClassifierModel: "gpt-3.5-turbo",
		ResponseModel:   "gpt-4o",
		SearchModel:     "gpt-4o-search-preview",
	}
}

func NewMemoryConfig() *MemoryConfig {
	return &MemoryConfig{
		BaseURL: "https://api.mem0.ai",
		Timeout: 30 * time.Second,
	}
}

func NewLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		Driver:        LedgerDriverSqlite,
		SqlitePath:    "soar.db",
		DynamoDBTable: "soar-memory-sync",
	}
}

func NewChatConfig() *ChatConfig {
	return &ChatConfig{
		StatementWriteTimeout: 30 * time.Second,
		StatementConcurrency:  4,
	}
}

func NewSyncConfig() *SyncConfig {
	return &SyncConfig{Concurrency: 8}
}

func New() *Config {
	return &Config{
		Log:    *NewLogConfig(),
		OpenAI: *NewOpenAIConfig(),
		Memory: *NewMemoryConfig(),
		Ledger: *NewLedgerConfig(),
		Chat:   *NewChatConfig(),
		Sync:   *NewSyncConfig(),
		Server: ServerConfig{Port: 3001},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, .env files and the process environment,
// in increasing order of precedence.
func Load(path string) (*Config, error) {
	conf := New()

	if path != "" {
		yamlBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(yamlBytes, conf); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal config file %s", path)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := conf.resolveEnv(environ()); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks that the credentials needed by the remote clients are present.
// In offline mode only the LLM credential is required.
func (c *Config) Validate(offline bool) error {
	if c.OpenAI.APIKey == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "OPENAI_API_KEY is required")
	}
	if offline {
		return nil
	}
	if c.Memory.APIKey == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "MEM0_API_KEY is required")
	}

	switch c.Ledger.Driver {
	case LedgerDriverSqlite:
		if c.Ledger.SqlitePath == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "LEDGER_SQLITE_PATH is required for the sqlite ledger")
		}
	case LedgerDriverDynamoDB:
		if c.Ledger.DynamoDBTable == "" {
			return errors.Wrapf(errors.ErrInvalidConfig, "LEDGER_DYNAMODB_TABLE is required for the dynamodb ledger")
		}
	case LedgerDriverMemory:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown ledger driver %q", c.Ledger.Driver)
	}

	return nil
}

func (c *Config) resolveEnv(env map[string]any) error {
	targets := []any{&c.Log, &c.OpenAI, &c.Memory, &c.Ledger, &c.Chat, &c.Sync, &c.Server}
	for _, target := range targets {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "env",
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           target,
		})
		if err != nil {
			return errors.WithStack(err)
		}
		if err := decoder.Decode(env); err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "failed to decode environment: %v", err)
		}
	}
	return nil
}

func loadDotEnv() error {
	files := []string{".env"}
	if v := os.Getenv("ENV_FILE"); v != "" {
		files = append(files, v)
	}

	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "failed to load %s", file)
		}
	}
	return nil
}

func environ() map[string]any {
	env := make(map[string]any)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && value != "" {
			env[key] = value
		}
	}
	return env
}
