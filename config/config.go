package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig  `yaml:"logging"`
	Mongo       MongoConfig    `yaml:"mongo"`
	Gemini      GeminiConfig   `yaml:"gemini"`
	Audio       AudioConfig    `yaml:"audio"`
	Quota       QuotaConfig    `yaml:"quota"`
	Backfill    BackfillConfig `yaml:"backfill"`
	Kafka       KafkaConfig    `yaml:"kafka"`
	AudioURLTTL int            `yaml:"audio_url_ttl_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

type GeminiConfig struct {
	// GenerateModel handles the four journal analysis tasks.
	GenerateModel string `yaml:"generate_model"`
	// TranscribeModel handles speech-to-text over the raw audio bytes.
	TranscribeModel string `yaml:"transcribe_model"`
}

type AudioConfig struct {
	// MaxUploadBytes caps the multipart audio payload. 0 means no cap.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

type QuotaConfig struct {
	// FreeMonthlyLimit is the entry ceiling for the free plan per calendar
	// month. Paid plans are unconstrained.
	FreeMonthlyLimit int `yaml:"free_monthly_limit"`
}

// BackfillConfig bounds LLM usage during bulk reprocessing runs.
// Values of 0 or below mean no limit in that direction.
type BackfillConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// KafkaConfig is optional: an empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers string `yaml:"brokers"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	// environment overrides for deploy-time values
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = brokers
	}

	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
