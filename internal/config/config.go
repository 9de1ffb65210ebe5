package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	Grammar     GrammarConfig
	Limits      LimitsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// GrammarConfig holds the separator characters of the wordpair grammar.
// The parser receives them as configuration and never hardcodes the defaults.
type GrammarConfig struct {
	PairSeparator          string
	ItemSeparator          string
	TranscriptionSeparator string
}

// LimitsConfig holds validation bounds for words, pairs and vocabularies
type LimitsConfig struct {
	MinWordLen       int
	MaxWordLen       int
	MinItems         int
	MaxItems         int
	MaxAnnotationLen int
	MinVocabNameLen  int
	MaxVocabNameLen  int
	MaxVocabDescLen  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vocadrill"),
			User:     getEnv("DB_USER", "vocadrill"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Grammar: GrammarConfig{
			PairSeparator:          getEnv("PAIR_SEPARATOR", ":"),
			ItemSeparator:          getEnv("ITEM_SEPARATOR", ","),
			TranscriptionSeparator: getEnv("TRANSCRIPTION_SEPARATOR", "|"),
		},
		Limits: LimitsConfig{
			MinWordLen:       getEnvInt("MIN_WORD_LEN", 1),
			MaxWordLen:       getEnvInt("MAX_WORD_LEN", 50),
			MinItems:         getEnvInt("MIN_ITEMS", 1),
			MaxItems:         getEnvInt("MAX_ITEMS", 5),
			MaxAnnotationLen: getEnvInt("MAX_ANNOTATION_LEN", 150),
			MinVocabNameLen:  getEnvInt("MIN_VOCAB_NAME_LEN", 3),
			MaxVocabNameLen:  getEnvInt("MAX_VOCAB_NAME_LEN", 50),
			MaxVocabDescLen:  getEnvInt("MAX_VOCAB_DESC_LEN", 200),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
