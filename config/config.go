package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds one run's immutable settings. It is built once from the
// environment and passed into the pipeline; nothing mutates it afterwards.
type Config struct {
	// Shared read-only assets. Each may be a local path or an
	// "s3://bucket/key" reference fetched at startup.
	BodyFontPath  string
	TitleFontPath string
	BrandMarkPath string // optional; empty means no brand mark

	// Output
	OutputDir string

	// SpeechLang is the TTS language code, e.g. "en"
	SpeechLang string

	// AllowSkipImages permits rendering a slide without its product photo
	// when that photo failed to download or decode. Default: fail the product.
	AllowSkipImages bool

	// Optional collaborators (disabled when unset)
	CohereAPIKey       string
	S3Bucket           string
	S3Region           string
	S3Prefix           string
	KafkaBrokers       string
	KafkaTopic         string
	KafkaGroupID       string
	RedisAddr          string
	YouTubeCredentials string
}

// FromEnv builds the run configuration from environment variables.
// Callers load .env beforehand (godotenv in main).
func FromEnv() (Config, error) {
	cfg := Config{
		BodyFontPath:       os.Getenv("BODY_FONT_PATH"),
		TitleFontPath:      os.Getenv("TITLE_FONT_PATH"),
		BrandMarkPath:      os.Getenv("BRAND_MARK_PATH"),
		OutputDir:          os.Getenv("OUTPUT_DIR"),
		SpeechLang:         os.Getenv("SPEECH_LANG"),
		CohereAPIKey:       os.Getenv("COHERE_API_KEY"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3Region:           os.Getenv("S3_REGION"),
		S3Prefix:           os.Getenv("S3_PREFIX"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:         os.Getenv("KAFKA_TOPIC"),
		KafkaGroupID:       os.Getenv("KAFKA_GROUP_ID"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		YouTubeCredentials: os.Getenv("YOUTUBE_CREDENTIALS_FILE"),
	}

	if v := os.Getenv("ALLOW_SKIP_IMAGES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALLOW_SKIP_IMAGES %q: %w", v, err)
		}
		cfg.AllowSkipImages = b
	}

	if cfg.BodyFontPath == "" {
		return Config{}, fmt.Errorf("BODY_FONT_PATH is required")
	}
	if cfg.TitleFontPath == "" {
		cfg.TitleFontPath = cfg.BodyFontPath
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.SpeechLang == "" {
		cfg.SpeechLang = "en"
	}
	if cfg.KafkaGroupID == "" {
		cfg.KafkaGroupID = "prodreel-workers"
	}

	return cfg, nil
}
