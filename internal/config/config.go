// Package config loads the settings shared by every ocr-batch command.
//
// Values are resolved in this order, later sources winning:
//
//  1. Built-in defaults (see Default)
//  2. An optional YAML file passed with --config
//  3. A .env file in the working directory, if present
//  4. OCR_BATCH_* environment variables
//
// Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "OCR_BATCH_"

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DocumentAIConfig identifies a Google Document AI OCR processor.
type DocumentAIConfig struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`
	ProcessorID     string `yaml:"processor_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// ThumbnailConfig holds the embedded image size for each workbook layout.
type ThumbnailConfig struct {
	Run     Size `yaml:"run"`
	Compare Size `yaml:"compare"`
	Catalog Size `yaml:"catalog"`
}

// TranslateConfig configures the spreadsheet column translator.
type TranslateConfig struct {
	APIKey     string   `yaml:"api_key"`
	Source     string   `yaml:"source"`
	Target     string   `yaml:"target"`
	Columns    []string `yaml:"columns"`
	DropColumn string   `yaml:"drop_column"`
	DropValue  string   `yaml:"drop_value"`
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the complete tool configuration.
type Config struct {
	// Engine selects the OCR backend: tesseract, tesseract-cli, documentai or textract.
	Engine string `yaml:"engine"`

	// Languages are tried first; FallbackLanguages are tried when the first
	// pass finds no text at all.
	Languages         []string `yaml:"languages"`
	FallbackLanguages []string `yaml:"fallback_languages"`

	TessdataPrefix string           `yaml:"tessdata_prefix"`
	TesseractPath  string           `yaml:"tesseract_path"`
	DocumentAI     DocumentAIConfig `yaml:"documentai"`
	AWSRegion      string           `yaml:"aws_region"`

	// ElementThreshold marks a single text element as low confidence.
	// AverageThreshold marks a whole image as "Low Confidence".
	ElementThreshold float64 `yaml:"element_threshold"`
	AverageThreshold float64 `yaml:"average_threshold"`

	Dictionary  string   `yaml:"dictionary"`
	CustomWords []string `yaml:"custom_words"`

	Filter     string `yaml:"filter"`
	TempPrefix string `yaml:"temp_prefix"`
	KeepTemp   bool   `yaml:"keep_temp"`

	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Translate TranslateConfig `yaml:"translate"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns the settings the original batch scripts hard-coded.
func Default() *Config {
	return &Config{
		Engine:            "tesseract",
		Languages:         []string{"eng", "chi_sim"},
		FallbackLanguages: []string{"eng", "chi_tra"},
		TesseractPath:     "tesseract",
		DocumentAI:        DocumentAIConfig{Location: "us"},
		AWSRegion:         "us-east-1",
		ElementThreshold:  0.5,
		AverageThreshold:  0.6,
		CustomWords:       []string{"cas"},
		Filter:            "sharpen",
		TempPrefix:        "sharpened_",
		Thumbnail: ThumbnailConfig{
			Run:     Size{Width: 200, Height: 150},
			Compare: Size{Width: 150, Height: 100},
			Catalog: Size{Width: 180, Height: 100},
		},
		Translate: TranslateConfig{
			Source:     "zh-CN",
			Target:     "en",
			Columns:    []string{"Query", "Title", "Snippet"},
			DropColumn: "Snippet",
			DropValue:  "No snippet available",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, a .env
// file and the environment. An empty path skips the YAML step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from OCR_BATCH_* variables.
func (c *Config) applyEnv() error {
	c.Engine = getEnvOrDefault("ENGINE", c.Engine)
	c.Languages = getEnvAsListOrDefault("LANGUAGES", c.Languages)
	c.FallbackLanguages = getEnvAsListOrDefault("FALLBACK_LANGUAGES", c.FallbackLanguages)
	c.TessdataPrefix = getEnvOrDefault("TESSDATA_PREFIX", c.TessdataPrefix)
	c.TesseractPath = getEnvOrDefault("TESSERACT_PATH", c.TesseractPath)
	c.DocumentAI.ProjectID = getEnvOrDefault("DOCUMENTAI_PROJECT", c.DocumentAI.ProjectID)
	c.DocumentAI.Location = getEnvOrDefault("DOCUMENTAI_LOCATION", c.DocumentAI.Location)
	c.DocumentAI.ProcessorID = getEnvOrDefault("DOCUMENTAI_PROCESSOR", c.DocumentAI.ProcessorID)
	c.DocumentAI.CredentialsFile = getEnvOrDefault("DOCUMENTAI_CREDENTIALS", c.DocumentAI.CredentialsFile)
	c.AWSRegion = getEnvOrDefault("AWS_REGION", c.AWSRegion)
	c.Dictionary = getEnvOrDefault("DICTIONARY", c.Dictionary)
	c.CustomWords = getEnvAsListOrDefault("CUSTOM_WORDS", c.CustomWords)
	c.Filter = getEnvOrDefault("FILTER", c.Filter)
	c.TempPrefix = getEnvOrDefault("TEMP_PREFIX", c.TempPrefix)
	c.Translate.APIKey = getEnvOrDefault("TRANSLATE_API_KEY", c.Translate.APIKey)
	c.Translate.Source = getEnvOrDefault("TRANSLATE_SOURCE", c.Translate.Source)
	c.Translate.Target = getEnvOrDefault("TRANSLATE_TARGET", c.Translate.Target)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)

	var err error
	if c.ElementThreshold, err = getEnvAsFloatOrDefault("ELEMENT_THRESHOLD", c.ElementThreshold); err != nil {
		return err
	}
	if c.AverageThreshold, err = getEnvAsFloatOrDefault("AVERAGE_THRESHOLD", c.AverageThreshold); err != nil {
		return err
	}
	if c.KeepTemp, err = getEnvAsBoolOrDefault("KEEP_TEMP", c.KeepTemp); err != nil {
		return err
	}
	return nil
}

// Validate reports settings that cannot work. Engine and filter names are
// checked where they are constructed.
func (c *Config) Validate() error {
	if c.ElementThreshold < 0 || c.ElementThreshold > 1 {
		return fmt.Errorf("element_threshold %v outside [0,1]", c.ElementThreshold)
	}
	if c.AverageThreshold < 0 || c.AverageThreshold > 1 {
		return fmt.Errorf("average_threshold %v outside [0,1]", c.AverageThreshold)
	}
	if len(c.Languages) == 0 {
		return errors.New("at least one OCR language is required")
	}
	for name, s := range map[string]Size{
		"run":     c.Thumbnail.Run,
		"compare": c.Thumbnail.Compare,
		"catalog": c.Thumbnail.Catalog,
	} {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("thumbnail.%s must have a positive width and height", name)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) (float64, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return f, nil
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return b, nil
}
