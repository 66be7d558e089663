package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Raster   RasterConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Registry RegistryConfig
}

// RasterConfig holds page rasterization configuration
type RasterConfig struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int
	Pages    int // pages to render per document, default 1
	Timeout  time.Duration
}

// OCRConfig holds text-detection configuration
type OCRConfig struct {
	Backend       string // "tesseract" | "azure"
	Tesseract     string // binary name or absolute path; if empty -> "tesseract"
	TesseractLang string
	TessdataDir   string
	AzureEndpoint string
	AzureKey      string
	Enhance       bool // grayscale + contrast boost before detection
	Timeout       time.Duration
}

// LLMConfig holds assisted vendor-matching configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// RegistryConfig holds vendor-registry workbook configuration
type RegistryConfig struct {
	WorkbookPath string
	VendorSheet  string
	CodeSheet    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Raster: RasterConfig{
			Pdftoppm: getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:      getEnvAsInt("RASTER_DPI", 150),
			Pages:    getEnvAsInt("RASTER_PAGES", 1),
			Timeout:  getEnvAsDuration("RASTER_TIMEOUT", 30*time.Second),
		},
		OCR: OCRConfig{
			Backend:       getEnv("OCR_BACKEND", "tesseract"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			AzureEndpoint: getEnv("AZURE_VISION_ENDPOINT", ""),
			AzureKey:      getEnv("AZURE_VISION_KEY", ""),
			Enhance:       getEnvAsBool("OCR_ENHANCE", true),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 20*time.Second),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Registry: RegistryConfig{
			WorkbookPath: getEnv("REGISTRY_WORKBOOK", ""),
			VendorSheet:  getEnv("REGISTRY_VENDOR_SHEET", "VENDORS"),
			CodeSheet:    getEnv("REGISTRY_CODE_SHEET", "CODE1"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Registry.WorkbookPath == "" {
		return NewAppError("CONFIG_ERROR", "REGISTRY_WORKBOOK is required", ErrInput)
	}
	if c.Raster.Pages < 1 {
		return NewAppError("CONFIG_ERROR", "RASTER_PAGES must be >= 1", ErrInput)
	}
	if c.OCR.Backend == "azure" && (c.OCR.AzureEndpoint == "" || c.OCR.AzureKey == "") {
		return NewAppError("CONFIG_ERROR", "AZURE_VISION_ENDPOINT and AZURE_VISION_KEY are required for the azure backend", ErrInput)
	}
	return nil
}
