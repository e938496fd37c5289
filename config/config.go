package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendRaster = "raster" // проверка на чистом Go
	BackendGoCV   = "gocv"   // проверка через OpenCV, нужен тег сборки gocv
)

type Config struct {
	TelegramToken    string  `mapstructure:"telegram_token"`
	InspectorBackend string  `mapstructure:"inspector_backend"`
	Threshold        int64   `mapstructure:"threshold"`
	BoxThickness     int     `mapstructure:"box_thickness"`
	FontScale        float64 `mapstructure:"font_scale"`
	LabelOffset      int     `mapstructure:"label_offset"`
	PresentColorHex  string  `mapstructure:"present_color"`
	MissingColorHex  string  `mapstructure:"missing_color"`
	JPEGQuality      int     `mapstructure:"jpeg_quality"`
	MaxFileBytes     int     `mapstructure:"max_file_bytes"`

	PresentColor color.RGBA `mapstructure:"-"`
	MissingColor color.RGBA `mapstructure:"-"`
}

var defaults = map[string]any{
	"telegram_token":    "",
	"inspector_backend": BackendRaster,
	"threshold":         50000,
	"box_thickness":     2,
	"font_scale":        0.6,
	"label_offset":      10,
	"present_color":     "#00ff00",
	"missing_color":     "#ff0000",
	"jpeg_quality":      90,
	"max_file_bytes":    20 << 20,
}

// Load собирает конфигурацию: значения по умолчанию, config.yaml, .env и переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.InspectorBackend = strings.ToLower(strings.TrimSpace(c.InspectorBackend))
	switch c.InspectorBackend {
	case BackendRaster, BackendGoCV:
	default:
		return fmt.Errorf("unknown inspector_backend %q", c.InspectorBackend)
	}

	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %d", c.Threshold)
	}
	if c.BoxThickness < 1 {
		return fmt.Errorf("box_thickness must be positive, got %d", c.BoxThickness)
	}
	if c.FontScale <= 0 {
		return fmt.Errorf("font_scale must be positive, got %g", c.FontScale)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in [1, 100], got %d", c.JPEGQuality)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be positive, got %d", c.MaxFileBytes)
	}

	var err error
	if c.PresentColor, err = parseHexColor(c.PresentColorHex); err != nil {
		return fmt.Errorf("present_color: %w", err)
	}
	if c.MissingColor, err = parseHexColor(c.MissingColorHex); err != nil {
		return fmt.Errorf("missing_color: %w", err)
	}
	return nil
}

// parseHexColor разбирает цвет вида #rrggbb.
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 255}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("parse %q: %w", s, err)
	}
	return c, nil
}
