// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/invoicepack/internal/printer"
	"github.com/kpauljoseph/invoicepack/pkg/models"
	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

const (
	PrinterStyleLP      = printer.StyleLP
	PrinterStyleSumatra = printer.StyleSumatra
)

type Config struct {
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
	Page      struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Scale struct {
		Min        float64 `yaml:"min"`
		Max        float64 `yaml:"max"`
		Step       float64 `yaml:"step"`
		Standalone float64 `yaml:"standalone"`
	} `yaml:"scale"`
	Render struct {
		DPI float64 `yaml:"dpi"`
	} `yaml:"render"`
	Printer struct {
		Enabled bool          `yaml:"enabled"`
		Name    string        `yaml:"name"`
		Command string        `yaml:"command"`
		Style   string        `yaml:"style"`
		Delay   time.Duration `yaml:"delay"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"printer"`
	Logging struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logging"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

func Default() *Config {
	var cfg Config
	cfg.SourceDir = "./source_pdf"
	cfg.OutputDir = utils.GetDefaultOutputDir()
	cfg.Page.Width = utils.A4_PAGE_WIDTH_PT
	cfg.Page.Height = utils.A4_PAGE_HEIGHT_PT
	cfg.Scale.Min = utils.DEFAULT_SCALE_MIN
	cfg.Scale.Max = utils.DEFAULT_SCALE_MAX
	cfg.Scale.Step = utils.DEFAULT_SCALE_STEP
	cfg.Scale.Standalone = utils.DEFAULT_STANDALONE_SCALE
	cfg.Render.DPI = utils.DEFAULT_RENDER_DPI
	cfg.Printer.Command = "lp"
	cfg.Printer.Style = PrinterStyleLP
	cfg.Printer.Delay = 2 * time.Second
	cfg.Printer.Timeout = printer.DefaultTimeout
	cfg.Logging.MaxSizeMB = 10
	cfg.Logging.MaxBackups = 3
	cfg.Logging.MaxAgeDays = 30
	return &cfg
}

// Load reads the YAML file at path over the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Printer.Style == "" {
		cfg.Printer.Style = PrinterStyleLP
	}

	return cfg, nil
}

// ApplyEnv overlays INVOICEPACK_* variables, after loading envFile if it exists.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv("INVOICEPACK_SOURCE_DIR"); v != "" {
		cfg.SourceDir = v
	}
	if v := os.Getenv("INVOICEPACK_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("INVOICEPACK_PRINTER"); v != "" {
		cfg.Printer.Name = v
	}
	if v := os.Getenv("INVOICEPACK_DPI"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid INVOICEPACK_DPI %q: %w", v, err)
		}
		cfg.Render.DPI = dpi
	}

	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Page.Width <= 0 || c.Page.Height <= 0:
		return fmt.Errorf("page size must be positive, got %.2f x %.2f", c.Page.Width, c.Page.Height)
	case c.Scale.Step <= 0:
		return fmt.Errorf("scale step must be positive, got %v", c.Scale.Step)
	case c.Scale.Min <= 0 || c.Scale.Max > 1 || c.Scale.Min > c.Scale.Max:
		return fmt.Errorf("scale range must satisfy 0 < min <= max <= 1, got [%v, %v]", c.Scale.Min, c.Scale.Max)
	case c.Scale.Standalone <= 0 || c.Scale.Standalone > 1:
		return fmt.Errorf("standalone scale must be in (0, 1], got %v", c.Scale.Standalone)
	case c.Render.DPI <= 0:
		return fmt.Errorf("render dpi must be positive, got %v", c.Render.DPI)
	case c.Printer.Style != PrinterStyleLP && c.Printer.Style != PrinterStyleSumatra:
		return fmt.Errorf("unknown printer style %q", c.Printer.Style)
	}
	return nil
}

func (c *Config) Geometry() models.Geometry {
	return models.Geometry{
		Page: models.PageDimensions{
			Width:  c.Page.Width,
			Height: c.Page.Height,
		},
		ScaleMin:        c.Scale.Min,
		ScaleMax:        c.Scale.Max,
		ScaleStep:       c.Scale.Step,
		StandaloneScale: c.Scale.Standalone,
	}
}
