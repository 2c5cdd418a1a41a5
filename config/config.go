// Package config loads conversion settings from the environment and from
// .env files.
//
// Every setting has a default; the environment overrides .env files, which
// override the defaults:
//
//	cfg, err := config.Load(".env")
//	if err != nil {
//	    return err
//	}
//	conv := convert.New(convert.WithLayoutConfig(cfg.Layout), convert.WithTimeout(cfg.Timeout))
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/writer"
)

// Environment variable names
const (
	EnvRowTolerance  = "REFLOW_ROW_TOLERANCE"
	EnvParagraphGap  = "REFLOW_PARAGRAPH_GAP"
	EnvMode          = "REFLOW_MODE"
	EnvTimeout       = "REFLOW_TIMEOUT"
	EnvConcurrency   = "REFLOW_CONCURRENCY"
	EnvOCRLanguage   = "REFLOW_OCR_LANGUAGE"
	EnvOCRPageSeg    = "REFLOW_OCR_PSM"
	EnvOutputFormat  = "REFLOW_OUTPUT_FORMAT"
	EnvFontFamily    = "REFLOW_FONT_FAMILY"
	EnvFontSize      = "REFLOW_FONT_SIZE"
	EnvJustify       = "REFLOW_JUSTIFY"
	EnvPageBreaks    = "REFLOW_PAGE_BREAKS"
	EnvPreserveLines = "REFLOW_PRESERVE_LINES"
	EnvLogLevel      = "REFLOW_LOG_LEVEL"
)

// DefaultTimeout is the per-document deadline
const DefaultTimeout = 30 * time.Second

// Config holds all conversion settings
type Config struct {
	Layout       layout.Config
	Mode         layout.Mode
	Timeout      time.Duration
	Concurrency  int
	OCRLanguage  string
	OCRPageSeg   ocr.PageSegMode
	OutputFormat writer.Format
	Writer       writer.Options
	LogLevel     slog.Level
}

// Default returns the default settings
func Default() Config {
	return Config{
		Layout:       layout.DefaultConfig(),
		Mode:         layout.ModeFlow,
		Timeout:      DefaultTimeout,
		Concurrency:  1,
		OCRLanguage:  "eng",
		OCRPageSeg:   ocr.PSM_AUTO,
		OutputFormat: writer.FormatDOCX,
		Writer:       writer.DefaultOptions(),
		LogLevel:     slog.LevelInfo,
	}
}

// Load reads settings from the given .env files and the process environment.
// With no files, ".env" in the working directory is read if it exists.
// Values in the process environment take precedence.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	vars := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read env files: %w", err)
		}
		vars = read
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, "REFLOW_") {
			vars[k] = v
		}
	}

	return FromMap(vars)
}

// FromMap builds settings from variables, starting from the defaults.
// All invalid values are reported together.
func FromMap(vars map[string]string) (Config, error) {
	cfg := Default()
	p := parser{vars: vars}

	p.float(EnvRowTolerance, &cfg.Layout.RowTolerance)
	p.float(EnvParagraphGap, &cfg.Layout.ParagraphGap)
	p.duration(EnvTimeout, &cfg.Timeout)
	p.int(EnvConcurrency, &cfg.Concurrency)
	p.float(EnvFontSize, &cfg.Writer.FontSize)
	p.bool(EnvJustify, &cfg.Writer.Justify)
	p.bool(EnvPageBreaks, &cfg.Writer.PageBreaks)
	p.bool(EnvPreserveLines, &cfg.Writer.PreserveLines)

	if v, ok := p.lookup(EnvMode); ok {
		mode, err := layout.ParseMode(v)
		p.check(EnvMode, err)
		cfg.Mode = mode
	}
	if v, ok := p.lookup(EnvOutputFormat); ok {
		format, err := writer.ParseFormat(v)
		p.check(EnvOutputFormat, err)
		cfg.OutputFormat = format
	}
	if v, ok := p.lookup(EnvLogLevel); ok {
		p.check(EnvLogLevel, cfg.LogLevel.UnmarshalText([]byte(v)))
	}
	if v, ok := p.lookup(EnvOCRPageSeg); ok {
		n, err := strconv.Atoi(v)
		p.check(EnvOCRPageSeg, err)
		if err == nil {
			cfg.OCRPageSeg = ocr.PageSegMode(n)
			if !cfg.OCRPageSeg.Valid() || cfg.OCRPageSeg == ocr.PSM_OSD_ONLY {
				p.check(EnvOCRPageSeg, errors.New("must be between 1 and 13"))
			}
		}
	}
	if v, ok := p.lookup(EnvOCRLanguage); ok {
		cfg.OCRLanguage = v
	}
	if v, ok := p.lookup(EnvFontFamily); ok {
		cfg.Writer.FontFamily = v
	}

	if cfg.Layout.RowTolerance <= 0 {
		p.check(EnvRowTolerance, errors.New("must be positive"))
	}
	if cfg.Layout.ParagraphGap <= 0 {
		p.check(EnvParagraphGap, errors.New("must be positive"))
	}
	if cfg.Concurrency < 1 {
		p.check(EnvConcurrency, errors.New("must be at least 1"))
	}
	if cfg.Timeout < 0 {
		p.check(EnvTimeout, errors.New("must not be negative"))
	}

	if len(p.errs) > 0 {
		return Config{}, errors.Join(p.errs...)
	}
	return cfg, nil
}

// Logger returns a text logger writing to w at the configured level
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// parser accumulates conversion errors per variable
type parser struct {
	vars map[string]string
	errs []error
}

func (p *parser) lookup(key string) (string, bool) {
	v, ok := p.vars[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) check(key string, err error) {
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	}
}

func (p *parser) float(key string, dst *float64) {
	if v, ok := p.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		p.check(key, err)
		if err == nil {
			*dst = f
		}
	}
}

func (p *parser) int(key string, dst *int) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.Atoi(v)
		p.check(key, err)
		if err == nil {
			*dst = n
		}
	}
}

func (p *parser) bool(key string, dst *bool) {
	if v, ok := p.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		p.check(key, err)
		if err == nil {
			*dst = b
		}
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	if v, ok := p.lookup(key); ok {
		d, err := time.ParseDuration(v)
		p.check(key, err)
		if err == nil {
			*dst = d
		}
	}
}
