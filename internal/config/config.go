// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-paginator/internal/pagination"
)

// DefaultPort is the HTTP port used when neither config nor flags set one
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; zero values fall back to the built-in layout budget.
type Config struct {
	// Layout
	Topology string `json:"topology,omitempty"` // "sidebar" or "single-column"

	PageWidth               float64 `json:"page_width,omitempty"`
	PageHeight              float64 `json:"page_height,omitempty"`
	PrimaryColumnCapacity   float64 `json:"primary_column_capacity,omitempty"`
	SecondaryColumnCapacity float64 `json:"secondary_column_capacity,omitempty"`
	PagePadding             float64 `json:"page_padding,omitempty"`
	FooterReserve           float64 `json:"footer_reserve,omitempty"`
	FirstPageHeaderReserve  float64 `json:"first_page_header_reserve,omitempty"`
	SubsequentHeaderReserve float64 `json:"subsequent_header_reserve,omitempty"`
	SectionSpacing          float64 `json:"section_spacing,omitempty"`
	MaxUnitsPerPage         int     `json:"max_units_per_page,omitempty"`
	PrimaryCharsPerLine     int     `json:"primary_chars_per_line,omitempty"`
	PrimaryFontSize         float64 `json:"primary_font_size,omitempty"`
	SecondaryCharsPerLine   int     `json:"secondary_chars_per_line,omitempty"`
	SecondaryFontSize       float64 `json:"secondary_font_size,omitempty"`

	// Service
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP port for serve
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero means "use the default", so only negatives and unknown names are rejected here;
// the merged budget is validated again by the engine.
func (c *Config) Validate() error {
	if _, err := pagination.ParseTopology(c.Topology); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	floats := map[string]float64{
		"page_width":                c.PageWidth,
		"page_height":               c.PageHeight,
		"primary_column_capacity":   c.PrimaryColumnCapacity,
		"secondary_column_capacity": c.SecondaryColumnCapacity,
		"page_padding":              c.PagePadding,
		"footer_reserve":            c.FooterReserve,
		"first_page_header_reserve": c.FirstPageHeaderReserve,
		"subsequent_header_reserve": c.SubsequentHeaderReserve,
		"section_spacing":           c.SectionSpacing,
		"primary_font_size":         c.PrimaryFontSize,
		"secondary_font_size":       c.SecondaryFontSize,
	}
	for name, v := range floats {
		if v < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	if c.MaxUnitsPerPage < 0 {
		return fmt.Errorf("config error: 'max_units_per_page' must be non-negative")
	}
	if c.PrimaryCharsPerLine < 0 || c.SecondaryCharsPerLine < 0 {
		return fmt.Errorf("config error: chars per line must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Topology == "" {
		result.Topology = defaults.Topology
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	setFloat := func(dst *float64, def float64) {
		if *dst == 0 {
			*dst = def
		}
	}
	setFloat(&result.PageWidth, defaults.PageWidth)
	setFloat(&result.PageHeight, defaults.PageHeight)
	setFloat(&result.PrimaryColumnCapacity, defaults.PrimaryColumnCapacity)
	setFloat(&result.SecondaryColumnCapacity, defaults.SecondaryColumnCapacity)
	setFloat(&result.PagePadding, defaults.PagePadding)
	setFloat(&result.FooterReserve, defaults.FooterReserve)
	setFloat(&result.FirstPageHeaderReserve, defaults.FirstPageHeaderReserve)
	setFloat(&result.SubsequentHeaderReserve, defaults.SubsequentHeaderReserve)
	setFloat(&result.SectionSpacing, defaults.SectionSpacing)
	setFloat(&result.PrimaryFontSize, defaults.PrimaryFontSize)
	setFloat(&result.SecondaryFontSize, defaults.SecondaryFontSize)

	if result.MaxUnitsPerPage == 0 {
		result.MaxUnitsPerPage = defaults.MaxUnitsPerPage
	}
	if result.PrimaryCharsPerLine == 0 {
		result.PrimaryCharsPerLine = defaults.PrimaryCharsPerLine
	}
	if result.SecondaryCharsPerLine == 0 {
		result.SecondaryCharsPerLine = defaults.SecondaryCharsPerLine
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// TopologyValue returns the parsed layout topology
func (c *Config) TopologyValue() (pagination.Topology, error) {
	return pagination.ParseTopology(c.Topology)
}

// Budget returns the default layout budget with every non-zero override applied
func (c *Config) Budget() pagination.LayoutBudget {
	b := pagination.DefaultBudget()

	override := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	override(&b.PageWidth, c.PageWidth)
	override(&b.PageHeight, c.PageHeight)
	override(&b.PrimaryColumnCapacity, c.PrimaryColumnCapacity)
	override(&b.SecondaryColumnCapacity, c.SecondaryColumnCapacity)
	override(&b.PagePadding, c.PagePadding)
	override(&b.FooterReserve, c.FooterReserve)
	override(&b.FirstPageHeaderReserve, c.FirstPageHeaderReserve)
	override(&b.SubsequentHeaderReserve, c.SubsequentHeaderReserve)
	override(&b.SectionSpacing, c.SectionSpacing)
	override(&b.Primary.FontSize, c.PrimaryFontSize)
	override(&b.Secondary.FontSize, c.SecondaryFontSize)

	if c.MaxUnitsPerPage > 0 {
		b.MaxUnitsPerPage = c.MaxUnitsPerPage
	}
	if c.PrimaryCharsPerLine > 0 {
		b.Primary.CharsPerLine = c.PrimaryCharsPerLine
	}
	if c.SecondaryCharsPerLine > 0 {
		b.Secondary.CharsPerLine = c.SecondaryCharsPerLine
	}
	return b
}

// NewEngine builds a pagination engine from the configuration
func (c *Config) NewEngine(opts ...pagination.Option) (*pagination.Engine, error) {
	topology, err := c.TopologyValue()
	if err != nil {
		return nil, err
	}
	return pagination.NewEngine(topology, c.Budget(), opts...)
}
