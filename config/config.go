package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"catalog-studio/models"
)

// Price formatting policies for the export renderer. "trim" shows
// 44.50 as 44.5 and 44.00 as 44; "fixed" always shows two decimals.
const (
	PriceFormatTrim  = "trim"
	PriceFormatFixed = "fixed"
)

// Config holds the full application configuration, loaded from the
// environment with the CATALOG_ prefix.
type Config struct {
	Port       string `envconfig:"PORT" default:"8080"`
	BaseURL    string `envconfig:"BASE_URL"`
	DataDir    string `envconfig:"DATA_DIR" default:"data"`
	CacheDir   string `envconfig:"CACHE_DIR" default:"cache/images"`
	ChromePath string `envconfig:"CHROME_PATH"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"console"`

	Export ExportConfig
}

// ExportConfig fixes the per-document rendering choices. These are
// configuration, not per-product options: one price policy and one
// footer choice apply to a whole exported document.
type ExportConfig struct {
	DefaultTheme string `envconfig:"EXPORT_THEME" default:"simple"`
	PriceFormat  string `envconfig:"EXPORT_PRICE_FORMAT" default:"trim"`
	Footer       bool   `envconfig:"EXPORT_FOOTER" default:"true"`
	TemplateDir  string `envconfig:"EXPORT_TEMPLATE_DIR" default:"templates"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("catalog", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.Export.PriceFormat != PriceFormatTrim && cfg.Export.PriceFormat != PriceFormatFixed {
		return nil, fmt.Errorf("invalid CATALOG_EXPORT_PRICE_FORMAT %q (want %q or %q)",
			cfg.Export.PriceFormat, PriceFormatTrim, PriceFormatFixed)
	}
	if !models.ValidTheme(models.Theme(cfg.Export.DefaultTheme)) {
		return nil, fmt.Errorf("invalid CATALOG_EXPORT_THEME %q (want simple, moderate or fancy)",
			cfg.Export.DefaultTheme)
	}
	return &cfg, nil
}

// CatalogDBPath is the sqlite file holding the structured project
// record.
func (c *Config) CatalogDBPath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// BlobDBPath is the sqlite file holding the binary image blobs. Kept
// separate from the catalog store on purpose: the two stores are
// independent and only the mutation ordering keeps them consistent.
func (c *Config) BlobDBPath() string {
	return filepath.Join(c.DataDir, "images.db")
}
