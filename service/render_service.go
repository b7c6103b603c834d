package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"catalog-studio/config"
	"catalog-studio/models"
	"catalog-studio/utils"
)

// ThemeStyle is one theme's surface styling. Themes only pick colors;
// the page structure is identical across all of them.
type ThemeStyle struct {
	PageBg       string
	PageText     string
	Border       string
	Heading      string
	SubText      string
	PriceBg      string
	PriceText    string
	ChipBg       string
	ChipText     string
	NotesBg      string
	TableBorder  string
	SwatchBorder string
}

// themeStyles is the styling lookup table for the three export themes.
var themeStyles = map[models.Theme]ThemeStyle{
	models.ThemeSimple: {
		PageBg:       "#ffffff",
		PageText:     "#1f2937",
		Border:       "#e5e7eb",
		Heading:      "#111827",
		SubText:      "#4b5563",
		PriceBg:      "#3b82f6",
		PriceText:    "#ffffff",
		ChipBg:       "#e5e7eb",
		ChipText:     "#1f2937",
		NotesBg:      "#f3f4f6",
		TableBorder:  "#999999",
		SwatchBorder: "#000000",
	},
	models.ThemeModerate: {
		PageBg:       "#f9fafb",
		PageText:     "#111827",
		Border:       "#d1d5db",
		Heading:      "#111827",
		SubText:      "#4b5563",
		PriceBg:      "#0d9488",
		PriceText:    "#ffffff",
		ChipBg:       "#e5e7eb",
		ChipText:     "#1f2937",
		NotesBg:      "#f3f4f6",
		TableBorder:  "#999999",
		SwatchBorder: "#000000",
	},
	models.ThemeFancy: {
		PageBg:       "#1f2937",
		PageText:     "#ffffff",
		Border:       "#374151",
		Heading:      "#fde047",
		SubText:      "#d1d5db",
		PriceBg:      "#facc15",
		PriceText:    "#111827",
		ChipBg:       "#374151",
		ChipText:     "#fde047",
		NotesBg:      "#374151",
		TableBorder:  "#555555",
		SwatchBorder: "#ffffff",
	},
}

// StyleFor returns the styling profile of a theme.
func StyleFor(theme models.Theme) ThemeStyle {
	return themeStyles[theme]
}

// GridColumns maps a product's image count to its grid column count.
func GridColumns(imageCount int) int {
	switch {
	case imageCount <= 2:
		return 1
	case imageCount == 4:
		return 2
	case imageCount <= 6:
		return 3
	default:
		return 4
	}
}

// PageData is everything one page fragment needs: the hydrated
// product, its deterministic layout values and the theme styling.
type PageData struct {
	Product    models.Product
	Style      ThemeStyle
	GridCols   int
	PriceText  string
	PageNumber int
	TotalPages int
	ShowFooter bool
	ExportDate string
}

// DocumentData drives the full document template.
type DocumentData struct {
	Title string
	Style ThemeStyle
	Pages []PageData
}

// RenderService is the deterministic document renderer: hydrated
// products in, themed page fragments out.
type RenderService struct {
	templateDir string
	priceFormat string
	footer      bool
}

// NewRenderService creates a RenderService reading templates from
// templateDir and applying the configured export options.
func NewRenderService(cfg config.ExportConfig) *RenderService {
	return &RenderService{
		templateDir: cfg.TemplateDir,
		priceFormat: cfg.PriceFormat,
		footer:      cfg.Footer,
	}
}

// FormatPrice applies the configured price policy.
func (s *RenderService) FormatPrice(price float64) string {
	if s.priceFormat == config.PriceFormatFixed {
		return utils.FormatPriceFixed(price)
	}
	return utils.FormatPriceTrimmed(price)
}

// PageFor builds the page data for one hydrated product. pageNumber is
// 1-based.
func (s *RenderService) PageFor(product models.Product, theme models.Theme, pageNumber, totalPages int, exportDate time.Time) PageData {
	return PageData{
		Product:    product,
		Style:      StyleFor(theme),
		GridCols:   GridColumns(len(product.Images)),
		PriceText:  s.FormatPrice(product.Price),
		PageNumber: pageNumber,
		TotalPages: totalPages,
		ShowFooter: s.footer,
		ExportDate: exportDate.Format("2006-01-02"),
	}
}

var templateFuncs = template.FuncMap{
	"add1": func(n int) int { return n + 1 },
	// Hydrated images are self-contained data URIs; html/template would
	// otherwise reject the data: scheme in src attributes.
	"dataURI": func(s string) template.URL { return template.URL(s) },
}

func (s *RenderService) parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("document.html").Funcs(templateFuncs).ParseFiles(
		filepath.Join(s.templateDir, "document.html"),
		filepath.Join(s.templateDir, "page.html"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// RenderDocument flattens the hydrated products into one multi-page
// HTML document, one fragment per product in product order. Each
// fragment carries its own page-break, so concatenation needs no
// separator pass.
func (s *RenderService) RenderDocument(project models.ProjectData, theme models.Theme, exportDate time.Time) (string, error) {
	tmpl, err := s.parseTemplates()
	if err != nil {
		return "", err
	}

	total := len(project.Products)
	pages := make([]PageData, 0, total)
	for i, product := range project.Products {
		pages = append(pages, s.PageFor(product, theme, i+1, total, exportDate))
	}

	data := DocumentData{
		Title: project.ProjectName,
		Style: StyleFor(theme),
		Pages: pages,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "document.html", data); err != nil {
		return "", fmt.Errorf("failed to execute document template: %w", err)
	}
	return buf.String(), nil
}

// RenderPage renders a single product fragment. Used by tests and
// previews; the export pipeline goes through RenderDocument.
func (s *RenderService) RenderPage(page PageData) (string, error) {
	tmpl, err := s.parseTemplates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page", page); err != nil {
		return "", fmt.Errorf("failed to execute page template: %w", err)
	}
	return buf.String(), nil
}
