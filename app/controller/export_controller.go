package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
	"catalog-studio/models"
	"catalog-studio/service"
)

// validFormats is the set of accepted export formats.
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
	"png":  true,
}

// ExportController handles HTTP requests for catalog export.
type ExportController struct {
	exports      *service.ExportService
	defaultTheme models.Theme

	// Temporary storage for PNG pages (key: sessionID, value: map of
	// page number to PNG data)
	pngStorage      map[string]map[int][]byte
	pngStorageMutex sync.RWMutex
}

// NewExportController creates a new ExportController.
func NewExportController(exports *service.ExportService, defaultTheme models.Theme) *ExportController {
	return &ExportController{
		exports:      exports,
		defaultTheme: defaultTheme,
		pngStorage:   make(map[string]map[int][]byte),
	}
}

func (c *ExportController) themeFrom(r *http.Request) (models.Theme, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("theme")))
	if raw == "" {
		return c.defaultTheme, nil
	}
	theme := models.Theme(raw)
	if !models.ValidTheme(theme) {
		return "", apperr.Newf(apperr.CodeValidation, "invalid theme %q (valid: simple, moderate, fancy)", raw)
	}
	return theme, nil
}

// Export handles GET /admin/export?format=pdf|html|png&theme=simple|moderate|fancy
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if !validFormats[format] {
		writeError(w, apperr.Newf(apperr.CodeValidation, "invalid format %q (valid: html, pdf, png)", format))
		return
	}

	theme, err := c.themeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("format", format).Str("theme", string(theme)).Msg("📥 Export requested")

	switch format {
	case "html":
		html, err := c.exports.BuildDocumentHTML(r.Context(), theme)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(html)); err != nil {
			log.Error().Err(err).Msg("❌ Failed to write HTML response")
		}

	case "pdf":
		pdfData, err := c.exports.GeneratePDF(r.Context(), theme)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.exports.Filename("pdf")))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Error().Err(err).Msg("❌ Failed to write PDF response")
		}

	case "png":
		c.exportPNG(w, r, theme)
	}
}

// exportPNG generates per-page PNGs, parks them in the temporary
// session storage and answers with download links.
func (c *ExportController) exportPNG(w http.ResponseWriter, r *http.Request, theme models.Theme) {
	pngs, err := c.exports.GeneratePNG(r.Context(), theme)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID := fmt.Sprintf("%s_%d", theme, time.Now().UnixNano())
	c.pngStorageMutex.Lock()
	c.pngStorage[sessionID] = pngs
	c.pngStorageMutex.Unlock()

	// Sessions expire after 10 minutes.
	go func() {
		time.Sleep(10 * time.Minute)
		c.pngStorageMutex.Lock()
		delete(c.pngStorage, sessionID)
		c.pngStorageMutex.Unlock()
	}()

	type pageLink struct {
		Page     int    `json:"page"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	pages := make([]pageLink, 0, len(pngs))
	for n := 1; n <= len(pngs); n++ {
		if _, ok := pngs[n]; !ok {
			continue
		}
		pages = append(pages, pageLink{
			Page:     n,
			URL:      fmt.Sprintf("/admin/export/png-page?session=%s&page=%d", sessionID, n),
			Filename: fmt.Sprintf("catalog_page_%d.png", n),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":  sessionID,
		"totalPages": len(pngs),
		"theme":      theme,
		"pages":      pages,
	})
}

// DownloadPNGPage handles GET /admin/export/png-page?session=...&page=N
func (c *ExportController) DownloadPNGPage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	pageStr := r.URL.Query().Get("page")
	pageNum, err := strconv.Atoi(pageStr)
	if sessionID == "" || err != nil || pageNum < 1 {
		writeError(w, apperr.New(apperr.CodeValidation, "session and page parameters are required"))
		return
	}

	c.pngStorageMutex.RLock()
	pages, ok := c.pngStorage[sessionID]
	var data []byte
	if ok {
		data = pages[pageNum]
	}
	c.pngStorageMutex.RUnlock()

	if data == nil {
		writeError(w, apperr.Newf(apperr.CodeNotFound, "png page %d not found (session expired?)", pageNum))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("catalog_page_%d.png", pageNum)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("❌ Failed to write PNG response")
	}
}

// RenderExport handles GET /admin/export/render?theme=...
// Serves the fully hydrated export document; the chromedp backend
// navigates here to print it.
func (c *ExportController) RenderExport(w http.ResponseWriter, r *http.Request) {
	theme, err := c.themeFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := c.exports.BuildDocumentHTML(r.Context(), theme)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Error().Err(err).Msg("❌ Failed to write render response")
	}
}
