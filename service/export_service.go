package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
	"catalog-studio/catalog"
	"catalog-studio/models"
)

// A4 portrait in inches (210mm x 297mm).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	// 210mm at 96 DPI.
	viewportWidth = 794
	// Raster scale for sharp embedded images.
	deviceScale = 2.0
)

// ExportService orchestrates the export: hydrate every product's
// images, render the themed document and hand it to the chromedp
// print backend.
type ExportService struct {
	projects   *ProjectService
	images     ImageServiceInterface
	render     *RenderService
	baseURL    string
	chromePath string
}

// NewExportService creates an ExportService. baseURL is where the
// app's own render endpoint is reachable for the browser backend.
func NewExportService(projects *ProjectService, images ImageServiceInterface, render *RenderService, baseURL, chromePath string) *ExportService {
	return &ExportService{
		projects:   projects,
		images:     images,
		render:     render,
		baseURL:    baseURL,
		chromePath: chromePath,
	}
}

// detectChromePath returns the configured Chrome/Chromium executable,
// falling back to common installation paths.
func (s *ExportService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
	}
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Filename derives the export file name from the project name.
func (s *ExportService) Filename(ext string) string {
	return fmt.Sprintf("%s.%s", s.projects.Snapshot().ProjectName, ext)
}

// hydrateProducts resolves every image of every product for embedding.
// The lookups fan out and are joined before return; results land at
// their original indices, so product and image order are preserved. A
// failed or missing image hydrates to the empty placeholder and never
// aborts the export.
func (s *ExportService) hydrateProducts(ctx context.Context, products []models.Product) []models.Product {
	hydrated := make([]models.Product, len(products))
	for i, p := range products {
		hydrated[i] = catalog.CloneProduct(p)
	}

	var wg sync.WaitGroup
	for i := range hydrated {
		for j := range hydrated[i].Images {
			wg.Add(1)
			go func(img *models.ProductImage) {
				defer wg.Done()
				img.Src = s.images.ResolveForEmbedding(ctx, img.ID)
			}(&hydrated[i].Images[j])
		}
	}
	wg.Wait()
	return hydrated
}

// BuildDocumentHTML assembles the complete multi-page export document
// for the current catalog: hydration, per-product fragments in product
// order, one concatenated HTML document.
func (s *ExportService) BuildDocumentHTML(ctx context.Context, theme models.Theme) (string, error) {
	data := s.projects.Snapshot()
	if len(data.Products) == 0 {
		return "", apperr.New(apperr.CodeValidation, "no products to export")
	}

	log.Info().Int("products", len(data.Products)).Str("theme", string(theme)).Msg("📄 Building export document")
	data.Products = s.hydrateProducts(ctx, data.Products)

	html, err := s.render.RenderDocument(data, theme, time.Now())
	if err != nil {
		return "", apperr.Wrap(apperr.CodeExport, err, "failed to render export document")
	}
	return html, nil
}

// newBrowserContext builds the chromedp allocator and browser
// contexts. The returned cancel releases both, tearing down the
// temporary rendering surface regardless of outcome.
func (s *ExportService) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if path := s.detectChromePath(); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}
	return browserCtx, cancel
}

// waitForImages blocks until every <img> on the page has loaded or
// errored, so the print captures fully decoded images.
func waitForImages() chromedp.Action {
	return chromedp.Evaluate(`
		(function() {
			return Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				return new Promise((resolve) => {
					if (img.complete) { resolve(); return; }
					const timeout = setTimeout(() => resolve(), 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}));
		})();
	`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	})
}

// GeneratePDF prints the export document to a single A4 portrait PDF:
// zero margins, printed backgrounds, 2x device scale. The PDF is
// buffered in memory; nothing partial is ever handed to the caller.
func (s *ExportService) GeneratePDF(ctx context.Context, theme models.Theme) ([]byte, error) {
	// The browser fetches the document from our own render endpoint.
	renderURL := fmt.Sprintf("%s/admin/export/render?theme=%s", s.baseURL, theme)

	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	browserCtx, browserCancel := s.newBrowserContext(ctx)
	defer browserCancel()

	if err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		return nil, apperr.Wrap(apperr.CodeExport, err, "failed to start print backend")
	}

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, 5000, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		waitForImages(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExport, err, "failed to generate PDF")
	}

	log.Info().Int("bytes", len(pdfBuf)).Msg("✓ PDF generated")
	return pdfBuf, nil
}

// GeneratePNG screenshots every page of the export document and
// returns them keyed by 1-based page number.
func (s *ExportService) GeneratePNG(ctx context.Context, theme models.Theme) (map[int][]byte, error) {
	totalPages := len(s.projects.Snapshot().Products)
	if totalPages == 0 {
		return nil, apperr.New(apperr.CodeValidation, "no products to export")
	}

	// Screenshotting each page is slower than printing; budget per
	// page, capped to keep the request bounded.
	timeout := time.Duration(20+totalPages*10) * time.Second
	if timeout > 3*time.Minute {
		timeout = 3 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := s.newBrowserContext(ctx)
	defer browserCancel()

	renderURL := fmt.Sprintf("%s/admin/export/render?theme=%s", s.baseURL, theme)
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, 1200, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		waitForImages(),
	); err != nil {
		return nil, apperr.Wrap(apperr.CodeExport, err, "failed to load export document")
	}

	pngs := make(map[int][]byte, totalPages)
	for n := 1; n <= totalPages; n++ {
		var shot []byte
		sel := fmt.Sprintf("#page-%d", n)
		if err := chromedp.Run(browserCtx,
			chromedp.Screenshot(sel, &shot, chromedp.NodeVisible),
		); err != nil {
			return nil, apperr.Wrap(apperr.CodeExport, err, fmt.Sprintf("failed to capture page %d", n))
		}
		pngs[n] = shot
	}

	log.Info().Int("pages", len(pngs)).Msg("✓ PNG pages generated")
	return pngs, nil
}
