package rendering

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// mmPerInch converts page geometry to the paper size PrintToPDF expects.
const mmPerInch = 25.4

// DefaultRasterizeTimeout bounds one Chrome print job.
const DefaultRasterizeTimeout = 60 * time.Second

// Rasterizer turns laid-out pages into a PDF.
type Rasterizer interface {
	Rasterize(ctx context.Context, pages []Page, geom PageGeometry, title string) ([]byte, error)
}

// ChromeRasterizer prints an absolutely positioned HTML scaffold of the pages
// with headless Chrome. The scaffold lives in a temporary directory that is
// removed whether or not printing succeeds.
type ChromeRasterizer struct {
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
	Logger   logrus.FieldLogger
}

// NewChromeRasterizer creates a rasterizer using the given Chrome binary.
func NewChromeRasterizer(execPath string, timeout time.Duration, logger logrus.FieldLogger) *ChromeRasterizer {
	if timeout <= 0 {
		timeout = DefaultRasterizeTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ChromeRasterizer{ExecPath: execPath, Timeout: timeout, Logger: logger}
}

// Rasterize implements Rasterizer.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, pages []Page, geom PageGeometry, title string) ([]byte, error) {
	scaffold, err := RenderScaffold(pages, geom, title)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "resume-editor-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scaffold directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(scaffold), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write scaffold: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(geom.Width / mmPerInch).
				WithPaperHeight(geom.Height / mmPerInch).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}

	count, err := PDFPageCount(pdf)
	if err != nil {
		return nil, err
	}
	if count != len(pages) {
		r.Logger.WithFields(logrus.Fields{
			"expected_pages": len(pages),
			"actual_pages":   count,
		}).Warn("rasterized page count differs from layout")
	}

	return pdf, nil
}

// PDFPageCount validates a PDF and returns its page count.
func PDFPageCount(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, &RenderError{Message: "produced PDF failed validation", Cause: err}
	}
	return ctx.PageCount, nil
}

type scaffoldData struct {
	Title     string
	Size      template.CSS
	PageStyle template.CSS
	Pages     []scaffoldPage
}

type scaffoldPage struct {
	Ops []scaffoldOp
}

type scaffoldOp struct {
	Rule  bool
	Style template.CSS
	Text  string
	Href  template.URL
}

// RenderScaffold renders pages as absolutely positioned HTML sized to geom.
func RenderScaffold(pages []Page, geom PageGeometry, title string) (string, error) {
	data := scaffoldData{
		Title:     title,
		Size:      template.CSS(fmt.Sprintf("%smm %smm", mm(geom.Width), mm(geom.Height))),
		PageStyle: template.CSS(fmt.Sprintf("width: %smm; height: %smm;", mm(geom.Width), mm(geom.Height))),
	}
	for _, p := range pages {
		var sp scaffoldPage
		for _, op := range p.Ops {
			sp.Ops = append(sp.Ops, scaffoldOpFor(op))
		}
		data.Pages = append(data.Pages, sp)
	}

	var out strings.Builder
	if err := pageTemplates.ExecuteTemplate(&out, "scaffold", data); err != nil {
		return "", &TemplateError{Message: "failed to execute scaffold template", Cause: err}
	}
	return out.String(), nil
}

func scaffoldOpFor(op DrawOp) scaffoldOp {
	if op.Kind == OpRule {
		return scaffoldOp{
			Rule:  true,
			Style: template.CSS(fmt.Sprintf("left: %smm; top: %smm; width: %smm;", mm(op.X), mm(op.Y), mm(op.X2-op.X))),
		}
	}

	top := op.Y - op.SizePt*PointsToMM*ascent
	style := fmt.Sprintf("left: %smm; top: %smm; font-size: %spt;", mm(op.X), mm(top), mm(op.SizePt))
	switch op.Weight {
	case WeightBold:
		style += " font-weight: bold;"
	case WeightItalic:
		style += " font-style: italic;"
	}
	switch op.Align {
	case AlignCenter:
		style += " transform: translateX(-50%);"
	case AlignRight:
		style += " transform: translateX(-100%);"
	}
	return scaffoldOp{Style: template.CSS(style), Text: op.Text, Href: template.URL(op.Href)}
}

// mm formats a length with at most two decimals.
func mm(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
