package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/invoicepack/internal/layout"
	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/models"
	"github.com/kpauljoseph/invoicepack/pkg/version"
)

// Compositor renders one output page per job: each source page is rasterized
// and drawn at its scaled placement on a blank page of the configured size.
type Compositor struct {
	geometry models.Geometry
	renderer PageRenderer
	dpi      float64
	logger   *logger.Logger
}

func NewCompositor(geometry models.Geometry, renderer PageRenderer, dpi float64, logger *logger.Logger) *Compositor {
	return &Compositor{
		geometry: geometry,
		renderer: renderer,
		dpi:      dpi,
		logger:   logger,
	}
}

func (c *Compositor) Compose(ctx context.Context, job models.OutputJob) error {
	if err := c.compose(ctx, job); err != nil {
		if job.OutputPath != "" {
			if rmErr := os.Remove(job.OutputPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				c.logger.Debug("Could not remove partial output %s: %v", job.OutputPath, rmErr)
			}
		}
		return fmt.Errorf("%w: %s: %w", ErrCompositionFailure, filepath.Base(job.OutputPath), err)
	}
	return nil
}

func (c *Compositor) compose(ctx context.Context, job models.OutputJob) error {
	if job.OutputPath == "" {
		return errors.New("job has no output path")
	}
	if len(job.Pages) == 0 || len(job.Pages) > 2 {
		return fmt.Errorf("job has %d pages, expected 1 or 2", len(job.Pages))
	}

	page := c.geometry.Page
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetCreator(version.GetVersionInfo(), true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	rects := layout.Placements(page, job)
	for i, placed := range job.Pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := c.renderer.RenderFirstPage(placed.Page.SourcePath, c.dpi)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", filepath.Base(placed.Page.SourcePath), err)
		}

		var buf bytes.Buffer
		if err := encodePNG(&buf, img); err != nil {
			return fmt.Errorf("failed to encode %s: %w", filepath.Base(placed.Page.SourcePath), err)
		}

		r := rects[i]
		// fpdf measures y from the top edge.
		top := page.Height - (r.Y + r.Height)
		c.logger.Trace("Placing %s at x=%.2f y=%.2f w=%.2f h=%.2f (scale %.3f)",
			filepath.Base(placed.Page.SourcePath), r.X, r.Y, r.Width, r.Height, placed.Scale)

		name := fmt.Sprintf("page%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.ImageOptions(name, r.X, top, r.Width, r.Height, false, opts, 0, "")
	}

	if doc.Err() {
		return doc.Error()
	}

	if err := doc.OutputFileAndClose(job.OutputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := api.ValidateFile(job.OutputPath, nil); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}

	c.logger.Debug("Wrote %s (%s, %d page(s))", filepath.Base(job.OutputPath), job.Kind, len(job.Pages))
	return nil
}
