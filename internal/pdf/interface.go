package pdf

import (
	"context"
	"image"

	"github.com/kpauljoseph/invoicepack/pkg/models"
)

type PageReader interface {
	Read(path string) (models.PageMetadata, error)
}

type PageComposer interface {
	Compose(ctx context.Context, job models.OutputJob) error
}

// PageRenderer rasterizes the first page of a document.
type PageRenderer interface {
	RenderFirstPage(path string, dpi float64) (image.Image, error)
}
