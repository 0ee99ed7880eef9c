package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/models"
	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

// MetadataReader reports the first-page size of a document in points.
// pdfcpu is tried first; MuPDF is the fallback for files pdfcpu rejects.
type MetadataReader struct {
	logger *logger.Logger
}

func NewMetadataReader(logger *logger.Logger) *MetadataReader {
	return &MetadataReader{logger: logger}
}

func (r *MetadataReader) Read(path string) (models.PageMetadata, error) {
	name := filepath.Base(path)

	// pdfcpu needs the header at byte 0; anything else goes straight to MuPDF,
	// which repairs leading junk and broken xref tables.
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		r.logger.Debug("Could not sniff %s, falling back to MuPDF: %v", name, err)
		return r.readWithFitz(path)
	}
	if !mtype.Is(utils.PDF_MIME_TYPE) {
		r.logger.Debug("%s sniffed as %s, falling back to MuPDF", name, mtype.String())
		return r.readWithFitz(path)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		r.logger.Debug("pdfcpu could not read %s, falling back to MuPDF: %v", name, err)
		return r.readWithFitz(path)
	}
	if len(dims) == 0 {
		return models.PageMetadata{}, fmt.Errorf("%s: %w", name, ErrNoPages)
	}

	r.logger.Trace("%s: %.2f x %.2f pt (%d pages)", name, dims[0].Width, dims[0].Height, len(dims))
	return models.PageMetadata{
		SourcePath: path,
		Width:      dims[0].Width,
		Height:     dims[0].Height,
	}, nil
}

// readWithFitz works at MuPDF's integer point bounds: go-fitz only exposes the
// page box as an image.Rectangle, so fractional sizes are truncated.
func (r *MetadataReader) readWithFitz(path string) (models.PageMetadata, error) {
	name := filepath.Base(path)

	doc, err := fitz.New(path)
	if err != nil {
		return models.PageMetadata{}, fmt.Errorf("%w: %s: %w", ErrUnreadableDocument, name, err)
	}
	defer doc.Close()

	if doc.NumPage() <= 0 {
		return models.PageMetadata{}, fmt.Errorf("%s: %w", name, ErrNoPages)
	}

	bounds, err := doc.Bound(0)
	if err != nil {
		return models.PageMetadata{}, fmt.Errorf("%w: %s: failed to get bounds: %w", ErrUnreadableDocument, name, err)
	}
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return models.PageMetadata{}, fmt.Errorf("%w: %s: empty page box", ErrUnreadableDocument, name)
	}

	r.logger.Debug("%s: %d x %d pt from MuPDF (whole points, fractions truncated)", name, bounds.Dx(), bounds.Dy())

	return models.PageMetadata{
		SourcePath: path,
		Width:      float64(bounds.Dx()),
		Height:     float64(bounds.Dy()),
	}, nil
}
