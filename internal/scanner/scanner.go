package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

var ErrNoPDFs = errors.New("no PDF files found")

type PDFFile struct {
	AbsolutePath string
	Name         string
}

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{
		logger: logger,
	}
}

// FindPDFs lists the PDF files directly inside dir, sorted by name.
// Subdirectories are not visited.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]PDFFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	s.logger.Debug("Scanning directory: %s", absDir)

	var pdfs []PDFFile
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() || !utils.HasPDFExtension(entry.Name()) {
			continue
		}

		pdfs = append(pdfs, PDFFile{
			AbsolutePath: filepath.Join(absDir, entry.Name()),
			Name:         entry.Name(),
		})
		s.logger.Trace("Found PDF (%d): %s", len(pdfs), entry.Name())
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPDFs, dir)
	}

	sort.Slice(pdfs, func(i, j int) bool {
		return pdfs[i].Name < pdfs[j].Name
	})

	return pdfs, nil
}
