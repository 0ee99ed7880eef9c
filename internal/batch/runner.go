package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kpauljoseph/invoicepack/internal/layout"
	"github.com/kpauljoseph/invoicepack/internal/metrics"
	"github.com/kpauljoseph/invoicepack/internal/pdf"
	"github.com/kpauljoseph/invoicepack/internal/scanner"
	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/models"
)

var ErrNoInput = errors.New("no input documents")

type PDFFinder interface {
	FindPDFs(ctx context.Context, dir string) ([]scanner.PDFFile, error)
}

// Runner drives one batch: scan, read, pack, name and compose.
type Runner struct {
	finder   PDFFinder
	reader   pdf.PageReader
	scales   layout.ScaleFinder
	composer pdf.PageComposer
	geometry models.Geometry
	recorder *metrics.Recorder
	logger   *logger.Logger
}

func NewRunner(
	finder PDFFinder,
	reader pdf.PageReader,
	scales layout.ScaleFinder,
	composer pdf.PageComposer,
	geometry models.Geometry,
	recorder *metrics.Recorder,
	logger *logger.Logger,
) *Runner {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Runner{
		finder:   finder,
		reader:   reader,
		scales:   scales,
		composer: composer,
		geometry: geometry,
		recorder: recorder,
		logger:   logger,
	}
}

// Run processes every PDF in sourceDir into outputDir. Only a missing input,
// an outputDir that is sourceDir, a failure to prepare outputDir or
// cancellation end the run with an error;
// unreadable sources and failed outputs are logged and counted in the report.
func (r *Runner) Run(ctx context.Context, sourceDir, outputDir string) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	defer func() {
		report.EndTime = time.Now()
		r.recorder.ObserveBatch(report.TimeTaken())
	}()

	r.logger.Debug("Starting run %s", report.RunID)

	same, err := sameDir(sourceDir, outputDir)
	if err != nil {
		return report, err
	}
	if same {
		return report, fmt.Errorf("%w: %s", ErrOutputIsSource, outputDir)
	}

	r.logger.Info("Scanning directory: %s", sourceDir)

	files, err := r.finder.FindPDFs(ctx, sourceDir)
	if err != nil {
		if errors.Is(err, scanner.ErrNoPDFs) {
			return report, fmt.Errorf("%w: %w", ErrNoInput, err)
		}
		return report, err
	}
	report.SourceFiles = len(files)
	r.logger.Info("Found %d PDFs to process", len(files))

	if _, err := PrepareOutputDir(outputDir, r.logger); err != nil {
		return report, err
	}

	pages := make([]models.PageMetadata, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		meta, err := r.reader.Read(file.AbsolutePath)
		if err != nil {
			r.logger.Warn("Skipping %s: %v", file.Name, err)
			report.Skipped = append(report.Skipped, file.AbsolutePath)
			r.recorder.DocumentSkipped()
			continue
		}
		r.logger.Debug("%s: %.2f x %.2f pt", file.Name, meta.Width, meta.Height)
		r.recorder.DocumentRead()
		pages = append(pages, meta)
	}

	if len(pages) == 0 {
		r.logger.Warn("No readable documents in %s", sourceDir)
		return report, nil
	}

	packer := layout.NewPacker(&countingFinder{finder: r.scales, recorder: r.recorder}, r.geometry, r.logger)
	jobs := packer.Pack(pages)

	names := nameSet{}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		job.OutputPath = filepath.Join(outputDir, names.claim(OutputName(job)))
		if err := r.composer.Compose(ctx, job); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			r.logger.Error("Error writing %s: %v", filepath.Base(job.OutputPath), err)
			report.FailedJobs++
			r.recorder.JobFailed(job.Kind.String())
			continue
		}

		if job.IsStandalone() {
			report.StandaloneFiles++
		} else {
			report.MergedPairs++
		}
		report.Outputs = append(report.Outputs, job.OutputPath)
		r.recorder.JobWritten(job.Kind.String())
		r.logger.Info("Saved: %s", filepath.Base(job.OutputPath))
	}

	return report, nil
}

type countingFinder struct {
	finder   layout.ScaleFinder
	recorder *metrics.Recorder
}

func (f *countingFinder) FindOptimalScales(long, short models.PageMetadata) (models.ScalePair, error) {
	pair, err := f.finder.FindOptimalScales(long, short)
	f.recorder.PairingAttempt(err == nil)
	return pair, err
}
