package printer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
)

type SpoolReport struct {
	Sent   int
	Failed int
}

// Spooler sends files one at a time, pausing between submissions so the
// print queue keeps them in order.
type Spooler struct {
	printer     Printer
	printerName string
	delay       time.Duration
	logger      *logger.Logger

	// OnResult is called after every submission when set.
	OnResult func(path string, err error)
}

func NewSpooler(printer Printer, printerName string, delay time.Duration, logger *logger.Logger) *Spooler {
	return &Spooler{
		printer:     printer,
		printerName: printerName,
		delay:       delay,
		logger:      logger,
	}
}

// Spool prints files in order. Individual failures are logged and counted;
// only context cancellation stops the loop early.
func (s *Spooler) Spool(ctx context.Context, files []string) (SpoolReport, error) {
	var report SpoolReport

	for i, file := range files {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(s.delay):
			}
		}

		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		s.logger.Info("Printing (%d/%d): %s", i+1, len(files), filepath.Base(file))
		err := s.printer.Print(ctx, file, s.printerName)
		if s.OnResult != nil {
			s.OnResult(file, err)
		}
		if err != nil {
			s.logger.Error("Error printing %s: %v", filepath.Base(file), err)
			report.Failed++
			continue
		}
		report.Sent++
	}

	s.logger.Debug("Spooled %d file(s), %d failed", report.Sent, report.Failed)
	return report, nil
}
