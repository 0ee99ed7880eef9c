package batch

import (
	"path/filepath"
	"time"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
)

type Report struct {
	RunID           string
	StartTime       time.Time
	EndTime         time.Time
	SourceFiles     int
	Skipped         []string
	MergedPairs     int
	StandaloneFiles int
	FailedJobs      int
	Outputs         []string
}

func (r *Report) TimeTaken() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// PagesSaved is the number of sheets saved compared to printing every
// readable source on its own page.
func (r *Report) PagesSaved() int {
	return r.MergedPairs
}

func (r *Report) Print(log *logger.Logger) {
	processingCompleteBanner := `
+------------------------------------------------------------------------------+
|                           PROCESSING COMPLETE                                |
+------------------------------------------------------------------------------+`

	skippedFilesBanner := `
+------------------------------------------------------------------------------+
|                            SKIPPED FILES                                     |
+------------------------------------------------------------------------------+`

	log.Info("\n%s\n", processingCompleteBanner)
	log.Info("- Run ID: %s", r.RunID)
	log.Info("- Total PDFs found: %d", r.SourceFiles)
	log.Info("- Merged pairs: %d", r.MergedPairs)
	log.Info("- Standalone files: %d", r.StandaloneFiles)
	log.Info("- Pages saved: %d", r.PagesSaved())
	if r.FailedJobs > 0 {
		log.Info("- Failed outputs: %d", r.FailedJobs)
	}
	log.Info("- Time Taken: %v", r.TimeTaken().Round(time.Millisecond))

	if len(r.Skipped) > 0 {
		log.Info("\n%s\n", skippedFilesBanner)
		for _, path := range r.Skipped {
			log.Info("- %s", filepath.Base(path))
		}
	}
}
