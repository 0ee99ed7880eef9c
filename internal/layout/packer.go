package layout

import (
	"errors"
	"path/filepath"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/models"
)

type ScaleFinder interface {
	FindOptimalScales(long, short models.PageMetadata) (models.ScalePair, error)
}

// Packer greedily pairs the tallest remaining page with the shortest one.
type Packer struct {
	finder   ScaleFinder
	geometry models.Geometry
	logger   *logger.Logger
}

func NewPacker(finder ScaleFinder, geometry models.Geometry, logger *logger.Logger) *Packer {
	return &Packer{
		finder:   finder,
		geometry: geometry,
		logger:   logger,
	}
}

// Pack turns pages into output jobs, in emission order. Output paths are left
// empty for the caller to fill in.
func (p *Packer) Pack(pages []models.PageMetadata) []models.OutputJob {
	work := NewWorklist(pages)
	jobs := make([]models.OutputJob, 0, len(pages))

	if work.Len()%2 != 0 {
		longest, _ := work.TakeMax()
		p.logger.Info("Odd number of documents, placing the longest on its own: %s", filepath.Base(longest.SourcePath))
		jobs = append(jobs, p.standalone(longest, models.KindStandaloneLong, models.PhaseOddCount))
	}

	for work.Len() >= 2 {
		long, _ := work.TakeMax()
		short, _ := work.TakeMin()
		p.logger.Debug("Trying pair [L] %s (%.2fpt) [S] %s (%.2fpt)",
			filepath.Base(long.SourcePath), long.Height, filepath.Base(short.SourcePath), short.Height)

		scales, err := p.finder.FindOptimalScales(long, short)
		if err != nil {
			if !errors.Is(err, ErrNoFeasibleScale) {
				p.logger.Warn("Scale search failed for %s: %v", filepath.Base(long.SourcePath), err)
			}
			p.logger.Info("No fit for %s, placing it on its own and re-queueing %s",
				filepath.Base(long.SourcePath), filepath.Base(short.SourcePath))
			jobs = append(jobs, p.standalone(long, models.KindStandaloneLong, models.PhasePairing))
			work.InsertSorted(short)
			continue
		}

		p.logger.Info("Merging [L] %s at %.1f%% with [S] %s at %.1f%%",
			filepath.Base(long.SourcePath), scales.LongScale*100, filepath.Base(short.SourcePath), scales.ShortScale*100)
		jobs = append(jobs, models.OutputJob{
			Kind:  models.KindMerged,
			Phase: models.PhasePairing,
			Pages: []models.PlacedPage{
				{Page: long, Scale: scales.LongScale},
				{Page: short, Scale: scales.ShortScale},
			},
		})
	}

	if remaining, ok := work.TakeMax(); ok {
		p.logger.Info("Placing remaining document on its own: %s", filepath.Base(remaining.SourcePath))
		jobs = append(jobs, p.standalone(remaining, models.KindStandaloneRemainder, models.PhaseRemainder))
	}

	return jobs
}

func (p *Packer) standalone(page models.PageMetadata, kind models.JobKind, phase models.JobPhase) models.OutputJob {
	return models.OutputJob{
		Kind:  kind,
		Phase: phase,
		Pages: []models.PlacedPage{{Page: page, Scale: p.geometry.StandaloneScale}},
	}
}
