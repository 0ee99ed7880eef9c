package layout

import (
	"errors"

	"github.com/kpauljoseph/invoicepack/pkg/models"
)

var ErrNoFeasibleScale = errors.New("no feasible scale pair")

// Optimizer searches for the scale pair that stacks a long and a short page
// onto one output page.
type Optimizer struct {
	geometry models.Geometry
}

func NewOptimizer(geometry models.Geometry) *Optimizer {
	return &Optimizer{geometry: geometry}
}

// FindOptimalScales walks shortScale from ScaleMax down to ScaleMin and, for each
// value, longScale from ScaleMax down to ScaleMin. The first combination whose
// stacked heights fit the page wins, so the short page keeps the largest scale
// possible and the long page the largest scale left at that value.
//
// Scales are decremented by repeated subtraction and the accumulated rounding
// is kept: with the default bounds the smallest value visited is 0.701.
func (o *Optimizer) FindOptimalScales(long, short models.PageMetadata) (models.ScalePair, error) {
	g := o.geometry
	if g.ScaleStep <= 0 {
		return models.ScalePair{}, ErrNoFeasibleScale
	}

	for shortScale := g.ScaleMax; shortScale >= g.ScaleMin; shortScale -= g.ScaleStep {
		// Explicit conversions keep the compiler from fusing multiply and add.
		scaledShort := float64(short.Height * shortScale)
		for longScale := g.ScaleMax; longScale >= g.ScaleMin; longScale -= g.ScaleStep {
			scaledLong := float64(long.Height * longScale)
			if scaledLong+scaledShort <= g.Page.Height {
				return models.ScalePair{LongScale: longScale, ShortScale: shortScale}, nil
			}
		}
	}

	return models.ScalePair{}, ErrNoFeasibleScale
}
