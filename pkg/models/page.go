package models

import (
	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

type PageDimensions struct {
	Width  float64
	Height float64
}

// PageMetadata is the first-page geometry of one source document, in page points.
type PageMetadata struct {
	SourcePath string
	Width      float64
	Height     float64
}

func (m PageMetadata) Dimensions() PageDimensions {
	return PageDimensions{Width: m.Width, Height: m.Height}
}

type ScalePair struct {
	LongScale  float64
	ShortScale float64
}

// Geometry holds the output page size and the scale search bounds shared by
// the optimizer, the packer and the compositor.
type Geometry struct {
	Page            PageDimensions
	ScaleMin        float64
	ScaleMax        float64
	ScaleStep       float64
	StandaloneScale float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		Page: PageDimensions{
			Width:  utils.A4_PAGE_WIDTH_PT,
			Height: utils.A4_PAGE_HEIGHT_PT,
		},
		ScaleMin:        utils.DEFAULT_SCALE_MIN,
		ScaleMax:        utils.DEFAULT_SCALE_MAX,
		ScaleStep:       utils.DEFAULT_SCALE_STEP,
		StandaloneScale: utils.DEFAULT_STANDALONE_SCALE,
	}
}
