package layout

import "github.com/kpauljoseph/invoicepack/pkg/models"

type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignBottom
)

// Rect is a placement in PDF user space: origin bottom-left, page points.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Place centres a scaled page horizontally and pins it to the top or bottom
// edge. Width is not checked against the page; a wide page overflows both sides.
func Place(page models.PageDimensions, src models.PageMetadata, scale float64, align VerticalAlign) Rect {
	w := src.Width * scale
	h := src.Height * scale
	r := Rect{
		X:      (page.Width - w) / 2,
		Width:  w,
		Height: h,
	}
	if align == AlignTop {
		r.Y = page.Height - h
	}
	return r
}

// Placements returns one rectangle per page of job: the first page on top,
// the second (merged jobs only) at the bottom.
func Placements(page models.PageDimensions, job models.OutputJob) []Rect {
	rects := make([]Rect, 0, len(job.Pages))
	for i, placed := range job.Pages {
		align := AlignTop
		if i > 0 {
			align = AlignBottom
		}
		rects = append(rects, Place(page, placed.Page, placed.Scale, align))
	}
	return rects
}
