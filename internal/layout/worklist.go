package layout

import (
	"sort"

	"github.com/kpauljoseph/invoicepack/pkg/models"
)

// Worklist keeps the pages that still need placing, tallest first.
// Equal heights keep their insertion order.
type Worklist struct {
	items []models.PageMetadata
}

func NewWorklist(pages []models.PageMetadata) *Worklist {
	items := make([]models.PageMetadata, len(pages))
	copy(items, pages)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Height > items[j].Height
	})
	return &Worklist{items: items}
}

func (w *Worklist) Len() int {
	return len(w.items)
}

// TakeMax removes and returns the tallest page.
func (w *Worklist) TakeMax() (models.PageMetadata, bool) {
	if len(w.items) == 0 {
		return models.PageMetadata{}, false
	}
	page := w.items[0]
	w.items = w.items[1:]
	return page, true
}

// TakeMin removes and returns the shortest page.
func (w *Worklist) TakeMin() (models.PageMetadata, bool) {
	if len(w.items) == 0 {
		return models.PageMetadata{}, false
	}
	last := len(w.items) - 1
	page := w.items[last]
	w.items = w.items[:last]
	return page, true
}

// InsertSorted puts page back after every page at least as tall as it.
func (w *Worklist) InsertSorted(page models.PageMetadata) {
	idx := sort.Search(len(w.items), func(i int) bool {
		return w.items[i].Height < page.Height
	})
	w.items = append(w.items, models.PageMetadata{})
	copy(w.items[idx+1:], w.items[idx:])
	w.items[idx] = page
}

func (w *Worklist) Heights() []float64 {
	heights := make([]float64, len(w.items))
	for i, item := range w.items {
		heights[i] = item.Height
	}
	return heights
}
