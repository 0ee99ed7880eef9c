package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/invoicepack/pkg/models"
	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

// OutputName returns the file name for job, built from the base names of its
// sources.
func OutputName(job models.OutputJob) string {
	names := make([]string, 0, len(job.Pages))
	for _, p := range job.Pages {
		names = append(names, utils.BaseNameWithoutExt(p.Page.SourcePath))
	}
	if len(names) == 0 {
		return ""
	}

	var stem string
	switch {
	case job.Kind == models.KindMerged && len(names) == 2:
		stem = names[0] + "_" + names[1]
	case job.Kind == models.KindStandaloneRemainder:
		stem = "single_rem_" + names[0]
	case job.Kind == models.KindStandaloneLong && job.Phase == models.PhaseOddCount:
		stem = "single_" + names[0]
	case job.Kind == models.KindStandaloneLong:
		stem = "single_long_" + names[0]
	default:
		stem = strings.Join(names, "_")
	}
	return stem + utils.PDF_EXTENSION
}

// nameSet hands out output names, suffixing repeats with _2, _3, ...
type nameSet map[string]bool

func (s nameSet) claim(name string) string {
	if !s[name] {
		s[name] = true
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !s[candidate] {
			s[candidate] = true
			return candidate
		}
	}
}
