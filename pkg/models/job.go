package models

type JobKind int

const (
	KindMerged JobKind = iota
	KindStandaloneLong
	KindStandaloneRemainder
)

func (k JobKind) String() string {
	switch k {
	case KindMerged:
		return "merged"
	case KindStandaloneLong:
		return "standalone_long"
	case KindStandaloneRemainder:
		return "standalone_remainder"
	default:
		return "unknown"
	}
}

// JobPhase records which step of the packing loop emitted a job. Standalone
// jobs from the odd-count pre-step and from a failed pairing share a kind but
// are named differently.
type JobPhase int

const (
	PhaseOddCount JobPhase = iota
	PhasePairing
	PhaseRemainder
)

type PlacedPage struct {
	Page  PageMetadata
	Scale float64
}

// OutputJob describes one output file. Merged jobs carry the long page first.
type OutputJob struct {
	OutputPath string
	Kind       JobKind
	Phase      JobPhase
	Pages      []PlacedPage
}

func (j OutputJob) SourcePaths() []string {
	paths := make([]string, 0, len(j.Pages))
	for _, p := range j.Pages {
		paths = append(paths, p.Page.SourcePath)
	}
	return paths
}

func (j OutputJob) IsStandalone() bool {
	return j.Kind != KindMerged
}
