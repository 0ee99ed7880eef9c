package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/invoicepack/internal/batch"
	"github.com/kpauljoseph/invoicepack/internal/layout"
	"github.com/kpauljoseph/invoicepack/internal/metrics"
	"github.com/kpauljoseph/invoicepack/internal/pdf"
	"github.com/kpauljoseph/invoicepack/internal/scanner"
	"github.com/kpauljoseph/invoicepack/pkg/models"
)

type stubReader struct {
	heights map[string]float64
}

func (s *stubReader) Read(path string) (models.PageMetadata, error) {
	height, ok := s.heights[filepath.Base(path)]
	if !ok {
		return models.PageMetadata{}, pdf.ErrUnreadableDocument
	}
	return models.PageMetadata{SourcePath: path, Width: 595, Height: height}, nil
}

type stubComposer struct {
	jobs    []models.OutputJob
	failFor map[string]bool
	onJob   func()
}

func (s *stubComposer) Compose(ctx context.Context, job models.OutputJob) error {
	s.jobs = append(s.jobs, job)
	if s.onJob != nil {
		s.onJob()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.failFor[filepath.Base(job.OutputPath)] {
		return errors.New("disk full")
	}
	return os.WriteFile(job.OutputPath, []byte("%PDF-1.4"), 0644)
}

var _ = Describe("Runner", func() {
	var (
		sourceDir string
		outputDir string
		reader    *stubReader
		composer  *stubComposer
		recorder  *metrics.Recorder
		runner    *batch.Runner
	)

	BeforeEach(func() {
		root, err := os.MkdirTemp("", "runner-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, root)

		sourceDir = filepath.Join(root, "source")
		outputDir = filepath.Join(root, "output")
		Expect(os.Mkdir(sourceDir, 0755)).To(Succeed())

		reader = &stubReader{heights: map[string]float64{}}
		composer = &stubComposer{failFor: map[string]bool{}}
		recorder = metrics.NewRecorder()

		geometry := models.DefaultGeometry()
		log := batchTestLogger()
		runner = batch.NewRunner(
			scanner.New(log),
			reader,
			layout.NewOptimizer(geometry),
			composer,
			geometry,
			recorder,
			log,
		)
	})

	addSource := func(name string, height float64) {
		writeDummyFile(filepath.Join(sourceDir, name))
		reader.heights[name] = height
	}

	outputNames := func(report *batch.Report) []string {
		var names []string
		for _, out := range report.Outputs {
			names = append(names, filepath.Base(out))
		}
		return names
	}

	It("should place the odd tallest alone and merge the rest", func() {
		addSource("big.pdf", 900)
		addSource("mid.pdf", 500)
		addSource("small.pdf", 300)

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())

		Expect(report.RunID).NotTo(BeEmpty())
		Expect(report.SourceFiles).To(Equal(3))
		Expect(report.MergedPairs).To(Equal(1))
		Expect(report.StandaloneFiles).To(Equal(1))
		Expect(report.FailedJobs).To(BeZero())
		Expect(outputNames(report)).To(Equal([]string{"single_big.pdf", "mid_small.pdf"}))
		Expect(report.EndTime).NotTo(BeTemporally("<", report.StartTime))

		merged := composer.jobs[1]
		Expect(merged.Kind).To(Equal(models.KindMerged))
		Expect(merged.Pages[0].Scale).To(Equal(1.0))
		Expect(merged.Pages[1].Scale).To(Equal(1.0))

		for _, out := range report.Outputs {
			Expect(out).To(BeARegularFile())
		}
	})

	It("should name standalone outputs by the step that produced them", func() {
		addSource("huge.pdf", 1200)
		addSource("tall.pdf", 450)

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.MergedPairs).To(BeZero())
		Expect(report.StandaloneFiles).To(Equal(2))
		Expect(outputNames(report)).To(Equal([]string{"single_long_huge.pdf", "single_rem_tall.pdf"}))
	})

	It("should skip unreadable documents", func() {
		addSource("a.pdf", 400)
		addSource("b.pdf", 300)
		writeDummyFile(filepath.Join(sourceDir, "broken.pdf"))

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.SourceFiles).To(Equal(3))
		Expect(report.Skipped).To(ConsistOf(filepath.Join(sourceDir, "broken.pdf")))
		Expect(outputNames(report)).To(Equal([]string{"a_b.pdf"}))
	})

	It("should count only outputs that were written", func() {
		addSource("a.pdf", 400)
		addSource("b.pdf", 300)
		addSource("c.pdf", 900)
		composer.failFor["a_b.pdf"] = true

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.FailedJobs).To(Equal(1))
		Expect(report.MergedPairs).To(BeZero())
		Expect(report.StandaloneFiles).To(Equal(1))
		Expect(outputNames(report)).To(Equal([]string{"single_c.pdf"}))
	})

	It("should keep output names unique", func() {
		addSource("a.pdf", 400)
		addSource("a_b.pdf", 400)
		addSource("b_c.pdf", 300)
		addSource("c.pdf", 310)

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(outputNames(report)).To(Equal([]string{"a_b_c.pdf", "a_b_c_2.pdf"}))
	})

	It("should clear previous outputs before writing", func() {
		addSource("a.pdf", 400)
		Expect(os.MkdirAll(outputDir, 0755)).To(Succeed())
		writeDummyFile(filepath.Join(outputDir, "stale.pdf"))

		_, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Join(outputDir, "stale.pdf")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(outputDir, "single_a.pdf")).To(BeARegularFile())
	})

	It("should refuse to write into the source directory", func() {
		addSource("a.pdf", 400)
		addSource("b.pdf", 300)

		report, err := runner.Run(context.Background(), sourceDir, sourceDir)
		Expect(err).To(MatchError(batch.ErrOutputIsSource))
		Expect(report.Outputs).To(BeEmpty())
		Expect(composer.jobs).To(BeEmpty())
		Expect(filepath.Join(sourceDir, "a.pdf")).To(BeARegularFile())
		Expect(filepath.Join(sourceDir, "b.pdf")).To(BeARegularFile())
	})

	It("should recognise the source directory through another path", func() {
		addSource("a.pdf", 400)

		link := filepath.Join(filepath.Dir(sourceDir), "source-link")
		Expect(os.Symlink(sourceDir, link)).To(Succeed())

		_, err := runner.Run(context.Background(), sourceDir, link)
		Expect(err).To(MatchError(batch.ErrOutputIsSource))

		_, err = runner.Run(context.Background(), sourceDir, filepath.Join(sourceDir, "..", "source"))
		Expect(err).To(MatchError(batch.ErrOutputIsSource))

		Expect(filepath.Join(sourceDir, "a.pdf")).To(BeARegularFile())
	})

	It("should return ErrNoInput for an empty source directory", func() {
		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).To(MatchError(batch.ErrNoInput))
		Expect(report.SourceFiles).To(BeZero())
		Expect(outputDir).NotTo(BeADirectory())
	})

	It("should finish without outputs when nothing is readable", func() {
		writeDummyFile(filepath.Join(sourceDir, "broken.pdf"))

		report, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Skipped).To(HaveLen(1))
		Expect(report.Outputs).To(BeEmpty())
		Expect(composer.jobs).To(BeEmpty())
	})

	It("should stop when the context is cancelled between jobs", func() {
		addSource("a.pdf", 900)
		addSource("b.pdf", 500)
		addSource("c.pdf", 300)

		ctx, cancel := context.WithCancel(context.Background())
		composer.onJob = cancel

		report, err := runner.Run(ctx, sourceDir, outputDir)
		Expect(err).To(MatchError(context.Canceled))
		Expect(composer.jobs).To(HaveLen(1))
		Expect(report.Outputs).To(BeEmpty())
	})

	It("should record metrics for the run", func() {
		addSource("huge.pdf", 1200)
		addSource("tall.pdf", 450)
		addSource("a.pdf", 300)
		addSource("b.pdf", 200)
		writeDummyFile(filepath.Join(sourceDir, "broken.pdf"))

		_, err := runner.Run(context.Background(), sourceDir, outputDir)
		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(outputDir, "..", "run.prom")
		Expect(recorder.WriteTextfile(path)).To(Succeed())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		out := string(data)
		Expect(out).To(ContainSubstring(`invoicepack_documents_total{result="read"} 4`))
		Expect(out).To(ContainSubstring(`invoicepack_documents_total{result="skipped"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_pairing_attempts_total{result="no_fit"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_batch_duration_seconds_count 1`))
	})
})
