package scanner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/invoicepack/internal/scanner"
	"github.com/kpauljoseph/invoicepack/pkg/logger"
)

var _ = Describe("Scanner", func() {
	var (
		testDir    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		testLogger = logger.New(logger.WithOutput(GinkgoWriter), logger.WithPrefix("[test] "))
		testLogger.SetLevel(logger.LevelTrace)
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindPDFs(ctx, testDir)
			Expect(err).To(MatchError(scanner.ErrNoPDFs))
			Expect(err.Error()).To(ContainSubstring("no PDF files found"))
		})
	})

	Context("when the directory does not exist", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindPDFs(ctx, filepath.Join(testDir, "missing"))
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(scanner.ErrNoPDFs))
		})
	})

	Context("when scanning a directory with PDFs", func() {
		BeforeEach(func() {
			for _, i := range []int{3, 1, 2} {
				err := os.WriteFile(
					filepath.Join(testDir, fmt.Sprintf("test%d.pdf", i)),
					[]byte("dummy pdf content"),
					0644,
				)
				Expect(err).NotTo(HaveOccurred())
			}

			err := os.WriteFile(filepath.Join(testDir, "UPPER.PDF"), []byte("dummy pdf content"), 0644)
			Expect(err).NotTo(HaveOccurred())

			err = os.WriteFile(
				filepath.Join(testDir, "test.txt"),
				[]byte("text file"),
				0644,
			)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should find only PDF files, sorted by name", func() {
			s := scanner.New(testLogger)
			pdfs, err := s.FindPDFs(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())

			var names []string
			for _, pdf := range pdfs {
				names = append(names, pdf.Name)
				Expect(pdf.AbsolutePath).To(Equal(filepath.Join(testDir, pdf.Name)))
				Expect(filepath.IsAbs(pdf.AbsolutePath)).To(BeTrue())
			}
			Expect(names).To(Equal([]string{"UPPER.PDF", "test1.pdf", "test2.pdf", "test3.pdf"}))
		})
	})

	Context("when scanning nested directories", func() {
		BeforeEach(func() {
			nestedDir := filepath.Join(testDir, "nested")
			err := os.MkdirAll(nestedDir, 0755)
			Expect(err).NotTo(HaveOccurred())

			files := []string{
				filepath.Join(testDir, "root.pdf"),
				filepath.Join(nestedDir, "nested.pdf"),
			}

			for _, file := range files {
				err := os.WriteFile(file, []byte("dummy pdf content"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should not descend into subdirectories", func() {
			s := scanner.New(testLogger)
			pdfs, err := s.FindPDFs(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())
			Expect(pdfs).To(HaveLen(1))
			Expect(pdfs[0].Name).To(Equal("root.pdf"))
		})
	})

	Context("when context is cancelled", func() {
		It("should stop scanning", func() {
			err := os.WriteFile(filepath.Join(testDir, "a.pdf"), []byte("dummy"), 0644)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := scanner.New(testLogger)
			_, err = s.FindPDFs(ctx, testDir)

			Expect(err).To(Equal(context.Canceled))
		})
	})
})
