package metrics_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/invoicepack/internal/metrics"
)

var _ = Describe("Recorder", func() {
	var (
		recorder *metrics.Recorder
		dir      string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "metrics-test-*")
		Expect(err).NotTo(HaveOccurred())
		recorder = metrics.NewRecorder()
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	readTextfile := func() string {
		path := filepath.Join(dir, "invoicepack.prom")
		Expect(recorder.WriteTextfile(path)).To(Succeed())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	It("should count documents, jobs and pairing attempts", func() {
		recorder.DocumentRead()
		recorder.DocumentRead()
		recorder.DocumentSkipped()
		recorder.JobWritten("merged")
		recorder.JobFailed("standalone_long")
		recorder.PairingAttempt(true)
		recorder.PairingAttempt(false)
		recorder.PairingAttempt(false)

		out := readTextfile()
		Expect(out).To(ContainSubstring(`invoicepack_documents_total{result="read"} 2`))
		Expect(out).To(ContainSubstring(`invoicepack_documents_total{result="skipped"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_jobs_total{kind="merged",result="written"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_jobs_total{kind="standalone_long",result="failed"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_pairing_attempts_total{result="fit"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_pairing_attempts_total{result="no_fit"} 2`))
	})

	It("should record prints and batch duration", func() {
		recorder.PrintSent()
		recorder.PrintFailed()
		recorder.ObserveBatch(1500 * time.Millisecond)

		out := readTextfile()
		Expect(out).To(ContainSubstring(`invoicepack_prints_total{result="sent"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_prints_total{result="failed"} 1`))
		Expect(out).To(ContainSubstring(`invoicepack_batch_duration_seconds_count 1`))
		Expect(out).To(ContainSubstring(`invoicepack_batch_duration_seconds_sum 1.5`))
	})

	It("should keep recorders independent", func() {
		other := metrics.NewRecorder()
		other.DocumentSkipped()

		out := readTextfile()
		Expect(out).NotTo(ContainSubstring(`invoicepack_documents_total{result="skipped"}`))
	})

	It("should fail when the directory does not exist", func() {
		err := recorder.WriteTextfile(filepath.Join(dir, "missing", "out.prom"))
		Expect(err).To(HaveOccurred())
	})
})
