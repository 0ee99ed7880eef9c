package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kpauljoseph/invoicepack/internal/batch"
	"github.com/kpauljoseph/invoicepack/internal/config"
	"github.com/kpauljoseph/invoicepack/internal/layout"
	"github.com/kpauljoseph/invoicepack/internal/metrics"
	"github.com/kpauljoseph/invoicepack/internal/pdf"
	"github.com/kpauljoseph/invoicepack/internal/printer"
	"github.com/kpauljoseph/invoicepack/internal/scanner"
	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/version"
)

const defaultConfigPath = "config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	envFile := flag.String("env-file", ".env", "optional .env file with INVOICEPACK_* overrides")
	sourceDir := flag.String("source-dir", "", "directory containing invoice PDFs (overrides config)")
	outputDir := flag.String("output-dir", "", "directory for combined PDFs (overrides config)")
	printerName := flag.String("printer", "", "printer name, empty for the system default (overrides config)")
	doPrint := flag.Bool("print", false, "send the outputs to the printer after processing")
	assumeYes := flag.Bool("yes", false, "print without asking for confirmation")
	dpi := flag.Float64("dpi", 0, "render resolution for source pages (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	bootLog := logger.New(logger.WithPrefix("[invoicepack] "))

	cfg, err := loadConfig(*configPath, isFlagSet("config"))
	if err != nil {
		bootLog.Fatal("Error loading config: %v", err)
	}
	if err := config.ApplyEnv(cfg, *envFile); err != nil {
		bootLog.Fatal("Error reading environment: %v", err)
	}

	if *sourceDir != "" {
		cfg.SourceDir = *sourceDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if isFlagSet("printer") {
		cfg.Printer.Name = *printerName
	}
	if *doPrint {
		cfg.Printer.Enabled = true
	}
	if *dpi > 0 {
		cfg.Render.DPI = *dpi
	}

	if err := cfg.Validate(); err != nil {
		bootLog.Fatal("Invalid configuration: %v", err)
	}

	log := logger.New(
		logger.WithPrefix("[invoicepack] "),
		logger.WithFile(logger.FileOptions{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}),
	)
	defer log.Close()
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if log.IsVerbose() {
		log.Debug("Verbose logging enabled")
	}
	log.Debug("%s", version.GetVersionInfo())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received interrupt signal, stopping after the current file...")
		cancel()
	}()

	if _, err := os.Stat(cfg.SourceDir); os.IsNotExist(err) {
		log.Fatal("PDF directory does not exist: %s", cfg.SourceDir)
	}

	geometry := cfg.Geometry()
	recorder := metrics.NewRecorder()
	runner := batch.NewRunner(
		scanner.New(log),
		pdf.NewMetadataReader(log),
		layout.NewOptimizer(geometry),
		pdf.NewCompositor(geometry, pdf.NewFitzRenderer(), cfg.Render.DPI, log),
		geometry,
		recorder,
		log,
	)

	report, err := runner.Run(ctx, cfg.SourceDir, cfg.OutputDir)
	if err != nil {
		writeMetrics(recorder, cfg.Metrics.Textfile, log)
		if errors.Is(err, batch.ErrNoInput) {
			log.Fatal("No PDF files found in %s", cfg.SourceDir)
		}
		log.Fatal("Processing stopped: %v", err)
	}

	report.Print(log)
	log.Info("- Output directory: %s", cfg.OutputDir)
	if cfg.Logging.File != "" {
		log.Info("- Log file saved to: %s", cfg.Logging.File)
	}

	if cfg.Printer.Enabled && len(report.Outputs) > 0 {
		printOutputs(ctx, cfg, report.Outputs, *assumeYes, recorder, log)
	}

	writeMetrics(recorder, cfg.Metrics.Textfile, log)
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// loadConfig falls back to the defaults when the default config file is absent.
// A path given explicitly must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func printOutputs(ctx context.Context, cfg *config.Config, outputs []string, assumeYes bool, recorder *metrics.Recorder, log *logger.Logger) {
	target := cfg.Printer.Name
	if target == "" {
		target = "the default printer"
	}

	if !assumeYes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Send %d file(s) to %s? (y/n): ", len(outputs), target)) {
		log.Info("Printing cancelled")
		return
	}

	commandPrinter := printer.NewCommandPrinter(cfg.Printer.Command, cfg.Printer.Style, cfg.Printer.Timeout, log)
	spooler := printer.NewSpooler(commandPrinter, cfg.Printer.Name, cfg.Printer.Delay, log)
	spooler.OnResult = func(path string, err error) {
		if err != nil {
			recorder.PrintFailed()
			return
		}
		recorder.PrintSent()
	}

	spoolReport, err := spooler.Spool(ctx, outputs)
	if err != nil {
		log.Error("Printing stopped: %v", err)
	}
	log.Info("Printing complete: %d sent, %d failed", spoolReport.Sent, spoolReport.Failed)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func writeMetrics(recorder *metrics.Recorder, path string, log *logger.Logger) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		log.Warn("Could not write metrics: %v", err)
		return
	}
	log.Debug("Metrics written to %s", path)
}
