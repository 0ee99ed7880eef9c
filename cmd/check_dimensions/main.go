package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/invoicepack/internal/layout"
	"github.com/kpauljoseph/invoicepack/internal/pdf"
	"github.com/kpauljoseph/invoicepack/pkg/logger"
	"github.com/kpauljoseph/invoicepack/pkg/models"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: check_dimensions [-verbose] file.pdf [file2.pdf ...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(logger.WithOutput(os.Stderr), logger.WithFlags(0))
	log.SetVerbose(*verbose)
	reader := pdf.NewMetadataReader(log)

	var pages []models.PageMetadata
	for _, path := range flag.Args() {
		meta, err := reader.Read(path)
		if err != nil {
			fmt.Printf("%s: error: %v\n", filepath.Base(path), err)
			continue
		}
		pages = append(pages, meta)
		fmt.Printf("%s: %.3f x %.3f points\n", filepath.Base(path), meta.Width, meta.Height)
	}

	if flag.NArg() != 2 || len(pages) != 2 {
		return
	}

	long, short := pages[0], pages[1]
	if short.Height > long.Height {
		long, short = short, long
	}

	optimizer := layout.NewOptimizer(models.DefaultGeometry())
	scales, err := optimizer.FindOptimalScales(long, short)
	if err != nil {
		fmt.Printf("\nNo shared page: %v\n", err)
		return
	}

	fmt.Printf("\nShared page:\n")
	fmt.Printf("[L] %s at %.1f%% (%.2f pt)\n", filepath.Base(long.SourcePath), scales.LongScale*100, long.Height*scales.LongScale)
	fmt.Printf("[S] %s at %.1f%% (%.2f pt)\n", filepath.Base(short.SourcePath), scales.ShortScale*100, short.Height*scales.ShortScale)
}
