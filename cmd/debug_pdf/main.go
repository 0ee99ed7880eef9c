package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/invoicepack/pkg/utils"
)

func main() {
	dpi := flag.Float64("dpi", 72, "render resolution")
	outDir := flag.String("out", "", "directory for the rendered PNGs (default: a temp directory)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: debug_pdf [-dpi 72] [-out dir] output.pdf [output2.pdf ...]")
		os.Exit(1)
	}

	dir := *outDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "pdf-debug-*")
		if err != nil {
			fmt.Printf("Error creating temp dir: %v\n", err)
			os.Exit(1)
		}
	}

	for _, path := range flag.Args() {
		if err := inspect(path, dir, *dpi); err != nil {
			fmt.Printf("%s: %v\n", filepath.Base(path), err)
		}
	}
}

func inspect(path, dir string, dpi float64) error {
	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("error opening PDF: %w", err)
	}
	defer doc.Close()

	fmt.Printf("\n%s\n", filepath.Base(path))
	fmt.Printf("Pages: %d\n", doc.NumPage())
	if doc.NumPage() == 0 {
		return nil
	}

	bounds, err := doc.Bound(0)
	if err != nil {
		return fmt.Errorf("error reading bounds: %w", err)
	}
	fmt.Printf("Page size: %.2f x %.2f points\n", float64(bounds.Dx()), float64(bounds.Dy()))

	img, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}

	imgPath := filepath.Join(dir, utils.BaseNameWithoutExt(path)+".png")
	f, err := os.Create(imgPath)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", imgPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("error writing %s: %w", imgPath, err)
	}

	fmt.Printf("Image hash: %s\n", utils.GenerateImageHash(img))
	fmt.Printf("Saved page image to: %s\n", imgPath)
	return nil
}
