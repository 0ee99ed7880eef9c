package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func GetDefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory, fall back to a local folder
		return "processed_pdf"
	}
	return filepath.Join(home, "Desktop", "ProcessedInvoices")
}

// BaseNameWithoutExt returns the file name of path without directory and extension.
func BaseNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func HasPDFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), PDF_EXTENSION)
}
