package utils

// Page geometry in points (1/72 inch).
const (
	A4_PAGE_WIDTH_PT  = 595.0
	A4_PAGE_HEIGHT_PT = 842.0

	DEFAULT_SCALE_MIN        = 0.70
	DEFAULT_SCALE_MAX        = 1.00
	DEFAULT_SCALE_STEP       = 0.001
	DEFAULT_STANDALONE_SCALE = 0.70

	DEFAULT_RENDER_DPI = 200.0
)

const (
	PDF_EXTENSION = ".pdf"
	PDF_MIME_TYPE = "application/pdf"
)
