package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/draw"
)

// GenerateImageHash hashes the RGBA pixels of img, independent of its bounds origin.
func GenerateImageHash(img image.Image) string {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	hasher := sha256.New()
	hasher.Write(rgba.Pix[:4*bounds.Dx()*bounds.Dy()])
	return hex.EncodeToString(hasher.Sum(nil))
}
