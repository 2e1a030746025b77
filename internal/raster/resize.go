package raster

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// TargetWidth is the number of image columns that fit in a terminal of the
// given width. Each pixel is drawn as two glyphs, so only half the columns
// are available; the result never exceeds the image width.
func TargetWidth(columns, imageWidth int) int {
	target := columns / 2
	if target < 0 {
		target = 0
	}
	if imageWidth < target {
		target = imageWidth
	}
	return target
}

// Fit downsamples img with nearest-neighbor sampling so that it fits inside
// a box of TargetWidth(columns) by maxHeight pixels, keeping its aspect
// ratio. A maxHeight of zero or less leaves the height unbounded.
//
// Images no wider than the target are returned as-is, whatever their
// height.
func Fit(img image.Image, columns, maxHeight int) image.Image {
	b := img.Bounds()
	target := TargetWidth(columns, b.Dx())

	if b.Dx() <= target {
		return img
	}
	if target == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if maxHeight <= 0 {
		maxHeight = math.MaxInt32
	}

	return imaging.Fit(img, target, maxHeight, imaging.NearestNeighbor)
}

// FitSquare fits img inside a target by target box, where target is
// TargetWidth(columns). Wide images keep the full width and portrait images
// are limited to as many rows as columns.
func FitSquare(img image.Image, columns int) image.Image {
	return Fit(img, columns, TargetWidth(columns, img.Bounds().Dx()))
}
