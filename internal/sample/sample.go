// Package sample draws a deterministic placeholder app icon. It is the
// source image for cmd/mkicon and the fixture used by package tests.
package sample

import (
	"image"
	"image/color"
	"math"
)

var (
	bgTop    = color.NRGBA{R: 0x2d, G: 0x6c, B: 0xdf, A: 0xff}
	bgBottom = color.NRGBA{R: 0x15, G: 0x3e, B: 0x8a, A: 0xff}
	ring     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Draw returns a size×size rounded square with a vertical gradient and a
// white ring. Pixels outside the rounded corners are fully transparent.
func Draw(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	radius := s * 0.18
	center := s / 2
	outer := s * 0.32
	inner := s * 0.22

	for y := 0; y < size; y++ {
		t := float64(y) / math.Max(s-1, 1)
		bg := lerp(bgTop, bgBottom, t)
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if !insideRounded(px, py, s, radius) {
				continue
			}
			d := math.Hypot(px-center, py-center)
			if d <= outer && d >= inner {
				img.SetNRGBA(x, y, ring)
			} else {
				img.SetNRGBA(x, y, bg)
			}
		}
	}
	return img
}

func insideRounded(x, y, s, r float64) bool {
	cx := math.Min(math.Max(x, r), s-r)
	cy := math.Min(math.Max(y, r), s-r)
	return math.Hypot(x-cx, y-cy) <= r
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + (float64(q)-float64(p))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}
