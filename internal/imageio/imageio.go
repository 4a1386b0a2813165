// Package imageio decodes source images and writes resized PNGs.
package imageio

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"

	// Extra decoders beyond what imaging registers.
	_ "golang.org/x/image/webp"

	"github.com/Mavwarf/iconize/internal/paths"
)

// sniffLen is the number of leading bytes filetype needs to match every
// image signature it knows.
const sniffLen = 262

// DefaultFilter is the resampling filter used when none is configured.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ErrNotImage is returned when the source file is not a recognized raster
// image.
var ErrNotImage = errors.New("not a supported raster image")

// Format describes the sniffed type of a source file.
type Format struct {
	Extension string
	MIME      string
}

// Filter returns the resampling filter registered under name
// (case-insensitive).
func Filter(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, errors.Errorf("unknown resample filter %q (want one of %s)",
			name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames returns the sorted list of filter names accepted by Filter.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open sniffs and decodes the image at path. EXIF orientation is applied so
// the in-memory bitmap matches what viewers display.
func Open(path string) (image.Image, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Format{}, errors.Wrap(err, "open source image")
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, Format{}, errors.Wrap(err, "read source image")
	}
	head = head[:n]

	kind, _ := filetype.Match(head)
	if !filetype.IsImage(head) {
		return nil, Format{}, errors.Wrapf(ErrNotImage, "%s", path)
	}
	format := Format{Extension: kind.Extension, MIME: kind.MIME.Value}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, format, errors.Wrap(err, "rewind source image")
	}
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, errors.Wrapf(err, "decode %s (%s)", path, format.MIME)
	}
	return img, format, nil
}

// Resize returns a new w×h image resampled from src. src is not modified.
func Resize(src image.Image, w, h int, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(src, w, h, filter)
}

// EncodePNG encodes img as PNG with default compression.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression)); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img and atomically writes it to path.
func WritePNG(path string, img image.Image) ([]byte, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	if err := paths.AtomicWrite(path, data); err != nil {
		return nil, errors.Wrapf(err, "write %s", path)
	}
	return data, nil
}
