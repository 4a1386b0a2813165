// Package ico writes multi-resolution Windows .ico files.
package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	goico "github.com/sergeymakinen/go-ico"

	"github.com/Mavwarf/iconize/internal/imageio"
	"github.com/Mavwarf/iconize/internal/paths"
)

// MaxSize is the largest resolution an ICO directory entry can describe.
const MaxSize = 256

// Encode resamples src to each square size and writes them as one ICO.
func Encode(w io.Writer, src image.Image, sizes []int, filter imaging.ResampleFilter) error {
	if len(sizes) == 0 {
		return errors.New("ico: no sizes requested")
	}
	images := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		if s < 1 || s > MaxSize {
			return errors.Errorf("ico: size %d out of range 1-%d", s, MaxSize)
		}
		images = append(images, imageio.Resize(src, s, s, filter))
	}
	if err := goico.EncodeAll(w, images); err != nil {
		return errors.Wrap(err, "encode ico")
	}
	return nil
}

// WriteFile encodes src and atomically writes the result to path.
func WriteFile(path string, src image.Image, sizes []int, filter imaging.ResampleFilter) error {
	var buf bytes.Buffer
	if err := Encode(&buf, src, sizes, filter); err != nil {
		return err
	}
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// DirEntry is one ICONDIRENTRY of an ICO file.
type DirEntry struct {
	Width, Height int
	BitCount      int
	Bytes         int
	Offset        int
}

// ReadDir parses the ICONDIR header of an ICO stream without decoding any
// image data.
func ReadDir(r io.Reader) ([]DirEntry, error) {
	var hdr struct {
		Reserved, Type, Count uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrap(err, "read icondir")
	}
	if hdr.Reserved != 0 || hdr.Type != 1 {
		return nil, errors.Errorf("not an icon file (reserved=%d type=%d)", hdr.Reserved, hdr.Type)
	}

	out := make([]DirEntry, 0, hdr.Count)
	for i := 0; i < int(hdr.Count); i++ {
		var raw struct {
			Width, Height, Colors, Reserved uint8
			Planes, BitCount               uint16
			Bytes, Offset                  uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, errors.Wrapf(err, "read icondir entry %d", i)
		}
		out = append(out, DirEntry{
			Width:    dim(raw.Width),
			Height:   dim(raw.Height),
			BitCount: int(raw.BitCount),
			Bytes:    int(raw.Bytes),
			Offset:   int(raw.Offset),
		})
	}
	return out, nil
}

// dim maps the stored byte to pixels; 0 means 256.
func dim(b uint8) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}
