package icns

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

const headerLen = 8

var magic = []byte("icns")

// Element describes one icon element found in an .icns stream.
type Element struct {
	Type   string
	Length int // payload length, excluding the 8-byte element header
	PNG    bool
	Width  int // 0 unless PNG
	Height int // 0 unless PNG
}

// Read lists the elements of an .icns stream. TOC and version elements are
// skipped. Unlike icns.Probe from github.com/jackmordaunt/icns it accepts an
// empty container and reports the icp4/icp5/icp6 types.
func Read(r io.Reader) ([]Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read icns")
	}
	if len(data) < headerLen || !bytes.Equal(data[:4], magic) {
		return nil, errors.New("invalid icns header")
	}
	total := int(binary.BigEndian.Uint32(data[4:8]))
	if total != len(data) {
		return nil, errors.Errorf("icns length %d does not match file size %d", total, len(data))
	}

	var out []Element
	for off := headerLen; off < total; {
		if off+headerLen > total {
			return nil, errors.Errorf("truncated element header at offset %d", off)
		}
		typ := string(data[off : off+4])
		n := int(binary.BigEndian.Uint32(data[off+4 : off+8]))
		if n < headerLen || off+n > total {
			return nil, errors.Errorf("element %q at offset %d has bad length %d", typ, off, n)
		}
		payload := data[off+headerLen : off+n]
		off += n

		if typ == "TOC " || typ == "icnV" {
			continue
		}
		e := Element{Type: typ, Length: len(payload)}
		if cfg, err := png.DecodeConfig(bytes.NewReader(payload)); err == nil {
			e.PNG = true
			e.Width, e.Height = cfg.Width, cfg.Height
		}
		out = append(out, e)
	}
	return out, nil
}
