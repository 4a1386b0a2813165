// Package icns assembles macOS .icns containers from pre-rendered PNG files.
//
// Unlike icns.Encode from github.com/jackmordaunt/icns, which renders its own
// sizes from a single master image, a Container only accepts the PNGs it is
// given and reports the ones whose dimensions do not fit any icon slot.
package icns

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	icnsenc "github.com/jackmordaunt/icns/v3"
	"github.com/pkg/errors"

	"github.com/Mavwarf/iconize/internal/paths"
)

// Slot is a PNG-capable icon element type.
type Slot struct {
	Type   string // four-character OSType, e.g. "ic07"
	Size   int    // pixel width and height
	Retina bool   // @2x variant of Size/2
}

func (s Slot) String() string {
	if s.Retina {
		return fmt.Sprintf("%s %dx%d@2x", s.Type, s.Size/2, s.Size/2)
	}
	return fmt.Sprintf("%s %dx%d", s.Type, s.Size, s.Size)
}

var slots = []Slot{
	{"icp4", 16, false},
	{"icp5", 32, false},
	{"icp6", 64, false},
	{"ic07", 128, false},
	{"ic08", 256, false},
	{"ic09", 512, false},
	{"ic11", 32, true},
	{"ic12", 64, true},
	{"ic13", 256, true},
	{"ic14", 512, true},
	{"ic10", 1024, true},
}

// Slots returns every recognized slot.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// Classify picks the slot for a square image of the given size. retina
// selects the @2x slot when both kinds exist for that size; when only one
// kind exists it is used regardless.
func Classify(size int, retina bool) (Slot, bool) {
	var fallback *Slot
	for i := range slots {
		s := slots[i]
		if s.Size != size {
			continue
		}
		if s.Retina == retina {
			return s, true
		}
		if fallback == nil {
			fallback = &slots[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Slot{}, false
}

// SlotByType looks up a slot by its OSType.
func SlotByType(typ string) (Slot, bool) {
	for _, s := range slots {
		if s.Type == typ {
			return s, true
		}
	}
	return Slot{}, false
}

// ErrUnrecognizedSize matches every *UnrecognizedSizeError via errors.Is.
var ErrUnrecognizedSize = errors.New("cannot determine icon type")

// UnrecognizedSizeError reports an image that fits no icon slot.
type UnrecognizedSizeError struct {
	Name          string
	Width, Height int
	Reason        string
}

func (e *UnrecognizedSizeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", ErrUnrecognizedSize, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: %s: no slot for %dx%d", ErrUnrecognizedSize, e.Name, e.Width, e.Height)
}

// Is reports whether target is ErrUnrecognizedSize.
func (e *UnrecognizedSizeError) Is(target error) bool {
	return target == ErrUnrecognizedSize
}

type element struct {
	slot Slot
	img  image.Image
}

// Container accumulates icon elements. The zero value is ready to use.
// Elements are written in the order they were first added.
type Container struct {
	elems []element
}

// New returns an empty container.
func New() *Container {
	return &Container{}
}

// Add registers a PNG payload under name. Names containing "@2x" prefer
// retina slots. Adding to an occupied slot replaces the earlier payload.
func (c *Container) Add(name string, data []byte) (Slot, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Slot{}, &UnrecognizedSizeError{Name: name, Reason: "not a PNG image"}
	}
	if cfg.Width != cfg.Height {
		return Slot{}, &UnrecognizedSizeError{Name: name, Width: cfg.Width, Height: cfg.Height}
	}
	slot, ok := Classify(cfg.Width, strings.Contains(name, "@2x"))
	if !ok {
		return Slot{}, &UnrecognizedSizeError{Name: name, Width: cfg.Width, Height: cfg.Height}
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Slot{}, errors.Wrapf(err, "decode %s", name)
	}

	e := element{slot: slot, img: img}
	for i := range c.elems {
		if c.elems[i].slot.Type == slot.Type {
			c.elems[i] = e
			return slot, nil
		}
	}
	c.elems = append(c.elems, e)
	return slot, nil
}

// AddFile reads a PNG from disk and registers it under its base file name.
func (c *Container) AddFile(path string) (Slot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Slot{}, errors.Wrap(err, "read icon")
	}
	return c.Add(filepath.Base(path), data)
}

// Len returns the number of elements.
func (c *Container) Len() int { return len(c.elems) }

// Types returns the OSTypes of all elements in write order.
func (c *Container) Types() []string {
	out := make([]string, len(c.elems))
	for i, e := range c.elems {
		out[i] = e.slot.Type
	}
	return out
}

// WriteTo serializes the container. An empty container produces the
// 8-byte header only.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	set := &icnsenc.IconSet{Icons: make([]*icnsenc.Icon, 0, len(c.elems))}
	for _, e := range c.elems {
		set.Icons = append(set.Icons, &icnsenc.Icon{
			Type:  icnsenc.OsType{ID: e.slot.Type, Size: uint(e.slot.Size)},
			Image: e.img,
		})
	}
	n, err := set.WriteTo(w)
	if err != nil {
		return n, errors.Wrap(err, "encode icns")
	}
	return n, nil
}

// WriteFile atomically writes the container to path.
func (c *Container) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return err
	}
	if err := paths.AtomicWrite(path, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
