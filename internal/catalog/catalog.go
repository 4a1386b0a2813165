// Package catalog holds the fixed list of named icon sizes produced for every
// source image, plus the resolutions embedded in the Windows icon.
package catalog

import "fmt"

const (
	ICNSFileName = "icon.icns"
	ICOFileName  = "icon.ico"
)

// Entry is one named target size.
type Entry struct {
	Name   string
	Width  int
	Height int
}

// FileName returns the PNG file name written for the entry.
func (e Entry) FileName() string {
	return e.Name + ".png"
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%dx%d)", e.Name, e.Width, e.Height)
}

var sizes = [...]Entry{
	{"32x32", 32, 32},
	{"128x128", 128, 128},
	{"128x128@2x", 256, 256},
	{"Square30x30Logo", 30, 30},
	{"Square44x44Logo", 44, 44},
	{"Square71x71Logo", 71, 71},
	{"Square89x89Logo", 89, 89},
	{"Square107x107Logo", 107, 107},
	{"Square142x142Logo", 142, 142},
	{"Square150x150Logo", 150, 150},
	{"Square284x284Logo", 284, 284},
	{"Square310x310Logo", 310, 310},
	{"StoreLogo", 50, 50},
}

var icoSizes = [...]int{16, 32, 48, 64}

// Sizes returns the catalog in write order. The slice is a fresh copy.
func Sizes() []Entry {
	out := make([]Entry, len(sizes))
	copy(out, sizes[:])
	return out
}

// Len returns the number of catalog entries.
func Len() int { return len(sizes) }

// Lookup returns the entry with the given name.
func Lookup(name string) (Entry, bool) {
	for _, e := range sizes {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// ICOSizes returns the square resolutions embedded in icon.ico.
func ICOSizes() []int {
	out := make([]int, len(icoSizes))
	copy(out, icoSizes[:])
	return out
}
