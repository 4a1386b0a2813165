package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/Mavwarf/iconize/internal/icns"
	"github.com/Mavwarf/iconize/internal/ico"
)

var icoMagic = []byte{0, 0, 1, 0}

func inspectCmd(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file\n")
		fmt.Fprintf(os.Stderr, "Usage: iconize inspect <file.icns|file.ico>\n")
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	header, rows, err := describe(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", args[0], err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No images.")
		return
	}
	fmt.Print(formatTable(header, rows))
}

// describe lists the images of an .icns or .ico file, detected by magic.
func describe(data []byte) ([]string, [][]string, error) {
	switch {
	case bytes.HasPrefix(data, []byte("icns")):
		elems, err := icns.Read(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(elems))
		for _, e := range elems {
			size, format := "-", "other"
			if e.PNG {
				size, format = dims(e.Width, e.Height), "png"
			}
			slot := ""
			if s, ok := icns.SlotByType(e.Type); ok && s.Retina {
				slot = "@2x"
			}
			rows = append(rows, []string{e.Type, size, slot, format, strconv.Itoa(e.Length)})
		}
		return []string{"TYPE", "SIZE", "SCALE", "FORMAT", "BYTES"}, rows, nil

	case bytes.HasPrefix(data, icoMagic):
		entries, err := ico.ReadDir(bytes.NewReader(data))
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{
				strconv.Itoa(i),
				dims(e.Width, e.Height),
				strconv.Itoa(e.BitCount),
				strconv.Itoa(e.Bytes),
			})
		}
		return []string{"#", "SIZE", "BPP", "BYTES"}, rows, nil
	}
	return nil, nil, errors.New("not an .icns or .ico file")
}

func dims(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// formatTable renders rows as left-aligned columns separated by two spaces.
// Widths are measured in terminal cells so wide characters line up.
func formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	var b strings.Builder
	line := func(row []string) {
		cells := make([]string, len(widths))
		for i := range widths {
			if i < len(row) {
				cells[i] = runewidth.FillRight(row[i], widths[i])
			} else {
				cells[i] = strings.Repeat(" ", widths[i])
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}
	line(header)
	for _, r := range rows {
		line(r)
	}
	return b.String()
}
