// Package iconset turns one source image into the full set of app icons:
// one PNG per catalog entry, a macOS icon.icns and a Windows icon.ico.
package iconset

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Mavwarf/iconize/internal/catalog"
	"github.com/Mavwarf/iconize/internal/icns"
	"github.com/Mavwarf/iconize/internal/ico"
	"github.com/Mavwarf/iconize/internal/imageio"
	"github.com/Mavwarf/iconize/internal/paths"
)

// Generator produces icon sets. Fields left zero fall back to defaults:
// Lanczos resampling, catalog.ICOSizes, one worker per CPU.
type Generator struct {
	Log      *logrus.Logger
	Filter   string // see imageio.FilterNames
	ICOSizes []int
	Workers  int
}

// Result describes the files written by a successful Generate.
type Result struct {
	Source    imageio.Format
	PNGs      []string // catalog order
	ICNS      string
	ICO       string
	Skipped   []string // catalog names left out of icon.icns
	ICNSTypes []string // element types in icon.icns, write order
	Snippet   string
}

// Files returns every written path: PNGs in catalog order, then icon.icns
// and icon.ico.
func (r *Result) Files() []string {
	out := make([]string, 0, len(r.PNGs)+2)
	out = append(out, r.PNGs...)
	return append(out, r.ICNS, r.ICO)
}

// New returns a Generator logging to log with default settings.
func New(log *logrus.Logger) *Generator {
	return &Generator{Log: log}
}

func (g *Generator) logger() *logrus.Logger {
	if g.Log != nil {
		return g.Log
	}
	return logrus.StandardLogger()
}

func (g *Generator) filter() (imaging.ResampleFilter, error) {
	if g.Filter == "" {
		return imageio.Filter(imageio.DefaultFilter)
	}
	return imageio.Filter(g.Filter)
}

func (g *Generator) icoSizes() []int {
	if len(g.ICOSizes) > 0 {
		return g.ICOSizes
	}
	return catalog.ICOSizes()
}

func (g *Generator) workers() int {
	if g.Workers > 0 {
		return g.Workers
	}
	return runtime.NumCPU()
}

// Generate writes the icon set for iconPath into outputDir.
//
// A missing source is logged and reported as *InputNotFoundError before
// anything touches the filesystem. PNGs whose size fits no .icns slot are
// logged as warnings and left out of icon.icns. Any other decode, encode or
// write failure aborts the run.
func (g *Generator) Generate(ctx context.Context, iconPath, outputDir string) (*Result, error) {
	return g.generate(ctx, iconPath, outputDir, catalog.Sizes())
}

func (g *Generator) generate(ctx context.Context, iconPath, outputDir string, entries []catalog.Entry) (*Result, error) {
	log := g.logger()
	filter, err := g.filter()
	if err != nil {
		return nil, err
	}

	if !paths.IsRegularFile(iconPath) {
		err := &InputNotFoundError{Path: iconPath}
		log.Error(err.Error())
		return nil, err
	}

	if err := os.MkdirAll(outputDir, paths.DirPerm); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", outputDir)
	}

	src, format, err := imageio.Open(iconPath)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	log.WithFields(logrus.Fields{
		"type":   format.MIME,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Debugf("decoded %s", iconPath)

	resized, err := g.resizeAll(ctx, src, entries, filter)
	if err != nil {
		return nil, err
	}

	res := &Result{Source: format}
	container := icns.New()
	for i, e := range entries {
		p := filepath.Join(outputDir, e.FileName())
		data, err := imageio.WritePNG(p, resized[i])
		if err != nil {
			return nil, err
		}
		res.PNGs = append(res.PNGs, p)

		slot, err := container.Add(e.FileName(), data)
		switch {
		case errors.Is(err, icns.ErrUnrecognizedSize):
			log.Warnf("Can't determine type for %s: %v", e.FileName(), err)
			res.Skipped = append(res.Skipped, e.Name)
			continue
		case err != nil:
			return nil, err
		}
		log.Debugf("%s -> %s", e.FileName(), slot)
	}

	res.ICO = filepath.Join(outputDir, catalog.ICOFileName)
	if err := ico.WriteFile(res.ICO, src, g.icoSizes(), filter); err != nil {
		return nil, err
	}

	res.ICNS = filepath.Join(outputDir, catalog.ICNSFileName)
	if err := container.WriteFile(res.ICNS); err != nil {
		return nil, err
	}
	res.ICNSTypes = container.Types()

	res.Snippet = IconBlock(res.Files())
	log.Infof("Icons generated successfully in %s", outputDir)
	log.Infof("Add the following 'icon' block to your 'tauri.config.json':\n%s", res.Snippet)
	return res, nil
}

// resizeAll resamples src once per entry. Work runs in parallel; the returned
// slice is indexed like entries.
func (g *Generator) resizeAll(ctx context.Context, src image.Image, entries []catalog.Entry, filter imaging.ResampleFilter) ([]*image.NRGBA, error) {
	out := make([]*image.NRGBA, len(entries))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())
	for i, e := range entries {
		i, e := i, e
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = imageio.Resize(src, e.Width, e.Height, filter)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "resize")
	}
	return out, nil
}
