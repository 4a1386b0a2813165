package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/Mavwarf/iconize/internal/config"
	"github.com/Mavwarf/iconize/internal/history"
	"github.com/Mavwarf/iconize/internal/icns"
	"github.com/Mavwarf/iconize/internal/ico"
	"github.com/Mavwarf/iconize/internal/imageio"
	"github.com/Mavwarf/iconize/internal/sample"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     options
		wantRest []string
	}{
		{
			name: "long flags",
			args: []string{"--icon", "app.png", "--output", "out"},
			want: options{icon: "app.png", output: "out"},
		},
		{
			name: "short flags and equals form",
			args: []string{"-i", "app.png", "-o=out", "-c", "cfg.json", "--filter=box", "--log-level", "debug", "--history"},
			want: options{icon: "app.png", output: "out", configPath: "cfg.json", filter: "box", logLevel: "debug", history: true},
		},
		{
			name:     "subcommand args pass through",
			args:     []string{"history", "--limit", "5", "-c", "cfg.json"},
			want:     options{configPath: "cfg.json"},
			wantRest: []string{"history", "--limit", "5"},
		},
		{
			name:     "version",
			args:     []string{"--version"},
			wantRest: []string{"--version"},
		},
	}
	for _, tt := range tests {
		got, rest, err := parseFlags(tt.args)
		if err != nil {
			t.Errorf("%s: parseFlags error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: opts = %+v, want %+v", tt.name, got, tt.want)
		}
		if !reflect.DeepEqual(rest, tt.wantRest) {
			t.Errorf("%s: rest = %q, want %q", tt.name, rest, tt.wantRest)
		}
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"--icon"},
		{"--output="},
		{"-i", "app.png", "--config"},
		{"--history=yes"},
	}
	for _, args := range tests {
		if _, _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%q) expected error", args)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg, options{logLevel: "debug", filter: "linear", history: true})
	if cfg.LogLevel != "debug" || cfg.Filter != "linear" || !cfg.History {
		t.Errorf("cfg = %+v", cfg)
	}

	cfg = config.Config{LogLevel: "warning", Filter: "box", History: true}
	applyFlags(&cfg, options{})
	if cfg.LogLevel != "warning" || cfg.Filter != "box" || !cfg.History {
		t.Errorf("empty flags changed cfg: %+v", cfg)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	p := filepath.Join(t.TempDir(), "iconize-config.json")
	if err := os.WriteFile(p, []byte(`{"filter": "box", "log_level": "warning", "workers": 2}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ICONIZE_FILTER", "linear")

	cfg, src, err := loadConfig(options{configPath: p, logLevel: "debug"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if src != p {
		t.Errorf("source = %q, want %q", src, p)
	}
	if cfg.Filter != "linear" {
		t.Errorf("Filter = %q, want env value linear", cfg.Filter)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want flag value debug", cfg.LogLevel)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestLoadConfigRejectsBadFilter(t *testing.T) {
	p := filepath.Join(t.TempDir(), "iconize-config.json")
	if err := os.WriteFile(p, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadConfig(options{configPath: p, filter: "sinc"}); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFormatTable(t *testing.T) {
	got := formatTable(
		[]string{"TYPE", "SIZE"},
		[][]string{{"icp5", "32x32"}, {"ic13", "256x256"}, {"图标", "1x1"}},
	)
	want := "TYPE  SIZE\n" +
		"icp5  32x32\n" +
		"ic13  256x256\n" +
		"图标  1x1\n"
	if got != want {
		t.Errorf("formatTable =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatTableShortRow(t *testing.T) {
	got := formatTable([]string{"A", "B"}, [][]string{{"x"}})
	if got != "A  B\nx\n" {
		t.Errorf("formatTable = %q", got)
	}
}

func TestDescribeICNS(t *testing.T) {
	c := icns.New()
	for _, e := range []struct {
		name string
		size int
	}{{"32x32.png", 32}, {"128x128@2x.png", 256}} {
		data, err := imageio.EncodePNG(sample.Draw(e.size))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := c.Add(e.name, data); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	header, rows, err := describe(buf.Bytes())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if header[0] != "TYPE" || len(rows) != 2 {
		t.Fatalf("header = %q, rows = %q", header, rows)
	}
	if rows[0][0] != "icp5" || rows[0][1] != "32x32" || rows[0][2] != "" {
		t.Errorf("row 0 = %q", rows[0])
	}
	if rows[1][0] != "ic13" || rows[1][1] != "256x256" || rows[1][2] != "@2x" {
		t.Errorf("row 1 = %q", rows[1])
	}
}

func TestDescribeICO(t *testing.T) {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, sample.Draw(64), []int{16, 48}, imaging.Lanczos); err != nil {
		t.Fatal(err)
	}
	header, rows, err := describe(buf.Bytes())
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if header[0] != "#" || len(rows) != 2 {
		t.Fatalf("header = %q, rows = %q", header, rows)
	}
	if rows[0][1] != "16x16" || rows[1][1] != "48x48" {
		t.Errorf("rows = %q", rows)
	}
}

func TestDescribeRejectsOtherFiles(t *testing.T) {
	data, err := imageio.EncodePNG(sample.Draw(8))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := describe(data); err == nil {
		t.Error("expected error for a PNG")
	}
}

func TestParseHistoryArgs(t *testing.T) {
	h, err := parseHistoryArgs(nil)
	if err != nil || h.limit != defaultHistoryLimit || h.clear {
		t.Errorf("defaults = %+v, %v", h, err)
	}
	h, err = parseHistoryArgs([]string{"--limit", "3", "--clear"})
	if err != nil || h.limit != 3 || !h.clear {
		t.Errorf("parsed = %+v, %v", h, err)
	}
	for _, args := range [][]string{{"--limit"}, {"--limit", "-1"}, {"--limit", "x"}, {"bogus"}} {
		if _, err := parseHistoryArgs(args); err == nil {
			t.Errorf("parseHistoryArgs(%q) expected error", args)
		}
	}
}

func TestHistoryRows(t *testing.T) {
	ts := time.Date(2026, 5, 4, 10, 30, 0, 0, time.Local)
	rows := historyRows([]history.Run{{
		ID:        7,
		Timestamp: ts,
		Source:    "/src/app.png",
		OutputDir: "icons",
		Filter:    "lanczos",
		Files:     []string{"a", "b"},
		Skipped:   []string{"x"},
	}})
	want := []string{"7", "2026-05-04 10:30:00", "/src/app.png", "icons", "lanczos", "2", "1"}
	if len(rows) != 1 || !reflect.DeepEqual(rows[0], want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

