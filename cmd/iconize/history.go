package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Mavwarf/iconize/internal/history"
	"github.com/Mavwarf/iconize/internal/paths"
)

const defaultHistoryLimit = 10

type historyArgs struct {
	limit int
	clear bool
}

func parseHistoryArgs(args []string) (historyArgs, error) {
	h := historyArgs{limit: defaultHistoryLimit}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--limit", "-n":
			if i+1 >= len(args) {
				return h, fmt.Errorf("--limit requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return h, fmt.Errorf("--limit must be a non-negative integer")
			}
			h.limit = n
			i++
		case "--clear":
			h.clear = true
		default:
			return h, fmt.Errorf("unknown history argument %q", args[i])
		}
	}
	return h, nil
}

func historyCmd(args []string, opts options) {
	h, err := parseHistoryArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Usage: iconize history [--limit N] [--clear]\n")
		os.Exit(1)
	}
	cfg, _, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !paths.IsRegularFile(cfg.HistoryPath) {
		fmt.Println("No history recorded. Enable it with --history or \"history\": true in config.")
		return
	}
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if h.clear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("History cleared (%s).\n", store.Path())
		return
	}

	runs, err := store.Recent(h.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("History is empty.")
		return
	}
	fmt.Print(formatTable([]string{"ID", "TIME", "SOURCE", "OUTPUT", "FILTER", "FILES", "SKIPPED"}, historyRows(runs)))
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Timestamp.Local().Format(time.DateTime),
			r.Source,
			r.OutputDir,
			r.Filter,
			strconv.Itoa(len(r.Files)),
			strconv.Itoa(len(r.Skipped)),
		})
	}
	return rows
}
