package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/Mavwarf/iconize/internal/imageio"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// options holds the global flags. Anything not recognized is passed on to
// the subcommand.
type options struct {
	icon       string
	output     string
	configPath string
	logLevel   string
	filter     string
	history    bool
}

func main() {
	opts, rest, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'iconize help' for usage.\n")
		os.Exit(1)
	}

	if len(rest) == 0 {
		if opts.icon == "" && opts.output == "" {
			printUsage()
			os.Exit(1)
		}
		os.Exit(generateCmd(opts))
	}

	switch rest[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "inspect":
		inspectCmd(rest[1:])
	case "history":
		historyCmd(rest[1:], opts)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", rest[0])
		fmt.Fprintf(os.Stderr, "Run 'iconize help' for usage.\n")
		os.Exit(1)
	}
}

// parseFlags extracts the global flags from args. Both "--flag value" and
// "--flag=value" are accepted.
func parseFlags(args []string) (options, []string, error) {
	var opts options
	var rest []string
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !strings.HasPrefix(name, "-") {
			rest = append(rest, args[i])
			continue
		}

		var dst *string
		switch name {
		case "--icon", "-i":
			dst = &opts.icon
		case "--output", "-o":
			dst = &opts.output
		case "--config", "-c":
			dst = &opts.configPath
		case "--log-level":
			dst = &opts.logLevel
		case "--filter":
			dst = &opts.filter
		case "--history":
			if hasValue {
				return opts, nil, fmt.Errorf("--history does not take a value")
			}
			opts.history = true
			continue
		default:
			rest = append(rest, args[i])
			continue
		}

		if !hasValue {
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}
		if value == "" {
			return opts, nil, fmt.Errorf("%s requires a value", name)
		}
		*dst = value
	}
	return opts, rest, nil
}

func printVersion() {
	fmt.Printf("iconize %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("iconize %s - Generate desktop app icons from one source image\n", version)
	fmt.Printf(`
Usage:
  iconize --icon <path> --output <dir> [options]
  iconize inspect <file.icns|file.ico>
  iconize history [--limit N] [--clear]

Options:
  --icon, -i <path>      Source image (PNG, JPEG, GIF, BMP, TIFF or WebP)
  --output, -o <dir>     Directory to write the icons to (created if missing)
  --config, -c <path>    Path to iconize-config.json
  --log-level <level>    debug, info, warning or error (default: info)
  --filter <name>        Resample filter: %s (default: %s)
  --history              Record this run in the history database

Commands:
  inspect                List the images inside an .icns or .ico file
  history                Show recorded runs (newest first)
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                       (explicit)
  2. iconize-config.json next to binary    (portable)
  3. ~/.config/iconize/iconize-config.json (user default)
  ICONIZE_* environment variables override the file; flags override both.

Examples:
  iconize -i app.png -o src-tauri/icons
  iconize -i app.png -o icons --filter catmullrom --history
  iconize inspect icons/icon.icns
`, strings.Join(imageio.FilterNames(), ", "), imageio.DefaultFilter)
}
