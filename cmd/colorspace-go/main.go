// Package main provides the colorspace-go command: it prints named or ad hoc
// HCL palettes, converts colors between spaces and migrates palette files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/opd-ai/go-colorspace/internal/config"
	"github.com/opd-ai/go-colorspace/internal/profiling"
	"github.com/opd-ai/go-colorspace/pkg/palette"
	"github.com/opd-ai/go-colorspace/pkg/palettes"
)

// Version is the current version of colorspace-go.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	palette  string
	n        int
	rev      bool
	fixup    bool
	kind     string
	set      string
	convert  string
	from     string
	to       string
	list     bool
	configs  stringList
	watch    bool
	strict   bool
	migrate  string
	logLevel string
	logJSON  bool
	version  bool

	cpuProfile string
	memProfile string

	// explicitly set flags
	setFlags map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{setFlags: make(map[string]bool)}
	fs := flag.NewFlagSet("colorspace-go", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.palette, "palette", "", "Print the named palette")
	fs.IntVar(&o.n, "n", 0, "Number of colors (default: the palette's n, or 10)")
	fs.BoolVar(&o.rev, "rev", false, "Reverse the palette")
	fs.BoolVar(&o.fixup, "fixup", true, "Clamp out-of-gamut colors instead of dropping them")
	fs.StringVar(&o.kind, "kind", "", "Build an ad hoc palette: qualitative, sequential or diverging")
	fs.StringVar(&o.set, "set", "", "Palette settings as key=value,... (h1, c1, l1, p1, ...)")
	fs.StringVar(&o.convert, "convert", "", "Convert comma separated colors (names, hex, or a/b/c triples)")
	fs.StringVar(&o.from, "from", "hex", "Source color space for -convert")
	fs.StringVar(&o.to, "to", "HCL", "Target color space for -convert")
	fs.BoolVar(&o.list, "list", false, "List the available palettes by type")
	fs.Var(&o.configs, "config", "Load a palette file or directory (repeatable)")
	fs.BoolVar(&o.watch, "watch", false, "Keep running and print the palette again when palette files change")
	fs.BoolVar(&o.strict, "strict", false, "Treat palette file warnings as errors")
	fs.StringVar(&o.migrate, "migrate", "", "Convert an INI palette file to Lua and print it to stdout")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.BoolVar(&o.logJSON, "log-json", false, "Write logs as JSON")
	fs.BoolVar(&o.version, "version", false, "Print version and exit")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&o.memProfile, "memprofile", "", "Write memory profile to file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { o.setFlags[f.Name] = true })
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if o.version {
		fmt.Fprintf(stdout, "colorspace-go version %s\n", Version)
		return 0
	}

	level, err := palettes.ParseLevel(o.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := palettes.TextLogger(stderr, level)
	if o.logJSON {
		logger = palettes.JSONLogger(stderr, level)
	}

	profConfig := profiling.Config{CPUProfilePath: o.cpuProfile, MemProfilePath: o.memProfile}
	if profConfig.Enabled() {
		session, err := profiling.Start(profConfig)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	switch {
	case o.migrate != "":
		return runMigrate(o.migrate, stdout, stderr)
	case o.convert != "":
		return runConvert(o, stdout, stderr)
	case o.kind != "":
		return runAdHoc(o, stdout, stderr)
	case o.list, o.palette != "":
		return runRegistry(o, logger, stdout, stderr)
	}

	fmt.Fprintln(stderr, "Nothing to do. Use -palette, -kind, -convert, -list or -migrate.")
	fmt.Fprintln(stderr, "Usage: colorspace-go -palette <name> [-n N] [-rev]")
	return 1
}

// runMigrate converts an INI palette file to Lua and writes it to stdout.
func runMigrate(path string, stdout, stderr io.Writer) int {
	luaContent, err := config.MigrateLegacyFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting palette file: %v\n", err)
		return 1
	}
	stdout.Write(luaContent)
	return 0
}

// overrides collects the palette settings given on the command line.
func (o *options) overrides() (palette.Settings, error) {
	var s palette.Settings
	if o.set != "" {
		m, err := config.ParseSettingList(o.set)
		if err != nil {
			return s, err
		}
		if s, err = palette.ParseSettings(m); err != nil {
			return s, err
		}
	}
	if o.setFlags["rev"] {
		s.Rev = palette.Bool(o.rev)
	}
	if o.setFlags["fixup"] {
		s.Fixup = palette.Bool(o.fixup)
	}
	return s, nil
}

// runAdHoc builds a palette of the requested kind from -set.
func runAdHoc(o *options, stdout, stderr io.Writer) int {
	kind, ok := palette.ParseKind(o.kind)
	if !ok {
		fmt.Fprintf(stderr, "Unknown palette kind %q (want qualitative, sequential or diverging)\n", o.kind)
		return 2
	}
	s, err := o.overrides()
	if err != nil {
		fmt.Fprintf(stderr, "Invalid settings: %v\n", err)
		return 2
	}
	p, err := palette.New(kind, s)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid palette: %v\n", err)
		return 1
	}
	n := o.n
	if n <= 0 {
		n = p.N()
	}
	colors, err := p.Colors(n)
	if err != nil {
		fmt.Fprintf(stderr, "Error generating palette: %v\n", err)
		return 1
	}
	printColors(stdout, colors)
	return 0
}

// userPaths returns the -config paths, or the default search directories
// that exist when none are given.
func userPaths(configs []string) []string {
	if len(configs) > 0 {
		return configs
	}
	var paths []string
	for _, dir := range config.DefaultSearchPaths() {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			paths = append(paths, dir)
		}
	}
	return paths
}

func runRegistry(o *options, logger palettes.Logger, stdout, stderr io.Writer) int {
	overrides, err := o.overrides()
	if err != nil {
		fmt.Fprintf(stderr, "Invalid settings: %v\n", err)
		return 2
	}

	opts := palettes.DefaultOptions()
	opts.Logger = logger
	opts.Strict = o.strict
	opts.WatchConfig = o.watch
	r, err := palettes.New(&opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading built-in palettes: %v\n", err)
		return 1
	}
	defer r.Close()

	if paths := userPaths(o.configs); len(paths) > 0 {
		if err := r.Load(paths...); err != nil {
			fmt.Fprintf(stderr, "Error loading palette files: %v\n", err)
			return 1
		}
	}

	if o.list {
		printList(stdout, r)
		return 0
	}

	show := func() error {
		colors, err := r.Colors(o.palette, o.n, overrides)
		if err != nil {
			return err
		}
		printColors(stdout, colors)
		return nil
	}
	if err := show(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !o.watch {
		return 0
	}

	reloaded := make(chan struct{}, 1)
	r.SetEventHandler(func(e palettes.Event) {
		if e.Type == palettes.EventReloaded {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}
	})
	r.SetErrorHandler(func(err error) {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return 0
		case <-hup:
			// Reload reports its own failures through the error handler.
			_ = r.Reload()
		case <-reloaded:
			fmt.Fprintln(stdout)
			if err := show(); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		}
	}
}

func printColors(w io.Writer, colors []string) {
	for _, c := range colors {
		if c == "" {
			c = "NA"
		}
		fmt.Fprintln(w, c)
	}
}

// printList writes the palettes grouped by type.
func printList(w io.Writer, r *palettes.Registry) {
	for _, typ := range r.Types() {
		entries, err := r.ByType(typ)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s:\n", typ)
		for _, e := range entries {
			if desc := e.Desc(); desc != "" {
				fmt.Fprintf(w, "  %-24s %s\n", e.Name, desc)
				continue
			}
			fmt.Fprintf(w, "  %s\n", e.Name)
		}
	}
}
