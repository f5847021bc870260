package configuration

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// Version is shown by -version; override at build time with
// -ldflags "-X source.hodakov.me/hdkv/vid2audio/internal/configuration.Version=...".
var Version = "0.1.0"

// commandLine holds parsed flags. Only flags the user actually passed are
// applied over the config file, so file values survive unless overridden.
type commandLine struct {
	set map[string]bool

	configPath   string
	source       string
	output       string
	format       string
	ffmpeg       string
	jobs         int
	batch        bool
	verbose      bool
	quiet        bool
	skipExisting bool
	listFormats  bool
	saveConfig   bool
	history      bool
	showVersion  bool
}

func parseFlags(args []string) (*commandLine, error) {
	cmdline := &commandLine{set: make(map[string]bool)}

	fs := flag.NewFlagSet("vid2audio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	stringFlag(fs, &cmdline.configPath, "", "Path to the YAML config file", "config", "c")
	stringFlag(fs, &cmdline.source, "", "Source directory with video files", "source", "s")
	stringFlag(fs, &cmdline.output, "", "Output directory (default <source>/audio_exports)", "output", "o")
	stringFlag(fs, &cmdline.format, "",
		"Output audio format: "+strings.Join(formats.Names(), ", ")+" or its number", "format", "f")
	stringFlag(fs, &cmdline.ffmpeg, "", "ffmpeg binary to invoke", "ffmpeg")
	intFlag(fs, &cmdline.jobs, "Parallel conversions (default: number of CPUs)", "jobs", "j")
	boolFlag(fs, &cmdline.batch, "Batch mode, never prompt", "batch", "b")
	boolFlag(fs, &cmdline.verbose, "Verbose output", "verbose", "v")
	boolFlag(fs, &cmdline.quiet, "Only print errors", "quiet", "q")
	boolFlag(fs, &cmdline.skipExisting, "Skip files whose output is already up to date", "skip-existing")
	boolFlag(fs, &cmdline.listFormats, "List supported input and output formats", "list-formats")
	boolFlag(fs, &cmdline.saveConfig, "Save the current settings as defaults", "save-config")
	boolFlag(fs, &cmdline.history, "Show recent conversion runs", "history")
	boolFlag(fs, &cmdline.showVersion, "Print version and exit", "version")

	err := fs.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (%w)", ErrConfiguration, ErrCantParseFlags, err)
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf(
			"%w: %w (%s)", ErrConfiguration, ErrCantParseFlags,
			"unexpected arguments: "+strings.Join(fs.Args(), " "),
		)
	}

	if cmdline.verbose && cmdline.quiet {
		return nil, fmt.Errorf("%w: %w (%s)", ErrConfiguration, ErrConflictingFlags, "-verbose and -quiet")
	}

	fs.Visit(func(f *flag.Flag) {
		cmdline.set[canonicalFlagName(f.Name)] = true
	})

	return cmdline, nil
}

func (cl *commandLine) apply(config *Config) {
	if cl.set["source"] {
		config.Paths.Source = cl.source
	}

	if cl.set["output"] {
		config.Paths.Output = cl.output
	}

	if cl.set["format"] {
		config.Transcoding.Format = cl.format
	}

	if cl.set["ffmpeg"] {
		config.Transcoding.FFmpeg = cl.ffmpeg
	}

	if cl.set["jobs"] {
		config.Transcoding.Parallel = cl.jobs
	}

	if cl.set["skip-existing"] {
		config.Transcoding.SkipExisting = cl.skipExisting
	}

	if cl.set["verbose"] {
		config.Vid2Audio.Verbose = cl.verbose
		config.Vid2Audio.Quiet = false
	}

	if cl.set["quiet"] {
		config.Vid2Audio.Quiet = cl.quiet
		config.Vid2Audio.Verbose = false
	}

	config.Runtime.Batch = cl.batch
	config.Runtime.ListFormats = cl.listFormats
	config.Runtime.SaveConfig = cl.saveConfig
	config.Runtime.History = cl.history
	config.Runtime.ShowVersion = cl.showVersion
}

// Usage returns the flag help text.
func Usage() string {
	var sb strings.Builder

	sb.WriteString("Usage: vid2audio [flags]\n\n")
	sb.WriteString("Extracts audio tracks from every video file under a directory using ffmpeg.\n\n")
	sb.WriteString("Flags:\n")

	for _, line := range []string{
		"  -s, -source DIR       Source directory with video files",
		"  -f, -format FORMAT    Output format: " + strings.Join(formats.Names(), ", ") + " (or 1-3)",
		"  -o, -output DIR       Output directory (default <source>/" + DefaultOutputDirectoryName + ")",
		"  -j, -jobs N           Parallel conversions (default: number of CPUs)",
		"  -b, -batch            Batch mode, never prompt",
		"  -v, -verbose          Verbose output",
		"  -q, -quiet            Only print errors",
		"  -c, -config FILE      Config file (default $" + configEnvironmentVariable + " or user config dir)",
		"      -ffmpeg PATH      ffmpeg binary to invoke",
		"      -skip-existing    Skip files whose output is already up to date",
		"      -list-formats     List supported input and output formats",
		"      -save-config      Save the current settings as defaults",
		"      -history          Show recent conversion runs",
		"      -version          Print version and exit",
	} {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

var shortFlags = map[string]string{
	"c": "config",
	"s": "source",
	"o": "output",
	"f": "format",
	"j": "jobs",
	"b": "batch",
	"v": "verbose",
	"q": "quiet",
}

func canonicalFlagName(name string) string {
	if long, ok := shortFlags[name]; ok {
		return long
	}

	return name
}

func stringFlag(fs *flag.FlagSet, target *string, value, usage string, names ...string) {
	for _, name := range names {
		fs.StringVar(target, name, value, usage)
	}
}

func intFlag(fs *flag.FlagSet, target *int, usage string, names ...string) {
	for _, name := range names {
		fs.IntVar(target, name, 0, usage)
	}
}

func boolFlag(fs *flag.FlagSet, target *bool, usage string, names ...string) {
	for _, name := range names {
		fs.BoolVar(target, name, false, usage)
	}
}
