package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// projectFlags locates the project a command works on.
type projectFlags struct {
	dir string
}

// createFlags holds flags for the create command.
type createFlags struct {
	common   commonFlags
	template string
}

// updateFlags holds flags for the update command.
type updateFlags struct {
	common       commonFlags
	project      projectFlags
	workers      int
	timeout      string
	keepPreamble bool
}

// compileFlags holds flags for the compile command.
type compileFlags struct {
	common   commonFlags
	project  projectFlags
	once     bool
	debounce string
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	common  commonFlags
	json    bool
	timeout string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addProjectFlags adds the project directory flag to a FlagSet.
func addProjectFlags(fs *flag.FlagSet, f *projectFlags) {
	fs.StringVarP(&f.dir, "project", "C", ".", "project directory")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseCreateFlags parses create command flags and returns positional args.
func parseCreateFlags(args []string, w io.Writer) (*createFlags, []string, error) {
	f := &createFlags{}
	fs := newFlagSet("create", printCreateUsage, w)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.template, "template", "t", "", "template directory (default: built-in)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseUpdateFlags parses update command flags and returns positional args.
func parseUpdateFlags(args []string, w io.Writer) (*updateFlags, []string, error) {
	f := &updateFlags{}
	fs := newFlagSet("update", printUpdateUsage, w)
	addCommonFlags(fs, &f.common)
	addProjectFlags(fs, &f.project)
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "per document conversion timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.keepPreamble, "keep-preamble", false, "keep text before the first marker as an article")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string, w io.Writer) (*compileFlags, []string, error) {
	f := &compileFlags{}
	fs := newFlagSet("compile", printCompileUsage, w)
	addCommonFlags(fs, &f.common)
	addProjectFlags(fs, &f.project)
	fs.BoolVar(&f.once, "once", false, "compile once and exit")
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before a rebuild (e.g., 500ms)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string, w io.Writer) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newFlagSet("inspect", printInspectUsage, w)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "output JSON")
	fs.StringVar(&f.timeout, "timeout", "", "conversion timeout (e.g., 30s, 2m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", printDoctorUsage, w)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "output JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, error) {
	f := &commonFlags{}
	fs := newFlagSet("config", printConfigUsage, w)
	addCommonFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
