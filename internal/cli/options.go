// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"runtime"

	"blastlca/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input / output
	InputFile       string
	OutputFile      string
	MissingOut      string
	Header          bool // true unless --no-header
	CorrectionsFile string

	// Reference sources
	FishbaseURL string
	WormsFile   string
	TaxdumpDir  string
	CacheDir    string
	Offline     bool

	// Consensus parameters
	Cutoff float64
	Pident float64

	// Performance
	Threads int

	// Logging
	Quiet   bool
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: taxonomic LCA assignment for BLAST tabular hits

Resolves each hit's free-text description against Fishbase, WoRMS, and
the taxonomy dump, then reduces the hits of every query sequence to one
consensus call per rank.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input / output
	fs.StringVar(&opt.InputFile, "file", "", "input file of BLAST tabular results ('-' = stdin) [*]")
	fs.StringVar(&opt.InputFile, "f", "", "input file (shorthand)")
	fs.StringVar(&opt.OutputFile, "output", "", "output file of per-ASV assignments ('-' = stdout) [*]")
	fs.StringVar(&opt.OutputFile, "o", "", "output file (shorthand)")
	fs.StringVar(&opt.MissingOut, "missing-out", "missing.csv", "file for hits no reference source could classify [missing.csv]")
	fs.StringVar(&opt.CorrectionsFile, "corrections", "", "TSV of exact misspelling fixes applied before parsing")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in the output table [false]")

	// Reference sources
	fs.StringVar(&opt.FishbaseURL, "fishbase-base-url", "", "base URL of the Fishbase CSV tables [builtin]")
	fs.StringVar(&opt.WormsFile, "worms-file", "", "WoRMS species export, TSV, may be gzipped")
	fs.StringVar(&opt.TaxdumpDir, "taxdump-dir", "", "directory holding nodes.dmp and names.dmp for the taxid fallback")
	fs.StringVar(&opt.CacheDir, "cache-dir", "cache", "directory for the reference download cache [cache]")
	fs.BoolVar(&opt.Offline, "offline", false, "serve reference tables from the cache only [false]")

	// Consensus parameters
	fs.Float64Var(&opt.Cutoff, "cutoff", 1.0, "identity margin below the best hit still included in consensus [1.0]")
	fs.Float64Var(&opt.Pident, "pident", 0, "minimum percent identity; hits below are ignored entirely [0]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Logging
	fs.BoolVar(&opt.Quiet, "quiet", false, "errors only [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	if opt.InputFile == "" {
		return opt, errors.New("--file is required")
	}
	if opt.OutputFile == "" {
		return opt, errors.New("--output is required")
	}
	if opt.Cutoff < 0 {
		return opt, errors.New("--cutoff must be >= 0")
	}
	if opt.Pident < 0 || opt.Pident > 100 {
		return opt, errors.New("--pident must be between 0 and 100")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be >= 0")
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("--quiet conflicts with --verbose")
	}
	if opt.Threads == 0 {
		opt.Threads = runtime.NumCPU()
	}
	return opt, nil
}
