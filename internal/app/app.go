// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blastlca-core/resolver"
	"blastlca-core/taxa"

	"blastlca/internal/cli"
	"blastlca/internal/output"
	"blastlca/internal/pipeline"
	"blastlca/internal/refcache"
	"blastlca/internal/refload"
	"blastlca/internal/version"
	"blastlca/internal/writers"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RunContext is the full CLI entry point. It owns flag parsing, the
// reference loaders, and the output plumbing; the consensus work
// itself lives in internal/pipeline. Exit codes: 0 ok, 1 runtime
// failure, 2 usage, 3 write error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("blastlca")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "blastlca version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := newLogger(stderr, opts.Quiet, opts.Verbose)
	defer func() { _ = log.Sync() }()

	return run(parent, opts, outw, stderr, log)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// newLogger builds a console logger on stderr. Verbose wins over the
// default Info level; Quiet keeps only errors.
func newLogger(stderr io.Writer, quiet, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if quiet {
		level = zapcore.ErrorLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core)
}

func run(parent context.Context, opts cli.Options, outw *bufio.Writer, stderr io.Writer, log *zap.Logger) (code int) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	res, closeRefs, err := buildResolver(ctx, opts, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeRefs()

	corr, err := refload.LoadCorrections(opts.CorrectionsFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	in, closeIn, err := openInput(opts.InputFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeIn()

	dest, flushDest, err := openOutput(opts.OutputFile, outw)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	miss, err := writers.CreateMissing(opts.MissingOut)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	// The sink must flush its rows and summary on every exit path,
	// including early returns for output write failures.
	defer func() {
		if e := miss.Close(); e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			if code == 0 {
				code = 3
			}
		}
	}()

	rowCh, writeErr := writers.StartASVWriter(dest, opts.Header, opts.Threads*4)

	stats, perr := pipeline.Run(ctx,
		pipeline.Config{Threads: opts.Threads, Cutoff: opts.Cutoff, MinIdentity: opts.Pident},
		in, res, corr, log,
		func(r pipeline.ASVResult) error {
			select {
			case rowCh <- toRow(r):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		miss.Record,
	)
	close(rowCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := flushDest(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}

	log.Info("done",
		zap.Int("rows", stats.Rows),
		zap.Int("asvs", stats.ASVs),
		zap.Int("skipped", stats.Skipped),
		zap.Int("filtered", stats.Filtered),
		zap.Int("missing", stats.Missing),
	)
	return 0
}

// buildResolver loads all three reference sources and assembles the
// resolution chain. The returned closer releases the HTTP cache.
func buildResolver(ctx context.Context, opts cli.Options, log *zap.Logger) (*resolver.Resolver, func(), error) {
	cache, err := refcache.Open(filepath.Join(opts.CacheDir, "cache.db"))
	if err != nil {
		return nil, nil, err
	}
	closeRefs := func() { _ = cache.Close() }

	fishbase, err := refload.LoadFishbase(ctx, refload.FishbaseConfig{
		BaseURL: opts.FishbaseURL,
		Offline: opts.Offline,
	}, cache, log)
	if err != nil {
		closeRefs()
		return nil, nil, err
	}

	worms, err := refload.LoadWorms(opts.WormsFile, log)
	if err != nil {
		closeRefs()
		return nil, nil, err
	}

	tree, err := refload.LoadTaxdump(opts.TaxdumpDir, log)
	if err != nil {
		closeRefs()
		return nil, nil, err
	}

	return resolver.New(fishbase, worms, tree), closeRefs, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	rc, err := refload.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}

// openOutput returns the destination writer plus a flush function.
// "-" reuses the already buffered stdout writer.
func openOutput(path string, outw *bufio.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return outw, outw.Flush, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	bw := bufio.NewWriter(f)
	flush := func() error {
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}
	return bw, flush, nil
}

func toRow(r pipeline.ASVResult) output.Row {
	return output.Row{
		ASV:             r.ASV,
		Class:           r.ByRank[taxa.Class].Assignment,
		Order:           r.ByRank[taxa.Order].Assignment,
		Family:          r.ByRank[taxa.Family].Assignment,
		Genus:           r.ByRank[taxa.Genus].Assignment,
		Species:         r.ByRank[taxa.Species].Assignment,
		Percent:         r.ByRank[taxa.Species].Percent,
		IncludedSpecies: r.ByRank[taxa.Species].Included,
		Sources:         r.Sources,
	}
}
