// internal/cli/options_test.go
package cli

import (
	"flag"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	require.NoError(t, err)
	return opts
}

func TestMinimalArgsOK(t *testing.T) {
	o := mustParse(t, "--file", "hits.tsv", "--output", "asv.tsv")
	assert.Equal(t, "hits.tsv", o.InputFile)
	assert.Equal(t, "asv.tsv", o.OutputFile)
	assert.Equal(t, 1.0, o.Cutoff)
	assert.Equal(t, 0.0, o.Pident)
	assert.Equal(t, "missing.csv", o.MissingOut)
	assert.True(t, o.Header)
}

func TestShorthandFlags(t *testing.T) {
	o := mustParse(t, "-f", "hits.tsv", "-o", "asv.tsv")
	assert.Equal(t, "hits.tsv", o.InputFile)
	assert.Equal(t, "asv.tsv", o.OutputFile)
}

func TestNoHeader(t *testing.T) {
	o := mustParse(t, "-f", "a", "-o", "b", "--no-header")
	assert.False(t, o.Header)
}

func TestMissingRequired(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--output", "x"})
	require.Error(t, err)
	_, err = ParseArgs(newFS(), []string{"--file", "x"})
	require.Error(t, err)
}

func TestValidationBounds(t *testing.T) {
	for _, bad := range [][]string{
		{"-f", "a", "-o", "b", "--cutoff", "-0.5"},
		{"-f", "a", "-o", "b", "--pident", "101"},
		{"-f", "a", "-o", "b", "--pident", "-1"},
		{"-f", "a", "-o", "b", "--threads", "-2"},
		{"-f", "a", "-o", "b", "--quiet", "--verbose"},
	} {
		_, err := ParseArgs(newFS(), bad)
		assert.Error(t, err, "args %v", bad)
	}
}

func TestThreadsZeroResolvesToAllCPUs(t *testing.T) {
	o := mustParse(t, "-f", "a", "-o", "b")
	assert.Equal(t, runtime.NumCPU(), o.Threads)

	o = mustParse(t, "-f", "a", "-o", "b", "--threads", "2")
	assert.Equal(t, 2, o.Threads)
}

func TestVersionShortCircuitsValidation(t *testing.T) {
	o, err := ParseArgs(newFS(), []string{"--version"})
	require.NoError(t, err)
	assert.True(t, o.Version)
}

func TestHelpReturnsErrHelp(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
