// internal/app/app_test.go
package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(argv ...string) (int, string, string) {
	var out, errBuf bytes.Buffer
	code := RunContext(context.Background(), argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, out, _ := runApp()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of blastlca")
}

func TestHelpFlag(t *testing.T) {
	code, out, _ := runApp("-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of blastlca")
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := runApp("--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "blastlca version")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	code, _, errOut := runApp("--no-such-flag")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, errOut)
}

func TestMissingRequiredFlags(t *testing.T) {
	code, _, errOut := runApp("--file", "in.tsv")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "--output")
}

func TestQuietVerboseConflict(t *testing.T) {
	code, _, _ := runApp("--file", "in.tsv", "--output", "-", "--quiet", "--verbose")
	assert.Equal(t, 2, code)
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func tabLine(asv, organism, pident string) string {
	f := make([]string, 22)
	for i := range f {
		f[i] = "-"
	}
	f[0] = asv
	f[2] = "N/A"
	f[3] = organism
	f[6] = pident
	return strings.Join(f, "\t")
}

func TestMissingSinkFlushedOnOutputWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/species.csv":
			_, _ = w.Write([]byte("SpecCode,Genus,Species,FamCode\n1,Gobius,niger,10\n"))
		case "/families.csv":
			_, _ = w.Write([]byte("FamCode,Family,Order,Class\n10,Gobiidae,Gobiiformes,Actinopterygii\n"))
		case "/synonyms.csv":
			_, _ = w.Write([]byte("SynGenus,SynSpecies,SpecCode\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := filepath.Join(dir, "hits.tsv")
	require.NoError(t, os.WriteFile(input, []byte(strings.Join([]string{
		tabLine("ASV_1", "Gobius niger", "98.0"),
		tabLine("ASV_2", "Nothingus familiaris", "96.0"),
	}, "\n")+"\n"), 0o644))
	missFile := filepath.Join(dir, "missing.csv")

	var errBuf bytes.Buffer
	code := RunContext(context.Background(), []string{
		"--file", input,
		"--output", "-",
		"--missing-out", missFile,
		"--cache-dir", filepath.Join(dir, "cache"),
		"--fishbase-base-url", srv.URL,
		"--quiet",
	}, failWriter{err: errors.New("disk full")}, &errBuf)
	assert.Equal(t, 3, code)

	// The results table was lost, but the missing sink still holds its
	// rows and the per-ASV summary.
	miss, err := os.ReadFile(missFile)
	require.NoError(t, err)
	assert.Contains(t, string(miss), "Nothingus familiaris")
	assert.Contains(t, string(miss), "# unresolved hits per ASV")
	assert.Contains(t, string(miss), "ASV_2\t1")
}

func TestMissingInputFileIsRuntimeError(t *testing.T) {
	code, _, errOut := runApp(
		"--file", "does-not-exist.tsv",
		"--output", "-",
		"--offline",
		"--cache-dir", t.TempDir(),
	)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}
