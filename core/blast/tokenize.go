// core/blast/tokenize.go
package blast

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits a corrected line into whitespace tokens after NFKC
// normalization, so fullwidth or composed variants of a name still
// match the reference tables exactly.
func Tokenize(s string) []string {
	return strings.Fields(norm.NFKC.String(s))
}
