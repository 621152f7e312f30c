// core/taxonomy/parse_test.go
package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsNonScientificNames(t *testing.T) {
	nodes := "40\t|\t1\t|\tgenus\t|\n1\t|\t1\t|\tno rank\t|\n"
	names := strings.Join([]string{
		"40\t|\tthe gobies\t|\t\t|\tcommon name\t|",
		"40\t|\tGobius\t|\t\t|\tscientific name\t|",
		"40\t|\tGobius Linnaeus, 1758\t|\t\t|\tauthority\t|",
	}, "\n") + "\n"

	tr, err := Parse(strings.NewReader(nodes), strings.NewReader(names))
	require.NoError(t, err)
	assert.Equal(t, "Gobius", tr.name["40"])
}

func TestParseTolerantOfThreeFieldNames(t *testing.T) {
	// Name tables without the optional unique-name column still parse;
	// the class is always the last field.
	nodes := "40\t|\t1\t|\tgenus\t|\n"
	names := "40\t|\tGobius\t|\tscientific name\t|\n"

	tr, err := Parse(strings.NewReader(nodes), strings.NewReader(names))
	require.NoError(t, err)
	assert.Equal(t, "Gobius", tr.name["40"])
}

func TestParseBlankLinesIgnored(t *testing.T) {
	nodes := "\n40\t|\t1\t|\tgenus\t|\n\n"
	names := "\n40\t|\tGobius\t|\t\t|\tscientific name\t|\n"

	tr, err := Parse(strings.NewReader(nodes), strings.NewReader(names))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())
}

func TestParseRejectsShortNodeRows(t *testing.T) {
	_, err := Parse(strings.NewReader("40\t|\t1\t|\n"), strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes:1")
}
