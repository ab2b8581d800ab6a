package mushroom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `p,x,s,n,t,p,f,c,n,k,e,e,s,s,w,w,p,w,o,p,k,s,u
e,x,s,y,t,a,f,c,b,k,e,c,s,s,w,w,p,w,o,p,n,n,g

e, b ,s,w,t,l,f,c,b,n,e,c,s,s,w,w,p,w,o,p,n,n,m
`

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 23)
	}
	assert.Equal(t, "p", rows[0][0])
	assert.Equal(t, "b", rows[2][1], "tokens are trimmed")
	assert.Equal(t, "m", rows[2][22])
}

func TestParseRagged(t *testing.T) {
	_, err := Parse(strings.NewReader("p,x,s\ne,x\n"))
	var ragged *RaggedRowError
	require.True(t, errors.As(err, &ragged))
	assert.Equal(t, 2, ragged.Line)
	assert.Equal(t, 3, ragged.Want)
	assert.Equal(t, 2, ragged.Got)
}

func TestParseRowsMixedWidths(t *testing.T) {
	rows, err := ParseRows(strings.NewReader("n,w\np, f ,g\n\nx\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"n", "w"}, {"p", "f", "g"}, {"x"}}, rows)

	_, err = ParseRows(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	rows, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Edible", Label("e"))
	assert.Equal(t, "Poisonous", Label("p"))
	assert.Equal(t, "x", Label("x"))
}
