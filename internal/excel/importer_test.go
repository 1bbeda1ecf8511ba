package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadPairsCSV(t *testing.T) {
	data := "from,to\n" +
		"dog,perro\n" +
		" cat , gato \n" +
		"bird,\n" +
		"\"good morning\",\"buenos días\"\n"

	pairs, err := ReadPairs("words.CSV", strings.NewReader(data), DefaultImportConfig())
	require.NoError(t, err)
	require.Len(t, pairs, 4)

	assert.Equal(t, Pair{Line: 2, TextFrom: "dog", TextTo: "perro"}, pairs[0])
	assert.Equal(t, Pair{Line: 3, TextFrom: "cat", TextTo: "gato"}, pairs[1])
	assert.True(t, pairs[2].Blank())
	assert.Equal(t, "buenos días", pairs[3].TextTo)
}

func TestReadPairsExcel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"English", "Spanish"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"hello", "hola"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"cat", "gato"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	pairs, err := ReadPairs("words.xlsx", &buf, DefaultImportConfig())
	require.NoError(t, err)
	assert.Equal(t, []Pair{
		{Line: 2, TextFrom: "hello", TextTo: "hola"},
		{Line: 3, TextFrom: "cat", TextTo: "gato"},
	}, pairs)
}

func TestReadPairsRejectsUnknownExtension(t *testing.T) {
	_, err := ReadPairs("words.txt", strings.NewReader("a,b"), DefaultImportConfig())
	assert.Error(t, err)
	assert.False(t, IsSupported("notes.pdf"))
	assert.True(t, IsSupported("list.xlsx"))
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 1, columnToIndex("b"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex("1"))
}
