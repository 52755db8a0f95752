package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/roomfit/internal/model"
)

func TestDetectCSVDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectCSVDelimiter([]byte("name,length,width\nshelf,120,40\n")))
	assert.Equal(t, ';', DetectCSVDelimiter([]byte("name;length;width\nshelf;120;40\n")))
	assert.Equal(t, '\t', DetectCSVDelimiter([]byte("name\tlength\twidth\nshelf\t120\t40\n")))
	assert.Equal(t, '|', DetectCSVDelimiter([]byte("name|length|width\nshelf|120|40\n")))
}

func TestDetectColumnsWithHeader(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Item Name", "Length", "Width", "Kind"})
	assert.True(t, hasHeader)
	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Kind)
}

func TestDetectColumnsPositionalFallback(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"shelf", "120", "40"})
	assert.False(t, hasHeader)
	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 2, mapping.Width)
}

func TestImportCSVWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	content := "name,length,width,kind\nshelf,120,40,\ncooler,70,90,fridge\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result := ImportCSV(path)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Items, 2)

	assert.Equal(t, "shelf", result.Items[0].Name)
	assert.Equal(t, 120.0, result.Items[0].Length)
	assert.Equal(t, 40.0, result.Items[0].Width)
	assert.Equal(t, model.ItemStandard, result.Items[0].Kind)

	// Explicit kind column overrides name-based detection.
	assert.Equal(t, "cooler", result.Items[1].Name)
	assert.Equal(t, model.ItemRefrigerator, result.Items[1].Kind)
	// Dimensions normalized so length is the larger one.
	assert.Equal(t, 90.0, result.Items[1].Length)
	assert.Equal(t, 70.0, result.Items[1].Width)
}

func TestImportCSVSemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	content := "name;length;width\nshelf;120;40\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result := ImportCSV(path)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Items, 1)
	assert.Contains(t, strings.Join(result.Warnings, " "), "semicolon")
}

func TestImportCSVFromReaderErrors(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("shelf,120,abc\nfridge,90,70\n"), ',')
	require.Len(t, result.Items, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Invalid width")
	assert.Equal(t, "fridge", result.Items[0].Name)
	assert.Equal(t, model.ItemRefrigerator, result.Items[0].Kind)
}

func TestImportCSVRejectsNonPositiveDimensions(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("shelf,0,40\n"), ',')
	assert.Empty(t, result.Items)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "positive")
}

func TestImportCSVSkipsEmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("shelf,120,40\n,,\ndesk,100,60\n"), ',')
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Items, 2)
}

func TestImportCSVUnknownKindWarns(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("shelf,120,40,granite\n"), ',')
	require.Len(t, result.Items, 1)
	assert.Equal(t, model.ItemStandard, result.Items[0].Kind)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Unknown kind")
}

func TestImportCSVMissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0644))
	result := ImportCSV(path)
	assert.NotEmpty(t, result.Errors)
}
