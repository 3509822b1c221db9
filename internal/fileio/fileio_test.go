package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyMapsCSV(t *testing.T) {
	csv := "loai_da,H,W\nGRANITE,8,15\nBAZAN,5,\n"
	got, err := ReadAnyMaps(strings.NewReader(csv), "catalogue.csv", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "GRANITE", got[0]["loai_da"])
	assert.Equal(t, "8", got[0]["H"])
	assert.Equal(t, "", got[1]["W"])
}

func TestReadAnyMapsCSVHeaderRow(t *testing.T) {
	csv := "каталог от 2024-01-02,,\nloai_da,H,W\nGRANITE,8,15\n"
	got, err := ReadAnyMaps(strings.NewReader(csv), "c.csv", 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GRANITE", got[0]["loai_da"])
}

func TestReadAnyMapsCSVEmptyHeaderCell(t *testing.T) {
	csv := "loai_da,,W\nGRANITE,x,15\n"
	got, err := ReadAnyMaps(strings.NewReader(csv), "c.csv", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0]["Column 2"])
}

func TestReadAnyMapsSkipsBlankRows(t *testing.T) {
	csv := "loai_da,H\nGRANITE,8\n,\n , \nBAZAN,5\n"
	got, err := ReadAnyMaps(strings.NewReader(csv), "c.csv", 1)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadAnyMapsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"loai_da", "gia_cong", "H"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"GRANITE WHITE", "FLAMED", 8}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := ReadAnyMaps(buf, "catalogue.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GRANITE WHITE", got[0]["loai_da"])
	assert.Equal(t, "8", got[0]["H"])
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader(""), "catalogue.pdf", 1)
	assert.Error(t, err)
}
