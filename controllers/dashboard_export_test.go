package controllers

import (
	"bytes"
	"testing"

	"github.com/Govind-619/inventory-manager/models"
	"github.com/Govind-619/inventory-manager/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleView(categoryName string) *repository.DashboardView {
	return &repository.DashboardView{
		CategoryName: categoryName,
		Characteristics: []models.Characteristic{
			{ID: 1, Name: "os", DisplayedName: "OS"},
			{ID: 2, Name: "storage", DisplayedName: "Speicher"},
		},
		Rows: []repository.DashboardRow{
			{
				ID:           7,
				Name:         "Pixel",
				Manufacturer: "Google",
				Quantity:     3,
				Price:        decimal.RequireFromString("799.5"),
				Category:     "Phones",
				Values:       []string{"Android", "-"},
			},
		},
	}
}

func TestDashboardTable(t *testing.T) {
	t.Run("unfiltered includes category", func(t *testing.T) {
		headers, rows := dashboardTable(sampleView(""))
		assert.Equal(t, []string{"Name", "Manufacturer", "Quantity", "Price", "Category", "OS", "Speicher"}, headers)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"Pixel", "Google", "3", "799.50", "Phones", "Android", "-"}, rows[0])
	})

	t.Run("filtered omits category", func(t *testing.T) {
		headers, rows := dashboardTable(sampleView("Phones"))
		assert.Equal(t, []string{"Name", "Manufacturer", "Quantity", "Price", "OS", "Speicher"}, headers)
		assert.Equal(t, []string{"Pixel", "Google", "3", "799.50", "Android", "-"}, rows[0])
	})
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		category string
		format   string
		want     string
	}{
		{"", formatXLSX, "items_all.xlsx"},
		{"Phones", formatPDF, "items_Phones.pdf"},
		{"TV & Audio", formatXLSX, "items_TV___Audio.xlsx"},
		{"Café\"; x", formatPDF, "items_Caf____x.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, exportFileName(tt.category, tt.format))
		})
	}
}

func TestWriteDashboardXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDashboardXLSX(&buf, sampleView("")))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Items", sheet.Name)
	require.GreaterOrEqual(t, len(sheet.Rows), 5)
	assert.Equal(t, "All Items", sheet.Rows[0].Cells[0].Value)

	var header []string
	for _, cell := range sheet.Rows[3].Cells {
		header = append(header, cell.Value)
	}
	assert.Equal(t, []string{"Name", "Manufacturer", "Quantity", "Price", "Category", "OS", "Speicher"}, header)

	data := sheet.Rows[4].Cells
	assert.Equal(t, "Pixel", data[0].Value)
	assert.Equal(t, "3", data[2].Value)
	assert.Equal(t, "799.50", data[3].Value)
	assert.Equal(t, "-", data[6].Value)
}

func TestWriteDashboardPDF(t *testing.T) {
	for _, view := range []*repository.DashboardView{sampleView("Phones"), {CategoryName: "Empty"}} {
		var buf bytes.Buffer
		require.NoError(t, WriteDashboardPDF(&buf, view))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	}
}
