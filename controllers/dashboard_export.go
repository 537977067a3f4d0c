package controllers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Govind-619/inventory-manager/repository"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

const (
	formatXLSX = "xlsx"
	formatPDF  = "pdf"
)

// dashboardTable flattens a dashboard into a header row and string cells.
// The category column only appears in the unfiltered view.
func dashboardTable(view *repository.DashboardView) ([]string, [][]string) {
	showCategory := view.CategoryName == ""

	headers := []string{"Name", "Manufacturer", "Quantity", "Price"}
	if showCategory {
		headers = append(headers, "Category")
	}
	for _, ch := range view.Characteristics {
		headers = append(headers, ch.DisplayedName)
	}

	rows := make([][]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		cells := []string{r.Name, r.Manufacturer, strconv.Itoa(r.Quantity), r.Price.StringFixed(2)}
		if showCategory {
			cells = append(cells, r.Category)
		}
		cells = append(cells, r.Values...)
		rows = append(rows, cells)
	}
	return headers, rows
}

func exportTitle(view *repository.DashboardView) string {
	if view.CategoryName == "" {
		return "All Items"
	}
	return "Items - " + view.CategoryName
}

// exportFileName builds a header-safe attachment name
func exportFileName(categoryName, format string) string {
	base := "all"
	if categoryName != "" {
		base = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-') {
				return r
			}
			return '_'
		}, categoryName)
	}
	return fmt.Sprintf("items_%s.%s", base, format)
}

// WriteDashboardXLSX renders the dashboard as a single-sheet workbook
func WriteDashboardXLSX(w io.Writer, view *repository.DashboardView) error {
	headers, rows := dashboardTable(view)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Items")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	titleRow := sheet.AddRow()
	titleCell := titleRow.AddCell()
	titleCell.SetString(exportTitle(view))
	titleCell.SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	for i, cells := range rows {
		row := sheet.AddRow()
		for j, value := range cells {
			cell := row.AddCell()
			switch j {
			case 2:
				cell.SetInt(view.Rows[i].Quantity)
			default:
				cell.SetString(value)
			}
		}
	}

	return file.Write(w)
}

// WriteDashboardPDF renders the dashboard as a landscape A4 table
func WriteDashboardPDF(w io.Writer, view *repository.DashboardView) error {
	headers, rows := dashboardTable(view)

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(exportTitle(view)))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(headers))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, cells := range rows {
		for j, value := range cells {
			align := "L"
			if j == 2 || j == 3 {
				align = "R"
			}
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.Ln(4)
		pdf.Cell(0, 8, "No items")
	}

	return pdf.Output(w)
}
