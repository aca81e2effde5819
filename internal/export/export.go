// Package export renders orders as spreadsheet downloads.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"printshop-backend/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

const sheetName = "Orders"

var header = []string{
	"Order ID", "Customer", "Phone", "Print Type", "Binding/Color", "Copies",
	"Paper Size", "Print Side", "Selected Pages", "Color Pages", "B/W Pages",
	"Instructions", "Status", "Total Cost", "Submitted At", "Created At", "Files",
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Write renders orders in the given format, one row per order.
func Write(w io.Writer, format string, orders []models.Order) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, orders)
	case FormatXLSX:
		return WriteXLSX(w, orders)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteCSV writes a UTF-8 CSV with a BOM so spreadsheet apps pick the
// right encoding.
func WriteCSV(w io.Writer, orders []models.Order) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(row(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, orders []models.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, o := range orders {
		if err := setRow(f, i+2, row(o)); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 18)
	_ = f.SetColWidth(sheetName, "B", "B", 20)
	_ = f.SetColWidth(sheetName, "L", "L", 30)
	_ = f.SetColWidth(sheetName, "Q", "Q", 40)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", n, err)
	}
	return nil
}

func row(o models.Order) []string {
	names := make([]string, 0, len(o.Files))
	for _, f := range o.Files {
		names = append(names, f.OriginalName)
	}

	return []string{
		o.ID,
		text(o.CustomerName),
		text(o.PhoneNumber),
		text(o.PrintType),
		text(o.BindingColorType),
		strconv.Itoa(o.Copies),
		text(o.PaperSize),
		text(o.PrintSide),
		text(o.SelectedPages),
		text(o.ColorPages),
		text(o.BWPages),
		text(o.SpecialInstructions),
		text(o.Status),
		strconv.FormatFloat(o.TotalCost, 'f', 2, 64),
		o.SubmittedAt.UTC().Format(time.RFC3339),
		o.CreatedAt.UTC().Format(time.RFC3339),
		text(strings.Join(names, "; ")),
	}
}

// text quotes free-form values that a spreadsheet would evaluate as a
// formula.
func text(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
