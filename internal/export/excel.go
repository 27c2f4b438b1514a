// Package export renders booking lists into Excel workbooks for the
// admin dashboard's download button.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lockievisual/studio-portal/internal/models"
)

const sheetName = "Bookings"

var columns = []string{"ID", "Client", "Email", "Phone", "Service", "Booking Date", "Status", "Notes", "Created"}

// BuildWorkbook lays out the bookings on a single sheet, one row per
// booking in the order given (callers pass newest first).
func BuildWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for col, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, b := range bookings {
		values := []any{
			b.ID,
			b.ClientName,
			b.ClientEmail,
			b.ClientPhone,
			b.ServiceName,
			formatDate(b.BookingDate),
			b.Status,
			b.AdditionalInfo,
			formatDate(b.CreatedAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "E", 22)
	_ = f.SetColWidth(sheetName, "F", "I", 16)

	_ = f.DeleteSheet("Sheet1")
	return f, nil
}

// WriteBookings streams a workbook to w, for HTTP download responses.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f, err := BuildWorkbook(bookings)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveBookings writes a timestamped workbook under dir and returns the
// file path.
func SaveBookings(dir string, bookings []models.Booking) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f, err := BuildWorkbook(bookings)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return filePath, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
