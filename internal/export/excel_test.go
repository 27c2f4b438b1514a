package export

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockievisual/studio-portal/internal/models"
)

func sampleBookings() []models.Booking {
	return []models.Booking{
		{
			ID:          "42",
			ClientName:  "Jane",
			ClientEmail: "jane@test.com",
			ServiceName: "Graphic Design",
			BookingDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:      models.StatusConfirmed,
		},
		{
			ID:          "41",
			ClientName:  "Bob",
			ServiceName: "Web Design",
			Status:      models.StatusPending,
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleBookings())
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", got)

	got, _ = f.GetCellValue("Bookings", "A2")
	assert.Equal(t, "42", got)

	got, _ = f.GetCellValue("Bookings", "G2")
	assert.Equal(t, models.StatusConfirmed, got)

	got, _ = f.GetCellValue("Bookings", "F2")
	assert.Equal(t, "2025-07-01", got)

	got, _ = f.GetCellValue("Bookings", "B3")
	assert.Equal(t, "Bob", got)

	// The default sheet is removed.
	assert.Equal(t, -1, func() int {
		idx, _ := f.GetSheetIndex("Sheet1")
		return idx
	}())
}

func TestWriteBookings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, sampleBookings()))
	assert.Positive(t, buf.Len())
}

func TestSaveBookings(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveBookings(dir, sampleBookings())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
