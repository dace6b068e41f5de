package report

import (
	"encoding/csv"
	"io"

	"popcompare/internal/models"
)

// CSV renders rows as comma separated values with a header line
type CSV struct{}

// Format returns the renderer name
func (CSV) Format() string { return "csv" }

// Extension returns the file suffix
func (CSV) Extension() string { return ".csv" }

// Render implements the Renderer interface. The title is not part of the output.
func (CSV) Render(w io.Writer, _ string, rows []models.ComparisonRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
