// Package report renders comparison rows into report files.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"popcompare/internal/models"
)

// Renderer writes comparison rows in one output format
type Renderer interface {
	// Format returns the renderer name used on the command line
	Format() string

	// Extension returns the file suffix of rendered reports
	Extension() string

	// Render writes rows to w
	Render(w io.Writer, title string, rows []models.ComparisonRow) error
}

// Header is the column layout shared by every tabular renderer
var Header = []string{
	"Region",
	"Initial Pop.",
	"New Pop.",
	"Initial WA Count",
	"New WA Count",
	"Pop Delta",
	"% Change",
	"WA Delta",
	"% Change",
	"Initial Endos.",
	"New Endos.",
}

// Renderers returns the known renderers keyed by format
func Renderers() map[string]Renderer {
	rs := []Renderer{&XLSX{}, CSV{}, Text{}}
	m := make(map[string]Renderer, len(rs))
	for _, r := range rs {
		m[r.Format()] = r
	}
	return m
}

// Formats lists the known format names, sorted
func Formats() []string {
	var names []string
	for name := range Renderers() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the renderer registered for format
func ForFormat(format string) (Renderer, error) {
	r, ok := Renderers()[format]
	if !ok {
		return nil, fmt.Errorf("no renderer found for format: %s", format)
	}
	return r, nil
}

// FileName is the report name for a pair of snapshot labels
func FileName(before, after, ext string) string {
	return fmt.Sprintf("%s-%s PopCompare%s", before, after, ext)
}

// WriteFile renders rows into dir, replacing any report of the same name.
// It returns the path written.
func WriteFile(dir, name string, r Renderer, title string, rows []models.ComparisonRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to replace %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	if err := r.Render(f, title, rows); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to render %s report: %w", r.Format(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	return path, nil
}

// record flattens a row into Header order
func record(row models.ComparisonRow) []string {
	return []string{
		row.Name,
		strconv.Itoa(row.Before.Population),
		strconv.Itoa(row.After.Population),
		strconv.Itoa(row.Before.WAMembers),
		strconv.Itoa(row.After.WAMembers),
		strconv.Itoa(row.PopulationDelta),
		row.PopulationChange.String(),
		strconv.Itoa(row.WADelta),
		row.WAChange.String(),
		strconv.Itoa(row.Before.Endorsements),
		strconv.Itoa(row.After.Endorsements),
	}
}
