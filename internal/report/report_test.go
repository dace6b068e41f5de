package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"popcompare/internal/models"
)

func sampleRows() []models.ComparisonRow {
	return []models.ComparisonRow{
		{
			Key:              "testlandia",
			Name:             "Testlandia",
			Before:           models.RegionAggregate{Population: 10, WAMembers: 1, Endorsements: 3},
			After:            models.RegionAggregate{Population: 12, WAMembers: 0, Endorsements: 2},
			PopulationDelta:  2,
			PopulationChange: models.Percent{Ratio: 0.2, Defined: true},
			WADelta:          -1,
			WAChange:         models.Percent{Ratio: -1, Defined: true},
			EndorsementDelta: -1,
		},
		{
			Key:             "fresh",
			Name:            "Fresh",
			After:           models.RegionAggregate{Population: 1234},
			PopulationDelta: 1234,
		},
	}
}

func TestCSVRender(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSV{}).Render(&buf, "ignored", sampleRows()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	want := []string{"Testlandia", "10", "12", "1", "0", "2", "20.00%", "-1", "-100.00%", "3", "2"}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row = %v, want %v", records[1], want)
	}
	if records[2][6] != "N/A" || records[2][8] != "N/A" {
		t.Fatalf("expected N/A percentages, got %v", records[2])
	}
}

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	if err := (Text{}).Render(&buf, "Regional Growth", sampleRows()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Regional Growth", "Testlandia", "20.00%", "-100.00%", "1,234", "+1,234", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func openXLSX(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestXLSXRenderValues(t *testing.T) {
	var buf bytes.Buffer
	if err := (&XLSX{}).Render(&buf, "Regional Growth", sampleRows()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f := openXLSX(t, buf.Bytes())

	raw := excelize.Options{RawCellValue: true}
	checks := map[string]string{
		"A1": "Region",
		"A2": "Testlandia",
		"B2": "10",
		"C2": "12",
		"F2": "2",
		"G2": "0.2",
		"H2": "-1",
		"I2": "-1",
		"G3": "N/A",
		"I3": "N/A",
		"K2": "2",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Regional Growth", cell, raw)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestXLSXRenderFormulas(t *testing.T) {
	var buf bytes.Buffer
	if err := (&XLSX{Formulas: true}).Render(&buf, "", sampleRows()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f := openXLSX(t, buf.Bytes())

	checks := map[string]string{
		"F2": "C2-B2",
		"G2": "(C2-B2)/B2",
		"H2": "E2-D2",
		"I2": "(E2-D2)/D2",
		"G3": "",
	}
	for cell, want := range checks {
		got, err := f.GetCellFormula(defaultSheet, cell)
		if err != nil {
			t.Fatalf("GetCellFormula(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s formula = %q, want %q", cell, got, want)
		}
	}
}

func TestSheetName(t *testing.T) {
	tests := map[string]string{
		"":                          "Sheet1",
		"Post-Drew Regional Growth": "Post-Drew Regional Growth",
		"a/b:c":                     "a-b-c",
		strings.Repeat("x", 40):     strings.Repeat("x", 31),
	}
	for in, want := range tests {
		if got := SheetName(in); got != want {
			t.Errorf("SheetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range Formats() {
		r, err := ForFormat(name)
		if err != nil {
			t.Fatalf("ForFormat(%s): %v", name, err)
		}
		if r.Format() != name {
			t.Fatalf("renderer for %s reports %s", name, r.Format())
		}
	}
	if _, err := ForFormat("pdf"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteFileReplacesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sheets")
	name := FileName("a", "b", ".csv")
	if name != "a-b PopCompare.csv" {
		t.Fatalf("FileName = %q", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := WriteFile(dir, name, CSV{}, "", sampleRows())
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") || !strings.HasPrefix(string(data), "Region,") {
		t.Fatalf("unexpected contents %q", data)
	}
}
