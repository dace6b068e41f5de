package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"popcompare/internal/models"
)

const (
	defaultSheet   = "Sheet1"
	maxSheetName   = 31
	percentNumFmt  = 10 // 0.00%
	highlightRows  = 30000
	positiveColour = "#32CD32"
	negativeColour = "#FA8072"
)

// XLSX renders rows into a single worksheet spreadsheet. Delta columns are
// highlighted green when positive and salmon when negative.
type XLSX struct {
	// Formulas writes delta and percent cells as spreadsheet formulas
	// instead of precomputed values.
	Formulas bool
}

// Format returns the renderer name
func (*XLSX) Format() string { return "xlsx" }

// Extension returns the file suffix
func (*XLSX) Extension() string { return ".xlsx" }

// Render implements the Renderer interface
func (x *XLSX) Render(w io.Writer, title string, rows []models.ComparisonRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(title)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	if err := x.highlightDeltas(f, sheet); err != nil {
		return err
	}

	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: percentNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}

	for i, row := range rows {
		if err := x.writeRow(f, sheet, i+2, row, percentStyle); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Key, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "K", 16); err != nil {
		return err
	}

	return f.Write(w)
}

func (x *XLSX) writeRow(f *excelize.File, sheet string, r int, row models.ComparisonRow, percentStyle int) error {
	cell := func(col string) string { return fmt.Sprintf("%s%d", col, r) }

	values := []struct {
		col   string
		value any
	}{
		{"A", row.Name},
		{"B", row.Before.Population},
		{"C", row.After.Population},
		{"D", row.Before.WAMembers},
		{"E", row.After.WAMembers},
		{"J", row.Before.Endorsements},
		{"K", row.After.Endorsements},
	}
	for _, v := range values {
		if err := f.SetCellValue(sheet, cell(v.col), v.value); err != nil {
			return err
		}
	}

	if err := x.writeDelta(f, sheet, cell("F"), row.PopulationDelta, fmt.Sprintf("C%d-B%d", r, r)); err != nil {
		return err
	}
	if err := x.writePercent(f, sheet, cell("G"), row.PopulationChange, fmt.Sprintf("(C%d-B%d)/B%d", r, r, r), percentStyle); err != nil {
		return err
	}
	if err := x.writeDelta(f, sheet, cell("H"), row.WADelta, fmt.Sprintf("E%d-D%d", r, r)); err != nil {
		return err
	}
	return x.writePercent(f, sheet, cell("I"), row.WAChange, fmt.Sprintf("(E%d-D%d)/D%d", r, r, r), percentStyle)
}

func (x *XLSX) writeDelta(f *excelize.File, sheet, cell string, delta int, formula string) error {
	if x.Formulas {
		return f.SetCellFormula(sheet, cell, formula)
	}
	return f.SetCellValue(sheet, cell, delta)
}

// writePercent leaves a N/A marker when the change is undefined, never a
// division by zero
func (x *XLSX) writePercent(f *excelize.File, sheet, cell string, p models.Percent, formula string, style int) error {
	if !p.Defined {
		return f.SetCellValue(sheet, cell, p.String())
	}
	var err error
	if x.Formulas {
		err = f.SetCellFormula(sheet, cell, formula)
	} else {
		err = f.SetCellValue(sheet, cell, p.Ratio)
	}
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func (x *XLSX) highlightDeltas(f *excelize.File, sheet string) error {
	positive, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{positiveColour}},
	})
	if err != nil {
		return fmt.Errorf("failed to create positive style: %w", err)
	}
	negative, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{negativeColour}},
	})
	if err != nil {
		return fmt.Errorf("failed to create negative style: %w", err)
	}

	for _, col := range []string{"F", "H"} {
		ref := fmt.Sprintf("%s2:%s%d", col, col, highlightRows)
		err := f.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{
			{Type: "cell", Criteria: ">", Format: positive, Value: "0"},
			{Type: "cell", Criteria: "<", Format: negative, Value: "0"},
		})
		if err != nil {
			return fmt.Errorf("failed to set conditional format on %s: %w", ref, err)
		}
	}
	return nil
}

// SheetName turns a report title into a valid worksheet name
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return defaultSheet
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}
