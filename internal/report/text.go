package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"popcompare/internal/models"
)

// Text renders rows as an aligned plain text table
type Text struct{}

// Format returns the renderer name
func (Text) Format() string { return "text" }

// Extension returns the file suffix
func (Text) Extension() string { return ".txt" }

// Render implements the Renderer interface
func (Text) Render(w io.Writer, title string, rows []models.ComparisonRow) error {
	p := message.NewPrinter(language.English)
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(Header, "\t")+"\t"); err != nil {
		return err
	}
	for _, row := range rows {
		cells := []string{
			row.Name,
			p.Sprintf("%d", row.Before.Population),
			p.Sprintf("%d", row.After.Population),
			p.Sprintf("%d", row.Before.WAMembers),
			p.Sprintf("%d", row.After.WAMembers),
			p.Sprintf("%+d", row.PopulationDelta),
			row.PopulationChange.String(),
			p.Sprintf("%+d", row.WADelta),
			row.WAChange.String(),
			p.Sprintf("%d", row.Before.Endorsements),
			p.Sprintf("%d", row.After.Endorsements),
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
