// internal/parser/parser.go
package parser

import (
	"fmt"

	"popcompare/internal/models"
)

// FormatError reports dump text that does not match the expected document
// shape. It is fatal for the file it names; no records are returned with it.
type FormatError struct {
	Source string
	Root   string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %s (expected <%s>): %v", e.Source, e.Root, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a new FormatError
func NewFormatError(source, root string, err error) *FormatError {
	return &FormatError{
		Source: source,
		Root:   root,
		Err:    err,
	}
}

// ParseSnapshot parses the regions and nations documents of one snapshot.
// Either document failing aborts the whole snapshot.
func ParseSnapshot(label, regionsText, nationsText string) (models.Snapshot, error) {
	regions, err := ParseRegions(label+"-"+string(models.DumpKindRegions), regionsText)
	if err != nil {
		return models.Snapshot{}, err
	}
	nations, err := ParseNations(label+"-"+string(models.DumpKindNations), nationsText)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{
		Label:   label,
		Regions: regions,
		Nations: nations,
	}, nil
}
