package models

import (
	"fmt"
	"strings"
)

// DumpKind identifies which collection a dump file carries
type DumpKind string

const (
	DumpKindRegions DumpKind = "regions"
	DumpKindNations DumpKind = "nations"
)

// ValidateDumpKind checks if the dump kind is valid
func ValidateDumpKind(kind DumpKind) error {
	switch kind {
	case DumpKindRegions, DumpKindNations:
		return nil
	default:
		return fmt.Errorf("invalid dump kind: %s", kind)
	}
}

// SnapshotSource locates the pair of dump files captured at one point in time
type SnapshotSource struct {
	Label string `json:"label"`
	Dir   string `json:"dir"`
	Ext   string `json:"ext"`
}

// Validate ensures all required fields are present
func (s *SnapshotSource) Validate() error {
	if strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("snapshot label is required")
	}
	if strings.ContainsAny(s.Label, `/\`) {
		return fmt.Errorf("snapshot label %q must not contain path separators", s.Label)
	}
	if s.Ext == "" {
		return fmt.Errorf("dump extension is required")
	}
	return nil
}

// Snapshot is the parse result of one source: every region and nation it lists
type Snapshot struct {
	Label   string
	Regions []Region
	Nations []Nation
}
