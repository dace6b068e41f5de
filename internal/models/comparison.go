package models

import "fmt"

// RegionAggregate holds the per-snapshot statistics of one region.
// The zero value stands for a region the snapshot does not contain.
type RegionAggregate struct {
	Population   int
	WAMembers    int
	Endorsements int
}

// Percent is a relative change. It is undefined when the base value is zero.
type Percent struct {
	Ratio   float64
	Defined bool
}

// String renders the percent with two decimals, or N/A when undefined
func (p Percent) String() string {
	if !p.Defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", p.Ratio*100)
}

// ComparisonRow is the reconciled before/after record of one region
type ComparisonRow struct {
	Key  string
	Name string

	Before RegionAggregate
	After  RegionAggregate

	PopulationDelta  int
	PopulationChange Percent
	WADelta          int
	WAChange         Percent
	EndorsementDelta int
}
