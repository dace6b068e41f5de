// Package aggregate derives per-region statistics from one snapshot.
package aggregate

import "popcompare/internal/models"

// Tally is the part of a region aggregate counted from nation records
type Tally struct {
	WAMembers    int
	Endorsements int
}

// Aggregate tallies WA members and endorsements per normalized region key in
// one pass. The result does not depend on the order of nations.
func Aggregate(nations []models.Nation) map[string]Tally {
	tallies := make(map[string]Tally)
	for _, n := range nations {
		key := n.RegionKey()
		t := tallies[key]
		if n.IsWAMember() {
			t.WAMembers++
		}
		t.Endorsements += len(n.Endorsements)
		tallies[key] = t
	}
	return tallies
}

// PopulationMap maps each region key to its reported NumNations.
// A key listed twice in one snapshot keeps the last value (last write wins).
func PopulationMap(regions []models.Region) map[string]int {
	population := make(map[string]int, len(regions))
	for _, r := range regions {
		population[r.Key()] = r.NumNations
	}
	return population
}

// Summary is everything the reconciliation needs from one snapshot.
// It is built once by Summarize and only read afterwards.
type Summary struct {
	Label string
	// Order lists region keys in first-seen order of the regions dump
	Order []string
	// Names maps region keys to the first display name seen
	Names      map[string]string
	Population map[string]int
	Tallies    map[string]Tally
}

// Summarize builds the Summary of a snapshot
func Summarize(s models.Snapshot) Summary {
	order := make([]string, 0, len(s.Regions))
	names := make(map[string]string, len(s.Regions))
	for _, r := range s.Regions {
		key := r.Key()
		if _, seen := names[key]; seen {
			continue
		}
		names[key] = r.Name
		order = append(order, key)
	}

	return Summary{
		Label:      s.Label,
		Order:      order,
		Names:      names,
		Population: PopulationMap(s.Regions),
		Tallies:    Aggregate(s.Nations),
	}
}

// Region returns the aggregate of key, zero when the snapshot lacks it
func (s Summary) Region(key string) models.RegionAggregate {
	t := s.Tallies[key]
	return models.RegionAggregate{
		Population:   s.Population[key],
		WAMembers:    t.WAMembers,
		Endorsements: t.Endorsements,
	}
}
