// Package compare reconciles two snapshot summaries into comparison rows.
package compare

import (
	"popcompare/internal/aggregate"
	"popcompare/internal/models"
)

// Universe returns every region key listed in either regions dump, in
// first-seen order, before snapshot first. Regions only named by nations
// are not part of it.
func Universe(before, after aggregate.Summary) []string {
	seen := make(map[string]bool, len(before.Order)+len(after.Order))
	keys := make([]string, 0, len(before.Order)+len(after.Order))
	for _, order := range [][]string{before.Order, after.Order} {
		for _, key := range order {
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Rows builds one comparison row per universe key, in universe order.
// Missing data is a zero value; nothing here fails.
func Rows(before, after aggregate.Summary) []models.ComparisonRow {
	keys := Universe(before, after)
	rows := make([]models.ComparisonRow, 0, len(keys))
	for _, key := range keys {
		b := before.Region(key)
		a := after.Region(key)

		name, ok := before.Names[key]
		if !ok {
			name = after.Names[key]
		}

		popDelta := a.Population - b.Population
		waDelta := a.WAMembers - b.WAMembers
		rows = append(rows, models.ComparisonRow{
			Key:              key,
			Name:             name,
			Before:           b,
			After:            a,
			PopulationDelta:  popDelta,
			PopulationChange: PercentChange(popDelta, b.Population),
			WADelta:          waDelta,
			WAChange:         PercentChange(waDelta, b.WAMembers),
			EndorsementDelta: a.Endorsements - b.Endorsements,
		})
	}
	return rows
}

// PercentChange returns delta/before, undefined when before is zero
func PercentChange(delta, before int) models.Percent {
	if before == 0 {
		return models.Percent{}
	}
	return models.Percent{
		Ratio:   float64(delta) / float64(before),
		Defined: true,
	}
}

// Totals sums every row into a single world-wide row keyed "total"
func Totals(rows []models.ComparisonRow) models.ComparisonRow {
	total := models.ComparisonRow{Key: "total", Name: "Total"}
	for _, r := range rows {
		total.Before.Population += r.Before.Population
		total.Before.WAMembers += r.Before.WAMembers
		total.Before.Endorsements += r.Before.Endorsements
		total.After.Population += r.After.Population
		total.After.WAMembers += r.After.WAMembers
		total.After.Endorsements += r.After.Endorsements
	}
	total.PopulationDelta = total.After.Population - total.Before.Population
	total.PopulationChange = PercentChange(total.PopulationDelta, total.Before.Population)
	total.WADelta = total.After.WAMembers - total.Before.WAMembers
	total.WAChange = PercentChange(total.WADelta, total.Before.WAMembers)
	total.EndorsementDelta = total.After.Endorsements - total.Before.Endorsements
	return total
}
