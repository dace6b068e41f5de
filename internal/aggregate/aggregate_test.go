package aggregate

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"popcompare/internal/models"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestAggregateCounts(t *testing.T) {
	nations := []models.Nation{
		{Name: "a", Region: "Testlandia", WAStatus: "WA Member", Endorsements: []string{"x", "y", "z"}},
		{Name: "b", Region: "testlandia", WAStatus: "Non-member", Endorsements: []string{"a"}},
		{Name: "c", Region: "Testlandia", WAStatus: "WA Member"},
		{Name: "d", Region: "Elsewhere", WAStatus: "WA Member", Endorsements: models.ParseEndorsements("")},
	}

	got := Aggregate(nations)
	want := map[string]Tally{
		"testlandia": {WAMembers: 2, Endorsements: 4},
		"elsewhere":  {WAMembers: 1, Endorsements: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate = %v, want %v", got, want)
	}
}

func TestAggregateEmptyEndorsementsContributeZero(t *testing.T) {
	got := Aggregate([]models.Nation{
		{Region: "R", Endorsements: models.ParseEndorsements("")},
	})
	if got["r"].Endorsements != 0 {
		t.Fatalf("empty endorsements contributed %d", got["r"].Endorsements)
	}
}

func TestAggregateNormalizesRegion(t *testing.T) {
	got := Aggregate([]models.Nation{
		{Region: "New Testlandia", WAStatus: "WA Member"},
		{Region: "new_testlandia", WAStatus: "WA Member"},
	})
	if len(got) != 1 || got["new_testlandia"].WAMembers != 2 {
		t.Fatalf("expected one bucket with 2 members, got %v", got)
	}
	region := models.Region{Name: "New Testlandia"}
	if _, ok := got[region.Key()]; !ok {
		t.Fatalf("region key %q missing from %v", region.Key(), got)
	}
}

func TestAggregatePermutationInvariant(t *testing.T) {
	rng := testRng()
	statuses := []string{"WA Member", "Non-member", "WA Delegate"}
	nations := make([]models.Nation, 200)
	for i := range nations {
		endos := make([]string, rng.Intn(5))
		for j := range endos {
			endos[j] = fmt.Sprintf("n%d", j)
		}
		nations[i] = models.Nation{
			Name:         fmt.Sprintf("nation %d", i),
			Region:       fmt.Sprintf("Region %d", rng.Intn(7)),
			WAStatus:     statuses[rng.Intn(len(statuses))],
			Endorsements: endos,
		}
	}

	want := Aggregate(nations)
	for round := 0; round < 10; round++ {
		shuffled := append([]models.Nation(nil), nations...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := Aggregate(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: permutation changed the result", round)
		}
	}
}

func TestPopulationMapLastWriteWins(t *testing.T) {
	got := PopulationMap([]models.Region{
		{Name: "Testlandia", NumNations: 10},
		{Name: "Other", NumNations: 1},
		{Name: "testlandia", NumNations: 12},
	})
	if got["testlandia"] != 12 {
		t.Fatalf("expected last write to win, got %d", got["testlandia"])
	}
	if got["other"] != 1 {
		t.Fatalf("unexpected population for other: %d", got["other"])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(models.Snapshot{
		Label: "before",
		Regions: []models.Region{
			{Name: "Testlandia", NumNations: 10},
			{Name: "New Testlandia", NumNations: 3},
			{Name: "testlandia", NumNations: 11},
		},
		Nations: []models.Nation{
			{Region: "new_testlandia", WAStatus: "WA Member", Endorsements: []string{"a"}},
		},
	})

	if !reflect.DeepEqual(s.Order, []string{"testlandia", "new_testlandia"}) {
		t.Fatalf("unexpected order %v", s.Order)
	}
	if s.Names["testlandia"] != "Testlandia" {
		t.Fatalf("expected first display name, got %q", s.Names["testlandia"])
	}
	want := models.RegionAggregate{Population: 3, WAMembers: 1, Endorsements: 1}
	if got := s.Region("new_testlandia"); got != want {
		t.Fatalf("Region = %+v, want %+v", got, want)
	}
	if got := s.Region("testlandia"); got.Population != 11 {
		t.Fatalf("expected last-write population 11, got %d", got.Population)
	}
	if got := s.Region("missing"); got != (models.RegionAggregate{}) {
		t.Fatalf("missing region should be zero, got %+v", got)
	}
}
