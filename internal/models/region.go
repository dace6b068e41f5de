package models

import "strings"

// Region is one REGION entry of a regions dump
type Region struct {
	Name          string
	NumNations    int
	Nations       string
	Delegate      string
	DelegateVotes int
	DelegateAuth  string
	Founder       string
	FounderAuth   string
	Officers      []Officer
	Embassies     []string
	LastUpdate    float64
}

// Officer is a regional officer appointment
type Officer struct {
	Nation    string
	Office    string
	Authority string
	Time      int64
	By        string
	Order     int
}

// Key returns the normalized region name
func (r Region) Key() string {
	return NormalizeName(r.Name)
}

// NationNames splits the colon separated NATIONS value into display names.
// It is informational only; population always comes from NumNations.
func (r Region) NationNames() []string {
	var names []string
	for _, part := range strings.Split(r.Nations, ":") {
		if part == "" {
			continue
		}
		names = append(names, strings.ReplaceAll(part, "_", " "))
	}
	return names
}
