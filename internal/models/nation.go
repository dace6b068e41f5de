package models

import "strings"

// WAMemberStatus is the UNSTATUS value held by World Assembly members
const WAMemberStatus = "WA Member"

// Nation is one NATION entry of a nations dump. Only the fields the
// comparison needs are kept.
type Nation struct {
	Name         string
	WAStatus     string
	Endorsements []string
	Region       string
}

// Key returns the normalized nation name
func (n Nation) Key() string {
	return NormalizeName(n.Name)
}

// RegionKey returns the normalized name of the region the nation reports
func (n Nation) RegionKey() string {
	return NormalizeName(n.Region)
}

// IsWAMember reports whether the nation holds WA membership
func (n Nation) IsWAMember() bool {
	return n.WAStatus == WAMemberStatus
}

// ParseEndorsements splits the comma separated ENDORSEMENTS value.
// An empty value means no endorsements, not one empty endorser.
func ParseEndorsements(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
