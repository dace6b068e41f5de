package models

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Testlandia", "testlandia"},
		{"New Testlandia", "new_testlandia"},
		{"new_testlandia", "new_testlandia"},
		{"  The North Pacific ", "the_north_pacific"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.raw); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNationAndRegionKeysAgree(t *testing.T) {
	r := Region{Name: "New Testlandia"}
	n := Nation{Name: "Some Nation", Region: "new_testlandia"}
	if r.Key() != n.RegionKey() {
		t.Fatalf("region key %q != nation region key %q", r.Key(), n.RegionKey())
	}
	if n.Key() != "some_nation" {
		t.Fatalf("nation key = %q", n.Key())
	}
}

func TestParseEndorsements(t *testing.T) {
	if got := ParseEndorsements(""); len(got) != 0 {
		t.Fatalf("empty value should yield no endorsements, got %v", got)
	}
	if got := ParseEndorsements("   "); len(got) != 0 {
		t.Fatalf("blank value should yield no endorsements, got %v", got)
	}
	got := ParseEndorsements("a,b,c")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("ParseEndorsements = %v", got)
	}
}

func TestIsWAMember(t *testing.T) {
	if !(Nation{WAStatus: "WA Member"}).IsWAMember() {
		t.Fatal("expected WA member")
	}
	for _, status := range []string{"Non-member", "WA Delegate", "wa member", ""} {
		if (Nation{WAStatus: status}).IsWAMember() {
			t.Fatalf("status %q should not count as member", status)
		}
	}
}

func TestRegionNationNames(t *testing.T) {
	r := Region{Nations: "testlandia:new_testlandia::max_barry"}
	want := []string{"testlandia", "new testlandia", "max barry"}
	if got := r.NationNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("NationNames = %v, want %v", got, want)
	}
	if got := (Region{}).NationNames(); len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}

func TestPercentString(t *testing.T) {
	tests := []struct {
		p    Percent
		want string
	}{
		{Percent{Ratio: 0.2, Defined: true}, "20.00%"},
		{Percent{Ratio: -1, Defined: true}, "-100.00%"},
		{Percent{Ratio: 0, Defined: true}, "0.00%"},
		{Percent{}, "N/A"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSnapshotSourceValidate(t *testing.T) {
	ok := SnapshotSource{Label: "2024-01-01", Dir: "dumps", Ext: ".xml.gz"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []SnapshotSource{
		{Label: "", Ext: ".xml"},
		{Label: "../x", Ext: ".xml"},
		{Label: "a"},
	}
	for _, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("expected error for %+v", s)
		}
	}
}

func TestValidateDumpKind(t *testing.T) {
	if err := ValidateDumpKind(DumpKindRegions); err != nil {
		t.Fatal(err)
	}
	if err := ValidateDumpKind("officers"); err == nil {
		t.Fatal("expected error")
	}
}
