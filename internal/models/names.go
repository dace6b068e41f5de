package models

import "strings"

// NormalizeName maps a display name to its identity key: surrounding
// whitespace trimmed, lowercased, spaces replaced with underscores.
// Every identity comparison between regions and nations goes through it.
func NormalizeName(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
}
