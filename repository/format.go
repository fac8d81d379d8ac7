package repository

import "github.com/dustin/go-humanize"

// FormatChips renders a chip count with thousands separators for the
// ranking snapshot broadcast as update-ranking-data — the same
// formatting touch the teacher applies to byte counts and durations
// rather than leaving raw integers for the client to format.
func FormatChips(n int64) string {
	return humanize.Comma(n)
}

// RankingDTO converts a ranking snapshot into the wire shape the
// update-ranking-data event carries: each row keeps its raw chip
// count alongside a human-readable rendering.
func RankingDTO(entries []RankingEntry) []map[string]any {
	dto := make([]map[string]any, len(entries))
	for i, e := range entries {
		dto[i] = map[string]any{
			"name":          e.Name,
			"chips":         e.Chips,
			"chips_display": FormatChips(e.Chips),
			"bb_per_100":    e.BB100,
			"hands_played":  e.HandsPlayed,
		}
	}
	return dto
}
