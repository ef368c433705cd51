package utils

// SuggestionFilter drops repeated and empty suggestions. Matching is exact:
// option values are case sensitive.
type SuggestionFilter struct {
	seen map[string]bool
}

// NewSuggestionFilter creates an empty filter.
func NewSuggestionFilter() *SuggestionFilter {
	return &SuggestionFilter{seen: make(map[string]bool)}
}

// ShouldInclude reports whether s is new, remembering it.
func (f *SuggestionFilter) ShouldInclude(s string) bool {
	if s == "" || f.seen[s] {
		return false
	}
	f.seen[s] = true
	return true
}

// Dedupe returns list without empty or repeated entries, first occurrences
// kept in order. The input is not modified.
func Dedupe(list []string) []string {
	f := NewSuggestionFilter()
	out := make([]string, 0, len(list))
	for _, s := range list {
		if f.ShouldInclude(s) {
			out = append(out, s)
		}
	}
	return out
}

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
