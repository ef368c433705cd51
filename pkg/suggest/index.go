package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// OptionIndex is a prefix index over a candidate list. Lookups return
// candidates in their original declaration order, never by length or
// frequency, so the index can narrow a list without changing its priority.
type OptionIndex struct {
	trie       *patricia.Trie
	candidates []string
}

// NewOptionIndex indexes candidates. Duplicates keep their first position.
func NewOptionIndex(candidates []string) *OptionIndex {
	idx := &OptionIndex{
		trie:       patricia.NewTrie(),
		candidates: make([]string, 0, len(candidates)),
	}
	for _, c := range candidates {
		if idx.trie.Insert(patricia.Prefix(c), len(idx.candidates)) {
			idx.candidates = append(idx.candidates, c)
		}
	}
	return idx
}

// Len returns the number of distinct candidates.
func (idx *OptionIndex) Len() int {
	return len(idx.candidates)
}

// WithPrefix returns the candidates that begin with prefix, in declaration order.
func (idx *OptionIndex) WithPrefix(prefix string) []string {
	if prefix == "" {
		return append([]string{}, idx.candidates...)
	}

	var positions []int
	err := idx.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		pos, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for option %s", item, p)
			return nil
		}
		positions = append(positions, pos)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting option subtree: %v", err)
		return []string{}
	}

	sort.Ints(positions)
	out := make([]string, len(positions))
	for i, pos := range positions {
		out[i] = idx.candidates[pos]
	}
	return out
}

// Filter returns the entries of candidates that begin with fragment, in
// declaration order. An empty fragment keeps every distinct candidate.
func Filter(candidates []string, fragment string) []string {
	return NewOptionIndex(candidates).WithPrefix(fragment)
}

// Limit truncates list to at most n entries. n <= 0 means no limit.
func Limit(list []string, n int) []string {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
