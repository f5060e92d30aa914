// Package assort solves capacity-constrained assortment selection: choose a
// subset of items that maximizes total realized demand subject to a total
// size budget.  Unlike plain knapsack the objective is not separable - when
// an item is left out, part of its baseline demand transfers to the items
// that are in, so each item's contribution depends on the whole selection.
//
// The root package holds the data model (Catalog, Selection, Problem) and
// the fitness metrics shared by the search algorithms in greedy/ and swarm/.
package assort

import (
	"crypto/sha1"
	"sort"
)

// Catalog is the sorted universe of item ids a problem is defined over.  It
// is fixed for the duration of a run; row/column i of a transfer matrix
// refers to the i-th catalog entry.
type Catalog []string

// NewCatalog builds a sorted, deduplicated catalog from ids.
func NewCatalog(ids ...string) Catalog {
	return Catalog(dedupSort(ids))
}

// Index returns the catalog position of id, or -1 if absent.
func (c Catalog) Index(id string) int {
	i := sort.SearchStrings(c, id)
	if i < len(c) && c[i] == id {
		return i
	}
	return -1
}

// Selection is a set of item ids, stored sorted.  Selections are treated as
// immutable values: Add and Remove return fresh copies and never alias the
// receiver's backing array.
type Selection []string

// NewSelection builds a sorted, deduplicated selection from ids.
func NewSelection(ids ...string) Selection {
	return Selection(dedupSort(ids))
}

func (s Selection) Len() int { return len(s) }

func (s Selection) Has(id string) bool {
	i := sort.SearchStrings(s, id)
	return i < len(s) && s[i] == id
}

// Add returns a new selection containing id along with everything in s.
func (s Selection) Add(id string) Selection {
	if s.Has(id) {
		return s.Clone()
	}
	out := make(Selection, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, id)
	sort.Strings(out)
	return out
}

// Remove returns a new selection with id taken out of s.
func (s Selection) Remove(id string) Selection {
	out := make(Selection, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	copy(out, s)
	return out
}

func (s Selection) Equal(o Selection) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Hash returns a digest of the selection's membership, suitable for
// visited-set deduplication.  Two selections hash equal iff they contain the
// same ids.
func (s Selection) Hash() [sha1.Size]byte {
	h := sha1.New()
	for _, id := range s {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	var sum [sha1.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func dedupSort(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	n := 0
	for i, v := range out {
		if i == 0 || v != out[n-1] {
			out[n] = v
			n++
		}
	}
	return out[:n]
}
