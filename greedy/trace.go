package greedy

import (
	"crypto/sha1"

	"github.com/petar/GoLLRB/llrb"

	"github.com/menosgeze/assort"
)

// Record is one visited selection in a greedy search.  Records are created
// when a selection is first evaluated and never mutated afterwards.
type Record struct {
	Selection assort.Selection
	// From is the selection this one was grown from; nil for the root.
	From      assort.Selection
	Size      float64
	Objective float64
	// Fitness is scored relative to From (relative to the virtual empty
	// selection for the root).
	Fitness float64
}

// Less orders records by objective so a trace can rank everything it has
// seen.  It satisfies llrb.Item.
func (r *Record) Less(than llrb.Item) bool {
	return r.Objective < than.(*Record).Objective
}

// Trace is the full history of a greedy run: every selection evaluated, in
// visit order, with a membership index for cycle prevention and an
// objective-ordered tree for ranked queries.
type Trace struct {
	records []*Record
	visited map[[sha1.Size]byte]struct{}
	ranked  *llrb.LLRB
}

func newTrace() *Trace {
	return &Trace{
		visited: make(map[[sha1.Size]byte]struct{}),
		ranked:  llrb.New(),
	}
}

func (t *Trace) add(r *Record) {
	t.records = append(t.records, r)
	t.visited[r.Selection.Hash()] = struct{}{}
	t.ranked.InsertNoReplace(r)
}

// Seen reports whether sel has already been evaluated during this run.
func (t *Trace) Seen(sel assort.Selection) bool {
	_, ok := t.visited[sel.Hash()]
	return ok
}

func (t *Trace) Len() int { return len(t.records) }

// Records returns all visited selections in visit order.  The returned
// slice is shared; callers must not modify the records.
func (t *Trace) Records() []*Record { return t.records }

// Best returns up to n visited records in descending objective order,
// whether or not they lie on the accepted path.
func (t *Trace) Best(n int) []*Record {
	if n <= 0 || t.ranked.Len() == 0 {
		return nil
	}
	out := make([]*Record, 0, n)
	t.ranked.DescendLessOrEqual(t.ranked.Max(), func(i llrb.Item) bool {
		out = append(out, i.(*Record))
		return len(out) < n
	})
	return out
}
