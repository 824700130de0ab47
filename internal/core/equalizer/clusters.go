// This file implements spec §4.3 step 12 ("Cluster round-up"): a
// worklist of classes, trying every conditional and functor cluster
// against each, enlarging the supercluster whenever a rule fires, and
// re-enqueuing the class whose supercluster grew (other classes are not
// re-enqueued on its account). Spec §5
// asks for a "min-heap-like ordered set of class ids" to guarantee
// deterministic termination regardless of discovery order; this file uses
// container/heap directly over ClassID, matching cuelang.org/go/internal/
// core/adt/disjunct.go's use of a heap-ordered worklist for deterministic
// disjunct scheduling.
package equalizer

import (
	"container/heap"

	"github.com/ayutac/mizar-go/internal/core/term"
)

// classHeap is a min-heap of pending class ids, deduplicated via a
// membership set so a class already queued is never pushed twice.
type classHeap struct {
	ids    []ClassID
	queued map[ClassID]bool
}

func (h *classHeap) Len() int            { return len(h.ids) }
func (h *classHeap) Less(i, j int) bool  { return h.ids[i] < h.ids[j] }
func (h *classHeap) Swap(i, j int)       { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }
func (h *classHeap) Push(x interface{})  { h.ids = append(h.ids, x.(ClassID)) }
func (h *classHeap) Pop() interface{} {
	n := len(h.ids)
	id := h.ids[n-1]
	h.ids = h.ids[:n-1]
	return id
}

func (h *classHeap) enqueue(id ClassID) {
	if h.queued[id] {
		return
	}
	h.queued[id] = true
	heap.Push(h, id)
}

func (h *classHeap) dequeue() ClassID {
	id := heap.Pop(h).(ClassID)
	delete(h.queued, id)
	return id
}

// RoundUpClusters implements spec §4.3 step 12: process classes in
// ascending id order, re-enqueuing a class whenever a cluster rule
// enlarges its supercluster, until the worklist drains.
func (e *Equalizer) RoundUpClusters() error {
	h := &classHeap{queued: map[ClassID]bool{}}
	for _, c := range e.classes {
		if c != nil && len(c.Members) > 0 {
			h.enqueue(c.ID)
		}
	}

	for h.Len() > 0 {
		id := h.dequeue()
		c := e.classes[id]
		if c == nil || len(c.Members) == 0 {
			continue
		}
		changed, err := e.roundUpOne(c)
		if err != nil {
			return err
		}
		if changed {
			h.enqueue(c.ID)
		}
	}
	return nil
}

// roundUpOne applies every registered conditional and functor cluster
// once to c, reporting whether its supercluster grew.
func (e *Equalizer) roundUpOne(c *EqTerm) (bool, error) {
	changed := false
	for _, cc := range e.G.Clusters.Conditional {
		if !e.classMatchesRadix(c, cc.AntecedentTy) || !attrsSubset(cc.Antecedent, c.Super) {
			continue
		}
		before := len(c.Super.List)
		if err := e.mergeSuper(c, cc.Consequent); err != nil {
			return false, err
		}
		if len(c.Super.List) != before {
			changed = true
		}
	}
	for _, fc := range e.G.Clusters.Functor {
		matched := false
		for _, m := range c.Members {
			if _, ok := matchPattern(fc.Pattern, e.marks[m].Term); ok {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		before := len(c.Super.List)
		if err := e.mergeSuper(c, fc.Consequent); err != nil {
			return false, err
		}
		if len(c.Super.List) != before {
			changed = true
		}
	}
	return changed, nil
}

// classMatchesRadix reports whether c carries a recorded type sharing ty's
// radix (kind+constructor, ignoring attribute clusters and argument
// identity — the registered cluster's Primary loci are instantiated by
// whichever concrete arguments the class's own type carries).
func (e *Equalizer) classMatchesRadix(c *EqTerm, ty *term.Type) bool {
	if ty == nil {
		return true
	}
	for _, t := range c.Types {
		if t.Kind == ty.Kind && t.Nr == ty.Nr {
			return true
		}
	}
	return false
}

// attrsSubset reports whether every fact in want is present (same
// predicate number and sign) in have.
func attrsSubset(want, have term.Attrs) bool {
	if have.Inconsistent {
		return false
	}
	for _, f := range want.List {
		if _, ok := have.Has(f.Nr, f.Pos); !ok {
			return false
		}
	}
	return true
}
