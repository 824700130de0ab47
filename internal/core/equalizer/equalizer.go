// Package equalizer implements spec §4.3: congruence closure of terms
// into equivalence classes annotated with type membership and attribute
// clusters, attribute round-up via registered clusters, and contradiction
// detection from reflexivity/irreflexivity, inequalities, and
// type/attribute incompatibilities. It is the largest single component of
// the checker core (spec §2, "Equalizer ... 45%").
//
// Grounded on cuelang.org/go/internal/core/adt/equality.go (structural
// equivalence over Vertex) and closed2.go/closed3.go's worklist-based
// fixpoint propagation for the identity/cluster round-up loops, and on the
// union-find arena style used throughout internal/core/adt (index-based
// nodes, no node owning another — spec §9 "Mutable graph with
// back-pointers").
package equalizer

import (
	"sort"

	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
	"github.com/ayutac/mizar-go/internal/errs"
)

// ClassID names a live or merged equivalence class.
type ClassID int

// MarkID names one entry of the append-only marks vector (spec §3.3).
type MarkID int

// EqTerm is an equivalence class (spec §3.3). Members is the eq_class set
// of representative marks; Types is ty_class, narrowest first; Super is
// the supercluster. A class with an empty Members slice has been merged
// away (invariant §3.4.2).
type EqTerm struct {
	ID      ClassID
	Mark    MarkID
	Members []MarkID
	Types   []*term.Type
	Super   term.Attrs
	Number  *term.Numeral
}

type markEntry struct {
	Term  term.Term
	Owner ClassID
}

// Equalizer runs one DNF conjunct through the congruence-closure pipeline.
// Every field here is part of the "per-DNF-conjunct frame" spec §3.5
// describes as reset at the start of each conjunct run.
type Equalizer struct {
	G  *global.Global
	LC *global.LocalContext

	classes     []*EqTerm // merged-away ids keep their entry, with empty Members, until Renumber drops them
	marks       []markEntry
	constrIndex map[int][]MarkID // adjusted constructor nr -> marks of that shape
	infers      map[int]MarkID   // Infer(n) -> mark

	redirect map[ClassID]ClassID // union-find redirects for classes merged mid-run, folded into the new ids and cleared by Renumber

	ineqs [][2]ClassID // disequalities (invariant §3.4.4)

	posBasis []term.Formula
	negBasis []term.Formula

	pendingEq [][2]ClassID

	clash bool
}

// New creates an Equalizer bound to g and lc. Call Reset before each
// conjunct run (New itself starts in a reset state).
func New(g *global.Global, lc *global.LocalContext) *Equalizer {
	e := &Equalizer{G: g, LC: lc}
	e.Reset()
	return e
}

// Reset clears marks, terms, constrs, infers — the per-DNF-conjunct frame
// (spec §3.5) — so a fresh congruence closure can be built for the next
// conjunct without cross-conjunct leakage.
func (e *Equalizer) Reset() {
	e.classes = nil
	e.marks = nil
	e.constrIndex = map[int][]MarkID{}
	e.infers = map[int]MarkID{}
	e.redirect = map[ClassID]ClassID{}
	e.ineqs = nil
	e.posBasis = nil
	e.negBasis = nil
	e.pendingEq = nil
	e.clash = false
	e.ClearPolynomialValues()
}

// Class returns the live class for id. It panics (via errs.Bug) if id no
// longer names a live class, which would indicate a stale reference held
// across a union (invariant §3.4.1/§3.4.2).
func (e *Equalizer) Class(id ClassID) *EqTerm {
	id = e.resolve(id)
	c := e.classes[id]
	if c == nil || len(c.Members) == 0 {
		errs.Bug("equalizer: reference to merged-away class %d", id)
	}
	return c
}

// newClass allocates a fresh class whose sole member is a new canonical
// mark pointing at EqClass(id), plus one more mark for the original term
// t (unless t already *is* the canonical shape, e.g. a leaf reused as its
// own representative).
func (e *Equalizer) newClass(t term.Term) *EqTerm {
	id := ClassID(len(e.classes))
	canon := e.pushMark(term.EqClass{ID: int(id)}, id)
	c := &EqTerm{ID: id, Mark: canon, Members: []MarkID{canon}}
	e.classes = append(e.classes, c)
	if _, isClass := t.(term.EqClass); !isClass {
		m := e.pushMark(t, id)
		c.Members = append(c.Members, m)
	}
	return c
}

func (e *Equalizer) pushMark(t term.Term, owner ClassID) MarkID {
	id := MarkID(len(e.marks))
	e.marks = append(e.marks, markEntry{Term: t, Owner: owner})
	return id
}

// MarkTerm returns the term recorded for a mark.
func (e *Equalizer) MarkTerm(m MarkID) term.Term { return e.marks[m].Term }

// classOfMark returns the live owning class of a mark, following the
// canonical EqClass literal (invariant §3.4.1: no chains).
func (e *Equalizer) classOfMark(m MarkID) ClassID {
	return e.resolve(e.marks[m].Owner)
}

// resolve follows union redirects to the current live representative of
// id, with path compression.
func (e *Equalizer) resolve(id ClassID) ClassID {
	for {
		next, ok := e.redirect[id]
		if !ok {
			return id
		}
		if _, ok2 := e.redirect[next]; ok2 {
			e.redirect[id] = e.redirect[next]
		}
		id = next
	}
}

// ClassOf returns the class id backing a term already reduced to
// EqClass/EqMark form.
func (e *Equalizer) ClassOf(t term.Term) (ClassID, bool) {
	switch x := t.(type) {
	case term.EqClass:
		id := e.resolve(ClassID(x.ID))
		if id < ClassID(len(e.classes)) && e.classes[id] != nil && len(e.classes[id].Members) > 0 {
			return id, true
		}
		return 0, false
	case term.EqMark:
		return e.resolve(e.classOfMark(MarkID(x.ID))), true
	default:
		return 0, false
	}
}

// InternTerm implements y_term (spec §4.3 step 2): recursively intern
// arguments, look up a congruent existing representative by adjusted
// constructor number and argument classes, reuse it if found, else
// allocate a new class. Commutativity adds the swapped-argument form as
// an additional mark in the same class.
func (e *Equalizer) InternTerm(t term.Term) ClassID {
	switch x := t.(type) {
	case term.EqClass:
		return ClassID(x.ID)
	case term.EqMark:
		return e.classOfMark(MarkID(x.ID))
	case term.Infer:
		if m, ok := e.infers[x.Nr]; ok {
			return e.classOfMark(m)
		}
		c := e.newClass(t)
		e.infers[x.Nr] = c.Members[len(c.Members)-1]
		e.seedType(c, t)
		return c.ID
	case term.Numeral:
		for _, c := range e.classes {
			if c == nil || len(c.Members) == 0 || c.Number == nil {
				continue
			}
			if term.CompareNumeral(*c.Number, x) == 0 {
				return c.ID
			}
		}
		c := e.newClass(t)
		n := x
		c.Number = &n
		e.seedType(c, t)
		return c.ID
	case term.Bound, term.Constant, term.FreeVar, term.Locus:
		return e.internLeafKeyed(t)
	default:
		return e.internApplication(t)
	}
}

// internLeafKeyed interns a leaf term that is not a class placeholder,
// reusing an existing class if an equal leaf has already been interned
// (so that e.g. two occurrences of the same Constant land in one class).
func (e *Equalizer) internLeafKeyed(t term.Term) ClassID {
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		for _, m := range c.Members {
			if mt := e.marks[m].Term; !isClassTerm(mt) && term.Equal(mt, t) {
				return c.ID
			}
		}
	}
	c := e.newClass(t)
	e.seedType(c, t)
	return c.ID
}

func isClassTerm(t term.Term) bool {
	switch t.(type) {
	case term.EqClass, term.EqMark:
		return true
	default:
		return false
	}
}

// internApplication implements the congruent-representative lookup for
// Functor/SchFunc/PrivFunc/Aggregate/Selector terms.
func (e *Equalizer) internApplication(t term.Term) ClassID {
	rawNr, _ := term.ConstrNr(t)
	args := term.Args(t)
	argClasses := make([]ClassID, len(args))
	for i, a := range args {
		argClasses[i] = e.InternTerm(a)
	}
	nr, drop := e.G.Constructors.AdjustArity(rawNr, len(argClasses))
	argClasses = argClasses[drop:]

	if existing, ok := e.findCongruent(nr, argClasses); ok {
		return existing
	}

	c := e.newClass(rebuildWithClassArgs(t, argClasses))
	newMark := c.Members[len(c.Members)-1]
	e.constrIndex[nr] = append(e.constrIndex[nr], newMark)

	ctor := e.G.Constructors.Get(nr)
	if ctor.Properties.Has(global.Commutative) && len(argClasses) == 2 {
		swapped := rebuildWithClassArgs(t, []ClassID{argClasses[1], argClasses[0]})
		sm := e.pushMark(swapped, c.ID)
		c.Members = append(c.Members, sm)
		e.constrIndex[nr] = append(e.constrIndex[nr], sm)
	}
	e.seedType(c, t)
	return c.ID
}

func rebuildWithClassArgs(t term.Term, classes []ClassID) term.Term {
	args := make([]term.Term, len(classes))
	for i, cid := range classes {
		args[i] = term.EqClass{ID: int(cid)}
	}
	return term.WithArgs(t, args)
}

// findCongruent scans the constructor index for an existing mark with the
// given adjusted constructor number whose recorded argument classes
// (after resolving any nested EqClass refs through the current union-find
// state) equal argClasses.
func (e *Equalizer) findCongruent(nr int, argClasses []ClassID) (ClassID, bool) {
	for _, m := range e.constrIndex[nr] {
		mt := e.marks[m].Term
		margs := term.Args(mt)
		if len(margs) != len(argClasses) {
			continue
		}
		match := true
		for i, a := range margs {
			cid, ok := e.ClassOf(a)
			if !ok || cid != argClasses[i] {
				match = false
				break
			}
		}
		if match {
			return e.classOfMark(m), true
		}
	}
	return 0, false
}

// seedType implements "the type of each new class is seeded by
// get_type_uncached and further widened through insert_type until a
// fixpoint, then followed by struct prefixes transitively" (spec §4.3
// step 2). The accommodator-level "uncached type lookup" is outside the
// checker's frozen tables, so this widens from whatever types are already
// recorded via InsertType; a fresh class starts with no declared type.
func (e *Equalizer) seedType(c *EqTerm, t term.Term) {
	_ = t // reserved: a real accommodator would look up t's static type here.
}

// InsertType implements insert_type: widen class c's ty_class with ty,
// keeping the list ordered narrowest-first (invariant §3.4.5), stripping
// ty's attribute parts into the supercluster, and transitively expanding
// struct-mode prefixes is left to the caller (registered cluster data
// supplies the prefix chain; this checker core has no struct hierarchy
// table of its own beyond Constructors.Redefines).
func (e *Equalizer) InsertType(c *EqTerm, ty *term.Type) error {
	if ty == nil {
		return nil
	}
	for _, existing := range c.Types {
		if existing.Radix().SameRadix(ty.Radix()) {
			return nil
		}
	}
	c.Types = append(c.Types, ty)
	sortTypesNarrowFirst(c.Types)
	if err := e.mergeSuper(c, ty.Lower); err != nil {
		return err
	}
	return e.mergeSuper(c, ty.Upper)
}

func sortTypesNarrowFirst(ts []*term.Type) {
	sort.SliceStable(ts, func(i, j int) bool {
		return len(ts[i].Args) > len(ts[j].Args)
	})
}

func (e *Equalizer) mergeSuper(c *EqTerm, a term.Attrs) error {
	c.Super.Merge(a, e.G.Flags.AttrSortBug)
	if c.Super.Inconsistent {
		return errs.NewUnsat("supercluster of class %d became inconsistent", c.ID)
	}
	return nil
}

// InsertAttr inserts a single attribute fact into class c's supercluster
// (spec §4.3 step 1, Attr atoms).
func (e *Equalizer) InsertAttr(c *EqTerm, fact term.AttrFact) error {
	c.Super.Insert(fact, e.G.Flags.AttrSortBug)
	if c.Super.Inconsistent {
		return errs.NewUnsat("attribute %d/%v contradicts supercluster of class %d", fact.Nr, fact.Pos, c.ID)
	}
	return nil
}

// Renumber compacts class ids after merges (spec §4.3 step 8), rewriting
// every mark's owner and every class's recorded id. A merged-away id is
// mapped to the new id of the class it was merged into. EqClass references
// in marks (including the arguments of application marks) and in
// supercluster attribute arguments are rewritten through that mapping, and
// the union-find redirects are cleared, since no stored id refers to the
// old numbering afterwards.
func (e *Equalizer) Renumber() {
	old2new := map[ClassID]ClassID{}
	var compacted []*EqTerm
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		newID := ClassID(len(compacted))
		old2new[c.ID] = newID
		c.ID = newID
		compacted = append(compacted, c)
	}
	for old := range e.classes {
		if _, ok := old2new[ClassID(old)]; !ok {
			if nid, ok := old2new[e.resolve(ClassID(old))]; ok {
				old2new[ClassID(old)] = nid
			}
		}
	}
	for i := range e.marks {
		if newID, ok := old2new[e.marks[i].Owner]; ok {
			e.marks[i].Owner = newID
		}
		if ec, ok := e.marks[i].Term.(term.EqClass); ok {
			if newID, ok := old2new[ClassID(ec.ID)]; ok {
				e.marks[i].Term = term.EqClass{ID: int(newID)}
			}
		} else if args := term.Args(e.marks[i].Term); len(args) > 0 {
			rewritten := rewriteAttrClasses([]term.AttrFact{{Args: args}}, old2new)[0].Args
			e.marks[i].Term = term.WithArgs(e.marks[i].Term, rewritten)
		}
	}
	for _, c := range compacted {
		c.Super.List = rewriteAttrClasses(c.Super.List, old2new)
	}
	e.classes = compacted
	e.redirect = map[ClassID]ClassID{}
}

func rewriteAttrClasses(list []term.AttrFact, old2new map[ClassID]ClassID) []term.AttrFact {
	out := make([]term.AttrFact, len(list))
	for i, f := range list {
		args := make([]term.Term, len(f.Args))
		for j, a := range f.Args {
			if ec, ok := a.(term.EqClass); ok {
				if nid, ok := old2new[ClassID(ec.ID)]; ok {
					args[j] = term.EqClass{ID: int(nid)}
					continue
				}
			}
			args[j] = a
		}
		out[i] = term.AttrFact{Nr: f.Nr, Pos: f.Pos, Args: args}
	}
	return out
}

// Basis returns the surviving positive/negative atom bags once
// equalization completes without contradiction (spec §4.3, "Result").
func (e *Equalizer) Basis() (pos, neg []term.Formula) {
	return e.posBasis, e.negBasis
}

// Classes returns every live (non-merged-away) class, used by the unifier
// to enumerate candidate instantiations against the model (spec §4.4).
func (e *Equalizer) Classes() []*EqTerm {
	out := make([]*EqTerm, 0, len(e.classes))
	for _, c := range e.classes {
		if c != nil && len(c.Members) > 0 {
			out = append(out, c)
		}
	}
	return out
}
