package term

// This file implements the single reusable, polarity-threaded walker
// spec §9 asks for ("Implementers should factor this as a single reusable
// walker parameterized over the atom handler rather than duplicating both
// polarities"), plus the de-Bruijn shifting and substitution helpers every
// quantifier-touching stage (Expander, DNF quantifier opener, reduction
// instantiation) needs.
//
// Grounded on the congruent-rewrite style of
// cuelang.org/go/internal/core/adt (structural recursion over a closed
// Expr hierarchy), generalized here with an explicit polarity bit and
// depth counter per spec §3.1/§3.4.6.

// AtomFunc is invoked by Walk on every leaf formula (Pred, Attr, Is,
// SchPred, PrivPred, True, Thesis) with the polarity in effect at that
// point and the binder depth crossed to reach it. It returns the
// (possibly rewritten) replacement formula.
type AtomFunc func(f Formula, pos bool, depth int) Formula

// Walk rewrites f under the given starting polarity, invoking visit on
// every atom and propagating polarity through Neg and structural
// recursion through And/ForAll/FlexAnd exactly as spec §4.2 describes for
// DNF conversion and §4.1 describes for expansion.
func Walk(f Formula, pos bool, visit AtomFunc) Formula {
	return walk(f, pos, 0, visit)
}

func walk(f Formula, pos bool, depth int, visit AtomFunc) Formula {
	switch x := f.(type) {
	case *Neg:
		return &Neg{F: walk(x.F, !pos, depth, visit)}
	case *And:
		out := make([]Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = walk(c, pos, depth, visit)
		}
		return &And{Conjuncts: out}
	case *ForAll:
		return &ForAll{Domain: x.Domain, Body: walk(x.Body, pos, depth+1, visit)}
	case *FlexAnd:
		return &FlexAnd{Lo: x.Lo, Hi: x.Hi, Body: walk(x.Body, pos, depth+2, visit)}
	default:
		return visit(f, pos, depth)
	}
}

// ShiftTerm adjusts every Bound index >= cutoff by delta, used whenever a
// term is relocated across a change in quantifier nesting (spec §3.4.6).
func ShiftTerm(t Term, cutoff, delta int) Term {
	switch x := t.(type) {
	case Bound:
		if x.Index >= cutoff {
			return Bound{Index: x.Index + delta}
		}
		return x
	case *Fraenkel:
		args := make([]*Type, len(x.Args))
		for i, a := range x.Args {
			args[i] = ShiftType(a, cutoff, delta)
		}
		return &Fraenkel{
			Args:  args,
			Scope: ShiftTerm(x.Scope, cutoff+len(x.Args), delta),
			Value: ShiftTerm(x.Value, cutoff+len(x.Args), delta),
			Compr: ShiftFormula(x.Compr, cutoff+len(x.Args), delta),
		}
	case *Choice:
		return &Choice{Ty: ShiftType(x.Ty, cutoff, delta)}
	default:
		if args := Args(t); args != nil {
			out := make([]Term, len(args))
			changed := false
			for i, a := range args {
				out[i] = ShiftTerm(a, cutoff, delta)
				changed = changed || out[i] != a
			}
			if !changed {
				return t
			}
			return WithArgs(t, out)
		}
		return t
	}
}

// ShiftType adjusts the Bound indices occurring in a type's arguments and
// attribute clusters.
func ShiftType(ty *Type, cutoff, delta int) *Type {
	if ty == nil {
		return nil
	}
	args := make([]Term, len(ty.Args))
	for i, a := range ty.Args {
		args[i] = ShiftTerm(a, cutoff, delta)
	}
	return &Type{
		Kind:  ty.Kind,
		Nr:    ty.Nr,
		Args:  args,
		Lower: ShiftAttrs(ty.Lower, cutoff, delta),
		Upper: ShiftAttrs(ty.Upper, cutoff, delta),
	}
}

// ShiftAttrs adjusts the Bound indices occurring in the arguments of
// every fact in a.
func ShiftAttrs(a Attrs, cutoff, delta int) Attrs {
	if a.Inconsistent {
		return a
	}
	out := make([]AttrFact, len(a.List))
	for i, f := range a.List {
		args := make([]Term, len(f.Args))
		for j, t := range f.Args {
			args[j] = ShiftTerm(t, cutoff, delta)
		}
		out[i] = AttrFact{Nr: f.Nr, Pos: f.Pos, Args: args}
	}
	return Attrs{List: out}
}

// ShiftFormula adjusts the Bound indices occurring in f, increasing the
// cutoff by the number of variables each binder introduces.
func ShiftFormula(f Formula, cutoff, delta int) Formula {
	switch x := f.(type) {
	case *Neg:
		return &Neg{F: ShiftFormula(x.F, cutoff, delta)}
	case *And:
		out := make([]Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = ShiftFormula(c, cutoff, delta)
		}
		return &And{Conjuncts: out}
	case *ForAll:
		return &ForAll{Domain: ShiftType(x.Domain, cutoff, delta), Body: ShiftFormula(x.Body, cutoff+1, delta)}
	case *FlexAnd:
		return &FlexAnd{
			Lo:   ShiftTerm(x.Lo, cutoff, delta),
			Hi:   ShiftTerm(x.Hi, cutoff, delta),
			Body: ShiftFormula(x.Body, cutoff+2, delta),
		}
	case *Pred:
		return &Pred{Nr: x.Nr, Args: shiftArgs(x.Args, cutoff, delta)}
	case *Attr:
		return &Attr{Nr: x.Nr, Pos: x.Pos, Args: shiftArgs(x.Args, cutoff, delta)}
	case *SchPred:
		return &SchPred{Nr: x.Nr, Args: shiftArgs(x.Args, cutoff, delta)}
	case *PrivPred:
		return &PrivPred{Nr: x.Nr, Args: shiftArgs(x.Args, cutoff, delta)}
	case *Is:
		return &Is{Term: ShiftTerm(x.Term, cutoff, delta), Ty: ShiftType(x.Ty, cutoff, delta)}
	case True, Thesis:
		return f
	default:
		return f
	}
}

func shiftArgs(args []Term, cutoff, delta int) []Term {
	out := make([]Term, len(args))
	for i, a := range args {
		out[i] = ShiftTerm(a, cutoff, delta)
	}
	return out
}

// SubstTopTerm replaces the outermost bound variable (de-Bruijn index 0
// at the point of substitution) throughout t with repl, decrementing
// every deeper reference by one. This is the term-level half of the
// standard "remove one binder" substitution used by quantifier opening
// (spec §4.2) and flex unfolding (spec §4.1).
func SubstTopTerm(t Term, repl Term) Term {
	return substTerm(t, 0, repl)
}

func substTerm(t Term, j int, repl Term) Term {
	switch x := t.(type) {
	case Bound:
		switch {
		case x.Index == j:
			return ShiftTerm(repl, 0, j)
		case x.Index > j:
			return Bound{Index: x.Index - 1}
		default:
			return x
		}
	case *Fraenkel:
		n := len(x.Args)
		return &Fraenkel{
			Args:  x.Args,
			Scope: substTerm(x.Scope, j+n, repl),
			Value: substTerm(x.Value, j+n, repl),
			Compr: substFormula(x.Compr, j+n, repl),
		}
	case *Choice:
		return x
	default:
		if args := Args(t); args != nil {
			out := make([]Term, len(args))
			for i, a := range args {
				out[i] = substTerm(a, j, repl)
			}
			return WithArgs(t, out)
		}
		return t
	}
}

// SubstTopFormula is the formula-level counterpart of SubstTopTerm.
func SubstTopFormula(f Formula, repl Term) Formula {
	return substFormula(f, 0, repl)
}

func substFormula(f Formula, j int, repl Term) Formula {
	switch x := f.(type) {
	case *Neg:
		return &Neg{F: substFormula(x.F, j, repl)}
	case *And:
		out := make([]Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = substFormula(c, j, repl)
		}
		return &And{Conjuncts: out}
	case *ForAll:
		return &ForAll{Domain: x.Domain, Body: substFormula(x.Body, j+1, repl)}
	case *FlexAnd:
		return &FlexAnd{
			Lo:   substTerm(x.Lo, j, repl),
			Hi:   substTerm(x.Hi, j, repl),
			Body: substFormula(x.Body, j+2, repl),
		}
	case *Pred:
		return &Pred{Nr: x.Nr, Args: substArgs(x.Args, j, repl)}
	case *Attr:
		return &Attr{Nr: x.Nr, Pos: x.Pos, Args: substArgs(x.Args, j, repl)}
	case *SchPred:
		return &SchPred{Nr: x.Nr, Args: substArgs(x.Args, j, repl)}
	case *PrivPred:
		return &PrivPred{Nr: x.Nr, Args: substArgs(x.Args, j, repl)}
	case *Is:
		return &Is{Term: substTerm(x.Term, j, repl), Ty: x.Ty}
	default:
		return f
	}
}

func substArgs(args []Term, j int, repl Term) []Term {
	out := make([]Term, len(args))
	for i, a := range args {
		out[i] = substTerm(a, j, repl)
	}
	return out
}

// SubstLoci replaces every Locus(i) occurring in t with args[i]. Unlike
// Bound substitution, Locus placeholders are not relative to binder
// depth, so no shifting is needed: registered clusters/definitions/
// reductions are instantiated against actual arguments the same way
// regardless of how deep inside a quantifier the pattern sits (spec §3.1
// "Locus(n) — placeholder inside a registered cluster/definition").
func SubstLoci(t Term, args []Term) Term {
	switch x := t.(type) {
	case Locus:
		if x.Nr < 0 || x.Nr >= len(args) {
			return t
		}
		return args[x.Nr]
	case *Fraenkel:
		a := make([]*Type, len(x.Args))
		for i, ty := range x.Args {
			a[i] = SubstLociType(ty, args)
		}
		return &Fraenkel{
			Args:  a,
			Scope: SubstLoci(x.Scope, args),
			Value: SubstLoci(x.Value, args),
			Compr: SubstLociFormula(x.Compr, args),
		}
	case *Choice:
		return &Choice{Ty: SubstLociType(x.Ty, args)}
	default:
		if as := Args(t); as != nil {
			out := make([]Term, len(as))
			for i, a := range as {
				out[i] = SubstLoci(a, args)
			}
			return WithArgs(t, out)
		}
		return t
	}
}

// SubstLociType is the Type-level counterpart of SubstLoci.
func SubstLociType(ty *Type, args []Term) *Type {
	if ty == nil {
		return nil
	}
	out := make([]Term, len(ty.Args))
	for i, a := range ty.Args {
		out[i] = SubstLoci(a, args)
	}
	return &Type{Kind: ty.Kind, Nr: ty.Nr, Args: out, Lower: ty.Lower, Upper: ty.Upper}
}

// OpenQuantifiers implements the generic half of spec §4.2's
// open_quantifiers<V>: strip leading universals of f, calling newVar for
// each stripped domain type to obtain the replacement term (a fresh
// Constant for the equalizer phase, a fresh FreeVar for the unifier
// phase — spec §4.2: "For the equalizer phase, V = Constant ... For the
// unifier phase, V = FreeVar"), substituting it for the now-unbound
// occurrences, and returning the fully quantifier-free body plus the
// domain types stripped, in binding order (outermost first).
func OpenQuantifiers(f Formula, newVar func(domain *Type) Term) (Formula, []*Type) {
	var domains []*Type
	for {
		fa, ok := f.(*ForAll)
		if !ok {
			return f, domains
		}
		domains = append(domains, fa.Domain)
		v := newVar(fa.Domain)
		f = SubstTopFormula(fa.Body, v)
	}
}

// SubstLociFormula is the Formula-level counterpart of SubstLoci.
func SubstLociFormula(f Formula, args []Term) Formula {
	switch x := f.(type) {
	case *Neg:
		return &Neg{F: SubstLociFormula(x.F, args)}
	case *And:
		out := make([]Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = SubstLociFormula(c, args)
		}
		return &And{Conjuncts: out}
	case *ForAll:
		return &ForAll{Domain: SubstLociType(x.Domain, args), Body: SubstLociFormula(x.Body, args)}
	case *FlexAnd:
		return &FlexAnd{Lo: SubstLoci(x.Lo, args), Hi: SubstLoci(x.Hi, args), Body: SubstLociFormula(x.Body, args)}
	case *Pred:
		return &Pred{Nr: x.Nr, Args: substLociArgs(x.Args, args)}
	case *Attr:
		return &Attr{Nr: x.Nr, Pos: x.Pos, Args: substLociArgs(x.Args, args)}
	case *SchPred:
		return &SchPred{Nr: x.Nr, Args: substLociArgs(x.Args, args)}
	case *PrivPred:
		return &PrivPred{Nr: x.Nr, Args: substLociArgs(x.Args, args)}
	case *Is:
		return &Is{Term: SubstLoci(x.Term, args), Ty: SubstLociType(x.Ty, args)}
	default:
		return f
	}
}

func substLociArgs(args []Term, actual []Term) []Term {
	out := make([]Term, len(args))
	for i, a := range args {
		out[i] = SubstLoci(a, actual)
	}
	return out
}
