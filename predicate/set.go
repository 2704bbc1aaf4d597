package predicate

import (
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Entry pairs a predicate with the combinator joining it to the previous entry.
type Entry struct {
	Combinator Combinator
	Predicate  Predicate
}

// Set is an ordered AND/OR combination of predicates. Sets nest: a Set is
// itself a Predicate and renders as one parenthesized expression.
type Set struct {
	combinator Combinator
	entries    []Entry
	parent     *Set
}

// NewSet creates an empty set. The optional combinator is the default for
// predicates added without one; it is AND when omitted.
func NewSet(c ...Combinator) *Set {
	return &Set{combinator: pick(AND, c)}
}

// Combinator returns the set's default combinator.
func (s *Set) Combinator() Combinator {
	return s.combinator
}

// TryAdd appends p joined by c (or the set's default). Earlier entries are never touched.
func (s *Set) TryAdd(p Predicate, c ...Combinator) error {
	if isNil(p) {
		return render.NewInvalidArgumentError("predicate", "cannot be nil")
	}
	if err := s.checkContains(p); err != nil {
		return err
	}
	s.entries = append(s.entries, Entry{Combinator: pick(s.combinator, c), Predicate: p})
	return nil
}

// Add appends p and returns the set for chaining. Panics if p is nil.
func (s *Set) Add(p Predicate, c ...Combinator) *Set {
	if err := s.TryAdd(p, c...); err != nil {
		panic(err)
	}
	return s
}

// And appends p joined by AND.
func (s *Set) And(p Predicate) *Set {
	return s.Add(p, AND)
}

// Or appends p joined by OR.
func (s *Set) Or(p Predicate) *Set {
	return s.Add(p, OR)
}

// Nest appends a new empty child set joined by c and returns the child.
// Call Unnest on the child to get back to s.
func (s *Set) Nest(c ...Combinator) *Set {
	child := &Set{combinator: AND, parent: s}
	s.entries = append(s.entries, Entry{Combinator: pick(s.combinator, c), Predicate: child})
	return child
}

// Unnest returns the set this one was nested from, or s itself at the root.
func (s *Set) Unnest() *Set {
	if s.parent == nil {
		return s
	}
	return s.parent
}

// Len returns the number of top-level entries; a nested set counts as one.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the top-level entries.
func (s *Set) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Clone returns a deep copy; nested sets are copied too.
func (s *Set) Clone() *Set {
	return s.clone(nil)
}

func (s *Set) clone(parent *Set) *Set {
	out := &Set{combinator: s.combinator, parent: parent}
	if len(s.entries) > 0 {
		out.entries = make([]Entry, len(s.entries))
	}
	for i, e := range s.entries {
		if child, ok := e.Predicate.(*Set); ok {
			e.Predicate = child.clone(out)
		}
		out.entries[i] = e
	}
	return out
}

func (s *Set) Variant() Variant { return VariantSet }

// ExpressionData flattens the set depth-first. A combinator precedes every
// emitted expression except the first; nested sets collapse into a single
// parenthesized expression and empty nested sets are skipped.
func (s *Set) ExpressionData() []Part {
	parts := make([]Part, 0, len(s.entries)*2)
	for _, e := range s.entries {
		expr, ok := entryExpression(e.Predicate)
		if !ok {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, e.Combinator)
		}
		parts = append(parts, expr)
	}
	return parts
}

// Expression renders the set as one parenthesized expression. An empty set
// renders as an empty template.
func (s *Set) Expression() Expression {
	var exprs []Expression
	var seps []Combinator
	for _, part := range s.ExpressionData() {
		switch p := part.(type) {
		case Combinator:
			seps = append(seps, p)
		case Expression:
			exprs = append(exprs, p)
		}
	}
	if len(exprs) == 0 {
		return Expression{}
	}

	out := exprs[0]
	for i, e := range exprs[1:] {
		out = types.Join(" "+seps[i].String()+" ", out, e)
	}
	out.Template = "(" + out.Template + ")"
	return out
}

func entryExpression(p Predicate) (Expression, bool) {
	if child, ok := p.(*Set); ok {
		expr := child.Expression()
		return expr, expr.Template != ""
	}
	return p.Expression(), true
}

// checkContains rejects p when s is reachable from it, directly or through
// nested sets and set operands.
func (s *Set) checkContains(p Predicate) error {
	if reaches(p, s, map[*Set]bool{}) {
		return render.NewInvalidArgumentError("predicate", "a set cannot contain itself")
	}
	return nil
}

func reaches(v any, target *Set, seen map[*Set]bool) bool {
	switch p := v.(type) {
	case *Set:
		if p == nil {
			return false
		}
		if p == target {
			return true
		}
		if seen[p] {
			return false
		}
		seen[p] = true
		for _, e := range p.entries {
			if reaches(e.Predicate, target, seen) {
				return true
			}
		}
	case OperatorPredicate:
		return reaches(p.Left, target, seen) || reaches(p.Right, target, seen)
	}
	return false
}

func isNil(p Predicate) bool {
	if p == nil {
		return true
	}
	s, ok := p.(*Set)
	return ok && s == nil
}

func pick(def Combinator, c []Combinator) Combinator {
	if len(c) > 0 {
		return c[0]
	}
	return def
}
