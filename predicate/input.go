package predicate

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/zoobzio/sqlkit/internal/render"
)

// Input is a shorthand for one or more predicates, normalized by AddPredicates.
// The concrete shapes are String, Strings, Map, List, Func, Use and Group.
type Input interface {
	normalize(c Combinator, steps []step) ([]step, error)
}

// step is one normalized unit: either a predicate to append or a callback.
type step struct {
	entry Entry
	fn    func(*Set)
}

// String is a raw SQL fragment, added as a Literal.
type String string

// Strings adds one Literal per element.
type Strings []string

// Map adds one predicate per key, in sorted key order.
//
//	"col op ?": value   Operator (op is one of = != <> < <= > >= LIKE NOT LIKE)
//	"sql ? ...": value  Expression; a slice value binds several markers
//	"col": nil          IsNull
//	"col": []T{...}     In
//	"col": value        Operator with =
//	"OR": Input         nested set whose entries default to OR (likewise "AND")
//
// Operator keys take a scalar value. Any other key holding an Input is an error.
type Map map[string]any

// List normalizes each element in order.
type List []Input

// Func is called with the set itself when its turn comes; it adds no entry directly.
type Func func(*Set)

type use struct{ p Predicate }

// Use adds an already built predicate as-is.
func Use(p Predicate) Input {
	return use{p: p}
}

type group struct {
	c  Combinator
	in Input
}

// Group builds a nested set from in whose entries default to c.
func Group(c Combinator, in Input) Input {
	return group{c: c, in: in}
}

// AddPredicates normalizes in and appends the result joined by c (or the set's
// default). Input is normalized completely before anything is appended, so a
// failure leaves the set unchanged.
func (s *Set) AddPredicates(in Input, c ...Combinator) error {
	if in == nil {
		return render.NewInvalidArgumentError("predicate", "cannot be nil")
	}
	steps, err := in.normalize(pick(s.combinator, c), nil)
	if err != nil {
		return err
	}
	for _, st := range steps {
		if st.fn == nil {
			if err := s.checkContains(st.entry.Predicate); err != nil {
				return err
			}
		}
	}
	for _, st := range steps {
		if st.fn != nil {
			st.fn(s)
			continue
		}
		if child, ok := st.entry.Predicate.(*Set); ok && child.parent == nil {
			child.parent = s
		}
		s.entries = append(s.entries, st.entry)
	}
	return nil
}

func (in String) normalize(c Combinator, steps []step) ([]step, error) {
	if strings.TrimSpace(string(in)) == "" {
		return nil, render.NewInvalidArgumentError("predicate", "literal cannot be empty")
	}
	return append(steps, step{entry: Entry{Combinator: c, Predicate: Literal(string(in))}}), nil
}

func (in Strings) normalize(c Combinator, steps []step) ([]step, error) {
	var err error
	for _, sql := range in {
		if steps, err = String(sql).normalize(c, steps); err != nil {
			return nil, err
		}
	}
	return steps, nil
}

func (in List) normalize(c Combinator, steps []step) ([]step, error) {
	var err error
	for i, item := range in {
		if item == nil {
			return nil, render.NewInvalidArgumentError("predicate", "list element %d cannot be nil", i)
		}
		if steps, err = item.normalize(c, steps); err != nil {
			return nil, err
		}
	}
	return steps, nil
}

func (in Func) normalize(_ Combinator, steps []step) ([]step, error) {
	if in == nil {
		return nil, render.NewInvalidArgumentError("predicate", "callback cannot be nil")
	}
	return append(steps, step{fn: in}), nil
}

func (in use) normalize(c Combinator, steps []step) ([]step, error) {
	if isNil(in.p) {
		return nil, render.NewInvalidArgumentError("predicate", "cannot be nil")
	}
	return append(steps, step{entry: Entry{Combinator: c, Predicate: in.p}}), nil
}

func (in group) normalize(c Combinator, steps []step) ([]step, error) {
	child := NewSet(in.c)
	if err := child.AddPredicates(in.in); err != nil {
		return nil, err
	}
	return append(steps, step{entry: Entry{Combinator: c, Predicate: child}}), nil
}

var operatorKey = regexp.MustCompile(`(?i)^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*(=|!=|<>|<=|>=|<|>|NOT\s+LIKE|LIKE)\s*\?\s*$`)

func (in Map) normalize(c Combinator, steps []step) ([]step, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if gc, nested, ok := nestedInput(key, in[key]); ok {
			var err error
			if steps, err = Group(gc, nested).normalize(c, steps); err != nil {
				return nil, err
			}
			continue
		}
		p, err := mapPredicate(key, in[key])
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{entry: Entry{Combinator: c, Predicate: p}})
	}
	return steps, nil
}

// nestedInput reports whether key is a combinator key holding a nested input.
func nestedInput(key string, value any) (Combinator, Input, bool) {
	var c Combinator
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case OR.String():
		c = OR
	case AND.String():
		c = AND
	default:
		return c, nil, false
	}
	switch v := value.(type) {
	case Input:
		return c, v, v != nil
	case map[string]any:
		return c, Map(v), true
	}
	return c, nil, false
}

func mapPredicate(key string, value any) (Predicate, error) {
	if strings.TrimSpace(key) == "" {
		return nil, render.NewInvalidArgumentError("predicate", "map key cannot be empty")
	}
	switch value.(type) {
	case Input, map[string]any:
		return nil, render.NewInvalidArgumentError("predicate", "map key %q cannot hold a nested input; use an OR or AND key", key)
	}

	if m := operatorKey.FindStringSubmatch(key); m != nil {
		if _, ok := sliceValues(value); ok {
			return nil, render.NewInvalidArgumentError("predicate", "operator key %q needs a scalar value", key)
		}
		op := Op(strings.ToUpper(strings.Join(strings.Fields(m[2]), " ")))
		return TryOperator(m[1], op, value)
	}

	if strings.Contains(key, "?") {
		values, ok := sliceValues(value)
		if !ok {
			values = []any{value}
		}
		return TryExpression(key, values...)
	}

	if value == nil {
		return IsNull(key), nil
	}
	if values, ok := sliceValues(value); ok {
		return In(key, values...), nil
	}
	return TryOperator(key, EQ, value)
}

// sliceValues expands slices and arrays other than []byte.
func sliceValues(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
