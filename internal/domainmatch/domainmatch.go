// Package domainmatch evaluates the backend's prefix-notation filter
// language against in-memory records. Both the fixture repositories and the
// fake backend use it, so demo data answers queries the same way the real
// backend would.
package domainmatch

import (
	"fmt"
	"strings"
)

// Match evaluates a domain against a record: each element is either a
// [field, operator, value] triple or a "|"/"&" combinator binding the next
// two terms, and adjacent terms are ANDed by default. An empty domain
// matches everything.
func Match(domain []any, rec map[string]any) bool {
	pos := 0
	result := true
	for pos < len(domain) {
		var term bool
		term, pos = evalTerm(domain, pos, rec)
		result = result && term
	}
	return result
}

func evalTerm(domain []any, pos int, rec map[string]any) (bool, int) {
	if pos >= len(domain) {
		return true, pos
	}
	switch elem := domain[pos].(type) {
	case string:
		left, next := evalTerm(domain, pos+1, rec)
		right, after := evalTerm(domain, next, rec)
		if elem == "|" {
			return left || right, after
		}
		return left && right, after
	case []any:
		return evalTriple(elem, rec), pos + 1
	}
	return false, pos + 1
}

func evalTriple(triple []any, rec map[string]any) bool {
	if len(triple) != 3 {
		return false
	}
	field, _ := triple[0].(string)
	operator, _ := triple[1].(string)
	expected := triple[2]
	actual := rec[field]

	switch operator {
	case "=":
		return Equal(actual, expected)
	case "!=":
		return !Equal(actual, expected)
	case ">":
		return Less(expected, actual)
	case "<":
		return Less(actual, expected)
	case "ilike":
		pattern, _ := expected.(string)
		text, _ := actual.(string)
		return strings.Contains(strings.ToLower(text), strings.ToLower(pattern))
	case "in":
		options, _ := expected.([]any)
		for _, opt := range options {
			if Equal(actual, opt) {
				return true
			}
		}
		return false
	}
	return false
}

// Equal compares a stored value against a filter value. Relational fields
// stored as [id, display_name] pairs compare by id, matching the backend.
func Equal(a, b any) bool {
	if pair, ok := a.([]any); ok && len(pair) == 2 {
		return Equal(pair[0], b)
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// Less reports a < b for the value types fixture records use. In a numeric
// comparison an absent or non-numeric operand reads as 0, matching how the
// backend treats unset columns; strings compare lexically only against other
// strings.
func Less(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok || bok {
		return af < bf
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as < bs
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	}
	return 0, false
}

// Project copies the requested fields of a record plus its id. An empty
// field list means all fields.
func Project(rec map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return rec
	}
	out := map[string]any{"id": rec["id"]}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}
