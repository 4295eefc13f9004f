package models

// Domain is the backend's filter language: a flat list where each element is
// either a [field, operator, value] triple or a prefix combinator token.
type Domain []any

// Cond builds one filter triple.
func Cond(field, operator string, value any) []any {
	return []any{field, operator, value}
}

// Or is the prefix disjunction token. One token joins the next two terms, so
// a three-way disjunction needs two of them.
const Or = "|"

// And is the prefix conjunction token. The backend ANDs adjacent terms by
// default, so this is rarely written explicitly.
const And = "&"

// Query carries the parameters of one search-read call. The zero value is a
// valid query: empty domain, all fields, default limit, offset 0, backend
// default ordering. Queries are constructed per call and never mutated.
type Query struct {
	Domain Domain
	Fields []string
	Limit  int
	Offset int
	Order  string
}
