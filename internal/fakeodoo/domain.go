package fakeodoo

import (
	"strings"

	"github.com/studioerp/odoo.go/internal/domainmatch"
)

func matchDomain(domain []any, rec map[string]any) bool {
	return domainmatch.Match(domain, rec)
}

func compareValues(a, b any) bool {
	return domainmatch.Less(a, b)
}

func equalValues(a, b any) bool {
	return domainmatch.Equal(a, b)
}

func project(rec map[string]any, fields []string) map[string]any {
	return domainmatch.Project(rec, fields)
}

func parseOrder(order string) (field string, desc bool, ok bool) {
	order = strings.TrimSpace(order)
	if order == "" {
		return "", false, false
	}
	parts := strings.Fields(order)
	field = parts[0]
	desc = len(parts) > 1 && strings.EqualFold(parts[1], "desc")
	return field, desc, true
}

func stringSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func intValue(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case int64:
		return int(val)
	}
	return 0
}

func idList(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	ids, _ := args[0].([]any)
	return ids
}

func containsID(ids []any, id any) bool {
	for _, candidate := range ids {
		if equalValues(candidate, id) {
			return true
		}
	}
	return false
}
