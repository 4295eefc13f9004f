package domainmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchNumericComparisons(t *testing.T) {
	ranked := map[string]any{"id": int64(1), "name": "Acme", "supplier_rank": float64(1)}
	rankless := map[string]any{"id": int64(2), "name": "Ana Cruz"}
	zeroed := map[string]any{"id": int64(3), "name": "Walk-in", "supplier_rank": float64(0)}

	domain := []any{[]any{"supplier_rank", ">", 0}}
	assert.True(t, Match(domain, ranked))
	// a record without the column reads as 0, never as a lexical "<nil>"
	assert.False(t, Match(domain, rankless))
	assert.False(t, Match(domain, zeroed))

	below := []any{[]any{"supplier_rank", "<", 1}}
	assert.True(t, Match(below, rankless))
	assert.True(t, Match(below, zeroed))
	assert.False(t, Match(below, ranked))
}

func TestMatchCombinators(t *testing.T) {
	rec := map[string]any{"name": "Ana Cruz", "email": "ana@example.com", "is_company": false}

	domain := []any{
		[]any{"is_company", "=", false},
		"|",
		[]any{"name", "ilike", "cruz"},
		[]any{"email", "ilike", "nobody"},
	}
	assert.True(t, Match(domain, rec))

	neither := []any{
		"|",
		[]any{"name", "ilike", "nobody"},
		[]any{"email", "ilike", "nobody"},
	}
	assert.False(t, Match(neither, rec))
}

func TestLess(t *testing.T) {
	assert.True(t, Less(nil, float64(1)))
	assert.False(t, Less(float64(1), nil))
	assert.False(t, Less(nil, float64(0)))
	assert.True(t, Less("2023-2024", "2024-2025"))
	assert.False(t, Less("2024-2025", "2023-2024"))
	// mixed non-numeric operands have no defined order
	assert.False(t, Less("abc", nil))
}

func TestEqualRelationalPairs(t *testing.T) {
	assert.True(t, Equal([]any{float64(1), "Mathematics 101"}, int64(1)))
	assert.False(t, Equal([]any{float64(2), "English"}, int64(1)))
	assert.True(t, Equal(int64(3), float64(3)))
	assert.True(t, Equal("enrolled", "enrolled"))
}
