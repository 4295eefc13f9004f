package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeRecords = `[{"id":1,"name":"John Doe"},{"id":2,"name":"Jane Smith"},{"id":6,"name":"Mike Johnson"}]`

func TestNormalizeRecordsShapes(t *testing.T) {
	cases := map[string]string{
		"bare array":     threeRecords,
		"wrapped":        `{"records":` + threeRecords + `,"length":3}`,
		"double wrapped": `{"records":{"records":` + threeRecords + `,"length":3}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			set, err := normalizeRecords([]byte(payload))
			require.NoError(t, err)
			assert.Len(t, set.Records, 3)
			assert.Equal(t, 3, set.TotalCount)
			assert.JSONEq(t, `{"id":1,"name":"John Doe"}`, string(set.Records[0]))
		})
	}
}

func TestNormalizeRecordsLimitedTotal(t *testing.T) {
	// a limited query: one record in the page, five matches server-side
	set, err := normalizeRecords([]byte(`{"records":[{"id":7}],"length":5}`))
	require.NoError(t, err)
	assert.Len(t, set.Records, 1)
	assert.Equal(t, 5, set.TotalCount)
}

func TestNormalizeRecordsWrapperWithoutLength(t *testing.T) {
	set, err := normalizeRecords([]byte(`{"records":[{"id":1},{"id":2}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, set.TotalCount)
}

func TestNormalizeRecordsEmpty(t *testing.T) {
	set, err := normalizeRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, set.Records)
	assert.Equal(t, 0, set.TotalCount)
}

func TestNormalizeRecordsRejectsUnknownShapes(t *testing.T) {
	for _, payload := range []string{`42`, `"oops"`, `{"rows":[]}`, `{"records":"nope"}`} {
		_, err := normalizeRecords([]byte(payload))
		assert.Error(t, err, payload)
	}
}
