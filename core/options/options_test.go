package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOptions() Options {
	return Options{
		Sort: []SortEntry{
			{Field: "name", Direction: Ascending},
			{Field: "dob", Direction: Descending},
		},
		Skip:      IntPtr(10),
		Limit:     IntPtr(20),
		BatchSize: IntPtr(500),
		MaxScan:   IntPtr(1000),
		Projection: []ProjectionRule{
			{Field: "ssn", Mode: Exclude},
			{Field: "tags", Mode: Sliced, Slice: &SliceDirective{Offset: IntPtr(2), Count: 5}},
		},
		Timeout:  BoolPtr(false),
		Snapshot: BoolPtr(true),
	}
}

func TestOptions_Clone_IsDeep(t *testing.T) {
	original := sampleOptions()
	clone := original.Clone()

	require.True(t, original.Equal(clone))

	clone.Sort[0].Direction = Descending
	*clone.Limit = 99
	*clone.Projection[1].Slice.Offset = 7
	clone.Projection[0].Mode = Include
	*clone.Timeout = true

	assert.Equal(t, Ascending, original.Sort[0].Direction)
	assert.Equal(t, 20, *original.Limit)
	assert.Equal(t, 2, *original.Projection[1].Slice.Offset)
	assert.Equal(t, Exclude, original.Projection[0].Mode)
	assert.False(t, *original.Timeout)
	assert.False(t, original.Equal(clone))
}

func TestOptions_Clone_Empty(t *testing.T) {
	var empty Options
	clone := empty.Clone()
	assert.True(t, empty.Equal(clone))
	assert.Nil(t, clone.Sort)
	assert.Nil(t, clone.Projection)
}

func TestOptions_Equal(t *testing.T) {
	a := sampleOptions()
	b := sampleOptions()
	assert.True(t, a.Equal(b))

	b.Sort[1].Direction = Ascending
	assert.False(t, a.Equal(b))

	b = sampleOptions()
	b.Skip = nil
	assert.False(t, a.Equal(b))

	b = sampleOptions()
	b.Projection[1].Slice.Offset = nil
	assert.False(t, a.Equal(b))

	assert.True(t, Options{}.Equal(Options{}))
}

func TestOptions_TimeoutEnabled(t *testing.T) {
	assert.True(t, Options{}.TimeoutEnabled())
	assert.False(t, Options{Timeout: BoolPtr(false)}.TimeoutEnabled())
	assert.True(t, Options{Timeout: BoolPtr(true)}.TimeoutEnabled())
}

func TestOptions_ToMap(t *testing.T) {
	m := sampleOptions().ToMap()

	assert.Equal(t, [][2]any{{"name", 1}, {"dob", -1}}, m["sort"])
	assert.Equal(t, 10, m["skip"])
	assert.Equal(t, 20, m["limit"])
	assert.Equal(t, 500, m["batch_size"])
	assert.Equal(t, 1000, m["max_scan"])
	assert.Equal(t, false, m["timeout"])
	assert.Equal(t, true, m["snapshot"])

	fields, ok := m["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, fields["ssn"])
	assert.Equal(t, map[string]any{"slice": []int{2, 5}}, fields["tags"])
}

func TestOptions_ToMap_SliceCountAndEmpty(t *testing.T) {
	opts := Options{
		Projection: []ProjectionRule{
			{Field: "tags", Mode: Sliced, Slice: &SliceDirective{Count: 3}},
		},
	}
	fields := opts.ToMap()["fields"].(map[string]any)
	assert.Equal(t, map[string]any{"slice": 3}, fields["tags"])

	assert.Empty(t, Options{}.ToMap())
}
