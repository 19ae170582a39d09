package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleDocuments() []Document {
	return []Document{
		{"name": "carol", "age": 41, "ssn": "3", "tags": []any{"x", "y", "z"}},
		{"name": "alice", "age": 35, "ssn": "1", "tags": []any{"a", "b", "c", "d"}},
		{"name": "bob", "age": 35, "ssn": "2", "tags": []any{"q"}},
	}
}

func TestNewProcessor_NilLogger(t *testing.T) {
	p := NewProcessor(nil)
	assert.NotNil(t, p)
}

func TestProcessor_Apply_Sort(t *testing.T) {
	p := NewProcessor(zap.NewNop())

	opts, err := New().Ascending("age").Descending("name").Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	require.Len(t, out, 3)
	assert.Equal(t, "bob", out[0]["name"])
	assert.Equal(t, "alice", out[1]["name"])
	assert.Equal(t, "carol", out[2]["name"])
}

func TestProcessor_Apply_SortMissingFieldFirst(t *testing.T) {
	p := NewProcessor(nil)
	docs := []Document{
		{"name": "a", "rank": 2},
		{"name": "b"},
	}
	opts, err := New().Ascending("rank").Build()
	require.NoError(t, err)

	out := p.Apply(docs, opts)
	assert.Equal(t, "b", out[0]["name"])
}

func TestProcessor_Apply_SkipLimit(t *testing.T) {
	p := NewProcessor(nil)

	opts, err := New().Ascending("name").Skip(1).Limit(1).Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	require.Len(t, out, 1)
	assert.Equal(t, "bob", out[0]["name"])
}

func TestProcessor_Apply_SkipPastEnd(t *testing.T) {
	p := NewProcessor(nil)

	opts, err := New().Skip(10).Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	assert.Empty(t, out)
}

func TestProcessor_Apply_IncludeProjection(t *testing.T) {
	p := NewProcessor(nil)

	opts, err := New().Only("name").Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	require.Len(t, out, 3)
	for _, doc := range out {
		assert.Len(t, doc, 1)
		assert.Contains(t, doc, "name")
	}
}

func TestProcessor_Apply_ExcludeProjection(t *testing.T) {
	p := NewProcessor(nil)

	opts, err := New().Without("ssn").Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	for _, doc := range out {
		assert.NotContains(t, doc, "ssn")
		assert.Contains(t, doc, "name")
	}
}

func TestProcessor_Apply_SliceDirectives(t *testing.T) {
	p := NewProcessor(nil)

	tests := []struct {
		name      string
		directive SliceDirective
		expected  []any
	}{
		{"first n", SliceCount(2), []any{"a", "b"}},
		{"last n", SliceCount(-2), []any{"c", "d"}},
		{"window", SliceWindow(1, 2), []any{"b", "c"}},
		{"window from end", SliceWindow(-2, 1), []any{"c"}},
		{"count past end", SliceCount(10), []any{"a", "b", "c", "d"}},
	}

	docs := []Document{{"name": "alice", "tags": []any{"a", "b", "c", "d"}}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := New().Slice(map[string]SliceDirective{"tags": tt.directive}).Build()
			require.NoError(t, err)

			out := p.Apply(docs, opts)
			require.Len(t, out, 1)
			assert.Equal(t, tt.expected, out[0]["tags"])
			// Unrelated fields survive an exclude-free slice projection.
			assert.Equal(t, "alice", out[0]["name"])
		})
	}
}

func TestProcessor_Apply_SliceWithIncludeProjection(t *testing.T) {
	p := NewProcessor(nil)

	opts, err := New().
		Only("name", "tags").
		Slice(map[string]SliceDirective{"tags": SliceCount(1)}).
		Build()
	require.NoError(t, err)

	out := p.Apply(sampleDocuments(), opts)
	for _, doc := range out {
		assert.NotContains(t, doc, "ssn")
		assert.NotContains(t, doc, "age")
	}
}

func TestProcessor_Apply_DoesNotMutateInput(t *testing.T) {
	p := NewProcessor(nil)
	docs := sampleDocuments()

	opts, err := New().
		Descending("name").
		Without("ssn").
		Slice(map[string]SliceDirective{"tags": SliceCount(1)}).
		Build()
	require.NoError(t, err)

	_ = p.Apply(docs, opts)

	assert.Equal(t, sampleDocuments(), docs)
}

func TestProcessor_Apply_NoOptions(t *testing.T) {
	p := NewProcessor(nil)
	docs := sampleDocuments()

	out := p.Apply(docs, Options{})
	assert.Equal(t, docs, out)
}
