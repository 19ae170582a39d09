package options

import (
	"fmt"
	"maps"
	"sort"

	"go.uber.org/zap"
)

// Processor applies a finished Options value to in-memory document slices:
// sorting, skip/limit windowing, and projection including slice directives.
// It is the in-process stand-in for the execution layer a database driver
// would otherwise provide, useful for tests and for post-processing rows a
// store has already returned.
//
// PRODUCTION WARNING: sorting and windowing happen in-memory over the full
// input slice. Prefer pushing options down to the database for large result
// sets whenever possible.
type Processor struct {
	logger *zap.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{logger: logger}
}

// Apply returns the documents reordered, windowed and projected per the
// given options. The input slice and its documents are never mutated;
// projection builds fresh documents.
func (p *Processor) Apply(docs []Document, opts Options) []Document {
	out := make([]Document, len(docs))
	copy(out, docs)

	if len(opts.Sort) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return compareDocuments(out[i], out[j], opts.Sort) < 0
		})
	}

	out = applyWindow(out, opts.Skip, opts.Limit)
	p.logger.Debug("Documents remaining after skip/limit window", zap.Int("count", len(out)))

	out = applyProjection(out, opts.Projection)
	p.logger.Debug("Documents returned after projection", zap.Int("count", len(out)))

	return out
}

// compareDocuments orders two documents by the first sort entry that
// distinguishes them.
func compareDocuments(a, b Document, entries []SortEntry) int {
	for _, entry := range entries {
		c := compareValues(a[entry.Field], b[entry.Field])
		if c == 0 {
			continue
		}
		if entry.Direction == Descending {
			return -c
		}
		return c
	}
	return 0
}

// compareValues imposes a total order on field values: absent/nil first,
// then numerically when both sides are numeric-like, then by string
// rendering.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == b:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if fa, okA := ToFloat64(a); okA {
		if fb, okB := ToFloat64(b); okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func applyWindow(docs []Document, skip, limit *int) []Document {
	if skip != nil {
		n := min(max(*skip, 0), len(docs))
		docs = docs[n:]
	}
	if limit != nil && *limit >= 0 && *limit < len(docs) {
		docs = docs[:*limit]
	}
	return docs
}

// applyProjection processes documents to match the accumulated projection
// rules. With any Include rules present only the included and sliced fields
// survive; otherwise all fields are kept minus the excluded ones. Slice
// directives then narrow array-valued fields in place on the fresh copies.
func applyProjection(docs []Document, rules []ProjectionRule) []Document {
	if len(rules) == 0 {
		return docs
	}

	includeSet := make(map[string]struct{})
	excludeSet := make(map[string]struct{})
	sliceFor := make(map[string]SliceDirective)
	for _, rule := range rules {
		switch rule.Mode {
		case Include:
			includeSet[rule.Field] = struct{}{}
		case Exclude:
			excludeSet[rule.Field] = struct{}{}
		case Sliced:
			if rule.Slice != nil {
				sliceFor[rule.Field] = *rule.Slice
			}
		}
	}

	projected := make([]Document, 0, len(docs))
	for _, doc := range docs {
		out := make(Document)
		if len(includeSet) > 0 {
			for field, value := range doc {
				_, included := includeSet[field]
				_, sliced := sliceFor[field]
				if included || sliced {
					out[field] = value
				}
			}
		} else {
			maps.Copy(out, doc)
			for field := range excludeSet {
				delete(out, field)
			}
		}
		for field, directive := range sliceFor {
			if value, ok := out[field]; ok {
				out[field] = sliceValue(value, directive)
			}
		}
		projected = append(projected, out)
	}
	return projected
}

// sliceValue narrows an array value to the directive's sub-range. A bare
// count keeps the first n elements, or the last -n when negative; a window
// keeps count elements starting at offset, counting back from the end when
// the offset is negative. Non-array values pass through unchanged.
func sliceValue(value any, directive SliceDirective) any {
	arr, ok := value.([]any)
	if !ok {
		return value
	}
	length := len(arr)
	var start, count int
	if directive.Offset != nil {
		start = *directive.Offset
		if start < 0 {
			start += length
		}
		count = max(directive.Count, 0)
	} else if directive.Count < 0 {
		start = length + directive.Count
		count = -directive.Count
	} else {
		start = 0
		count = directive.Count
	}
	start = min(max(start, 0), length)
	end := min(start+count, length)
	return arr[start:end]
}
