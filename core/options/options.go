// Package options implements an immutable, fluent builder for database query
// options: sort order, pagination, field projection, batching and scan
// limits, timeout and snapshot flags. It covers the option side of a query
// object only; filter construction, query execution and driver management
// belong to external collaborators that consume the finished Options value.
package options

import "slices"

// Document represents a single record as a generic key/value map, the shape
// the Processor consumes when applying finished options in memory.
type Document map[string]any

// SortEntry is one (field, direction) pair in the ordered sort
// specification.
type SortEntry struct {
	Field     string    // The field to sort by.
	Direction Direction // The direction of the sort.
}

// ProjectionMode distinguishes how a projected field is treated.
type ProjectionMode int

// Supported projection modes. The numeric values of Include and Exclude
// mirror the 1/0 flags document databases expect.
const (
	Exclude ProjectionMode = 0
	Include ProjectionMode = 1
	Sliced  ProjectionMode = 2
)

// SliceDirective limits an embedded array field to a sub-range of its
// elements. A directive is either a bare element count or an
// (offset, count) window; use SliceCount or SliceWindow to construct one.
type SliceDirective struct {
	Offset *int // The starting offset, absent for a bare count.
	Count  int  // The number of elements to keep.
}

// SliceCount returns a directive keeping the first n elements of an array
// field. A negative n keeps the last -n elements.
func SliceCount(n int) SliceDirective {
	return SliceDirective{Count: n}
}

// SliceWindow returns a directive keeping count elements starting at
// offset. A negative offset counts back from the end of the array.
func SliceWindow(offset, count int) SliceDirective {
	return SliceDirective{Offset: IntPtr(offset), Count: count}
}

// ProjectionRule describes the treatment of one field in the projection.
// Rules are kept as an ordered list so merge order stays deterministic.
type ProjectionRule struct {
	Field string          // The projected field.
	Mode  ProjectionMode  // Include, Exclude, or Sliced.
	Slice *SliceDirective // The sub-range, set only when Mode is Sliced.
}

// Options is the accumulated option store for one query. Every field is
// optional; absence means the option was never set. Values of this type are
// treated as immutable once handed out: the Builder clones before every
// mutation and never writes through a previously returned Options.
type Options struct {
	Sort       []SortEntry      // Ordered sort specification.
	Skip       *int             // Number of leading documents to pass over.
	Limit      *int             // Maximum number of documents to return.
	BatchSize  *int             // Driver fetch batch size.
	MaxScan    *int             // Upper bound on documents examined.
	Projection []ProjectionRule // Field projection, ordered by first merge.
	Timeout    *bool            // Cursor timeout; absent means enabled.
	Snapshot   *bool            // Snapshot read flag.
}

// TimeoutEnabled reports whether the cursor timeout is in effect. The
// timeout defaults to enabled when never set.
func (o Options) TimeoutEnabled() bool {
	return o.Timeout == nil || *o.Timeout
}

// Clone returns a deep copy of the options: fresh slices and fresh pointers
// throughout, so no mutation of the copy can ever be observed through the
// original.
func (o Options) Clone() Options {
	out := Options{
		Sort:      slices.Clone(o.Sort),
		Skip:      clonePtr(o.Skip),
		Limit:     clonePtr(o.Limit),
		BatchSize: clonePtr(o.BatchSize),
		MaxScan:   clonePtr(o.MaxScan),
		Timeout:   clonePtr(o.Timeout),
		Snapshot:  clonePtr(o.Snapshot),
	}
	if o.Projection != nil {
		out.Projection = make([]ProjectionRule, len(o.Projection))
		for i, rule := range o.Projection {
			rule.Slice = cloneSlice(rule.Slice)
			out.Projection[i] = rule
		}
	}
	return out
}

// Equal reports structural equality between two option stores: same
// entries, same values, same order.
func (o Options) Equal(other Options) bool {
	if !slices.Equal(o.Sort, other.Sort) {
		return false
	}
	if !ptrEqual(o.Skip, other.Skip) ||
		!ptrEqual(o.Limit, other.Limit) ||
		!ptrEqual(o.BatchSize, other.BatchSize) ||
		!ptrEqual(o.MaxScan, other.MaxScan) ||
		!ptrEqual(o.Timeout, other.Timeout) ||
		!ptrEqual(o.Snapshot, other.Snapshot) {
		return false
	}
	if len(o.Projection) != len(other.Projection) {
		return false
	}
	for i, rule := range o.Projection {
		if !rule.equal(other.Projection[i]) {
			return false
		}
	}
	return true
}

func (r ProjectionRule) equal(other ProjectionRule) bool {
	if r.Field != other.Field || r.Mode != other.Mode {
		return false
	}
	if r.Slice == nil || other.Slice == nil {
		return r.Slice == other.Slice
	}
	return ptrEqual(r.Slice.Offset, other.Slice.Offset) && r.Slice.Count == other.Slice.Count
}

// ToMap renders the options under their stable key contract, the shape the
// downstream execution layer reads: "sort", "skip", "limit", "batch_size",
// "max_scan", "fields", "timeout" and "snapshot". Sort entries become an
// ordered list of [field, direction] pairs; projection entries map each
// field to its include/exclude flag or to a nested {"slice": ...} marker.
func (o Options) ToMap() map[string]any {
	out := make(map[string]any)
	if len(o.Sort) > 0 {
		pairs := make([][2]any, len(o.Sort))
		for i, entry := range o.Sort {
			pairs[i] = [2]any{entry.Field, int(entry.Direction)}
		}
		out["sort"] = pairs
	}
	if o.Skip != nil {
		out["skip"] = *o.Skip
	}
	if o.Limit != nil {
		out["limit"] = *o.Limit
	}
	if o.BatchSize != nil {
		out["batch_size"] = *o.BatchSize
	}
	if o.MaxScan != nil {
		out["max_scan"] = *o.MaxScan
	}
	if len(o.Projection) > 0 {
		fields := make(map[string]any, len(o.Projection))
		for _, rule := range o.Projection {
			switch rule.Mode {
			case Sliced:
				if rule.Slice == nil {
					continue
				}
				if rule.Slice.Offset != nil {
					fields[rule.Field] = map[string]any{"slice": []int{*rule.Slice.Offset, rule.Slice.Count}}
				} else {
					fields[rule.Field] = map[string]any{"slice": rule.Slice.Count}
				}
			default:
				fields[rule.Field] = int(rule.Mode)
			}
		}
		out["fields"] = fields
	}
	if o.Timeout != nil {
		out["timeout"] = *o.Timeout
	}
	if o.Snapshot != nil {
		out["snapshot"] = *o.Snapshot
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneSlice(d *SliceDirective) *SliceDirective {
	if d == nil {
		return nil
	}
	out := *d
	out.Offset = clonePtr(d.Offset)
	return &out
}
