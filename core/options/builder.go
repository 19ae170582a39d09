package options

// Builder provides a fluent, copy-on-write API for accumulating query
// options. Every mutating method clones the receiver's option store, applies
// its change to the clone, and returns a new builder; the receiver is never
// written through, so any number of callers may branch chains off a shared
// builder concurrently.
//
// A failed operation (a coercion failure, a malformed sort spec) returns a
// builder carrying the error instead of mutated options; the receiver stays
// fully usable. The first error sticks through subsequent calls and
// surfaces from Err or Build.
type Builder struct {
	opts Options
	err  error
}

// New creates a builder with an empty option store.
func New() *Builder {
	return &Builder{}
}

// From creates a builder seeded with an externally supplied option store.
// The store is deep-copied on entry, so later builder operations can never
// be observed through the caller's value.
func From(opts Options) *Builder {
	return &Builder{opts: opts.Clone()}
}

// Build returns the accumulated options, or the first error recorded along
// the chain.
func (b *Builder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}
	return b.opts.Clone(), nil
}

// Err returns the first error recorded along the chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// Options returns a deep copy of the accumulated option store, regardless
// of any recorded error.
func (b *Builder) Options() Options {
	return b.opts.Clone()
}

// clone produces the next link in the chain: an independent builder whose
// option store is a deep copy of the receiver's.
func (b *Builder) clone() *Builder {
	return &Builder{opts: b.opts.Clone(), err: b.err}
}

// fail returns a new builder carrying err, discarding any partial mutation.
// An earlier error takes precedence.
func (b *Builder) fail(err error) *Builder {
	next := b.clone()
	if next.err == nil {
		next.err = err
	}
	return next
}

// OrderBy merges one or more sort specs into the sort order. Specs are
// consumed in the order given; nil specs are skipped. Fields keep the
// position of their first appearance across all merges, and a repeated
// field has its direction updated in place. With no effective specs the
// call is a no-op clone.
func (b *Builder) OrderBy(specs ...SortSpec) *Builder {
	entries, err := expandSortSpecs(specs)
	if err != nil {
		return b.fail(err)
	}
	if len(entries) == 0 {
		return b.clone()
	}
	next := b.clone()
	next.opts.Sort = mergeSortEntries(next.opts.Sort, entries)
	return next
}

// Ascending merges the named fields into the sort order, all ascending.
func (b *Builder) Ascending(fields ...string) *Builder {
	return b.orderFixed(Ascending, fields)
}

// Descending merges the named fields into the sort order, all descending.
func (b *Builder) Descending(fields ...string) *Builder {
	return b.orderFixed(Descending, fields)
}

func (b *Builder) orderFixed(direction Direction, fields []string) *Builder {
	var entries []SortEntry
	for _, field := range fields {
		if field == "" {
			continue
		}
		entries = append(entries, SortEntry{Field: field, Direction: direction})
	}
	if len(entries) == 0 {
		return b.clone()
	}
	next := b.clone()
	next.opts.Sort = mergeSortEntries(next.opts.Sort, entries)
	return next
}

// Limit sets the maximum number of documents to return. The value is
// coerced to an integer: numeric strings parse, floats truncate. A nil
// value is a no-op clone; a non-numeric value records a CoercionError.
func (b *Builder) Limit(value any) *Builder {
	return b.setCoerced("limit", value, func(o *Options, n int) { o.Limit = &n })
}

// Skip sets the number of leading documents to pass over, with the same
// coercion rules as Limit.
func (b *Builder) Skip(value any) *Builder {
	return b.setCoerced("skip", value, func(o *Options, n int) { o.Skip = &n })
}

func (b *Builder) setCoerced(option string, value any, set func(*Options, int)) *Builder {
	if value == nil {
		return b.clone()
	}
	n, err := ToInt(value)
	if err != nil {
		return b.fail(&CoercionError{Option: option, Value: value, Err: err})
	}
	next := b.clone()
	set(&next.opts, n)
	return next
}

// BatchSize sets the driver fetch batch size. The value is stored verbatim
// and must already be integral; unlike Limit, no lossy conversion is
// attempted. A nil value is a no-op clone.
func (b *Builder) BatchSize(value any) *Builder {
	return b.setVerbatim("batch_size", value, func(o *Options, n int) { o.BatchSize = &n })
}

// MaxScan sets the upper bound on documents examined, with the same
// verbatim storage rules as BatchSize.
func (b *Builder) MaxScan(value any) *Builder {
	return b.setVerbatim("max_scan", value, func(o *Options, n int) { o.MaxScan = &n })
}

func (b *Builder) setVerbatim(option string, value any, set func(*Options, int)) *Builder {
	if value == nil {
		return b.clone()
	}
	n, ok := ExactInt(value)
	if !ok {
		return b.fail(&CoercionError{Option: option, Value: value})
	}
	next := b.clone()
	set(&next.opts, n)
	return next
}

// Only replaces the projection with one including exactly the named fields.
// Any previously accumulated projection rules, whatever their mode, are
// discarded. With no fields the call is a no-op clone.
func (b *Builder) Only(fields ...string) *Builder {
	return b.project(Include, fields)
}

// Without replaces the projection with one excluding the named fields,
// discarding any previously accumulated projection rules. With no fields
// the call is a no-op clone.
func (b *Builder) Without(fields ...string) *Builder {
	return b.project(Exclude, fields)
}

func (b *Builder) project(mode ProjectionMode, fields []string) *Builder {
	rules := make([]ProjectionRule, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		rules = append(rules, ProjectionRule{Field: field, Mode: mode})
	}
	if len(rules) == 0 {
		return b.clone()
	}
	next := b.clone()
	next.opts.Projection = rules
	return next
}

// Slice merges array sub-range directives into the projection, leaving
// unrelated projection rules intact. A directive for a field that already
// has a rule overwrites that rule in place; new fields append. With no
// directives the call is a no-op clone.
func (b *Builder) Slice(directives map[string]SliceDirective) *Builder {
	if len(directives) == 0 {
		return b.clone()
	}
	next := b.clone()
	for field, directive := range directives {
		if field == "" {
			continue
		}
		d := directive
		d.Offset = clonePtr(directive.Offset)
		rule := ProjectionRule{Field: field, Mode: Sliced, Slice: &d}
		found := false
		for i := range next.opts.Projection {
			if next.opts.Projection[i].Field == field {
				next.opts.Projection[i] = rule
				found = true
				break
			}
		}
		if !found {
			next.opts.Projection = append(next.opts.Projection, rule)
		}
	}
	return next
}

// NoTimeout disables the cursor timeout. Unlike the guarded operations this
// always clones and sets, so repeated calls are idempotent but never
// no-ops.
func (b *Builder) NoTimeout() *Builder {
	next := b.clone()
	next.opts.Timeout = BoolPtr(false)
	return next
}

// Snapshot enables snapshot reads, with the same unconditional clone
// behavior as NoTimeout.
func (b *Builder) Snapshot() *Builder {
	next := b.clone()
	next.opts.Snapshot = BoolPtr(true)
	return next
}
