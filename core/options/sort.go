package options

import "strings"

// SortSpec is the capability a value must offer to participate in a sort
// specification: producing its own ordered (field, direction) pairs. The
// package ships a closed set of implementations covering every accepted
// input shape: pre-tagged tokens (Asc, Desc), explicit pairs (Pair), raw
// string expressions (Expr) and field maps (FieldMap). External field-sugar
// providers may implement it as well.
type SortSpec interface {
	SortEntries() ([]SortEntry, error)
}

type sortToken struct {
	field     string
	direction Direction
}

// Asc returns a sort token ordering the given field ascending.
func Asc(field string) SortSpec {
	return sortToken{field: field, direction: Ascending}
}

// Desc returns a sort token ordering the given field descending.
func Desc(field string) SortSpec {
	return sortToken{field: field, direction: Descending}
}

func (t sortToken) SortEntries() ([]SortEntry, error) {
	if t.field == "" {
		return nil, nil
	}
	return []SortEntry{{Field: t.field, Direction: t.direction}}, nil
}

type sortPair struct {
	field     string
	direction any
}

// Pair returns a sort spec for one field with a loosely-typed direction:
// the integers 1/-1, a case-insensitive direction name, or a Direction
// constant.
func Pair(field string, direction any) SortSpec {
	return sortPair{field: field, direction: direction}
}

func (p sortPair) SortEntries() ([]SortEntry, error) {
	if p.field == "" {
		return nil, nil
	}
	d, err := ParseDirection(p.direction)
	if err != nil {
		return nil, err
	}
	return []SortEntry{{Field: p.field, Direction: d}}, nil
}

type sortExpr string

// Expr returns a sort spec parsed from a comma-separated string expression
// such as "name ASC, dob DESC". Each token is a field name optionally
// followed by a whitespace-delimited direction; a missing direction means
// ascending. Empty tokens from stray commas or whitespace are skipped.
func Expr(expr string) SortSpec {
	return sortExpr(expr)
}

func (e sortExpr) SortEntries() ([]SortEntry, error) {
	var entries []SortEntry
	for _, token := range strings.Split(string(e), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		parts := strings.Fields(token)
		switch len(parts) {
		case 1:
			entries = append(entries, SortEntry{Field: parts[0], Direction: Ascending})
		case 2:
			d, ok := DirectionFor(parts[1])
			if !ok {
				return nil, &MalformedSpecError{
					Kind:   "sort",
					Input:  string(e),
					Detail: "unrecognized direction token " + parts[1],
				}
			}
			entries = append(entries, SortEntry{Field: parts[0], Direction: d})
		default:
			return nil, &MalformedSpecError{
				Kind:   "sort",
				Input:  string(e),
				Detail: "expected \"field\" or \"field DIRECTION\" per comma-separated token",
			}
		}
	}
	return entries, nil
}

type sortFieldMap map[string]any

// FieldMap returns a sort spec built from a field-to-direction map.
// Entries are consumed in the map's own iteration order, which Go
// randomizes; callers that need a deterministic sort order should pass
// ordered specs (Asc, Desc, Pair, Expr) instead.
func FieldMap(fields map[string]any) SortSpec {
	return sortFieldMap(fields)
}

func (m sortFieldMap) SortEntries() ([]SortEntry, error) {
	var entries []SortEntry
	for field, direction := range m {
		if field == "" || direction == nil {
			continue
		}
		d, err := ParseDirection(direction)
		if err != nil {
			return nil, err
		}
		entries = append(entries, SortEntry{Field: field, Direction: d})
	}
	return entries, nil
}

// expandSortSpecs flattens the given specs, in order, into a single entry
// list. Nil specs are ignored.
func expandSortSpecs(specs []SortSpec) ([]SortEntry, error) {
	var entries []SortEntry
	for _, spec := range specs {
		if spec == nil {
			continue
		}
		expanded, err := spec.SortEntries()
		if err != nil {
			return nil, err
		}
		entries = append(entries, expanded...)
	}
	return entries, nil
}

// mergeSortEntries folds incoming entries into the existing sort order: a
// new field is appended, preserving first-seen order; a repeated field has
// its direction overwritten in place without moving.
func mergeSortEntries(existing, incoming []SortEntry) []SortEntry {
	merged := existing
	for _, entry := range incoming {
		found := false
		for i := range merged {
			if merged[i].Field == entry.Field {
				merged[i].Direction = entry.Direction
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, entry)
		}
	}
	return merged
}
