package options

import (
	"strings"

	"github.com/spf13/cast"
)

// Direction specifies the ordering of a single sort field.
type Direction int

// Supported sort directions. The numeric values mirror the convention used
// by document databases (1 for ascending, -1 for descending).
const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// String returns the canonical lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "invalid"
	}
}

// directionAliases maps short direction names to their Direction constant.
// Populated once at startup and read-only thereafter, so concurrent lookups
// need no synchronization.
var directionAliases = map[string]Direction{
	"asc":        Ascending,
	"ascending":  Ascending,
	"desc":       Descending,
	"descending": Descending,
}

// DirectionFor resolves a direction alias such as "asc" or "DESCENDING" to
// its Direction constant. The lookup is case-insensitive. It reports false
// when the alias is not registered.
func DirectionFor(alias string) (Direction, bool) {
	d, ok := directionAliases[strings.ToLower(strings.TrimSpace(alias))]
	return d, ok
}

// ParseDirection normalizes a loosely-typed direction value to a Direction.
// Accepted encodings are the Direction constants themselves, the literal
// integers 1 and -1 (in any integer width), and the case-insensitive alias
// strings "asc", "ascending", "desc" and "descending". Anything else yields
// a MalformedSpecError.
func ParseDirection(value any) (Direction, error) {
	switch v := value.(type) {
	case Direction:
		if v == Ascending || v == Descending {
			return v, nil
		}
	case string:
		if d, ok := DirectionFor(v); ok {
			return d, nil
		}
	default:
		if n, err := cast.ToIntE(value); err == nil {
			switch n {
			case 1:
				return Ascending, nil
			case -1:
				return Descending, nil
			}
		}
	}
	return 0, &MalformedSpecError{
		Kind:   "sort",
		Input:  value,
		Detail: "unrecognized sort direction",
	}
}
