// Package listing implements the ordering engine behind the user directory
// views. It owns the active sort selection (field + direction), the toggle
// semantics of clicking a column header, and a stable, pure ordering function
// shared by the API server and the client SDK so both sides agree on what
// "sorted by name ascending" means.
package listing

import (
	"slices"
	"strings"
	"time"
)

// Field identifies a sortable column. The set is closed: sorting is never
// driven by arbitrary field names.
type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldCreatedAt Field = "created_at"
)

// Valid reports whether f is one of the known sortable fields.
func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldCreatedAt:
		return true
	}
	return false
}

// Direction is the sort order applied to the active field.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseField maps the wire form of a sort field to a Field, falling back to
// FieldName when the value is empty or unknown.
func ParseField(s string) Field {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return FieldName
	}
	return f
}

// ParseDirection maps the wire form of a direction to a Direction, falling
// back to Ascending when the value is empty or unknown.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(strings.TrimSpace(s))) == Descending {
		return Descending
	}
	return Ascending
}

// State is the active field/direction pair. Exactly one pair is active at a
// time; the zero value is not meaningful, use DefaultState.
type State struct {
	Field     Field
	Direction Direction
}

// DefaultState returns the initial sort selection: name, ascending.
func DefaultState() State {
	return State{Field: FieldName, Direction: Ascending}
}

// Toggle returns the state after the user selects field f. Selecting the
// active field flips the direction; selecting a different field makes it
// active and resets the direction to ascending. Column headers are overloaded
// as both "choose sort key" and "reverse current order", so both behaviors
// live here.
func (s State) Toggle(f Field) State {
	if f == s.Field {
		if s.Direction == Ascending {
			return State{Field: f, Direction: Descending}
		}
		return State{Field: f, Direction: Ascending}
	}
	return State{Field: f, Direction: Ascending}
}

// Indicator is the marker a view renders next to a column header.
type Indicator int

const (
	IndicatorInactive Indicator = iota
	IndicatorAscending
	IndicatorDescending
)

// IndicatorFor returns the marker for column f under the current state:
// neutral for non-active columns, directional for the active one.
func (s State) IndicatorFor(f Field) Indicator {
	if f != s.Field {
		return IndicatorInactive
	}
	if s.Direction == Descending {
		return IndicatorDescending
	}
	return IndicatorAscending
}

// Keys carries the comparable values extracted from a single record. A nil
// CreatedAt means the record has no timestamp; missing values sort first
// (lowest) under every field's comparison rule.
type Keys struct {
	Name      string
	Email     string
	CreatedAt *time.Time
}

// OrderedView returns a new slice holding the records ordered by state. The
// input is never mutated and ties keep their input order (stable sort).
// Descending order is produced by inverting the comparator sign rather than
// reversing the ascending result, so tie order is identical in both
// directions.
//
// String fields compare case-insensitively; created_at compares as a time
// instant, not as text.
func OrderedView[T any](records []T, state State, keys func(T) Keys) []T {
	if len(records) == 0 {
		return []T{}
	}

	type keyed struct {
		rec T
		key Keys
	}
	view := make([]keyed, len(records))
	for i, r := range records {
		view[i] = keyed{rec: r, key: keys(r)}
	}

	slices.SortStableFunc(view, func(a, b keyed) int {
		return state.compare(a.key, b.key)
	})

	out := make([]T, len(view))
	for i, v := range view {
		out[i] = v.rec
	}
	return out
}

func (s State) compare(a, b Keys) int {
	var c int
	switch s.Field {
	case FieldEmail:
		c = compareFolded(a.Email, b.Email)
	case FieldCreatedAt:
		c = compareInstants(a.CreatedAt, b.CreatedAt)
	default:
		c = compareFolded(a.Name, b.Name)
	}
	if s.Direction == Descending {
		c = -c
	}
	return c
}

func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareInstants orders nil timestamps first, then compares by instant so
// that representations in different zones of the same moment are equal.
func compareInstants(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
