package pipeline

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"crmtable/internal/storage"
)

// Direction is the ordering applied for a sort key.
type Direction int

const (
	DirectionNone Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

var (
	// ErrInvalidSortField indicates a sort expression names an unknown field.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidSortOrder indicates a sort expression has an order other than asc or desc.
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
)

// SortConfig is the active sort. The zero value means store order.
type SortConfig struct {
	Key       storage.Field
	Direction Direction
}

// Active reports whether a sort key is set.
func (s SortConfig) Active() bool {
	return s.Key != storage.FieldNone && s.Direction != DirectionNone
}

// Cycle returns the config after choosing column key: the same column steps
// asc -> desc -> none, any other column starts at asc.
func (s SortConfig) Cycle(key storage.Field) SortConfig {
	if s.Key == key {
		switch s.Direction {
		case Ascending:
			return SortConfig{Key: key, Direction: Descending}
		case Descending:
			return SortConfig{}
		}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

func (s SortConfig) String() string {
	if !s.Active() {
		return "none"
	}
	return string(s.Key) + ":" + s.Direction.String()
}

// ParseSortConfig parses "field" or "field:order". An empty expression means no sort.
func ParseSortConfig(expr string) (SortConfig, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return SortConfig{}, nil
	}
	name, order, hasOrder := strings.Cut(expr, ":")
	field, ok := storage.ParseField(strings.TrimSpace(name))
	if !ok {
		return SortConfig{}, fmt.Errorf("%w: %q", ErrInvalidSortField, name)
	}
	dir := Ascending
	if hasOrder {
		switch strings.ToLower(strings.TrimSpace(order)) {
		case "asc":
			dir = Ascending
		case "desc":
			dir = Descending
		default:
			return SortConfig{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
		}
	}
	return SortConfig{Key: field, Direction: dir}, nil
}

// Compare orders a and b by key, ascending. Scores and ids compare numerically,
// everything else byte-wise.
func Compare(a, b storage.Record, key storage.Field) int {
	switch key {
	case storage.FieldNone:
		return 0
	case storage.FieldScore:
		return cmp.Compare(ParseScore(a.Score), ParseScore(b.Score))
	case storage.FieldID:
		return cmp.Compare(a.ID, b.ID)
	default:
		return strings.Compare(key.Value(a), key.Value(b))
	}
}

// Sort returns records ordered by cfg. Equal records keep their input order in
// both directions. The input is not modified; with no active sort it is returned as is.
func Sort(records []storage.Record, cfg SortConfig) []storage.Record {
	if !cfg.Active() {
		return records
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b storage.Record) int {
		c := Compare(a, b, cfg.Key)
		if cfg.Direction == Descending {
			return -c
		}
		return c
	})
	return sorted
}

// ParseScore reads the leading integer of s: optional surrounding whitespace, an
// optional sign and digits. Anything without leading digits is 0.
func ParseScore(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	// on overflow ParseInt returns the clamped value, which still orders correctly
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n
}
