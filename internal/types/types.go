// Package types holds the small value types shared across the guide packages.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VibeKey identifies a vibe category in the catalog
type VibeKey string

const (
	VibeParty   VibeKey = "party"
	VibeOutdoor VibeKey = "outdoor"
	VibePlay    VibeKey = "play"
	VibeRelax   VibeKey = "relax"
)

// Platform selects how external map links are built
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// LimitKind tags the variant held by a ShowLimit
type LimitKind int

const (
	// LimitAll shows every item
	LimitAll LimitKind = iota
	// LimitCount shows at most N items
	LimitCount
)

// ShowLimitAll is the persisted sentinel for an unlimited ShowLimit
const ShowLimitAll = "all"

// ShowLimit caps how many flattened recommendations are shown.
// The zero value is All.
type ShowLimit struct {
	kind LimitKind
	n    int
}

// All returns the unlimited variant
func All() ShowLimit {
	return ShowLimit{kind: LimitAll}
}

// Limited returns a limit of n items. Negative values are representable so
// that setters can reject them; use Validate before storing one.
func Limited(n int) ShowLimit {
	return ShowLimit{kind: LimitCount, n: n}
}

// Kind reports which variant the limit holds
func (l ShowLimit) Kind() LimitKind {
	return l.kind
}

// Count returns the item cap. Only meaningful when Kind is LimitCount.
func (l ShowLimit) Count() int {
	return l.n
}

// IsAll reports whether the limit is unlimited
func (l ShowLimit) IsAll() bool {
	return l.kind == LimitAll
}

// Validate rejects negative counts
func (l ShowLimit) Validate() error {
	if l.kind == LimitCount && l.n < 0 {
		return fmt.Errorf("show limit must be %q or a non-negative integer, got %d", ShowLimitAll, l.n)
	}
	return nil
}

// String renders the limit the way it is persisted and typed on the CLI
func (l ShowLimit) String() string {
	if l.kind == LimitAll {
		return ShowLimitAll
	}
	return strconv.Itoa(l.n)
}

// ParseShowLimit accepts "all" (any case) or a non-negative integer
func ParseShowLimit(s string) (ShowLimit, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, ShowLimitAll) {
		return All(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ShowLimit{}, fmt.Errorf("show limit must be %q or an integer: %w", ShowLimitAll, err)
	}
	limit := Limited(n)
	if err := limit.Validate(); err != nil {
		return ShowLimit{}, err
	}
	return limit, nil
}

// MarshalJSON encodes All as "all" and a count as a JSON number
func (l ShowLimit) MarshalJSON() ([]byte, error) {
	if l.kind == LimitAll {
		return json.Marshal(ShowLimitAll)
	}
	return json.Marshal(l.n)
}

// UnmarshalJSON accepts "all" or a non-negative integer
func (l *ShowLimit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != ShowLimitAll {
			return fmt.Errorf("unknown show limit %q", s)
		}
		*l = All()
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("show limit must be %q or an integer: %w", ShowLimitAll, err)
	}
	limit := Limited(n)
	if err := limit.Validate(); err != nil {
		return err
	}
	*l = limit
	return nil
}
