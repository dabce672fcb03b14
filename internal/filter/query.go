// Package filter implements the recipe listing pipeline: a set of
// heuristic, keyword-based predicates over recipe content, a stable
// multi-key sort with Danish collation, and fixed-size pagination.
//
// The package is deliberately engine-shaped: predicates satisfy a small
// interface so the text heuristics can later be swapped for structured
// tags without touching filtering, sorting, or pagination. All heuristics
// are case-insensitive and never fail; malformed values simply do not
// match.
package filter

import "strings"

// Unconstrained is the sentinel query value meaning "no constraint" for
// the enumerated criteria. Incoming query parameters equal to it (or
// empty) leave the criterion inactive.
const Unconstrained = "alle"

// PageSize is the fixed number of recipes per listing page.
const PageSize = 10

// SortKey enumerates the supported orderings for listing results.
type SortKey int

const (
	// SortDefault keeps the catalog index order.
	SortDefault SortKey = iota
	// SortTitleAsc / SortTitleDesc order by title with Danish collation.
	SortTitleAsc
	SortTitleDesc
	// SortTimeAsc / SortTimeDesc order by the parsed total minutes.
	SortTimeAsc
	SortTimeDesc
	// SortDifficultyAsc / SortDifficultyDesc order by the 3-level
	// difficulty ordinal (unknown difficulties carry ordinal 99).
	SortDifficultyAsc
	SortDifficultyDesc
)

// ParseSortKey maps a query-parameter value to a SortKey. Unknown values
// fall back to SortDefault.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "titel", "titel-asc", "title", "title-asc":
		return SortTitleAsc
	case "titel-desc", "title-desc":
		return SortTitleDesc
	case "tid", "tid-asc", "time", "time-asc":
		return SortTimeAsc
	case "tid-desc", "time-desc":
		return SortTimeDesc
	case "svaerhedsgrad", "svaerhedsgrad-asc", "difficulty", "difficulty-asc":
		return SortDifficultyAsc
	case "svaerhedsgrad-desc", "difficulty-desc":
		return SortDifficultyDesc
	default:
		return SortDefault
	}
}

// Query carries every listing criterion. Zero values mean "inactive":
// empty strings (or Unconstrained) for the enumerated fields, 0 for
// TimeMaxMinutes, false for the boolean toggles. Page is 1-based and
// clamped to >= 1 by the engine.
type Query struct {
	// Text is a free-text needle matched against title, excerpt and
	// category (plus ingredients when full bodies are loaded).
	Text string
	// MealType filters on the derived meal class (morgenmad, frokost,
	// aftensmad, dessert, snack, julemad).
	MealType string
	// DishType filters on the derived dish class (kød, fisk, vegetarisk,
	// pasta, salat, sovs, brød-bageri).
	DishType string
	// CookingMethod filters on the derived method (airfryer, ovn, pande,
	// gril). Requires full recipe bodies.
	CookingMethod string
	// Dietary filters on a dietary claim (laktosefri, glutenfri,
	// low-carb-keto, vegansk-plantebaseret). Requires full recipe bodies.
	Dietary string
	// TimeMaxMinutes excludes recipes whose parsed total time exceeds the
	// bound; 0 disables the filter.
	TimeMaxMinutes int
	// Difficulty is an exact, case-insensitive match (nem, mellem, svær).
	Difficulty string
	// BudgetOnly keeps recipes that pass the budget heuristic. Requires
	// full recipe bodies.
	BudgetOnly bool
	// HealthyOnly keeps recipes that pass the health heuristic.
	HealthyOnly bool
	// Sort selects the result ordering.
	Sort SortKey
	// Page is the 1-based page number.
	Page int
}

// active reports whether an enumerated criterion value constrains the
// result set.
func active(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v != "" && v != Unconstrained
}

// NeedsBodies reports whether any active criterion scans ingredient or
// nutrition text, which requires fetching full recipe documents before
// filtering.
func (q Query) NeedsBodies() bool {
	return active(q.Dietary) || active(q.CookingMethod) || q.BudgetOnly
}
