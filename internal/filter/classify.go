// Per-recipe classification heuristics. Each classifier derives a single
// label from recipe text; the listing filters compare the derived label
// against the requested one.
package filter

import (
	"strings"

	"github.com/smagen/go-recipe-backend/internal/catalog"
)

// mealClasses are checked in this fixed priority order; the first class
// whose keyword set matches wins. Recipes matching none default to
// aftensmad (dinner), the bulk of the catalog.
var mealClasses = []struct {
	name     string
	keywords []string
}{
	{"julemad", []string{"julemad", "jule", "flæskesteg", "risalamande", "gløgg", "brunede kartofler"}},
	{"morgenmad", []string{"morgenmad", "morgen", "grød", "havregryn", "yoghurt", "pandekage"}},
	{"frokost", []string{"frokost", "smørrebrød", "sandwich", "madpakke", "wrap"}},
	{"dessert", []string{"dessert", "kage", "is ", "mousse", "sød", "chokolade"}},
	{"snack", []string{"snack", "mellemmåltid", "bar", "energikugle", "dip"}},
}

// defaultMealType is assigned when no keyword class matches.
const defaultMealType = "aftensmad"

// MealType derives the meal class of a recipe from its metadata text.
func MealType(r *catalog.Recipe) string {
	text := metaText(r)
	for _, c := range mealClasses {
		if containsAny(text, c.keywords) {
			return c.name
		}
	}
	return defaultMealType
}

// dishCategories are matched exactly (case-insensitively) against the
// recipe category before falling back to title substrings.
var dishCategories = []string{"kød", "fisk", "vegetarisk", "pasta"}

// dishTitleRules map a title substring to a dish class, checked in order.
var dishTitleRules = []struct {
	needle string
	class  string
}{
	{"pasta", "pasta"},
	{"salat", "salat"},
	{"sovs", "sovs"},
	{"brød", "brød-bageri"},
	{"bolle", "brød-bageri"},
	{"kage", "brød-bageri"},
}

// DishType derives the dish class: category exact-match first, then title
// substrings, else Unconstrained (no classification).
func DishType(r *catalog.Recipe) string {
	cat := strings.ToLower(strings.TrimSpace(r.Category))
	for _, c := range dishCategories {
		if cat == c {
			return c
		}
	}
	title := strings.ToLower(r.Title)
	for _, rule := range dishTitleRules {
		if strings.Contains(title, rule.needle) {
			return rule.class
		}
	}
	return Unconstrained
}

// cookingMethods are checked in order against the full recipe text; the
// first match wins. "gril" deliberately also matches "grill" and
// "grillet".
var cookingMethods = []string{"airfryer", "ovn", "pande", "gril"}

// CookingMethod derives the cooking method from the full recipe text,
// defaulting to Unconstrained when none of the known methods occur.
func CookingMethod(r *catalog.Recipe) string {
	text := fullText(r)
	for _, m := range cookingMethods {
		if strings.Contains(text, m) {
			return m
		}
	}
	return Unconstrained
}

// difficultyOrdinal maps the fixed difficulty enum to a sortable level.
// Unknown difficulties sort last via ordinal 99.
func difficultyOrdinal(difficulty string) int {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "nem":
		return 1
	case "mellem":
		return 2
	case "svær":
		return 3
	default:
		return 99
	}
}
