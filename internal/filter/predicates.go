// Filter predicates. The dietary, budget and health predicates are
// disqualify-by-presence text heuristics: a recipe fails when its
// serialized content mentions a disqualifying ingredient, unless the
// title or excerpt explicitly claims compliance. They are inherently
// approximate and isolated behind the Predicate interface so they can be
// replaced by structured tags later.
package filter

import (
	"strings"

	"github.com/smagen/go-recipe-backend/internal/catalog"
)

// Predicate decides filter membership for a single recipe.
type Predicate interface {
	Match(r *catalog.Recipe) bool
}

// PredicateFunc adapts a plain function to the Predicate interface.
type PredicateFunc func(r *catalog.Recipe) bool

// Match implements Predicate.
func (f PredicateFunc) Match(r *catalog.Recipe) bool { return f(r) }

// dietaryRule describes one dietary filter: compliance claims that
// short-circuit the check, disqualifying ingredient keywords, and an
// optional numeric nutrition bound.
type dietaryRule struct {
	claims       []string
	disqualifier []string
	// carbLimit > 0 additionally disqualifies recipes whose parsed
	// carbohydrate grams exceed the limit; the keyword heuristic is the
	// fallback when the nutrition field does not parse.
	carbLimit float64
}

var dietaryRules = map[string]dietaryRule{
	"laktosefri": {
		claims:       []string{"laktosefri"},
		disqualifier: []string{"mælk", "fløde", "smør", "ost", "yoghurt", "creme fraiche", "skyr"},
	},
	"glutenfri": {
		claims:       []string{"glutenfri"},
		disqualifier: []string{"hvedemel", "mel", "pasta", "brød", "rasp", "bulgur", "couscous", "byg", "rug"},
	},
	"low-carb-keto": {
		claims:       []string{"low carb", "low-carb", "keto"},
		disqualifier: []string{"kartof", "ris", "pasta", "brød", "sukker", "mel", "gryn"},
		carbLimit:    20,
	},
	"vegansk-plantebaseret": {
		claims:       []string{"vegansk", "plantebaseret"},
		disqualifier: []string{"kød", "kylling", "okse", "svin", "fisk", "laks", "rejer", "æg", "mælk", "fløde", "smør", "ost", "honning", "bacon"},
	},
}

// Dietary returns the predicate for the given dietary label. Unknown
// labels yield a predicate that matches everything (the request is
// treated as unconstrained rather than erroring).
func Dietary(label string) Predicate {
	rule, ok := dietaryRules[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return PredicateFunc(func(*catalog.Recipe) bool { return true })
	}
	return PredicateFunc(func(r *catalog.Recipe) bool {
		claim := strings.ToLower(r.Title + " " + r.Excerpt)
		if containsAny(claim, rule.claims) {
			return true
		}
		if rule.carbLimit > 0 {
			if carbs, ok := nutritionGrams(r, "kulhydrater"); ok {
				return carbs <= rule.carbLimit
			}
			// Unparsable nutrition falls through to the keyword heuristic.
		}
		return !containsAny(fullText(r), rule.disqualifier)
	})
}

var (
	budgetClaims = []string{"billig", "budget"}
	// expensiveKeywords disqualify outright.
	expensiveKeywords = []string{"oksemørbrad", "mørbrad", "laks", "rejer", "hummer", "kalv", "parmaskinke", "trøffel", "safran"}
	// budgetKeywords qualify when at least budgetMinMatches occur.
	budgetKeywords   = []string{"kartof", "ris", "pasta", "løg", "gulerod", "hakket", "linser", "bønner", "kål", "æg", "havregryn", "porre"}
	budgetMinMatches = 3
)

// Budget is the budget-friendly predicate: an explicit flag or claim
// qualifies, an expensive ingredient disqualifies, and otherwise at least
// three cheap-staple keywords must occur.
func Budget() Predicate {
	return PredicateFunc(func(r *catalog.Recipe) bool {
		if r.Budget != nil && *r.Budget {
			return true
		}
		text := fullText(r)
		if containsAny(text, budgetClaims) {
			return true
		}
		if containsAny(text, expensiveKeywords) {
			return false
		}
		return countMatches(text, budgetKeywords) >= budgetMinMatches
	})
}

var (
	healthyClaims     = []string{"sund", "fedtfattig", "proteinrig"}
	unhealthyKeywords = []string{"friture", "friteret", "smørdej", "kage", "dessert", "slik", "sirup"}
	healthyKeywords   = []string{"grønt", "grøntsag", "salat", "fuldkorn", "kylling", "fisk", "broccoli", "spinat", "bælgfrugt", "linser", "magert"}
	healthyMinMatches = 3
)

// Healthy is the health predicate: explicit claims qualify, unhealthy
// keywords disqualify, and otherwise the recipe needs either three
// healthy keywords or nutrition numbers inside the bounds (fat < 50 g and
// saturated fat < 20 g, or protein > 15 g).
func Healthy() Predicate {
	return PredicateFunc(func(r *catalog.Recipe) bool {
		text := fullText(r)
		if containsAny(text, healthyClaims) {
			return true
		}
		if containsAny(text, unhealthyKeywords) {
			return false
		}
		if countMatches(text, healthyKeywords) >= healthyMinMatches {
			return true
		}
		fat, fatOK := nutritionGrams(r, "fedt")
		sat, satOK := nutritionGrams(r, "maettetFedt")
		if fatOK && satOK && fat < 50 && sat < 20 {
			return true
		}
		if protein, ok := nutritionGrams(r, "protein"); ok && protein > 15 {
			return true
		}
		return false
	})
}

// MaxMinutes excludes recipes whose total time exceeds the bound or does
// not parse; hour-denominated times are excluded outright.
func MaxMinutes(bound int) Predicate {
	return PredicateFunc(func(r *catalog.Recipe) bool {
		m, ok := totalMinutes(r.Time)
		return ok && m <= bound
	})
}

// DifficultyIs matches the fixed difficulty enum case-insensitively.
func DifficultyIs(want string) Predicate {
	want = strings.ToLower(strings.TrimSpace(want))
	return PredicateFunc(func(r *catalog.Recipe) bool {
		return strings.ToLower(strings.TrimSpace(r.Difficulty)) == want
	})
}

// TextSearch matches a free-text needle against metadata, extended to the
// full serialized text when bodies were loaded (len(Ingredients) > 0).
func TextSearch(needle string) Predicate {
	needle = strings.ToLower(strings.TrimSpace(needle))
	return PredicateFunc(func(r *catalog.Recipe) bool {
		if needle == "" {
			return true
		}
		if len(r.Ingredients) > 0 {
			return strings.Contains(fullText(r), needle)
		}
		return strings.Contains(metaText(r), needle)
	})
}

// MealTypeIs matches the derived meal class.
func MealTypeIs(want string) Predicate {
	want = strings.ToLower(strings.TrimSpace(want))
	return PredicateFunc(func(r *catalog.Recipe) bool { return MealType(r) == want })
}

// DishTypeIs matches the derived dish class.
func DishTypeIs(want string) Predicate {
	want = strings.ToLower(strings.TrimSpace(want))
	return PredicateFunc(func(r *catalog.Recipe) bool { return DishType(r) == want })
}

// CookingMethodIs matches the derived cooking method.
func CookingMethodIs(want string) Predicate {
	want = strings.ToLower(strings.TrimSpace(want))
	return PredicateFunc(func(r *catalog.Recipe) bool { return CookingMethod(r) == want })
}

// predicates assembles the active predicate chain for a query.
func predicates(q Query) []Predicate {
	var ps []Predicate
	if strings.TrimSpace(q.Text) != "" {
		ps = append(ps, TextSearch(q.Text))
	}
	if active(q.MealType) {
		ps = append(ps, MealTypeIs(q.MealType))
	}
	if active(q.DishType) {
		ps = append(ps, DishTypeIs(q.DishType))
	}
	if active(q.CookingMethod) {
		ps = append(ps, CookingMethodIs(q.CookingMethod))
	}
	if active(q.Dietary) {
		ps = append(ps, Dietary(q.Dietary))
	}
	if q.TimeMaxMinutes > 0 {
		ps = append(ps, MaxMinutes(q.TimeMaxMinutes))
	}
	if active(q.Difficulty) {
		ps = append(ps, DifficultyIs(q.Difficulty))
	}
	if q.BudgetOnly {
		ps = append(ps, Budget())
	}
	if q.HealthyOnly {
		ps = append(ps, Healthy())
	}
	return ps
}
