// The listing engine: augmentation decision, predicate filtering, stable
// sorting and pagination over the recipe catalog.
package filter

import (
	"context"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/smagen/go-recipe-backend/internal/catalog"
)

// Result is one listing page plus the totals the pagination UI needs.
type Result struct {
	Items      []catalog.ListItem `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalPages int                `json:"total_pages"`
	Page       int                `json:"page"`
}

// Engine runs listing queries against a catalog store.
//
// The engine is stateless and safe for concurrent use. Title sorts build
// a fresh collator per call because golang.org/x/text collators are not
// safe for concurrent use.
type Engine struct {
	store    catalog.Store
	pageSize int
}

// NewEngine returns an Engine reading from store with the fixed page
// size.
func NewEngine(store catalog.Store) *Engine {
	return &Engine{store: store, pageSize: PageSize}
}

// Run executes the full pipeline for q: decide whether full bodies are
// needed, filter, sort, paginate.
//
// Only the catalog index read can fail; a recipe body that is missing or
// malformed mid-filter degrades to its metadata-only form rather than
// failing the listing. Pages beyond the last return an empty item slice
// with the totals intact.
func (e *Engine) Run(ctx context.Context, q Query) (Result, error) {
	items, err := e.store.List(ctx)
	if err != nil {
		return Result{}, err
	}

	// Augmentation: body-scanning predicates need every candidate's full
	// document up front.
	recipes := make([]*catalog.Recipe, len(items))
	if q.NeedsBodies() {
		for i, it := range items {
			if full, err := e.store.Get(ctx, it.Slug); err == nil {
				recipes[i] = full
			} else {
				recipes[i] = &catalog.Recipe{ListItem: it}
			}
		}
	} else {
		for i, it := range items {
			recipes[i] = &catalog.Recipe{ListItem: it}
		}
	}

	ps := predicates(q)
	kept := recipes[:0]
	for _, r := range recipes {
		if matchAll(ps, r) {
			kept = append(kept, r)
		}
	}

	sortRecipes(kept, q.Sort)

	page := q.Page
	if page < 1 {
		page = 1
	}
	total := len(kept)
	totalPages := int(math.Ceil(float64(total) / float64(e.pageSize)))

	start := (page - 1) * e.pageSize
	end := start + e.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := make([]catalog.ListItem, 0, end-start)
	for _, r := range kept[start:end] {
		out = append(out, r.ListItem)
	}
	return Result{Items: out, TotalCount: total, TotalPages: totalPages, Page: page}, nil
}

func matchAll(ps []Predicate, r *catalog.Recipe) bool {
	for _, p := range ps {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

// sortRecipes orders kept in place. All sorts are stable so that equal
// keys preserve catalog index order.
func sortRecipes(rs []*catalog.Recipe, key SortKey) {
	switch key {
	case SortDefault:
		// Index order is the default; nothing to do.
	case SortTitleAsc, SortTitleDesc:
		c := collate.New(language.Danish)
		desc := key == SortTitleDesc
		sort.SliceStable(rs, func(i, j int) bool {
			cmp := c.CompareString(rs[i].Title, rs[j].Title)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortTimeAsc:
		// Unparsable times carry a large sentinel so they sort last.
		sort.SliceStable(rs, func(i, j int) bool {
			return sortMinutes(rs[i], math.MaxInt32) < sortMinutes(rs[j], math.MaxInt32)
		})
	case SortTimeDesc:
		// Unparsable times carry a small sentinel so they sort last here too.
		sort.SliceStable(rs, func(i, j int) bool {
			return sortMinutes(rs[i], -1) > sortMinutes(rs[j], -1)
		})
	case SortDifficultyAsc:
		sort.SliceStable(rs, func(i, j int) bool {
			return difficultyOrdinal(rs[i].Difficulty) < difficultyOrdinal(rs[j].Difficulty)
		})
	case SortDifficultyDesc:
		sort.SliceStable(rs, func(i, j int) bool {
			return difficultyOrdinal(rs[i].Difficulty) > difficultyOrdinal(rs[j].Difficulty)
		})
	}
}

// sortMinutes returns the parsed total minutes or the sentinel.
func sortMinutes(r *catalog.Recipe, sentinel int) int {
	if m, ok := totalMinutes(r.Time); ok {
		return m
	}
	return sentinel
}
