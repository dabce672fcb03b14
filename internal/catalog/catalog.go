// Package catalog provides read-only access to the recipe content that
// powers the site. Recipes are authored as static JSON documents: an
// index.json listing metadata for every recipe (in editorial order) and
// one <slug>.json document per recipe with the full body.
//
// Design notes:
//   - No logging in the library (callers decide how/what to log)
//   - No caching: every call re-reads from disk, so content edits are
//     picked up without a restart
//   - Missing and malformed documents are treated identically (ErrNotFound);
//     a half-written file during a content deploy must not surface as a 500
//   - The index order is preserved as-is; it is the default sort order of
//     the listing pages
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrNotFound is returned when a recipe document is absent or cannot be
// decoded. Callers must not distinguish the two cases.
var ErrNotFound = errors.New("recipe not found")

// ListItem is the metadata record for one recipe as stored in index.json.
// It is everything the listing pages need; full bodies are only loaded
// when a filter predicate or the detail page requires them.
type ListItem struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Time       string `json:"time"`
	PrepTime   string `json:"prepTime"`
	CookTime   string `json:"cookTime"`
	Difficulty string `json:"difficulty"`
	Excerpt    string `json:"excerpt"`
}

// Recipe is the full per-slug document. Ingredients and instructions are
// ordered display lists in which some entries act as section headers (see
// IsIngredientHeader and IsInstructionHeader). Nutrition is a fixed-key
// string mapping (kalorier, protein, kulhydrater, fedt, maettetFedt);
// values are free-form strings such as "12 g".
type Recipe struct {
	ListItem
	Description  string            `json:"description"`
	Ingredients  []string          `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	Nutrition    map[string]string `json:"nutrition"`
	Budget       *bool             `json:"budget,omitempty"`
}

// Store is the read contract for recipe content.
//
// Implementations must be safe for concurrent use and must honor the
// provided context for cancellation.
type Store interface {
	// List returns every recipe's metadata in index order.
	List(ctx context.Context) ([]ListItem, error)
	// Get returns the full document for slug, or ErrNotFound.
	Get(ctx context.Context, slug string) (*Recipe, error)
}

// DirStore reads recipe documents from a directory on disk.
type DirStore struct {
	dir string
}

// NewDirStore returns a DirStore rooted at dir. The directory is expected
// to contain index.json plus one <slug>.json per recipe.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// List reads index.json and returns the metadata records in document
// order. A missing or malformed index maps to ErrNotFound.
func (s *DirStore) List(ctx context.Context) ([]ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(s.dir, "index.json"))
	if err != nil {
		return nil, ErrNotFound
	}
	var items []ListItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, ErrNotFound
	}
	return items, nil
}

// Get reads the per-slug document. Slugs that would escape the content
// directory, missing files, and undecodable JSON all map to ErrNotFound.
func (s *DirStore) Get(ctx context.Context, slug string) (*Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validSlug(slug) {
		return nil, ErrNotFound
	}
	b, err := os.ReadFile(filepath.Join(s.dir, slug+".json"))
	if err != nil {
		return nil, ErrNotFound
	}
	var r Recipe
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, ErrNotFound
	}
	if r.Slug == "" {
		r.Slug = slug
	}
	return &r, nil
}

// validSlug accepts URL-safe slugs only: lowercase/uppercase letters,
// digits, '-' and '_'. Anything else (separators, dots) is rejected to
// keep file lookups inside the content directory.
func validSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// IsIngredientHeader reports whether an ingredient entry is a section
// header rather than an actual ingredient. Headers carry a trailing colon
// ("Til dejen:").
func IsIngredientHeader(entry string) bool {
	return strings.HasSuffix(strings.TrimSpace(entry), ":")
}

// IsInstructionHeader reports whether an instruction entry is a section
// header. Headers are written in all caps ("TILBEREDNING"); an entry
// qualifies when it contains at least one letter and no lowercase ones.
func IsInstructionHeader(entry string) bool {
	hasLetter := false
	for _, r := range strings.TrimSpace(entry) {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
