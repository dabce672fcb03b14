// Text scanning helpers shared by the classification and predicate
// heuristics. Everything operates on lowercased text and fails soft:
// unparsable numbers report !ok instead of erroring.
package filter

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/smagen/go-recipe-backend/internal/catalog"
)

// metaText returns the lowercased metadata text of a recipe: title,
// excerpt and category. This is the scan basis for criteria that work
// without full bodies.
func metaText(r *catalog.Recipe) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteByte(' ')
	b.WriteString(r.Excerpt)
	b.WriteByte(' ')
	b.WriteString(r.Category)
	return strings.ToLower(b.String())
}

// fullText returns the lowercased serialized content of a recipe:
// metadata plus description, ingredients, instructions and nutrition
// values. Heuristics that disqualify by ingredient presence scan this.
func fullText(r *catalog.Recipe) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteByte(' ')
	b.WriteString(r.Excerpt)
	b.WriteByte(' ')
	b.WriteString(r.Category)
	b.WriteByte(' ')
	b.WriteString(r.Description)
	for _, s := range r.Ingredients {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	for _, s := range r.Instructions {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	for _, v := range r.Nutrition {
		b.WriteByte(' ')
		b.WriteString(v)
	}
	return strings.ToLower(b.String())
}

// containsAny reports whether text contains one of the needles.
func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// countMatches counts how many distinct needles occur in text.
func countMatches(text string, needles []string) int {
	n := 0
	for _, kw := range needles {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// mentionsHours reports whether a time string is denominated in hours
// ("1 time", "3 timer"). Such recipes are excluded outright from any
// numeric-minute filter; the intent of the original content is ambiguous
// and the conservative exclusion is preserved on purpose.
func mentionsHours(timeStr string) bool {
	return strings.Contains(strings.ToLower(timeStr), "time")
}

// parseLeadingInt extracts the integer at the start of s, skipping
// leading whitespace. ok is false when s does not begin with digits.
func parseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// totalMinutes parses the recipe's total-time string into minutes.
// Hour-denominated strings and strings without a leading number report
// !ok.
func totalMinutes(timeStr string) (int, bool) {
	if mentionsHours(timeStr) {
		return 0, false
	}
	return parseLeadingInt(timeStr)
}

// parseGrams extracts the leading numeric value from a nutrition string
// such as "12 g" or "3,5 g". Danish decimal commas are accepted. ok is
// false when no number can be read.
func parseGrams(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := 0
	seenDigit := false
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			seenDigit = true
			i++
			continue
		}
		if (c == '.' || c == ',') && seenDigit {
			i++
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s[:i], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// nutritionGrams looks up a nutrition key and parses its numeric value.
func nutritionGrams(r *catalog.Recipe, key string) (float64, bool) {
	v, ok := r.Nutrition[key]
	if !ok {
		return 0, false
	}
	return parseGrams(v)
}
