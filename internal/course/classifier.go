// Package course maps free-text category and breadcrumb strings to course
// tags with a keyword heuristic. It is deliberately lossy: a fragment may
// trigger several tags, and fragments matching nothing contribute nothing.
package course

import (
	"strings"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

// keywordTable is the union of the keyword sets the source sites use for
// their category labels. Keywords overlap on purpose ("brunch" is both a
// main and a breakfast). "cake" and "bread" are double-mapped because the
// sites disagree; product owners have not picked a side yet.
var keywordTable = []struct {
	course   cookbookdb.Course
	keywords []string
}{
	{cookbookdb.CourseMain, []string{"main", "dinner", "diner", "lunch", "brunch"}},
	{cookbookdb.CourseBreakfast, []string{"breakfast", "brunch", "bread", "cake"}},
	{cookbookdb.CourseSide, []string{"appetizer", "side", "bread"}},
	{cookbookdb.CourseSnack, []string{"snack", "treat", "candy"}},
	{cookbookdb.CourseDessert, []string{"dessert", "candy", "cake", "sweet"}},
	{cookbookdb.CourseDrink, []string{"beverage", "drink"}},
	{cookbookdb.CourseOther, []string{"condiment", "basic", "sauce"}},
	{cookbookdb.CourseSoup, []string{"soup"}},
	{cookbookdb.CourseSalad, []string{"salad"}},
}

// Classify maps a comma-separated category string to a deduplicated list of
// course tags, in first-matched order. Empty input yields nil.
func Classify(categoryText string) []cookbookdb.Course {
	if strings.TrimSpace(categoryText) == "" {
		return nil
	}

	var out []cookbookdb.Course
	seen := make(map[cookbookdb.Course]struct{})

	for _, fragment := range strings.Split(categoryText, ",") {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		for _, entry := range keywordTable {
			if _, ok := seen[entry.course]; ok {
				continue
			}
			for _, kw := range entry.keywords {
				if strings.Contains(fragment, kw) {
					seen[entry.course] = struct{}{}
					out = append(out, entry.course)
					break
				}
			}
		}
	}
	return out
}
