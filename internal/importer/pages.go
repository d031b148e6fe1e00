package importer

import (
	"fmt"
	"iter"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

// PageSequences returns the lazy listing-page URL sequences for src, one
// sequence per category archive. Each sequence is unbounded: the true last
// page is unknown ahead of time, so the batch driver ends a sequence when
// the listing fetch reports the page does not exist.
func PageSequences(src cookbookdb.Source) []iter.Seq[string] {
	switch src {
	case cookbookdb.SourceFodmapFormula:
		categories := []string{
			"breakfast", "lunch", "dinner", "dessert", "soupsalad",
			"side-dishes", "appetizers", "snacks", "drinks",
		}
		seqs := make([]iter.Seq[string], len(categories))
		for i, cat := range categories {
			seqs[i] = numberedPages("https://www.fodmapformula.com/category/recipe/" + cat + "/page/%d")
		}
		return seqs
	case cookbookdb.SourceFodmapEveryday:
		return []iter.Seq[string]{
			numberedPages("https://www.fodmapeveryday.com/recipes/page/%d"),
		}
	case cookbookdb.SourceKarlijns:
		return []iter.Seq[string]{
			numberedPages("https://www.karlijnskitchen.com/en/recipes/page/%d"),
		}
	}
	return nil
}

func numberedPages(format string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for page := 1; ; page++ {
			if !yield(fmt.Sprintf(format, page)) {
				return
			}
		}
	}
}
