package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/course"
)

// karlijnskitchen.com uses Tasty Recipes markup with named sub-groups for
// both ingredients and instructions. Group headers and list containers are
// siblings, so they are paired positionally.

type karlijns struct{}

var karlijnsListRe = regexp.MustCompile(`karlijnskitchen\.com/en/(recipes|tag)`)

func (karlijns) Name() string { return "karlijns" }

func (karlijns) CanParse(in Input) bool {
	return strings.Contains(in.URL, "karlijnskitchen.com") &&
		in.Document.Find(".tasty-recipes").Length() > 0
}

func (karlijns) CanList(in Input) bool {
	return karlijnsListRe.MatchString(in.URL)
}

func (karlijns) List(in Input) []LeadDraft {
	var leads []LeadDraft
	in.Document.Find(".entry-summary").Each(func(_ int, el *goquery.Selection) {
		leads = append(leads, LeadDraft{
			ImageURL: el.Find("img").AttrOr("src", ""),
			URL:      el.Find("a").AttrOr("href", ""),
			Title:    norm(el.Find(".title").Text()),
		})
	})
	return leads
}

func (p karlijns) Parse(in Input) RecipeDraft {
	doc := in.Document

	var notes []string
	doc.Find(".tasty-recipes-notes-body p").Each(func(_ int, el *goquery.Selection) {
		// Notes keep their embedded markup; they are rendered as HTML.
		if html, err := el.Html(); err == nil {
			notes = append(notes, html)
		}
	})

	categories := doc.Find(".tasty-recipes-category").Text()
	breadcrumb := doc.Find("#breadcrumbs span").First().Text()

	return RecipeDraft{
		Title:           norm(doc.Find(".tasty-recipes-title").First().Text()),
		Servings:        parseServings(doc.Find(".tasty-recipes-yield [data-amount]").First().Text()),
		Time:            stripLabel(doc.Find(".tasty-recipes-total-time").First().Text(), "Total Time:"),
		IngredientSets:  groupedSets(doc, ".tasty-recipes-ingredients"),
		InstructionSets: instructionSets(groupedSets(doc, ".tasty-recipes-instructions")),
		Notes:           notes,
		PostedAt:        parseDate(doc.Find(".entry-date").First().Text()),
		ImageURL:        doc.Find(".entry-content img").First().AttrOr("src", ""),
		Courses:         course.Classify(categories + "," + breadcrumb),
		SourceURL:       in.URL,
		Source:          cookbookdb.SourceKarlijns,
	}
}

// groupedSets pairs each group header under root with the list container at
// the same position. A group without a header gets an empty name.
func groupedSets(doc *goquery.Document, root string) []IngredientSetDraft {
	headers := doc.Find(root + " [data-tasty-recipes-customization] > h4, " + root + " [data-tasty-recipes-customization] > p")
	groups := doc.Find(root + " ul, " + root + " ol")

	var sets []IngredientSetDraft
	groups.Each(func(i int, group *goquery.Selection) {
		sets = append(sets, IngredientSetDraft{
			Name:    norm(headers.Eq(i).Text()),
			Ingreds: texts(group.Find("li")),
		})
	})
	return sets
}

func instructionSets(sets []IngredientSetDraft) []InstructionSetDraft {
	out := make([]InstructionSetDraft, len(sets))
	for i, set := range sets {
		out[i] = InstructionSetDraft{Name: set.Name, Instructions: set.Ingreds}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
