package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/course"
)

// fodmapformula.com publishes recipes in two templates: newer posts use the
// Tasty Recipes plugin markup, older ones WP Recipe Maker. Both share the
// same listing markup, so the two parsers differ only in detail parsing.
// The newer template is registered first.

type fodmapFormulaNew struct{}

func (fodmapFormulaNew) Name() string { return "fodmap-formula-new" }

func (fodmapFormulaNew) CanParse(in Input) bool {
	return strings.Contains(in.URL, "fodmapformula.com") &&
		in.Document.Find(".tasty-recipes-entry-header").Length() > 0
}

func (fodmapFormulaNew) CanList(in Input) bool {
	return strings.Contains(in.URL, "fodmapformula.com") &&
		in.Document.Find(".entry").Length() > 0
}

func (fodmapFormulaNew) List(in Input) []LeadDraft {
	var leads []LeadDraft
	in.Document.Find(".entry").Each(func(_ int, el *goquery.Selection) {
		leads = append(leads, LeadDraft{
			ImageURL: el.Find(".entry-image").AttrOr("src", ""),
			URL:      el.Find(".entry-image-link").AttrOr("href", ""),
			Title:    norm(el.Find(".entry-title-link").Text()),
		})
	})
	return leads
}

func (p fodmapFormulaNew) Parse(in Input) RecipeDraft {
	doc := in.Document

	title := norm(doc.Find("h1.entry-title").First().Text())
	if title == "" {
		// Keep the URL so a partial import stays identifiable in the audit list.
		title = in.URL
	}

	var keywords []string
	for _, kw := range strings.Split(stripLabel(doc.Find(".tasty-recipes-keywords").Text(), "Keywords:"), ",") {
		if kw = strings.ToLower(norm(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return RecipeDraft{
		Title:    title,
		Servings: parseServings(doc.Find(".yield [data-amount]").First().Text()),
		Time:     stripLabel(doc.Find(".tasty-recipes-total-time").First().Text(), "Total Time:"),
		IngredientSets: []IngredientSetDraft{
			{Name: "", Ingreds: texts(doc.Find(".tasty-recipes-ingredients li"))},
		},
		InstructionSets: []InstructionSetDraft{
			{Name: "", Instructions: texts(doc.Find(".tasty-recipes-instructions li"))},
		},
		Notes:     texts(doc.Find(".tasty-recipes-notes-body p")),
		Keywords:  keywords,
		ImageURL:  contentImage(doc),
		Courses:   course.Classify(doc.Find(".tasty-recipes-category").Text()),
		SourceURL: in.URL,
		Source:    cookbookdb.SourceFodmapFormula,
	}
}

type fodmapFormulaOld struct{}

func (fodmapFormulaOld) Name() string { return "fodmap-formula-old" }

func (fodmapFormulaOld) CanParse(in Input) bool {
	return strings.Contains(in.URL, "fodmapformula.com") &&
		in.Document.Find(".wprm-recipe").Length() > 0
}

func (fodmapFormulaOld) CanList(in Input) bool {
	return strings.Contains(in.URL, "fodmapformula.com") &&
		in.Document.Find(".entry").Length() > 0
}

func (fodmapFormulaOld) List(in Input) []LeadDraft {
	var leads []LeadDraft
	in.Document.Find(".entry").Each(func(_ int, el *goquery.Selection) {
		leads = append(leads, LeadDraft{
			ImageURL: el.Find(".entry-image").AttrOr("src", ""),
			URL:      el.Find(".entry-image-link").AttrOr("href", ""),
			Title:    norm(el.Find(".entry-content-link").Text()),
		})
	})
	return leads
}

func (p fodmapFormulaOld) Parse(in Input) RecipeDraft {
	doc := in.Document

	title := norm(doc.Find("h1.entry-title").First().Text())
	if title == "" {
		title = in.URL
	}

	// The template renders prep, cook and total times in order; the last
	// one is the total.
	var totalTime string
	if times := texts(doc.Find(".wprm-recipe-time")); len(times) > 0 {
		totalTime = times[len(times)-1]
	}

	servings := parseServings(doc.Find(".yield [data-amount]").First().Text())
	if servings == 0 {
		servings = parseServings(doc.Find(".wprm-recipe-servings").First().Text())
	}

	return RecipeDraft{
		Title:    title,
		Servings: servings,
		Time:     totalTime,
		IngredientSets: []IngredientSetDraft{
			{Name: "", Ingreds: texts(doc.Find(".wprm-recipe-ingredient"))},
		},
		InstructionSets: []InstructionSetDraft{
			{Name: "", Instructions: texts(doc.Find(".wprm-recipe-instruction"))},
		},
		Notes:     texts(doc.Find(".wprm-recipe-notes-container p")),
		ImageURL:  contentImage(doc),
		Courses:   course.Classify(doc.Find(".wprm-recipe-course").Text()),
		SourceURL: in.URL,
		Source:    cookbookdb.SourceFodmapFormula,
	}
}
