package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ysads/cookbook/internal/cookbookdb"
	"github.com/ysads/cookbook/internal/course"
)

// fodmapeveryday.com uses WP Recipe Maker markup with named ingredient
// groups and a bulleted notes block inside the recipe card.

type fodmapEveryday struct{}

var (
	fodmapEverydayListRe = regexp.MustCompile(`fodmapeveryday\.com/recipes`)

	// Notes render as "• <strong>Label</strong>: text" runs inside the notes
	// container; embedded markup is kept verbatim.
	fodmapEverydayNoteRe = regexp.MustCompile(`•\s*<strong>[A-Za-z ]+\s*</strong>:[^•]+`)
)

func (fodmapEveryday) Name() string { return "fodmap-everyday" }

func (fodmapEveryday) CanParse(in Input) bool {
	return strings.Contains(in.URL, "fodmapeveryday.com") &&
		in.Document.Find(".wprm-recipe").Length() > 0
}

func (fodmapEveryday) CanList(in Input) bool {
	return fodmapEverydayListRe.MatchString(in.URL)
}

func (fodmapEveryday) List(in Input) []LeadDraft {
	var leads []LeadDraft
	in.Document.Find(".entry").Each(func(_ int, el *goquery.Selection) {
		leads = append(leads, LeadDraft{
			ImageURL: el.Find(".entry-image-link img").AttrOr("src", ""),
			URL:      el.Find(".entry-image-link").AttrOr("href", ""),
			Title:    norm(el.Find(".entry-content h6").Text()),
		})
	})
	return leads
}

func (p fodmapEveryday) Parse(in Input) RecipeDraft {
	doc := in.Document

	var ingredientSets []IngredientSetDraft
	doc.Find(".wprm-recipe-ingredient-group").Each(func(_ int, group *goquery.Selection) {
		name := strings.ReplaceAll(norm(group.Find(".wprm-recipe-ingredient-group-name").Text()), ":", "")
		var ingreds []string
		group.Find(".wprm-recipe-ingredient").Each(func(_ int, el *goquery.Selection) {
			ingreds = append(ingreds, strings.ReplaceAll(norm(el.Text()), ":", ""))
		})
		ingredientSets = append(ingredientSets, IngredientSetDraft{Name: name, Ingreds: ingreds})
	})

	var notes []string
	if html, err := doc.Find(".wprm-recipe-notes-container").Html(); err == nil {
		notes = fodmapEverydayNoteRe.FindAllString(html, -1)
	}

	postedAt := parseDate(doc.Find(".entry-modified-date").First().Text())
	if postedAt == nil {
		postedAt = parseDate(doc.Find(".entry-date").First().Text())
	}

	return RecipeDraft{
		Title:          norm(doc.Find(".wprm-recipe-name").First().Text()),
		Servings:       parseServings(doc.Find(".wprm-recipe-servings").First().Text()),
		Time:           stripLabel(doc.Find(".wprm-recipe-total-time-container").First().Text(), "Total Time:"),
		IngredientSets: ingredientSets,
		// The site never groups instructions.
		InstructionSets: []InstructionSetDraft{
			{Name: "", Instructions: texts(doc.Find(".wprm-recipe-instruction"))},
		},
		Notes:     notes,
		PostedAt:  postedAt,
		ImageURL:  doc.Find(`meta[property="og:image"]`).AttrOr("content", ""),
		Courses:   course.Classify(doc.Find(".wprm-recipe-course").Text()),
		SourceURL: in.URL,
		Source:    cookbookdb.SourceFodmapEveryday,
	}
}
