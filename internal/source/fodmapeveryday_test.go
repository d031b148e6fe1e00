package source

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

const fodmapEverydayDetail = `<html><head>
<meta property="og:image" content="https://cdn.example.com/stirfry-og.jpg">
</head><body>
<time class="entry-date">January 5, 2022</time>
<time class="entry-modified-date">Modified March 9, 2022</time>
<div class="wprm-recipe">
  <h2 class="wprm-recipe-name">Chicken Stir Fry</h2>
  <span class="wprm-recipe-servings">4</span>
  <span class="wprm-recipe-total-time-container">Total Time: 40 minutes</span>
  <span class="wprm-recipe-course">Dinner</span>
  <div class="wprm-recipe-ingredient-group">
    <div class="wprm-recipe-ingredient-group-name">For the marinade:</div>
    <li class="wprm-recipe-ingredient">2 tbsp soy sauce</li>
    <li class="wprm-recipe-ingredient">1 tbsp sesame oil</li>
  </div>
  <div class="wprm-recipe-ingredient-group">
    <div class="wprm-recipe-ingredient-group-name">For the stir fry:</div>
    <li class="wprm-recipe-ingredient">500 g chicken</li>
  </div>
  <div class="wprm-recipe-instruction">Marinate the chicken.</div>
  <div class="wprm-recipe-instruction">Stir fry on high heat.</div>
  <div class="wprm-recipe-notes-container">
    <p>• <strong>Storage</strong>: Keeps three days refrigerated. • <strong>Freezing</strong>: Freezes well for a month.</p>
  </div>
</div>
</body></html>`

func TestFodmapEverydayParse(t *testing.T) {
	in := Input{
		Document: mustDoc(t, fodmapEverydayDetail),
		URL:      "https://www.fodmapeveryday.com/recipes/chicken-stir-fry/",
	}
	p := fodmapEveryday{}
	if !p.CanParse(in) {
		t.Fatal("CanParse() = false, want true")
	}

	got := p.Parse(in)

	if got.Title != "Chicken Stir Fry" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Servings != 4 {
		t.Errorf("Servings = %d, want 4", got.Servings)
	}
	if got.Time != "40 minutes" {
		t.Errorf("Time = %q", got.Time)
	}

	if len(got.IngredientSets) != 2 {
		t.Fatalf("len(IngredientSets) = %d, want 2", len(got.IngredientSets))
	}
	if got.IngredientSets[0].Name != "For the marinade" {
		t.Errorf("IngredientSets[0].Name = %q, want colon stripped", got.IngredientSets[0].Name)
	}
	if !reflect.DeepEqual(got.IngredientSets[1].Ingreds, []string{"500 g chicken"}) {
		t.Errorf("IngredientSets[1].Ingreds = %v", got.IngredientSets[1].Ingreds)
	}

	if len(got.InstructionSets) != 1 || len(got.InstructionSets[0].Instructions) != 2 {
		t.Errorf("InstructionSets = %v, want one set with two steps", got.InstructionSets)
	}

	if len(got.Notes) != 2 {
		t.Fatalf("len(Notes) = %d, want 2: %v", len(got.Notes), got.Notes)
	}
	if !strings.Contains(got.Notes[0], "<strong>Storage</strong>") {
		t.Errorf("Notes[0] = %q, want embedded markup kept", got.Notes[0])
	}
	if !strings.Contains(got.Notes[1], "Freezing") {
		t.Errorf("Notes[1] = %q", got.Notes[1])
	}

	// The modified date wins over the original publish date.
	if got.PostedAt == nil || got.PostedAt.Month() != 3 || got.PostedAt.Day() != 9 {
		t.Errorf("PostedAt = %v, want March 9, 2022", got.PostedAt)
	}

	if got.ImageURL != "https://cdn.example.com/stirfry-og.jpg" {
		t.Errorf("ImageURL = %q, want og:image", got.ImageURL)
	}
	if !reflect.DeepEqual(got.Courses, []cookbookdb.Course{cookbookdb.CourseMain}) {
		t.Errorf("Courses = %v", got.Courses)
	}
	if got.Source != cookbookdb.SourceFodmapEveryday {
		t.Errorf("Source = %q", got.Source)
	}
}

const fodmapEverydayListing = `<html><body>
<article class="entry">
  <a class="entry-image-link" href="https://www.fodmapeveryday.com/recipes/chicken-stir-fry/">
    <img src="https://cdn.example.com/stirfry-thumb.jpg">
  </a>
  <div class="entry-content"><h6>Chicken Stir Fry</h6></div>
</article>
</body></html>`

func TestFodmapEverydayList(t *testing.T) {
	in := Input{
		Document: mustDoc(t, fodmapEverydayListing),
		URL:      "https://www.fodmapeveryday.com/recipes/page/1",
	}
	p := fodmapEveryday{}
	if !p.CanList(in) {
		t.Fatal("CanList() = false, want true")
	}

	leads := p.List(in)
	if len(leads) != 1 {
		t.Fatalf("len(leads) = %d, want 1", len(leads))
	}
	want := LeadDraft{
		URL:      "https://www.fodmapeveryday.com/recipes/chicken-stir-fry/",
		Title:    "Chicken Stir Fry",
		ImageURL: "https://cdn.example.com/stirfry-thumb.jpg",
	}
	if leads[0] != want {
		t.Errorf("leads[0] = %+v, want %+v", leads[0], want)
	}
}
