package source

import (
	"reflect"
	"testing"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

const karlijnsDetail = `<html><body>
<div id="breadcrumbs"><span>Breakfast</span><span>Banana Bread</span></div>
<time class="entry-date">5 January 2023</time>
<div class="entry-content">
  <img src="https://cdn.example.com/banana-bread.jpg">
  <div class="tasty-recipes">
    <h2 class="tasty-recipes-title">Banana Bread</h2>
    <span class="tasty-recipes-yield"><span data-amount="8">8</span> slices</span>
    <span class="tasty-recipes-total-time">Total Time: 1 hour 10 minutes</span>
    <div class="tasty-recipes-ingredients">
      <div data-tasty-recipes-customization="">
        <h4>Dry</h4>
        <ul><li>2 cups flour</li><li>1 tsp baking soda</li></ul>
        <h4>Wet</h4>
        <ul><li>3 ripe bananas</li><li>2 eggs</li></ul>
      </div>
    </div>
    <div class="tasty-recipes-instructions">
      <div data-tasty-recipes-customization="">
        <p>Batter</p>
        <ol><li>Mash the bananas.</li><li>Fold in the dry mix.</li></ol>
      </div>
    </div>
    <div class="tasty-recipes-notes-body">
      <p>Use <strong>very ripe</strong> bananas.</p>
    </div>
  </div>
</div>
</body></html>`

func TestKarlijnsParse(t *testing.T) {
	in := Input{
		Document: mustDoc(t, karlijnsDetail),
		URL:      "https://www.karlijnskitchen.com/en/banana-bread/",
	}
	p := karlijns{}
	if !p.CanParse(in) {
		t.Fatal("CanParse() = false, want true")
	}

	got := p.Parse(in)

	if got.Title != "Banana Bread" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Servings != 8 {
		t.Errorf("Servings = %d, want 8", got.Servings)
	}
	if got.Time != "1 hour 10 minutes" {
		t.Errorf("Time = %q", got.Time)
	}

	want := []IngredientSetDraft{
		{Name: "Dry", Ingreds: []string{"2 cups flour", "1 tsp baking soda"}},
		{Name: "Wet", Ingreds: []string{"3 ripe bananas", "2 eggs"}},
	}
	if !reflect.DeepEqual(got.IngredientSets, want) {
		t.Errorf("IngredientSets = %v, want %v", got.IngredientSets, want)
	}

	wantSteps := []InstructionSetDraft{
		{Name: "Batter", Instructions: []string{"Mash the bananas.", "Fold in the dry mix."}},
	}
	if !reflect.DeepEqual(got.InstructionSets, wantSteps) {
		t.Errorf("InstructionSets = %v, want %v", got.InstructionSets, wantSteps)
	}

	// Notes keep inline markup verbatim.
	if len(got.Notes) != 1 || got.Notes[0] != "Use <strong>very ripe</strong> bananas." {
		t.Errorf("Notes = %v", got.Notes)
	}

	if got.PostedAt == nil || got.PostedAt.Year() != 2023 || got.PostedAt.Day() != 5 {
		t.Errorf("PostedAt = %v, want 5 January 2023", got.PostedAt)
	}
	if got.ImageURL != "https://cdn.example.com/banana-bread.jpg" {
		t.Errorf("ImageURL = %q", got.ImageURL)
	}

	// No category markup on the page, so the first breadcrumb decides.
	wantCourses := []cookbookdb.Course{cookbookdb.CourseBreakfast}
	if !reflect.DeepEqual(got.Courses, wantCourses) {
		t.Errorf("Courses = %v, want %v", got.Courses, wantCourses)
	}
	if got.Source != cookbookdb.SourceKarlijns {
		t.Errorf("Source = %q", got.Source)
	}
}

const karlijnsListing = `<html><body>
<div class="entry-summary">
  <a href="https://www.karlijnskitchen.com/en/banana-bread/">
    <img src="https://cdn.example.com/banana-thumb.jpg">
    <span class="title">Banana Bread</span>
  </a>
</div>
<div class="entry-summary">
  <a href="https://www.karlijnskitchen.com/en/green-curry/">
    <img src="https://cdn.example.com/curry-thumb.jpg">
    <span class="title">Green Curry</span>
  </a>
</div>
</body></html>`

func TestKarlijnsList(t *testing.T) {
	in := Input{
		Document: mustDoc(t, karlijnsListing),
		URL:      "https://www.karlijnskitchen.com/en/recipes/page/1",
	}
	p := karlijns{}
	if !p.CanList(in) {
		t.Fatal("CanList() = false, want true")
	}

	leads := p.List(in)
	if len(leads) != 2 {
		t.Fatalf("len(leads) = %d, want 2", len(leads))
	}
	want := LeadDraft{
		URL:      "https://www.karlijnskitchen.com/en/green-curry/",
		Title:    "Green Curry",
		ImageURL: "https://cdn.example.com/curry-thumb.jpg",
	}
	if leads[1] != want {
		t.Errorf("leads[1] = %+v, want %+v", leads[1], want)
	}
}

func TestKarlijnsParseWithoutGroups(t *testing.T) {
	in := Input{
		Document: mustDoc(t, `<div class="tasty-recipes"><h2 class="tasty-recipes-title">Bare</h2></div>`),
		URL:      "https://www.karlijnskitchen.com/en/bare/",
	}
	got := karlijns{}.Parse(in)
	if got.IngredientSets != nil {
		t.Errorf("IngredientSets = %v, want nil", got.IngredientSets)
	}
	if got.InstructionSets != nil {
		t.Errorf("InstructionSets = %v, want nil", got.InstructionSets)
	}
}
