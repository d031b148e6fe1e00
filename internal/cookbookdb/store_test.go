package cookbookdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cookbook.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecipe(sourceURL string) *Recipe {
	posted := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)
	return &Recipe{
		Title:    "Banana Bread",
		Time:     "1 hour",
		Servings: 8,
		ImageURL: "https://cdn.example.com/banana-bread.jpg",
		IngredientSets: []IngredientSet{
			{Name: "Dry", Ingreds: []string{"2 cups flour", "1 tsp baking soda"}},
			{Name: "Wet", Ingreds: []string{"3 bananas"}},
		},
		InstructionSets: []InstructionSet{
			{Name: "", Instructions: []string{"Mash.", "Bake."}},
		},
		Notes:     []string{"Use <strong>ripe</strong> bananas."},
		PostedAt:  &posted,
		Keywords:  []string{"banana", "bread"},
		Courses:   []Course{CourseBreakfast, CourseSide},
		SourceURL: sourceURL,
		Source:    SourceKarlijns,
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	r := testRecipe("https://www.karlijnskitchen.com/en/banana-bread/")
	if err := store.CreateRecipeWithSets(ctx, r); err != nil {
		t.Fatalf("CreateRecipeWithSets() error = %v", err)
	}
	if r.ID == 0 {
		t.Fatal("recipe ID not filled in")
	}
	if r.IngredientSets[0].ID == 0 || r.IngredientSets[0].RecipeID != r.ID {
		t.Errorf("ingredient set IDs not filled in: %+v", r.IngredientSets[0])
	}

	got, err := store.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe() error = %v", err)
	}
	if got.Title != r.Title || got.Servings != r.Servings || got.SourceURL != r.SourceURL {
		t.Errorf("GetRecipe() = %+v", got)
	}
	if len(got.IngredientSets) != 2 || got.IngredientSets[0].Name != "Dry" {
		t.Errorf("IngredientSets = %v, want order preserved", got.IngredientSets)
	}
	if len(got.IngredientSets[1].Ingreds) != 1 {
		t.Errorf("IngredientSets[1] = %v", got.IngredientSets[1])
	}
	if len(got.InstructionSets) != 1 || len(got.InstructionSets[0].Instructions) != 2 {
		t.Errorf("InstructionSets = %v", got.InstructionSets)
	}
	if got.PostedAt == nil || !got.PostedAt.Equal(*r.PostedAt) {
		t.Errorf("PostedAt = %v, want %v", got.PostedAt, r.PostedAt)
	}
	if len(got.Courses) != 2 || got.Courses[0] != CourseBreakfast {
		t.Errorf("Courses = %v", got.Courses)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetRecipe(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecipe() error = %v, want ErrNotFound", err)
	}
}

func TestCreateRecipeDuplicateSourceURL(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url := "https://www.karlijnskitchen.com/en/banana-bread/"
	if err := store.CreateRecipeWithSets(ctx, testRecipe(url)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := store.CreateRecipeWithSets(ctx, testRecipe(url)); err == nil {
		t.Error("second create with same source url should fail")
	}
}

func TestFindRecipeBySourceURL(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url := "https://www.karlijnskitchen.com/en/banana-bread/"
	if _, err := store.FindRecipeBySourceURL(ctx, url); !errors.Is(err, ErrNotFound) {
		t.Errorf("lookup before create: error = %v, want ErrNotFound", err)
	}
	if err := store.CreateRecipeWithSets(ctx, testRecipe(url)); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.FindRecipeBySourceURL(ctx, url)
	if err != nil {
		t.Fatalf("lookup after create: %v", err)
	}
	if got.Title != "Banana Bread" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestListRecipesTermFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := testRecipe("https://www.karlijnskitchen.com/en/banana-bread/")
	b := testRecipe("https://www.karlijnskitchen.com/en/green-curry/")
	b.Title = "Green Curry"
	for _, r := range []*Recipe{a, b} {
		if err := store.CreateRecipeWithSets(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := store.ListRecipes(ctx, "", 1, 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
	if len(all[0].IngredientSets) == 0 {
		t.Error("listing did not load sets")
	}

	curry, err := store.ListRecipes(ctx, "curry", 1, 10)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(curry) != 1 || curry[0].Title != "Green Curry" {
		t.Errorf("filtered = %v, want only Green Curry", curry)
	}
}

func TestUpsertImportAudit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url := "https://www.karlijnskitchen.com/en/mystery/"
	first := &ImportRecord{
		URL:    url,
		Title:  "Mystery Dish",
		Status: ImportStatusPartial,
		Errors: []FieldError{{Path: "servings", Message: "must be at least 1"}},
	}
	if err := store.UpsertImportAudit(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// A later successful run refines the same row.
	second := &ImportRecord{URL: url, Title: "Mystery Dish", Status: ImportStatusSuccess}
	if err := store.UpsertImportAudit(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	total, err := store.CountImports(ctx, "", "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Errorf("CountImports = %d, want 1", total)
	}

	got, err := store.FindImportByURL(ctx, url)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Status != ImportStatusSuccess {
		t.Errorf("Status = %q, want success", got.Status)
	}
	if len(got.Errors) != 0 {
		t.Errorf("Errors = %v, want cleared", got.Errors)
	}
}

func TestListImportsStatusFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	records := []*ImportRecord{
		{URL: "https://example.com/a", Title: "A", Status: ImportStatusSuccess},
		{URL: "https://example.com/b", Title: "B", Status: ImportStatusPartial},
		{URL: "https://example.com/c", Title: "C", Status: ImportStatusPartial},
	}
	for _, rec := range records {
		if err := store.UpsertImportAudit(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	partial, err := store.ListImports(ctx, string(ImportStatusPartial), "", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(partial) != 2 {
		t.Errorf("len(partial) = %d, want 2", len(partial))
	}

	byTerm, err := store.ListImports(ctx, "", "example.com/a", 1, 10)
	if err != nil {
		t.Fatalf("list by term: %v", err)
	}
	if len(byTerm) != 1 || byTerm[0].Title != "A" {
		t.Errorf("byTerm = %v", byTerm)
	}
}

func TestRejectImport(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &ImportRecord{URL: "https://example.com/a", Title: "A", Status: ImportStatusPartial}
	if err := store.UpsertImportAudit(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := store.RejectImport(ctx, rec.ID); err != nil {
		t.Fatalf("RejectImport() error = %v", err)
	}
	got, err := store.GetImport(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != ImportStatusRejected {
		t.Errorf("Status = %q, want rejected", got.Status)
	}

	if err := store.RejectImport(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("RejectImport(999) error = %v, want ErrNotFound", err)
	}
}
