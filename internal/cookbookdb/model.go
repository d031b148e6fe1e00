// Package cookbookdb holds the persisted data model and the sqlite store
// backing it.
package cookbookdb

import "time"

// Course is a coarse classification of where a recipe fits in a meal.
type Course string

const (
	CourseBreakfast Course = "BREAKFAST"
	CourseMain      Course = "MAIN"
	CourseSide      Course = "SIDE"
	CourseSalad     Course = "SALAD"
	CourseSoup      Course = "SOUP"
	CourseSnack     Course = "SNACK"
	CourseDessert   Course = "DESSERT"
	CourseDrink     Course = "DRINK"
	CourseOther     Course = "OTHER"
)

// Source identifies which site parser produced a recipe.
type Source string

const (
	// SourceFodmapFormula is the source for recipes from fodmapformula.com.
	SourceFodmapFormula Source = "fodmap-formula"
	// SourceFodmapEveryday is the source for recipes from fodmapeveryday.com.
	SourceFodmapEveryday Source = "fodmap-everyday"
	// SourceKarlijns is the source for recipes from karlijnskitchen.com.
	SourceKarlijns Source = "karlijns"
)

// Sources lists every registered source, in registry order.
var Sources = []Source{SourceFodmapFormula, SourceFodmapEveryday, SourceKarlijns}

// ValidSource reports whether name is a registered source identifier.
func ValidSource(name string) bool {
	for _, s := range Sources {
		if string(s) == name {
			return true
		}
	}
	return false
}

// ImportStatus is the recorded outcome of an import attempt.
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusPartial ImportStatus = "partial"
	// ImportStatusRejected marks an audit row dismissed by an operator.
	ImportStatusRejected ImportStatus = "rejected"
)

// FieldError describes a single validation failure, qualified by the path
// of the offending field so a partial import can be repaired by hand.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// IngredientSet is a named, ordered group of ingredients. Name may be empty
// when the source page has no sub-headings.
type IngredientSet struct {
	ID       int64    `json:"id"`
	RecipeID int64    `json:"recipeId"`
	Name     string   `json:"name"`
	Ingreds  []string `json:"ingreds"`
}

// InstructionSet is a named, ordered group of instruction steps.
type InstructionSet struct {
	ID           int64    `json:"id"`
	RecipeID     int64    `json:"recipeId"`
	Name         string   `json:"name"`
	Instructions []string `json:"instructions"`
}

// Recipe is a fully validated recipe. Instances only come out of the
// importer's validation step or the store; raw extractions live in
// source.RecipeDraft until then.
type Recipe struct {
	ID int64 `json:"id"`

	// Title is the recipe title.
	Title string `json:"title"`

	// Time is the total time as free-form text, e.g. "1h 30min".
	Time string `json:"time"`

	// Servings is the number of servings, always >= 1.
	Servings int `json:"servings"`

	// ImageURL is the URL of the main image of the recipe.
	ImageURL string `json:"imageUrl"`

	// IngredientSets are the ingredient groups, in use order.
	IngredientSets []IngredientSet `json:"ingredientSets"`

	// InstructionSets are the instruction groups, in step order.
	InstructionSets []InstructionSet `json:"instructionSets"`

	// Notes are supplementary annotations. Individual notes may carry raw
	// HTML from the source page, rendered verbatim downstream.
	Notes []string `json:"notes"`

	// PostedAt is the publish date on the source site, when exposed.
	PostedAt *time.Time `json:"postedAt"`

	// Keywords are best-effort tags, often empty.
	Keywords []string `json:"keywords"`

	// Courses are the course tags, always >= 1 entry.
	Courses []Course `json:"courses"`

	// SourceURL is the canonical URL the recipe was extracted from and the
	// dedup key for imports.
	SourceURL string `json:"sourceUrl"`

	// Source is the parser that produced the recipe.
	Source Source `json:"source"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImportRecord is the audit row for one import attempt of a URL. Partial
// imports keep their field errors here for later manual completion.
type ImportRecord struct {
	ID        int64        `json:"id"`
	URL       string       `json:"url"`
	Title     string       `json:"title"`
	Status    ImportStatus `json:"status"`
	Errors    []FieldError `json:"errors"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
