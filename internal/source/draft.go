package source

import (
	"time"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

// LeadDraft is a raw recipe lead scraped from a listing page. Any field may
// be empty until lead validation accepts it.
type LeadDraft struct {
	URL      string `json:"url"      validate:"required,url"`
	Title    string `json:"title"    validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// IngredientSetDraft is a raw ingredient group.
type IngredientSetDraft struct {
	Name    string   `json:"name"`
	Ingreds []string `json:"ingreds" validate:"required,min=1,dive,required"`
}

// InstructionSetDraft is a raw instruction group.
type InstructionSetDraft struct {
	Name         string   `json:"name"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
}

// RecipeDraft is the raw extraction a parser produces from a detail page.
// Every field is allowed to be missing, zero or malformed; only the
// importer's validation step turns a draft into a cookbookdb.Recipe. The
// looseness is deliberate: it lets incomplete extractions surface as
// partial imports for manual repair instead of being dropped.
type RecipeDraft struct {
	Title           string                `json:"title"           validate:"required"`
	Time            string                `json:"time"            validate:"required"`
	Servings        int                   `json:"servings"        validate:"min=1"`
	ImageURL        string                `json:"imageUrl"        validate:"required,url"`
	IngredientSets  []IngredientSetDraft  `json:"ingredientSets"  validate:"required,min=1,dive"`
	InstructionSets []InstructionSetDraft `json:"instructionSets" validate:"required,min=1,dive"`
	Notes           []string              `json:"notes"`
	PostedAt        *time.Time            `json:"postedAt"`
	Keywords        []string              `json:"keywords"`
	Courses         []cookbookdb.Course   `json:"courses"         validate:"required,min=1,dive,oneof=BREAKFAST MAIN SIDE SALAD SOUP SNACK DESSERT DRINK OTHER"`
	SourceURL       string                `json:"sourceUrl"       validate:"required,url"`
	Source          cookbookdb.Source     `json:"source"          validate:"required,oneof=fodmap-formula fodmap-everyday karlijns"`
}

// Recipe converts a draft that passed validation into the strict type.
func (d *RecipeDraft) Recipe() *cookbookdb.Recipe {
	ingredientSets := make([]cookbookdb.IngredientSet, len(d.IngredientSets))
	for i, set := range d.IngredientSets {
		ingredientSets[i] = cookbookdb.IngredientSet{Name: set.Name, Ingreds: set.Ingreds}
	}
	instructionSets := make([]cookbookdb.InstructionSet, len(d.InstructionSets))
	for i, set := range d.InstructionSets {
		instructionSets[i] = cookbookdb.InstructionSet{Name: set.Name, Instructions: set.Instructions}
	}
	return &cookbookdb.Recipe{
		Title:           d.Title,
		Time:            d.Time,
		Servings:        d.Servings,
		ImageURL:        d.ImageURL,
		IngredientSets:  ingredientSets,
		InstructionSets: instructionSets,
		Notes:           d.Notes,
		PostedAt:        d.PostedAt,
		Keywords:        d.Keywords,
		Courses:         d.Courses,
		SourceURL:       d.SourceURL,
		Source:          d.Source,
	}
}
