package cookbookdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FindRecipeBySourceURL returns the recipe imported from sourceURL, or
// ErrNotFound. Sets are not loaded; callers only use this for dedup.
func (s *Store) FindRecipeBySourceURL(ctx context.Context, sourceURL string) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, time, servings, image_url, notes, posted_at, keywords, courses, source_url, source, created_at, updated_at
FROM recipes WHERE source_url = ?`, sourceURL)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cookbookdb: find recipe by source url: %w", err)
	}
	return r, nil
}

// CreateRecipeWithSets persists a recipe together with its ingredient and
// instruction sets in a single transaction, so a half-written recipe is
// never visible. On success the IDs of the recipe and sets are filled in.
func (s *Store) CreateRecipeWithSets(ctx context.Context, r *Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cookbookdb: begin create recipe: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	notes, _ := json.Marshal(emptyIfNil(r.Notes))
	keywords, _ := json.Marshal(emptyIfNil(r.Keywords))
	courses, _ := json.Marshal(r.Courses)

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
INSERT INTO recipes (title, time, servings, image_url, notes, posted_at, keywords, courses, source_url, source, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Title, r.Time, r.Servings, r.ImageURL, string(notes), r.PostedAt,
		string(keywords), string(courses), r.SourceURL, string(r.Source), now, now)
	if err != nil {
		return fmt.Errorf("cookbookdb: insert recipe: %w", err)
	}
	recipeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("cookbookdb: recipe id: %w", err)
	}

	for i := range r.IngredientSets {
		set := &r.IngredientSets[i]
		items, _ := json.Marshal(set.Ingreds)
		res, err := tx.ExecContext(ctx, `
INSERT INTO ingredient_sets (recipe_id, position, name, ingreds) VALUES (?, ?, ?, ?)`,
			recipeID, i, set.Name, string(items))
		if err != nil {
			return fmt.Errorf("cookbookdb: insert ingredient set: %w", err)
		}
		set.ID, _ = res.LastInsertId()
		set.RecipeID = recipeID
	}

	for i := range r.InstructionSets {
		set := &r.InstructionSets[i]
		items, _ := json.Marshal(set.Instructions)
		res, err := tx.ExecContext(ctx, `
INSERT INTO instruction_sets (recipe_id, position, name, instructions) VALUES (?, ?, ?, ?)`,
			recipeID, i, set.Name, string(items))
		if err != nil {
			return fmt.Errorf("cookbookdb: insert instruction set: %w", err)
		}
		set.ID, _ = res.LastInsertId()
		set.RecipeID = recipeID
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cookbookdb: commit create recipe: %w", err)
	}

	r.ID = recipeID
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// GetRecipe returns a recipe with its sets loaded, or ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, time, servings, image_url, notes, posted_at, keywords, courses, source_url, source, created_at, updated_at
FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cookbookdb: get recipe: %w", err)
	}
	if err := s.loadSets(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns a page of recipes with their sets, oldest first,
// optionally filtered by a case-insensitive title term.
func (s *Store) ListRecipes(ctx context.Context, term string, page, take int) ([]*Recipe, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, time, servings, image_url, notes, posted_at, keywords, courses, source_url, source, created_at, updated_at
FROM recipes
WHERE (? = '' OR title LIKE '%' || ? || '%' COLLATE NOCASE)
ORDER BY created_at ASC, id ASC
LIMIT ? OFFSET ?`, term, term, take, (page-1)*take)
	if err != nil {
		return nil, fmt.Errorf("cookbookdb: list recipes: %w", err)
	}
	defer rows.Close()

	var out []*Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("cookbookdb: list recipes: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cookbookdb: list recipes: %w", err)
	}

	for _, r := range out {
		if err := s.loadSets(ctx, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadSets(ctx context.Context, r *Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, recipe_id, name, ingreds FROM ingredient_sets WHERE recipe_id = ? ORDER BY position`, r.ID)
	if err != nil {
		return fmt.Errorf("cookbookdb: load ingredient sets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var set IngredientSet
		var items string
		if err := rows.Scan(&set.ID, &set.RecipeID, &set.Name, &items); err != nil {
			return fmt.Errorf("cookbookdb: load ingredient sets: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &set.Ingreds); err != nil {
			return fmt.Errorf("cookbookdb: decode ingredient set: %w", err)
		}
		r.IngredientSets = append(r.IngredientSets, set)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cookbookdb: load ingredient sets: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
SELECT id, recipe_id, name, instructions FROM instruction_sets WHERE recipe_id = ? ORDER BY position`, r.ID)
	if err != nil {
		return fmt.Errorf("cookbookdb: load instruction sets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var set InstructionSet
		var items string
		if err := rows.Scan(&set.ID, &set.RecipeID, &set.Name, &items); err != nil {
			return fmt.Errorf("cookbookdb: load instruction sets: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &set.Instructions); err != nil {
			return fmt.Errorf("cookbookdb: decode instruction set: %w", err)
		}
		r.InstructionSets = append(r.InstructionSets, set)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var r Recipe
	var notes, keywords, courses string
	var postedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Title, &r.Time, &r.Servings, &r.ImageURL,
		&notes, &postedAt, &keywords, &courses, &r.SourceURL, &r.Source,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if postedAt.Valid {
		t := postedAt.Time
		r.PostedAt = &t
	}
	if err := json.Unmarshal([]byte(notes), &r.Notes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &r.Keywords); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(courses), &r.Courses); err != nil {
		return nil, err
	}
	return &r, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
