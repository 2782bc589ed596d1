package types

import "time"

// FavoriteEntry is a denormalized snapshot of a recipe's display fields
// taken at the moment of favoriting. Later edits to the source recipe
// do not propagate; the snapshot is what the favorites list shows.
// At most one entry exists per recipe id.
type FavoriteEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Category      string  `json:"category"`
	Difficulty    string  `json:"difficulty"`
	PrepTime      int     `json:"prep_time"`
	CookTime      int     `json:"cook_time"`
	Servings      int     `json:"servings"`
	Image         string  `json:"image,omitempty"`
	AverageRating float64 `json:"average_rating,omitempty"`
	ReviewCount   int     `json:"review_count,omitempty"`
	AddedAt       string  `json:"added_at"` // RFC3339.
}

// NewFavoriteEntry builds the snapshot for a recipe, defaulting every
// optional attribute so the entry renders without the source record.
func NewFavoriteEntry(r Recipe, now time.Time) FavoriteEntry {
	entry := FavoriteEntry{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		Difficulty:    r.Difficulty,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		Servings:      r.Servings,
		Image:         r.Image,
		AverageRating: r.AverageRating,
		ReviewCount:   r.ReviewCount,
		AddedAt:       now.UTC().Format(time.RFC3339),
	}
	if entry.Name == "" {
		entry.Name = DefaultRecipeName
	}
	if !validCategories[entry.Category] {
		entry.Category = CategoryFood
	}
	if !validDifficulties[entry.Difficulty] {
		entry.Difficulty = DifficultyEasy
	}
	if entry.PrepTime < 0 {
		entry.PrepTime = 0
	}
	if entry.CookTime < 0 {
		entry.CookTime = 0
	}
	if entry.Servings < 1 {
		entry.Servings = DefaultServings
	}
	return entry
}
