package types

// Rating bounds for reviews.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a user's rating and optional comment on a recipe.
// The remote API owns reviews when reachable; reviews created while
// offline live only in the local collection.
type Review struct {
	ID         string `json:"id"`
	RecipeID   string `json:"recipe_id"`
	RecipeName string `json:"recipe_name,omitempty"`
	Category   string `json:"category,omitempty"`
	User       string `json:"user"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"` // RFC3339.
}

// ReviewInput is the user-supplied portion of a review submission.
// Validated before it reaches storage or network.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
	User    string `json:"user,omitempty"`
}
