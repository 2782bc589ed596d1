// Package reviews implements the review repository: remote-first
// listing with a local fallback, creation that always keeps a local
// copy so the user's own review survives an unreachable server, and
// remote-only update/delete. The remote and local listings are allowed
// to diverge (the server holds other clients' reviews, the local
// collection holds this client's offline creations); no reconciliation
// pass exists.
package reviews

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/api"
	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

// maxLocalReviews caps the local collection; the oldest entries are
// evicted first.
const maxLocalReviews = 200

// AnonymousUser is recorded when no user identifier is supplied.
const AnonymousUser = "anonymous"

// Remote is the slice of the API surface the repository needs.
type Remote interface {
	ListReviews(ctx context.Context, recipeID string) ([]types.Review, error)
	CreateReview(ctx context.Context, recipeID string, review types.Review) (types.Review, error)
	UpdateReview(ctx context.Context, reviewID string, input types.ReviewInput) (types.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

// Compile-time interface check.
var _ Remote = (*api.Client)(nil)

// ListResult carries a listing plus the path that produced it.
type ListResult struct {
	Reviews []types.Review
	Source  types.Source
}

// CreateResult carries the created review. Offline is true when the
// remote call failed and only the local copy exists.
type CreateResult struct {
	Review  types.Review
	Offline bool
}

// Repository mediates between the remote service and the local review
// collection. Safe for concurrent use.
type Repository struct {
	remote Remote
	store  *pantry.Store
	log    *zap.Logger
	mu     sync.Mutex
}

// NewRepository creates a repository over the given remote and store.
func NewRepository(remote Remote, store *pantry.Store, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{remote: remote, store: store, log: log}
}

// List returns the reviews of a recipe. The remote listing wins; on
// any remote failure the local collection is filtered by recipe id
// instead and the result is tagged SourceLocal.
func (r *Repository) List(ctx context.Context, recipeID string) ListResult {
	remote, err := r.remote.ListReviews(ctx, recipeID)
	if err == nil {
		if remote == nil {
			remote = []types.Review{}
		}
		return ListResult{Reviews: remote, Source: types.SourceRemote}
	}

	r.log.Debug("remote review listing failed, serving local collection",
		zap.String("recipe_id", recipeID), zap.Error(err))
	return ListResult{Reviews: r.localFor(recipeID), Source: types.SourceLocal}
}

// Create validates the input, builds the review, attempts remote
// creation, and persists a local copy regardless of the remote
// outcome. A remote failure is not an error: the result comes back
// with Offline set so the caller can tell the user. Only validation
// failures return an error.
func (r *Repository) Create(ctx context.Context, recipe types.Recipe, input types.ReviewInput) (CreateResult, error) {
	if err := types.Validate(input); err != nil {
		return CreateResult{}, err
	}

	user := input.User
	if user == "" {
		user = AnonymousUser
	}

	review := types.Review{
		ID:         newReviewID(),
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Category:   recipe.Category,
		User:       user,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	created, err := r.remote.CreateReview(ctx, recipe.ID, review)
	if err != nil {
		r.log.Warn("remote review creation failed, keeping local copy",
			zap.String("recipe_id", recipe.ID), zap.Error(err))
		r.appendLocal(review)
		return CreateResult{Review: review, Offline: true}, nil
	}

	r.appendLocal(created)
	return CreateResult{Review: created, Offline: false}, nil
}

// Update replaces the user-editable fields of a remote review. There
// is no local fallback: the target is a server record the client may
// hold no copy of, so failures propagate.
func (r *Repository) Update(ctx context.Context, reviewID string, input types.ReviewInput) (types.Review, error) {
	if err := types.Validate(input); err != nil {
		return types.Review{}, err
	}
	return r.remote.UpdateReview(ctx, reviewID, input)
}

// Delete removes a remote review. Failures propagate; see Update.
func (r *Repository) Delete(ctx context.Context, reviewID string) error {
	return r.remote.DeleteReview(ctx, reviewID)
}

// localFor filters the local collection by recipe id.
func (r *Repository) localFor(recipeID string) []types.Review {
	matched := []types.Review{}
	for _, review := range r.loadLocal() {
		if review.RecipeID == recipeID {
			matched = append(matched, review)
		}
	}
	return matched
}

func (r *Repository) appendLocal(review types.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := append(r.loadLocal(), review)
	if len(reviews) > maxLocalReviews {
		reviews = reviews[len(reviews)-maxLocalReviews:]
	}
	r.store.Save(types.KeyReviews, reviews)
}

func (r *Repository) loadLocal() []types.Review {
	var reviews []types.Review
	if !r.store.Load(types.KeyReviews, &reviews) {
		return []types.Review{}
	}
	if reviews == nil {
		return []types.Review{}
	}
	return reviews
}

// newReviewID returns a UUID v7 so locally-created review ids order by
// creation time. Falls back to v4 if v7 generation fails.
func newReviewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
