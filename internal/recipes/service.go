// Package recipes fronts the remote recipe endpoints. Every recipe
// that crosses the boundary is normalized, recently fetched records
// are kept in a local cache singleton for offline reads, and the
// mutating operations maintain that cache optimistically: apply the
// expected value, issue the remote call, roll back on failure.
package recipes

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/api"
	"github.com/platewise/recipebox/internal/pantry"
	"github.com/platewise/recipebox/pkg/types"
)

// Remote is the slice of the API surface the service needs.
type Remote interface {
	ListRecipes(ctx context.Context, opts api.ListOptions) (api.RecipePage, error)
	GetRecipe(ctx context.Context, id string) (types.Recipe, error)
	CreateRecipe(ctx context.Context, recipe types.Recipe) (types.Recipe, error)
	ReplaceRecipe(ctx context.Context, id string, recipe types.Recipe) (types.Recipe, error)
	PatchRecipe(ctx context.Context, id string, fields map[string]any) (types.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// Compile-time interface check.
var _ Remote = (*api.Client)(nil)

// GetResult carries a fetched recipe plus the path that served it.
type GetResult struct {
	Recipe types.Recipe
	Source types.Source
}

// Service mediates between the remote service and the recipe cache.
// Safe for concurrent use.
type Service struct {
	remote Remote
	store  *pantry.Store
	log    *zap.Logger
	mu     sync.Mutex
}

// NewService creates a service over the given remote and store.
func NewService(remote Remote, store *pantry.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{remote: remote, store: store, log: log}
}

// List fetches one page of recipes. Remote failures surface to the
// caller; there is no cached listing. Fetched records land in the
// cache for later offline Gets.
func (s *Service) List(ctx context.Context, opts api.ListOptions) (api.RecipePage, error) {
	page, err := s.remote.ListRecipes(ctx, opts)
	if err != nil {
		return api.RecipePage{}, err
	}
	for i := range page.Recipes {
		page.Recipes[i].Normalize()
		s.cachePut(page.Recipes[i])
	}
	return page, nil
}

// Get fetches a recipe, falling back to the cache when the remote is
// unreachable. The result is tagged with the path that served it; an
// error means neither path had the record.
func (s *Service) Get(ctx context.Context, id string) (GetResult, error) {
	recipe, err := s.remote.GetRecipe(ctx, id)
	if err == nil {
		recipe.Normalize()
		s.cachePut(recipe)
		return GetResult{Recipe: recipe, Source: types.SourceRemote}, nil
	}

	if cached, ok := s.Cached(id); ok {
		s.log.Debug("remote recipe fetch failed, serving cache",
			zap.String("id", id), zap.Error(err))
		return GetResult{Recipe: cached, Source: types.SourceLocal}, nil
	}
	return GetResult{}, err
}

// Cached returns the cached copy of a recipe, if any.
func (s *Service) Cached(id string) (types.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheGetLocked(id)
}

// Create validates and normalizes the recipe, then submits it. Remote
// failures are terminal; nothing is written locally on failure.
func (s *Service) Create(ctx context.Context, recipe types.Recipe) (types.Recipe, error) {
	if err := types.Validate(recipe); err != nil {
		return types.Recipe{}, err
	}
	recipe.Normalize()

	created, err := s.remote.CreateRecipe(ctx, recipe)
	if err != nil {
		return types.Recipe{}, err
	}
	created.Normalize()
	s.cachePut(created)
	return created, nil
}

// Replace applies the edit to the current full document and sends the
// result with PUT semantics: the current record is pre-fetched so
// fields the edit does not mention survive. The cache is updated
// optimistically and rolled back if the remote call fails.
func (s *Service) Replace(ctx context.Context, id string, update RecipeUpdate) (types.Recipe, error) {
	if update.IsEmpty() {
		return types.Recipe{}, fmt.Errorf("%w: no fields to update", types.ErrInvalidInput)
	}

	current, err := s.remote.GetRecipe(ctx, id)
	if err != nil {
		cached, ok := s.Cached(id)
		if !ok {
			return types.Recipe{}, fmt.Errorf("fetching current record for %s: %w", id, err)
		}
		current = cached
	}

	merged := update.apply(current)
	merged.ID = id
	merged.Normalize()

	snapshot, hadCache := s.Cached(id)
	s.cachePut(merged)

	updated, err := s.remote.ReplaceRecipe(ctx, id, merged)
	if err != nil {
		s.rollback(id, snapshot, hadCache)
		return types.Recipe{}, err
	}

	updated.Normalize()
	s.cachePut(updated)
	return updated, nil
}

// Patch sends only the set fields with PATCH semantics. The cached
// copy, when present, is updated optimistically and rolled back if the
// remote call fails.
func (s *Service) Patch(ctx context.Context, id string, update RecipeUpdate) (types.Recipe, error) {
	fields := update.fields()
	if len(fields) == 0 {
		return types.Recipe{}, fmt.Errorf("%w: no fields to update", types.ErrInvalidInput)
	}

	snapshot, hadCache := s.Cached(id)
	if hadCache {
		optimistic := update.apply(snapshot)
		optimistic.Normalize()
		s.cachePut(optimistic)
	}

	updated, err := s.remote.PatchRecipe(ctx, id, fields)
	if err != nil {
		if hadCache {
			s.cachePut(snapshot)
		}
		return types.Recipe{}, err
	}

	updated.Normalize()
	s.cachePut(updated)
	return updated, nil
}

// Delete removes the recipe remotely. The cached copy is dropped
// optimistically and restored if the remote call fails.
func (s *Service) Delete(ctx context.Context, id string) error {
	snapshot, hadCache := s.Cached(id)
	if hadCache {
		s.cacheRemove(id)
	}

	if err := s.remote.DeleteRecipe(ctx, id); err != nil {
		if hadCache {
			s.cachePut(snapshot)
		}
		return err
	}
	return nil
}

func (s *Service) rollback(id string, snapshot types.Recipe, hadCache bool) {
	if hadCache {
		s.cachePut(snapshot)
	} else {
		s.cacheRemove(id)
	}
}
