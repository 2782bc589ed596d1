package recipes

import "github.com/platewise/recipebox/pkg/types"

// maxCachedRecipes caps the cache singleton; the least recently stored
// entry is evicted first.
const maxCachedRecipes = 50

// The cache is one record holding the recipes ordered oldest to
// newest. Every mutation rewrites it with a single Save, so observers
// of the key never see an intermediate state.

func (s *Service) cachePut(recipe types.Recipe) {
	if recipe.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cached := s.loadCacheLocked()
	kept := cached[:0]
	for _, entry := range cached {
		if entry.ID != recipe.ID {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, recipe)
	if len(kept) > maxCachedRecipes {
		kept = kept[len(kept)-maxCachedRecipes:]
	}
	s.store.Save(types.KeyRecipeCache, kept)
}

func (s *Service) cacheRemove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached := s.loadCacheLocked()
	kept := cached[:0]
	for _, entry := range cached {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	s.store.Save(types.KeyRecipeCache, kept)
}

func (s *Service) cacheGetLocked(id string) (types.Recipe, bool) {
	for _, entry := range s.loadCacheLocked() {
		if entry.ID == id {
			return entry, true
		}
	}
	return types.Recipe{}, false
}

func (s *Service) loadCacheLocked() []types.Recipe {
	var cached []types.Recipe
	if !s.store.Load(types.KeyRecipeCache, &cached) {
		return []types.Recipe{}
	}
	if cached == nil {
		return []types.Recipe{}
	}
	return cached
}
