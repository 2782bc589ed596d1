package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/platewise/recipebox/pkg/types"
)

// fakeService is an in-process stand-in for the remote recipe service.
// It implements the ten JSON endpoints the CLI talks to, wrapped in the
// service's uniform response envelope, over an in-memory collection.
// Tests seed state through the helper methods and point a TestEnv at
// URL().
type fakeService struct {
	srv *httptest.Server

	mu          sync.Mutex
	recipes     map[string]types.Recipe
	recipeOrder []string
	reviews     map[string]types.Review
	reviewOrder []string
	recipeSeq   int
	reviewSeq   int
	lastPatch   map[string]any
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{
		recipes: make(map[string]types.Recipe),
		reviews: make(map[string]types.Review),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recipes", f.handleListRecipes)
	mux.HandleFunc("POST /api/v1/recipes", f.handleCreateRecipe)
	mux.HandleFunc("GET /api/v1/recipes/{id}", f.handleGetRecipe)
	mux.HandleFunc("PUT /api/v1/recipes/{id}", f.handleReplaceRecipe)
	mux.HandleFunc("PATCH /api/v1/recipes/{id}", f.handlePatchRecipe)
	mux.HandleFunc("DELETE /api/v1/recipes/{id}", f.handleDeleteRecipe)
	mux.HandleFunc("GET /api/v1/recipes/{id}/reviews", f.handleListReviews)
	mux.HandleFunc("POST /api/v1/recipes/{id}/reviews", f.handleCreateReview)
	mux.HandleFunc("PUT /api/v1/reviews/{id}", f.handleUpdateReview)
	mux.HandleFunc("DELETE /api/v1/reviews/{id}", f.handleDeleteReview)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the service base address for TestEnv.APIURL.
func (f *fakeService) URL() string {
	return f.srv.URL
}

// reply writes one enveloped response. The success field tracks the
// status code, matching the real service.
func reply(w http.ResponseWriter, status int, data any, message string) {
	env := map[string]any{
		"success": status >= 200 && status <= 299,
		"message": message,
	}
	if data != nil {
		env["data"] = data
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func (f *fakeService) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	f.mu.Lock()
	matched := make([]types.Recipe, 0, len(f.recipeOrder))
	for _, id := range f.recipeOrder {
		recipe := f.recipes[id]
		if c := q.Get("category"); c != "" && recipe.Category != c {
			continue
		}
		if d := q.Get("difficulty"); d != "" && recipe.Difficulty != d {
			continue
		}
		if s := q.Get("search"); s != "" {
			haystack := strings.ToLower(recipe.Name + " " + recipe.Description)
			if !strings.Contains(haystack, strings.ToLower(s)) {
				continue
			}
		}
		matched = append(matched, recipe)
	}
	f.mu.Unlock()

	if q.Get("sort_by") == "name" {
		desc := q.Get("order") == "desc"
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	reply(w, http.StatusOK, map[string]any{
		"recipes": matched[start:end],
		"pagination": map[string]int{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	}, "")
}

func (f *fakeService) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe types.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid recipe payload")
		return
	}

	f.mu.Lock()
	f.recipeSeq++
	recipe.ID = fmt.Sprintf("recipe-%04d", f.recipeSeq)
	recipe.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	recipe.UpdatedAt = recipe.CreatedAt
	f.recipes[recipe.ID] = recipe
	f.recipeOrder = append(f.recipeOrder, recipe.ID)
	f.mu.Unlock()

	reply(w, http.StatusCreated, recipe, "")
}

func (f *fakeService) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	recipe, ok := f.recipes[r.PathValue("id")]
	f.mu.Unlock()
	if !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}
	reply(w, http.StatusOK, recipe, "")
}

func (f *fakeService) handleReplaceRecipe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.recipes[id]
	if !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}

	var recipe types.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid recipe payload")
		return
	}
	recipe.ID = id
	recipe.CreatedAt = current.CreatedAt
	recipe.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	f.recipes[id] = recipe

	reply(w, http.StatusOK, recipe, "")
}

func (f *fakeService) handlePatchRecipe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid patch payload")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.recipes[id]
	if !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}
	f.lastPatch = fields

	// Merge the patch over the stored document.
	raw, _ := json.Marshal(current)
	var doc map[string]any
	_ = json.Unmarshal(raw, &doc)
	for k, v := range fields {
		doc[k] = v
	}
	merged, _ := json.Marshal(doc)
	var updated types.Recipe
	if err := json.Unmarshal(merged, &updated); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid patch payload")
		return
	}
	updated.ID = id
	updated.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	f.recipes[id] = updated

	reply(w, http.StatusOK, updated, "")
}

func (f *fakeService) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recipes[id]; !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}
	delete(f.recipes, id)
	for i, rid := range f.recipeOrder {
		if rid == id {
			f.recipeOrder = append(f.recipeOrder[:i], f.recipeOrder[i+1:]...)
			break
		}
	}

	reply(w, http.StatusOK, nil, "")
}

func (f *fakeService) handleListReviews(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recipes[id]; !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}
	matched := make([]types.Review, 0)
	for _, rid := range f.reviewOrder {
		if review := f.reviews[rid]; review.RecipeID == id {
			matched = append(matched, review)
		}
	}

	reply(w, http.StatusOK, matched, "")
}

func (f *fakeService) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var review types.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid review payload")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.recipes[id]; !ok {
		reply(w, http.StatusNotFound, nil, "Recipe not found")
		return
	}
	f.reviewSeq++
	review.ID = fmt.Sprintf("review-%04d", f.reviewSeq)
	review.RecipeID = id
	if review.CreatedAt == "" {
		review.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	f.reviews[review.ID] = review
	f.reviewOrder = append(f.reviewOrder, review.ID)

	reply(w, http.StatusCreated, review, "")
}

func (f *fakeService) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var input types.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		reply(w, http.StatusBadRequest, nil, "Invalid review payload")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews[id]
	if !ok {
		reply(w, http.StatusNotFound, nil, "Review not found")
		return
	}
	review.Rating = input.Rating
	review.Comment = input.Comment
	f.reviews[id] = review

	reply(w, http.StatusOK, review, "")
}

func (f *fakeService) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reviews[id]; !ok {
		reply(w, http.StatusNotFound, nil, "Review not found")
		return
	}
	delete(f.reviews, id)
	for i, rid := range f.reviewOrder {
		if rid == id {
			f.reviewOrder = append(f.reviewOrder[:i], f.reviewOrder[i+1:]...)
			break
		}
	}

	reply(w, http.StatusOK, nil, "")
}

// addRecipe seeds a recipe, assigning an id when the seed has none,
// and returns the stored record.
func (f *fakeService) addRecipe(recipe types.Recipe) types.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()

	if recipe.ID == "" {
		f.recipeSeq++
		recipe.ID = fmt.Sprintf("recipe-%04d", f.recipeSeq)
	}
	if recipe.CreatedAt == "" {
		recipe.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	f.recipes[recipe.ID] = recipe
	f.recipeOrder = append(f.recipeOrder, recipe.ID)
	return recipe
}

// getRecipe returns the stored recipe, if any.
func (f *fakeService) getRecipe(id string) (types.Recipe, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipe, ok := f.recipes[id]
	return recipe, ok
}

// recipeCount returns the number of stored recipes.
func (f *fakeService) recipeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recipes)
}

// addReview seeds a review, assigning an id when the seed has none,
// and returns the stored record.
func (f *fakeService) addReview(review types.Review) types.Review {
	f.mu.Lock()
	defer f.mu.Unlock()

	if review.ID == "" {
		f.reviewSeq++
		review.ID = fmt.Sprintf("review-%04d", f.reviewSeq)
	}
	if review.CreatedAt == "" {
		review.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	f.reviews[review.ID] = review
	f.reviewOrder = append(f.reviewOrder, review.ID)
	return review
}

// reviewsFor returns the stored reviews of a recipe in creation order.
func (f *fakeService) reviewsFor(recipeID string) []types.Review {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]types.Review, 0)
	for _, rid := range f.reviewOrder {
		if review := f.reviews[rid]; review.RecipeID == recipeID {
			matched = append(matched, review)
		}
	}
	return matched
}

// getReview returns the stored review, if any.
func (f *fakeService) getReview(id string) (types.Review, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[id]
	return review, ok
}

// lastPatchBody returns the body of the most recent PATCH request.
func (f *fakeService) lastPatchBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPatch
}
