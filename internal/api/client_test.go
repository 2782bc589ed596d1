package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/platewise/recipebox/pkg/types"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, success bool, data any, message string) {
	t.Helper()
	body := map[string]any{"success": success, "message": message}
	if data != nil {
		body["data"] = data
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encoding envelope: %v", err)
	}
}

func TestListRecipesQueryParams(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/recipes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		writeEnvelope(t, w, http.StatusOK, true, map[string]any{
			"recipes":    []types.Recipe{{ID: "r1", Name: "Soto"}},
			"pagination": Pagination{Page: 2, Limit: 10, Total: 31, TotalPages: 4},
		}, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.ListRecipes(context.Background(), ListOptions{
		Page:     2,
		Limit:    10,
		Category: "drink",
		Search:   "tea",
		SortBy:   "name",
		Order:    "asc",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := map[string]string{
		"page": "2", "limit": "10", "category": "drink",
		"search": "tea", "sort_by": "name", "order": "asc",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s: expected %q, got %q", k, v, gotQuery[k])
		}
	}
	if _, ok := gotQuery["difficulty"]; ok {
		t.Error("zero-value difficulty should be omitted")
	}
	if len(page.Recipes) != 1 || page.Recipes[0].ID != "r1" {
		t.Fatalf("unexpected recipes: %+v", page.Recipes)
	}
	if page.Pagination.TotalPages != 4 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestGetRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/recipes/r1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(t, w, http.StatusOK, true, types.Recipe{ID: "r1", Name: "Soto"}, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	recipe, err := client.GetRecipe(context.Background(), "r1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if recipe.Name != "Soto" {
		t.Fatalf("unexpected recipe: %+v", recipe)
	}
}

func TestServerRejectionWithEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, false, nil, "recipe not found")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetRecipe(context.Background(), "missing")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", apiErr.Status)
	}
	if apiErr.Message != "recipe not found" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestSuccessFalseOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, false, nil, "validation failed")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateRecipe(context.Background(), types.Recipe{Name: "x"})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error for success=false, got %v", err)
	}
	if apiErr.Message != "validation failed" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestNonEnvelopeFailureFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetRecipe(context.Background(), "r1")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.Status)
	}
	if apiErr.Message != http.StatusText(http.StatusBadGateway) {
		t.Errorf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := client.GetRecipe(context.Background(), "r1")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("timeout must be a transport error, got *Error: %v", apiErr)
	}
}

func TestDeleteRecipe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		writeEnvelope(t, w, http.StatusOK, true, nil, "deleted")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.DeleteRecipe(context.Background(), "r1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestReplaceRecipeSendsFullDocument(t *testing.T) {
	var received types.Recipe
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		writeEnvelope(t, w, http.StatusOK, true, received, "")
	}))
	defer srv.Close()

	full := types.Recipe{
		ID:          "r1",
		Name:        "Soto",
		Description: "kept from pre-fetch",
		Servings:    4,
	}
	client := NewClient(srv.URL)
	updated, err := client.ReplaceRecipe(context.Background(), "r1", full)
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if received.Description != "kept from pre-fetch" {
		t.Fatalf("expected full document on the wire, got %+v", received)
	}
	if updated.Name != "Soto" {
		t.Fatalf("unexpected response: %+v", updated)
	}
}

func TestCreateReview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/recipes/r1/reviews" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var review types.Review
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		review.ID = "server-id"
		writeEnvelope(t, w, http.StatusCreated, true, review, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	created, err := client.CreateReview(context.Background(), "r1", types.Review{
		RecipeID: "r1",
		User:     "chef",
		Rating:   5,
	})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if created.ID != "server-id" {
		t.Fatalf("expected server-assigned id, got %+v", created)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeEnvelope(t, w, http.StatusOK, true, nil, "")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	if _, err := client.GetRecipe(ctx, "r1"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
