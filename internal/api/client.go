// Package api wraps the remote recipe service. Every call decodes the
// service's uniform response envelope and normalizes failures: server
// rejections become *Error values carrying the server's message,
// transport problems (including the request timeout) surface as
// wrapped errors. No retry happens at this layer; callers that can
// degrade to local data do so themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/platewise/recipebox/pkg/types"
)

// DefaultTimeout bounds every request. Exceeding it is an ordinary
// transport failure, not a special hang state.
const DefaultTimeout = 10 * time.Second

const basePath = "/api/v1"

// envelope is the uniform shape every response body decodes from.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Pagination is the list-endpoint paging metadata.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// RecipePage is one page of the recipe listing.
type RecipePage struct {
	Recipes    []types.Recipe `json:"recipes"`
	Pagination Pagination     `json:"pagination"`
}

// ListOptions are the recipe listing query parameters. Zero values are
// omitted from the request.
type ListOptions struct {
	Page       int
	Limit      int
	Category   string
	Difficulty string
	Search     string
	SortBy     string
	Order      string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Difficulty != "" {
		q.Set("difficulty", o.Difficulty)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.SortBy != "" {
		q.Set("sort_by", o.SortBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	return q
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client talks to the recipe service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a client against the service's base address,
// e.g. "http://localhost:3000". API paths are appended to it.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRecipes fetches one page of recipes.
func (c *Client) ListRecipes(ctx context.Context, opts ListOptions) (RecipePage, error) {
	path := basePath + "/recipes"
	if q := opts.query().Encode(); q != "" {
		path += "?" + q
	}
	var page RecipePage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return RecipePage{}, err
	}
	return page, nil
}

// GetRecipe fetches a single recipe by id.
func (c *Client) GetRecipe(ctx context.Context, id string) (types.Recipe, error) {
	var recipe types.Recipe
	err := c.do(ctx, http.MethodGet, recipePath(id), nil, &recipe)
	return recipe, err
}

// CreateRecipe submits a new recipe and returns the stored record.
func (c *Client) CreateRecipe(ctx context.Context, recipe types.Recipe) (types.Recipe, error) {
	var created types.Recipe
	err := c.do(ctx, http.MethodPost, basePath+"/recipes", recipe, &created)
	return created, err
}

// ReplaceRecipe sends a full document for id (PUT semantics). Callers
// pre-fetch the current record and merge before calling, so fields
// absent from their edit survive.
func (c *Client) ReplaceRecipe(ctx context.Context, id string, recipe types.Recipe) (types.Recipe, error) {
	var updated types.Recipe
	err := c.do(ctx, http.MethodPut, recipePath(id), recipe, &updated)
	return updated, err
}

// PatchRecipe sends a partial document for id.
func (c *Client) PatchRecipe(ctx context.Context, id string, fields map[string]any) (types.Recipe, error) {
	var updated types.Recipe
	err := c.do(ctx, http.MethodPatch, recipePath(id), fields, &updated)
	return updated, err
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, recipePath(id), nil, nil)
}

// ListReviews fetches all reviews of a recipe.
func (c *Client) ListReviews(ctx context.Context, recipeID string) ([]types.Review, error) {
	var reviews []types.Review
	err := c.do(ctx, http.MethodGet, recipePath(recipeID)+"/reviews", nil, &reviews)
	return reviews, err
}

// CreateReview submits a review for a recipe and returns the stored
// record.
func (c *Client) CreateReview(ctx context.Context, recipeID string, review types.Review) (types.Review, error) {
	var created types.Review
	err := c.do(ctx, http.MethodPost, recipePath(recipeID)+"/reviews", review, &created)
	return created, err
}

// UpdateReview replaces the user-editable fields of a review.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, input types.ReviewInput) (types.Review, error) {
	var updated types.Review
	err := c.do(ctx, http.MethodPut, basePath+"/reviews/"+url.PathEscape(reviewID), input, &updated)
	return updated, err
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	return c.do(ctx, http.MethodDelete, basePath+"/reviews/"+url.PathEscape(reviewID), nil, nil)
}

func recipePath(id string) string {
	return basePath + "/recipes/" + url.PathEscape(id)
}

// do runs one request and decodes the envelope into out (when out is
// non-nil). Server failures return *Error; everything else is a
// transport error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Not even an envelope; fall back to the HTTP status.
			return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding data from %s %s: %w", method, path, err)
		}
	}
	return nil
}
