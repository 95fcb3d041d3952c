// Package client is the HTTP client of the cookbook API used by the terminal
// client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/catalog"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

// DefaultBaseURL is the API root of a local server.
const DefaultBaseURL = "http://localhost:8080/api/v1"

// APIError is a non-2xx answer of the API. It unwraps to the matching
// apperr sentinel so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return apperr.ErrAuthRequired
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	case http.StatusUnprocessableEntity:
		return apperr.ErrValidationFailed
	default:
		return nil
	}
}

// Client calls the cookbook API. Token supplies the bearer token of each
// request; it may be nil for anonymous use.
type Client struct {
	baseURL string
	http    *http.Client
	Token   func() string
}

// New creates a Client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register implements auth.Authenticator.
func (c *Client) Register(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "", types.CredentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login implements auth.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", types.CredentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout implements auth.Authenticator.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// Me returns the profile of the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*types.Profile, error) {
	var profile types.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", c.token(), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListRecipes runs a catalog query on the server.
func (c *Client) ListRecipes(ctx context.Context, q catalog.Query) ([]model.Recipe, error) {
	q = q.Normalize()
	params := url.Values{}
	if q.SearchTerm != "" {
		params.Set("q", q.SearchTerm)
	}
	params.Set("category", q.Category)
	params.Set("difficulty", q.Difficulty)
	params.Set("sort", string(q.Sort))

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/recipes?"+params.Encode(), "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// GetRecipe loads one recipe.
func (c *Client) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), "", nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces the content of recipe id.
func (c *Client) UpdateRecipe(ctx context.Context, id string, req types.RecipeRequest) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := c.do(ctx, http.MethodPut, "/recipes/"+url.PathEscape(id), c.token(), req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Categories lists the browsable categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var resp struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Favorites returns the favorite recipe ids of the signed-in user.
func (c *Client) Favorites(ctx context.Context) ([]string, error) {
	var resp struct {
		Favorites []string `json:"favorites"`
	}
	if err := c.do(ctx, http.MethodGet, "/favorites", c.token(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// FavoriteRecipes returns the favorite recipes that could be loaded.
func (c *Client) FavoriteRecipes(ctx context.Context) ([]model.Recipe, error) {
	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/favorites/recipes", c.token(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// AddFavorite adds a recipe to the favorites.
func (c *Client) AddFavorite(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/favorites/"+url.PathEscape(id), c.token(), nil, nil)
}

// RemoveFavorite removes a recipe from the favorites.
func (c *Client) RemoveFavorite(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(id), c.token(), nil, nil)
}

// ToggleFavorite flips membership and returns the new state.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var resp struct {
		Favorite bool `json:"favorite"`
	}
	if err := c.do(ctx, http.MethodPost, "/favorites/"+url.PathEscape(id)+"/toggle", c.token(), nil, &resp); err != nil {
		return false, err
	}
	return resp.Favorite, nil
}

func (c *Client) token() string {
	if c.Token == nil {
		return ""
	}
	return c.Token()
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Field = body.Field
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
