// Package shopclient is a Go client for the catalog API. Besides wrapping the
// endpoints it holds the same state the storefront holds: the session, the
// fetched catalog, the filter selection, and the favorite set. State only
// changes after a call succeeds; a failed call returns a typed error and
// leaves everything as it was.
//
// A Client is a single-writer object and is not safe for concurrent use.
package shopclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glimmershop/catalog/internal/apperrors"
	"github.com/glimmershop/catalog/internal/catalog"
	"github.com/glimmershop/catalog/internal/models"
)

type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	session   *Session
	products  []models.Product
	catmap    *catalog.CategoryMap
	selection catalog.Selection
	favorites map[uint]bool
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		catmap:    catalog.NewCategoryMap(),
		selection: catalog.NewSelection(),
		favorites: make(map[uint]bool),
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// wrapFailure attributes a failed call to the transport error when there is
// one, and to the unexpected status otherwise, so a transport failure never
// reads as "status 0".
func wrapFailure(op string, kind error, status int, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, kind, err)
	}
	return fmt.Errorf("%s: %w: status %d", op, kind, status)
}

// Login stores the session on success. A 401 maps to ErrInvalidCredentials
// regardless of whether the email or the password was wrong.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	status, err := c.doJSON(ctx, http.MethodPost, "/api/login",
		map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return nil, fmt.Errorf("login: %w: %v", apperrors.ErrFetch, err)
	}
	if status == http.StatusUnauthorized {
		return nil, apperrors.ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("login: %w: status %d", apperrors.ErrFetch, status)
	}

	c.session = &session
	c.favorites = make(map[uint]bool)
	return &session, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	var session Session
	status, err := c.doJSON(ctx, http.MethodPost, "/api/register",
		map[string]string{"username": username, "email": email, "password": password}, &session)
	if err != nil {
		return nil, fmt.Errorf("register: %w: %v", apperrors.ErrRegistration, err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("register: %w: status %d", apperrors.ErrRegistration, status)
	}

	c.session = &session
	c.favorites = make(map[uint]bool)
	return &session, nil
}

// Logout clears the session client-side. There is no server-side revocation;
// the token simply stops being sent.
func (c *Client) Logout() {
	c.session = nil
	c.favorites = make(map[uint]bool)
}

func (c *Client) LoggedIn() bool {
	return c.session != nil
}

func (c *Client) Session() *Session {
	return c.session
}

type listResponse struct {
	Data []models.Product `json:"data"`
	Meta struct {
		HasNext bool `json:"has_next"`
	} `json:"meta"`
}

// managesCatalog reports whether the current session may read the management
// product list, which includes disabled products.
func (c *Client) managesCatalog() bool {
	if c.session == nil {
		return false
	}
	role := c.session.User.Role
	return role == models.RoleAdmin || role == models.RoleManager
}

func (c *Client) fetchProducts(ctx context.Context) ([]models.Product, error) {
	base := "/api/products"
	if c.managesCatalog() {
		base = "/api/products/manage"
	}

	var all []models.Product
	for page := 1; ; page++ {
		var resp listResponse
		path := base + "?size=100&page=" + strconv.Itoa(page)
		status, err := c.doJSON(ctx, http.MethodGet, path, nil, &resp)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("status %d", status)
		}
		all = append(all, resp.Data...)
		if !resp.Meta.HasNext {
			return all, nil
		}
	}
}

// RefreshCatalog fetches the product list and the category map. A manager or
// admin session gets the management list, so disabled products stay in the
// local catalog; everyone else gets the storefront list. Sub-category lists
// are fetched concurrently, one request per category, and joined before any
// state changes; a single failure discards the whole fetch.
func (c *Client) RefreshCatalog(ctx context.Context) error {
	products, err := c.fetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w: %v", apperrors.ErrFetch, err)
	}

	var categories []string
	status, err := c.doJSON(ctx, http.MethodGet, "/api/categories", nil, &categories)
	if err != nil || status != http.StatusOK {
		return wrapFailure("refresh catalog: categories", apperrors.ErrFetch, status, err)
	}

	subLists := make([][]string, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range categories {
		i, name := i, name
		g.Go(func() error {
			var subs []string
			path := "/api/categories/" + url.PathEscape(name) + "/subcategories"
			status, err := c.doJSON(gctx, http.MethodGet, path, nil, &subs)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("subcategories of %q: status %d", name, status)
			}
			subLists[i] = subs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh catalog: %w: %v", apperrors.ErrFetch, err)
	}

	m := catalog.NewCategoryMap()
	for i, name := range categories {
		m.Add(name)
		for _, sub := range subLists[i] {
			m.AddSub(name, sub)
		}
	}

	c.products = products
	c.catmap = m
	return nil
}

func (c *Client) SelectCategory(category string) {
	c.selection = c.selection.SelectCategory(c.catmap, category)
}

func (c *Client) SelectSubCategory(sub string) {
	c.selection = c.selection.SelectSubCategory(c.catmap, sub)
}

func (c *Client) SetSearch(q string) {
	c.selection = c.selection.WithSearch(q)
}

func (c *Client) Selection() catalog.Selection {
	return c.selection
}

// VisibleProducts is the storefront view: disabled products are dropped, then
// the selection filters what remains.
func (c *Client) VisibleProducts() []models.Product {
	enabled := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if !p.Disabled {
			enabled = append(enabled, p)
		}
	}
	return catalog.VisibleProducts(enabled, c.selection)
}

// Products is the management view: the full local catalog, disabled included.
func (c *Client) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Client) VisibleCategories() []string {
	return catalog.VisibleCategories(c.catmap, c.selection.SubCategory)
}

func (c *Client) VisibleSubCategories() []string {
	return catalog.VisibleSubCategories(c.catmap, c.selection.Category)
}

// NoResults distinguishes "filters matched nothing" from an empty catalog or
// an untouched selection.
func (c *Client) NoResults() bool {
	return c.selection.Active() && len(c.VisibleProducts()) == 0
}

// RefreshFavorites loads the caller's persisted favorite set.
func (c *Client) RefreshFavorites(ctx context.Context) error {
	var resp struct {
		Data []models.Product `json:"data"`
	}
	status, err := c.doJSON(ctx, http.MethodGet, "/api/favorites", nil, &resp)
	if err != nil || status != http.StatusOK {
		return wrapFailure("refresh favorites", apperrors.ErrFetch, status, err)
	}

	favs := make(map[uint]bool, len(resp.Data))
	for _, p := range resp.Data {
		favs[p.ID] = true
	}
	c.favorites = favs
	return nil
}

// ToggleFavorite round-trips the toggle and applies the server's answer to
// the local set.
func (c *Client) ToggleFavorite(ctx context.Context, productID uint) (bool, error) {
	var resp struct {
		Favorite bool `json:"favorite"`
	}
	path := "/api/favorites/" + strconv.FormatUint(uint64(productID), 10) + "/toggle"
	status, err := c.doJSON(ctx, http.MethodPost, path, nil, &resp)
	if err != nil || status != http.StatusOK {
		return false, wrapFailure("toggle favorite", apperrors.ErrMutation, status, err)
	}

	if resp.Favorite {
		c.favorites[productID] = true
	} else {
		delete(c.favorites, productID)
	}
	return resp.Favorite, nil
}

func (c *Client) IsFavorite(productID uint) bool {
	return c.favorites[productID]
}

// FavoriteProducts filters the fetched catalog by the favorite set,
// preserving catalog order.
func (c *Client) FavoriteProducts() []models.Product {
	out := []models.Product{}
	for _, p := range c.products {
		if c.favorites[p.ID] && !p.Disabled {
			out = append(out, p)
		}
	}
	return out
}
