package shopclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glimmershop/catalog/internal/apperrors"
	"github.com/glimmershop/catalog/internal/models"
)

// Management mutators. Each round-trips to the backend and folds the server's
// answer into the local catalog, so the views never drift from what the store
// accepted. On error the local state is untouched.

type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (c *Client) AddProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	var created models.Product
	status, err := c.doJSON(ctx, http.MethodPost, "/api/products", input, &created)
	if err != nil || status != http.StatusCreated {
		return nil, wrapFailure("add product", apperrors.ErrMutation, status, err)
	}

	c.products = append(c.products, created)
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	var updated models.Product
	path := "/api/products/" + strconv.FormatUint(uint64(id), 10)
	status, err := c.doJSON(ctx, http.MethodPut, path, input, &updated)
	if err != nil || status != http.StatusOK {
		return nil, wrapFailure("update product", apperrors.ErrMutation, status, err)
	}

	c.replaceProduct(updated)
	return &updated, nil
}

func (c *Client) ToggleProduct(ctx context.Context, id uint) (*models.Product, error) {
	var updated models.Product
	path := "/api/products/" + strconv.FormatUint(uint64(id), 10) + "/toggle"
	status, err := c.doJSON(ctx, http.MethodPatch, path, nil, &updated)
	if err != nil || status != http.StatusOK {
		return nil, wrapFailure("toggle product", apperrors.ErrMutation, status, err)
	}

	c.replaceProduct(updated)
	return &updated, nil
}

func (c *Client) replaceProduct(p models.Product) {
	for i := range c.products {
		if c.products[i].ID == p.ID {
			c.products[i] = p
			return
		}
	}
	c.products = append(c.products, p)
}

func (c *Client) AddCategory(ctx context.Context, name string) error {
	status, err := c.doJSON(ctx, http.MethodPost, "/api/categories",
		map[string]string{"name": name}, nil)
	if err != nil || status != http.StatusCreated {
		return wrapFailure("add category", apperrors.ErrMutation, status, err)
	}

	c.catmap.Add(name)
	return nil
}

func (c *Client) AddSubCategory(ctx context.Context, category, sub string) error {
	path := "/api/categories/" + url.PathEscape(category) + "/subcategories"
	status, err := c.doJSON(ctx, http.MethodPost, path,
		map[string]string{"subCategory": sub}, nil)
	if err != nil || status != http.StatusCreated {
		return wrapFailure("add sub-category", apperrors.ErrMutation, status, err)
	}

	c.catmap.AddSub(category, sub)
	return nil
}
