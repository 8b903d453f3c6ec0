package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/glimmershop/catalog/internal/models"
)

type productListResponse struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Total    int  `json:"total"`
		Filtered bool `json:"filtered"`
	} `json:"meta"`
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":        "Gold Ring",
		"price":       1200.0,
		"category":    "Rings",
		"subCategory": "",
		"sku":         "RG-001",
		"description": "18k gold band",
	})
	require.NoError(t, env.P.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.Equal(t, "Gold Ring", resp.Name)
	require.False(t, resp.Disabled, "a new product starts active")
}

func TestCreateProductNegativePrice(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":     "Bad",
		"price":    -5.0,
		"category": "Rings",
		"sku":      "RG-666",
	})
	err := env.P.Create(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateProductSubCategoryInvariant(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.Category{Name: "Rings"}).Error)
	var cat models.Category
	require.NoError(t, env.DB.Where("name = ?", "Rings").First(&cat).Error)
	require.NoError(t, env.DB.Create(&models.SubCategory{CategoryID: cat.ID, Name: "Gold"}).Error)

	// registered category, unregistered sub-category
	_, c := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":        "Odd Ring",
		"price":       10.0,
		"category":    "Rings",
		"subCategory": "Platinum",
		"sku":         "RG-100",
	})
	err := env.P.Create(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnprocessableEntity, he.Code)

	// unregistered free-text category is still accepted
	rec, c2 := env.doJSONRequest(http.MethodPost, "/api/products", map[string]any{
		"name":        "Brooch",
		"price":       10.0,
		"category":    "Brooches",
		"subCategory": "Vintage",
		"sku":         "BR-001",
	})
	require.NoError(t, env.P.Create(c2))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	p := seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)

	rec, c := env.doJSONRequest(http.MethodPut, "/api/products/1", map[string]any{
		"name":        "Gold Ring v2",
		"price":       1350.0,
		"category":    "Rings",
		"subCategory": "Gold",
		"sku":         "RG-001",
		"description": "updated",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, p.ID, resp.ID)
	require.Equal(t, "Gold Ring v2", resp.Name)
	require.Equal(t, 1350.0, resp.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPut, "/api/products/99", map[string]any{
		"name":     "Ghost",
		"price":    1.0,
		"category": "Rings",
		"sku":      "RG-404",
	})
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := env.P.Update(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)

	toggle := func() models.Product {
		rec, c := env.doJSONRequest(http.MethodPatch, "/api/products/1/toggle", nil)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.P.Toggle(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	require.True(t, toggle().Disabled)
	require.False(t, toggle().Disabled, "toggling twice must restore the original state")
}

func TestStorefrontExcludesDisabled(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)
	disabled := seedProduct(t, env, "Old Ring", "Rings", "Gold", "RG-000", 100)
	require.NoError(t, env.DB.Model(&disabled).Update("disabled", true).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products", nil)
	require.NoError(t, env.P.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var storefront productListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &storefront))
	require.Len(t, storefront.Data, 1)
	require.Equal(t, "Gold Ring", storefront.Data[0].Name)

	recM, cM := env.doJSONRequest(http.MethodGet, "/api/products/manage", nil)
	require.NoError(t, env.P.ListManage(cM))
	require.Equal(t, http.StatusOK, recM.Code)

	var manage productListResponse
	require.NoError(t, json.Unmarshal(recM.Body.Bytes(), &manage))
	require.Len(t, manage.Data, 2, "management list must include disabled products")
}

func TestStorefrontFilterParams(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)
	seedProduct(t, env, "Pearl Necklace", "Necklaces", "Pearl", "NK-002", 980)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products?category=Rings", nil)
	require.NoError(t, env.P.List(c))

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "Rings", resp.Data[0].Category)
	require.True(t, resp.Meta.Filtered)

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/api/products?q=nk-00", nil)
	require.NoError(t, env.P.List(c2))

	var resp2 productListResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp2))
	require.Len(t, resp2.Data, 1)
	require.Equal(t, "NK-002", resp2.Data[0].SKU)
}

func TestStorefrontEmptyResultIsNotNull(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products?q=platinum", nil)
	require.NoError(t, env.P.List(c))

	var resp productListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data, "empty result must serialize as [], not null")
	require.Empty(t, resp.Data)
	require.True(t, resp.Meta.Filtered, "an active filter with no matches is a distinct no-results state")
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	p := seedProduct(t, env, "Gold Ring", "Rings", "Gold", "RG-001", 1200)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.P.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, p.ID, resp.ID)
	require.Equal(t, p.SKU, resp.SKU)
}
