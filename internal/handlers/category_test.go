package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func createCategory(t *testing.T, env *testEnv, name string) {
	rec, c := env.doJSONRequest(http.MethodPost, "/api/categories", map[string]string{"name": name})
	require.NoError(t, env.C.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func addSubCategory(t *testing.T, env *testEnv, category, sub string) error {
	rec, c := env.doJSONRequest(http.MethodPost, "/api/categories/"+category+"/subcategories",
		map[string]string{"subCategory": sub})
	c.SetParamNames("category")
	c.SetParamValues(category)
	if err := env.C.AddSubCategory(c); err != nil {
		return err
	}
	require.Equal(t, http.StatusCreated, rec.Code)
	return nil
}

func TestCategoryCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	createCategory(t, env, "Rings")
	createCategory(t, env, "Necklaces")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/categories", nil)
	require.NoError(t, env.C.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Equal(t, []string{"Rings", "Necklaces"}, names, "categories keep registration order")
}

func TestCategoryCreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Rings")

	_, c := env.doJSONRequest(http.MethodPost, "/api/categories", map[string]string{"name": "Rings"})
	err := env.C.Create(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestSubCategoryAppendAndList(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Rings")

	require.NoError(t, addSubCategory(t, env, "Rings", "Gold"))
	require.NoError(t, addSubCategory(t, env, "Rings", "Silver"))

	rec, c := env.doJSONRequest(http.MethodGet, "/api/categories/Rings/subcategories", nil)
	c.SetParamNames("category")
	c.SetParamValues("Rings")
	require.NoError(t, env.C.ListSubCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Equal(t, []string{"Gold", "Silver"}, names)
}

func TestSubCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Rings")
	require.NoError(t, addSubCategory(t, env, "Rings", "Gold"))

	err := addSubCategory(t, env, "Rings", "Gold")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestSubCategoryUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/categories/Ghost/subcategories", nil)
	c.SetParamNames("category")
	c.SetParamValues("Ghost")
	err := env.C.ListSubCategories(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}
