package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/models"
	"github.com/glimmershop/catalog/internal/mykafka"
)

type CategoryHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type subCategoryRequest struct {
	SubCategory string `json:"subCategory" validate:"required"`
}

// List returns category names in registration order, the order the storefront
// selector shows them in.
func (h *CategoryHandler) List(c echo.Context) error {
	var cats []models.Category
	if err := h.DB.Order("id ASC").Find(&cats).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	return c.JSON(http.StatusOK, names)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	var existing models.Category
	err := h.DB.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "category already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	cat := models.Category{Name: req.Name}
	if err := h.DB.Create(&cat).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(cat.ID), map[string]interface{}{
		"type":     "category_created",
		"category": cat.Name,
	})

	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) findCategory(c echo.Context) (*models.Category, error) {
	var cat models.Category
	if err := h.DB.Where("name = ?", c.Param("category")).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return &cat, nil
}

func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	cat, err := h.findCategory(c)
	if err != nil {
		return err
	}

	var subs []models.SubCategory
	if err := h.DB.Where("category_id = ?", cat.ID).Order("id ASC").Find(&subs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	names := make([]string, 0, len(subs))
	for _, sub := range subs {
		names = append(names, sub.Name)
	}
	return c.JSON(http.StatusOK, names)
}

func (h *CategoryHandler) AddSubCategory(c echo.Context) error {
	cat, err := h.findCategory(c)
	if err != nil {
		return err
	}

	var req subCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	var count int64
	if err := h.DB.Model(&models.SubCategory{}).
		Where("category_id = ? AND name = ?", cat.ID, req.SubCategory).
		Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	if count > 0 {
		return echo.NewHTTPError(http.StatusConflict, "sub-category already exists")
	}

	sub := models.SubCategory{CategoryID: cat.ID, Name: req.SubCategory}
	if err := h.DB.Create(&sub).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(cat.ID), map[string]interface{}{
		"type":        "subcategory_added",
		"category":    cat.Name,
		"subCategory": sub.Name,
	})

	return c.JSON(http.StatusCreated, sub)
}
