package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/catalog"
	"github.com/glimmershop/catalog/internal/models"
	"github.com/glimmershop/catalog/internal/mykafka"
	"github.com/glimmershop/catalog/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type productRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Category    string  `json:"category"    validate:"required"`
	SubCategory string  `json:"subCategory"`
	SKU         string  `json:"sku"         validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// checkSubCategory rejects a sub-category that is not registered under a
// registered category. Free-text categories with no registration pass through.
func (h *ProductHandler) checkSubCategory(category, sub string) error {
	if sub == "" {
		return nil
	}

	var cat models.Category
	err := h.DB.Where("name = ?", category).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	var count int64
	if err := h.DB.Model(&models.SubCategory{}).
		Where("category_id = ? AND name = ?", cat.ID, sub).
		Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	if count == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity,
			fmt.Sprintf("sub-category %q is not registered under category %q", sub, category))
	}
	return nil
}

// List is the storefront listing: disabled products are excluded and the
// category/sub_category/q params run the filter engine over the full set
// before pagination.
func (h *ProductHandler) List(c echo.Context) error {
	var items []models.Product
	if err := h.DB.Where("disabled = ?", false).Order("id ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	sel := catalog.Selection{
		Category:    c.QueryParam("category"),
		SubCategory: c.QueryParam("sub_category"),
		Search:      c.QueryParam("q"),
	}
	if sel.Category == "" {
		sel.Category = catalog.AllCategories
	}

	visible := catalog.VisibleProducts(items, sel)

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total := len(visible)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": visible[offset:end],
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
			"filtered":    sel.Active(),
		},
	})
}

// ListManage is the management listing: every product, disabled included.
func (h *ProductHandler) ListManage(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	var items []models.Product
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if err := h.checkSubCategory(req.Category, req.SubCategory); err != nil {
		return err
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		SKU:         req.SKU,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if err := h.checkSubCategory(req.Category, req.SubCategory); err != nil {
		return err
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	prod.Name = req.Name
	prod.Price = req.Price
	prod.Category = req.Category
	prod.SubCategory = req.SubCategory
	prod.SKU = req.SKU
	prod.Description = req.Description
	prod.Image = req.Image

	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

// Toggle flips the disabled flag. There is no delete for products; disabling
// is the soft delete, and toggling twice restores the original state.
func (h *ProductHandler) Toggle(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	prod.Disabled = !prod.Disabled
	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_toggled",
		"productID": prod.ID,
		"disabled":  prod.Disabled,
	})

	return c.JSON(http.StatusOK, prod)
}
