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

// FeatureHandler backs the admin feature-permission view. Permissions only
// control what the UI shows per role; route access is enforced separately by
// the middleware.
type FeatureHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type featureRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Permissions models.Permissions `json:"permissions"`
}

func (h *FeatureHandler) List(c echo.Context) error {
	var features []models.Feature
	if err := h.DB.Order("id ASC").Find(&features).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, features)
}

func (h *FeatureHandler) Create(c echo.Context) error {
	var req featureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	var existing models.Feature
	err := h.DB.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "feature already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	feature := models.Feature{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}
	if err := h.DB.Create(&feature).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(feature.ID), map[string]interface{}{
		"type":    "feature_created",
		"feature": feature.Name,
	})

	return c.JSON(http.StatusCreated, feature)
}

func (h *FeatureHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req featureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	var feature models.Feature
	if err := h.DB.First(&feature, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "feature not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	feature.Name = req.Name
	feature.Description = req.Description
	feature.Permissions = req.Permissions

	if err := h.DB.Save(&feature).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(feature.ID), map[string]interface{}{
		"type":    "feature_updated",
		"feature": feature.Name,
	})

	return c.JSON(http.StatusOK, feature)
}
