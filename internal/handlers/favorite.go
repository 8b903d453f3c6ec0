package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/glimmershop/catalog/internal/middleware/auth"
	"github.com/glimmershop/catalog/internal/models"
	"github.com/glimmershop/catalog/internal/mykafka"
)

// FavoriteHandler persists the per-user favorite set, so favorites survive
// reloads instead of living only in browser memory.
type FavoriteHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// List returns the caller's favorite products. Disabled products stay in the
// favorite set but are not shown, matching the storefront view.
func (h *FavoriteHandler) List(c echo.Context) error {
	userID := authmw.UserID(c)

	var favs []models.Favorite
	if err := h.DB.Where("user_id = ?", userID).Find(&favs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	ids := make([]uint, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.ProductID)
	}

	products := []models.Product{}
	if len(ids) > 0 {
		if err := h.DB.Where("id IN ? AND disabled = ?", ids, false).
			Order("id ASC").Find(&products).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"data": products})
}

// Toggle flips membership of a product in the caller's favorite set and
// returns the new state.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	userID := authmw.UserID(c)

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

	var fav models.Favorite
	err = h.DB.Where("user_id = ? AND product_id = ?", userID, id).First(&fav).Error
	switch {
	case err == nil:
		if err := h.DB.Delete(&fav).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
		publish(c, h.Producer, "user_events", fmt.Sprint(userID), map[string]interface{}{
			"type":      "favorite_removed",
			"userID":    userID,
			"productID": id,
		})
		return c.JSON(http.StatusOK, echo.Map{"productID": id, "favorite": false})

	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = models.Favorite{UserID: userID, ProductID: id}
		if err := h.DB.Create(&fav).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
		publish(c, h.Producer, "user_events", fmt.Sprint(userID), map[string]interface{}{
			"type":      "favorite_added",
			"userID":    userID,
			"productID": id,
		})
		return c.JSON(http.StatusOK, echo.Map{"productID": id, "favorite": true})

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
}
