package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/hash"
	"github.com/glimmershop/catalog/internal/models"
	"github.com/glimmershop/catalog/internal/mykafka"
)

// UserHandler backs the admin user-management view.
type UserHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required"`
}

func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := h.DB.Order("id ASC").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) emailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := h.DB.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if !models.ValidRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	taken, err := h.emailTaken(req.Email, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	if taken {
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_created",
		"userID": user.ID,
		"role":   user.Role,
	})

	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if !models.ValidRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	taken, err := h.emailTaken(req.Email, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	if taken {
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Role = req.Role

	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_updated",
		"userID": user.ID,
		"role":   user.Role,
	})

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	res := h.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error)
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(id), map[string]interface{}{
		"type":   "user_deleted",
		"userID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
