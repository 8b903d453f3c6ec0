package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/handlers"
	authmw "github.com/glimmershop/catalog/internal/middleware/auth"
	"github.com/glimmershop/catalog/internal/models"
)

type Deps struct {
	DB              *gorm.DB
	Gate            *authmw.Gate
	AuthHandler     *handlers.AuthHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	UserHandler     *handlers.UserHandler
	FeatureHandler  *handlers.FeatureHandler
	FavoriteHandler *handlers.FavoriteHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	api.POST("/login", d.AuthHandler.Login)
	api.POST("/register", d.AuthHandler.Register)

	api.GET("/products", d.ProductHandler.List)
	api.GET("/products/:id", d.ProductHandler.Get)
	api.GET("/categories", d.CategoryHandler.List)
	api.GET("/categories/:category/subcategories", d.CategoryHandler.ListSubCategories)

	// Catalog writes need a manager or admin token.
	manage := api.Group("", d.Gate.RequireLogin,
		d.Gate.RequireRole(models.RoleAdmin, models.RoleManager))

	manage.GET("/products/manage", d.ProductHandler.ListManage)
	manage.POST("/products", d.ProductHandler.Create)
	manage.PUT("/products/:id", d.ProductHandler.Update)
	manage.PATCH("/products/:id/toggle", d.ProductHandler.Toggle)
	manage.POST("/categories", d.CategoryHandler.Create)
	manage.POST("/categories/:category/subcategories", d.CategoryHandler.AddSubCategory)

	admin := api.Group("", d.Gate.RequireLogin, d.Gate.RequireRole(models.RoleAdmin))

	admin.GET("/users", d.UserHandler.List)
	admin.POST("/users", d.UserHandler.Create)
	admin.PUT("/users/:id", d.UserHandler.Update)
	admin.DELETE("/users/:id", d.UserHandler.Delete)

	admin.GET("/features", d.FeatureHandler.List)
	admin.POST("/features", d.FeatureHandler.Create)
	admin.PUT("/features/:id", d.FeatureHandler.Update)

	favorites := api.Group("/favorites", d.Gate.RequireLogin)

	favorites.GET("", d.FavoriteHandler.List)
	favorites.POST("/:id/toggle", d.FavoriteHandler.Toggle)
}
