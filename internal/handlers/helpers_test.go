package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/glimmershop/catalog/internal/hash"
	"github.com/glimmershop/catalog/internal/models"
	"github.com/glimmershop/catalog/internal/mykafka"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	JWTSecret []byte

	A   *AuthHandler
	P   *ProductHandler
	C   *CategoryHandler
	U   *UserHandler
	F   *FeatureHandler
	Fav *FavoriteHandler
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.SubCategory{},
		&models.Feature{},
		&models.Favorite{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	secret := []byte("test_secret")
	producer := &mykafka.Producer{}

	return &testEnv{
		T:         t,
		E:         echo.New(),
		DB:        db,
		JWTSecret: secret,
		A:         &AuthHandler{DB: db, JWTSecret: secret, Producer: producer},
		P:         &ProductHandler{DB: db, Producer: producer},
		C:         &CategoryHandler{DB: db, Producer: producer},
		U:         &UserHandler{DB: db, Producer: producer},
		F:         &FeatureHandler{DB: db, Producer: producer},
		Fav:       &FavoriteHandler{DB: db, Producer: producer},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func seedUser(t *testing.T, env *testEnv, email, password, role string) models.User {
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Username:     "seeded_user",
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, env *testEnv, name, category, sub, sku string, price float64) models.Product {
	p := models.Product{
		Name:        name,
		Price:       price,
		Category:    category,
		SubCategory: sub,
		SKU:         sku,
		Description: name + " description",
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}
