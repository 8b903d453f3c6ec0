package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/glimmershop/catalog/internal/config"
	"github.com/glimmershop/catalog/internal/handlers"
	"github.com/glimmershop/catalog/internal/logging"
	authmw "github.com/glimmershop/catalog/internal/middleware/auth"
	"github.com/glimmershop/catalog/internal/mykafka"
	httpserver "github.com/glimmershop/catalog/internal/transport/http"
	"github.com/glimmershop/catalog/pkg/db"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.DATABASE_URL, "DATABASE_URL")
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	gormDB, err := db.Open(context.Background(), configuration.DATABASE_URL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	gate := &authmw.Gate{JWTSecret: jwtSecret}

	deps := httpserver.Deps{
		DB:              gormDB,
		Gate:            gate,
		AuthHandler:     &handlers.AuthHandler{DB: gormDB, JWTSecret: jwtSecret, Producer: prod},
		ProductHandler:  &handlers.ProductHandler{DB: gormDB, Producer: prod},
		CategoryHandler: &handlers.CategoryHandler{DB: gormDB, Producer: prod},
		UserHandler:     &handlers.UserHandler{DB: gormDB, Producer: prod},
		FeatureHandler:  &handlers.FeatureHandler{DB: gormDB, Producer: prod},
		FavoriteHandler: &handlers.FavoriteHandler{DB: gormDB, Producer: prod},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
