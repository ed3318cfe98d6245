package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/schema"

	"github.com/lucas/ecommerce/app/catalog"
	"github.com/lucas/ecommerce/app/categories"
	"github.com/lucas/ecommerce/app/rest"
	"github.com/lucas/ecommerce/config"
	"github.com/lucas/ecommerce/exposure"
	"github.com/lucas/ecommerce/models"
)

// NewPolicy discovers every mapped entity, disables the given verbs on the
// product and category endpoints and exposes all primary keys.
func NewPolicy(namer schema.Namer, disabled []string) (*exposure.Policy, error) {
	entities, err := exposure.Discover(namer, models.Entities()...)
	if err != nil {
		return nil, err
	}

	return exposure.NewBuilder(entities).
		DisableAll(&models.Product{}, disabled...).
		DisableAll(&models.Category{}, disabled...).
		ExposeAllIDs().
		Build()
}

type Repositories struct {
	Products   catalog.ProductProvider
	Categories categories.CategoryProvider
}

// NewRouter builds the HTTP surface. The policy is consulted per request by
// every resource route.
func NewRouter(cfg *config.Config, policy *exposure.Policy, repos Repositories, log logrus.FieldLogger) (http.Handler, error) {
	paging := rest.Paging{DefaultSize: cfg.PageDefaultSize, MaxSize: cfg.PageMaxSize}

	productHandler, err := catalog.NewCatalogHandler(repos.Products, policy, log, cfg.BasePath, paging)
	if err != nil {
		return nil, err
	}
	categoryHandler, err := categories.NewCategoryHandler(repos.Categories, repos.Products, productHandler.Handler, policy, log, cfg.BasePath, paging)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"Location", RequestIDHeader},
		MaxAge:         1800,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rest.WriteError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rest.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route(cfg.BasePath+catalog.Path, productHandler.Routes)
	r.Route(cfg.BasePath+categories.Path, categoryHandler.Routes)

	return r, nil
}
