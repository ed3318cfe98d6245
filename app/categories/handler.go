package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/lucas/ecommerce/app/rest"
	"github.com/lucas/ecommerce/exposure"
	"github.com/lucas/ecommerce/models"
)

const (
	Path = "/product-category"
	Rel  = "productCategory"
)

type CategoryProvider interface {
	rest.Repository[models.Category]
}

// ProductLister pages through the products of a category.
type ProductLister interface {
	FindByCategoryID(ctx context.Context, categoryID uint, p models.Pageable) (models.Page[models.Product], error)
}

// CategoryHandler serves the product-category resource and its products
// association.
type CategoryHandler struct {
	*rest.Handler[models.Category]
	repo     CategoryProvider
	products ProductLister
	// renders association entries as products
	productView *rest.Handler[models.Product]
	log         logrus.FieldLogger
}

func NewCategoryHandler(repo CategoryProvider, products ProductLister, productView *rest.Handler[models.Product], policy *exposure.Policy, log logrus.FieldLogger, basePath string, paging rest.Paging) (*CategoryHandler, error) {
	h, err := rest.NewHandler[models.Category](repo, policy, log, rest.Options{
		Path:   basePath + Path,
		Rel:    Rel,
		Paging: paging,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{
		Handler:     h,
		repo:        repo,
		products:    products,
		productView: productView,
		log:         log.WithField("resource", Rel),
	}, nil
}

func (h *CategoryHandler) Routes(r chi.Router) {
	h.Handler.Routes(r)
	r.Get("/{id}/products", h.Guard(exposure.Item, h.HandleGetProducts))
}

// HandleGetProducts lists the products of one category. Unlike the
// findByCategoryId search, an unknown category is reported as not found.
func (h *CategoryHandler) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.ParseID(r)
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "resource not found")
		return
	}

	if _, err := h.repo.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Category not found")
			return
		}
		rest.WriteRepositoryError(w, h.log, err, "get category")
		return
	}

	page, err := h.products.FindByCategoryID(r.Context(), id, h.Paging().Pageable(r))
	if err != nil {
		rest.WriteRepositoryError(w, h.log, err, "list category products")
		return
	}
	h.productView.WritePage(w, r, page)
}
