package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/lucas/ecommerce/app/rest"
	"github.com/lucas/ecommerce/exposure"
	"github.com/lucas/ecommerce/models"
)

const (
	Path = "/products"
	Rel  = "products"
)

type ProductProvider interface {
	rest.Repository[models.Product]
	FindByCategoryID(ctx context.Context, categoryID uint, p models.Pageable) (models.Page[models.Product], error)
}

// CatalogHandler serves the products resource and its search endpoints.
type CatalogHandler struct {
	*rest.Handler[models.Product]
	repo     ProductProvider
	log      logrus.FieldLogger
	basePath string
}

func NewCatalogHandler(repo ProductProvider, policy *exposure.Policy, log logrus.FieldLogger, basePath string, paging rest.Paging) (*CatalogHandler, error) {
	h, err := rest.NewHandler[models.Product](repo, policy, log, rest.Options{
		Path:   basePath + Path,
		Rel:    Rel,
		Paging: paging,
	})
	if err != nil {
		return nil, err
	}
	return &CatalogHandler{
		Handler:  h,
		repo:     repo,
		log:      log.WithField("resource", Rel),
		basePath: basePath,
	}, nil
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/search", h.Guard(exposure.Collection, h.HandleSearchIndex))
	r.Get("/search/findByCategoryId", h.Guard(exposure.Collection, h.HandleFindByCategoryID))
	h.Handler.Routes(r)
}

// HandleSearchIndex lists the query methods exposed under /search.
func (h *CatalogHandler) HandleSearchIndex(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]any{
		"_links": map[string]rest.Link{
			"findByCategoryId": {Href: h.basePath + Path + "/search/findByCategoryId{?id,page,size,sort}"},
			"self":             {Href: h.basePath + Path + "/search"},
		},
	})
}

func (h *CatalogHandler) HandleFindByCategoryID(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	categoryID, err := strconv.ParseUint(idStr, 10, 0)
	if err != nil {
		h.log.Warnf("Invalid category id parameter: %q", idStr)
		rest.WriteError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	pageable := h.Paging().Pageable(r)
	page, err := h.repo.FindByCategoryID(r.Context(), uint(categoryID), pageable)
	if err != nil {
		rest.WriteRepositoryError(w, h.log, err, "find products by category")
		return
	}

	h.log.WithFields(logrus.Fields{
		"category_id": categoryID,
		"page":        pageable.Page,
		"returned":    len(page.Content),
		"total":       page.TotalElements,
	}).Debug("Found products by category")
	h.WritePage(w, r, page)
}
