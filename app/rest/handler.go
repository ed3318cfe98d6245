package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/lucas/ecommerce/exposure"
	"github.com/lucas/ecommerce/models"
)

// Repository is the data access contract a resource is generated from.
type Repository[T any] interface {
	FindAll(ctx context.Context, p models.Pageable) (models.Page[T], error)
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	Replace(ctx context.Context, id uint, entity *T) error
	DeleteByID(ctx context.Context, id uint) error
}

type Options struct {
	// Path is the absolute path of the collection, e.g. "/api/products".
	Path string
	// Rel names the list inside the "_embedded" object.
	Rel    string
	Paging Paging
}

var (
	collectionMethods = []string{http.MethodGet, http.MethodPost}
	itemMethods       = []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

// Handler serves the collection and item endpoints of one entity type.
type Handler[T any] struct {
	repo   Repository[T]
	policy *exposure.Policy
	log    logrus.FieldLogger
	opts   Options
	entity exposure.Entity
}

func NewHandler[T any](repo Repository[T], policy *exposure.Policy, log logrus.FieldLogger, opts Options) (*Handler[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	entity, ok := policy.Entity(t)
	if !ok {
		return nil, fmt.Errorf("%v is not a mapped entity", t)
	}
	if opts.Paging.DefaultSize <= 0 || opts.Paging.MaxSize <= 0 {
		opts.Paging = DefaultPaging
	}
	opts.Path = strings.TrimRight(opts.Path, "/")

	return &Handler[T]{
		repo:   repo,
		policy: policy,
		log:    log.WithField("resource", opts.Rel),
		opts:   opts,
		entity: entity,
	}, nil
}

// Routes registers the generated endpoints relative to the collection path.
func (h *Handler[T]) Routes(r chi.Router) {
	r.Get("/", h.Guard(exposure.Collection, h.HandleList))
	r.Post("/", h.Guard(exposure.Collection, h.HandleCreate))

	r.Get("/{id}", h.Guard(exposure.Item, h.HandleGet))
	r.Put("/{id}", h.Guard(exposure.Item, h.HandleReplace))
	r.Patch("/{id}", h.Guard(exposure.Item, h.HandlePatch))
	r.Delete("/{id}", h.Guard(exposure.Item, h.HandleDelete))
}

// Guard refuses verbs the exposure policy disables before next runs, so
// neither the request body nor the repository is touched.
func (h *Handler[T]) Guard(scope exposure.Scope, next http.HandlerFunc) http.HandlerFunc {
	candidates := collectionMethods
	if scope == exposure.Item {
		candidates = itemMethods
	}
	allow := strings.Join(h.policy.AllowedMethods(h.entity.Type, scope, candidates...), ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		if !h.policy.Allows(h.entity.Type, scope, r.Method) {
			h.log.WithFields(logrus.Fields{
				"method": r.Method,
				"scope":  scope.String(),
			}).Warn("Refused disabled method")
			w.Header().Set("Allow", allow)
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// Paging returns the page size bounds used by this resource.
func (h *Handler[T]) Paging() Paging {
	return h.opts.Paging
}

// ParseID reads the {id} path parameter.
func ParseID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		raw = r.PathValue("id")
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *Handler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.repo.FindAll(r.Context(), h.opts.Paging.Pageable(r))
	if err != nil {
		WriteRepositoryError(w, h.log, err, "list "+h.opts.Rel)
		return
	}
	h.WritePage(w, r, page)
}

func (h *Handler[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "resource not found")
		return
	}

	entity, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		WriteRepositoryError(w, h.log, err, "get "+h.opts.Rel)
		return
	}
	h.writeItem(w, http.StatusOK, entity)
}

func (h *Handler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	entity := new(T)
	if err := json.NewDecoder(r.Body).Decode(entity); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.repo.Create(r.Context(), entity); err != nil {
		WriteRepositoryError(w, h.log, err, "create "+h.opts.Rel)
		return
	}

	doc, err := h.Represent(entity)
	if err != nil {
		h.log.WithError(err).Error("Failed to render created entity")
		WriteError(w, http.StatusInternalServerError, "failed to render response")
		return
	}
	links := doc["_links"].(map[string]Link)
	w.Header().Set("Location", links["self"].Href)
	WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler[T]) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "resource not found")
		return
	}

	entity := new(T)
	if err := json.NewDecoder(r.Body).Decode(entity); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.repo.Replace(r.Context(), id, entity); err != nil {
		WriteRepositoryError(w, h.log, err, "replace "+h.opts.Rel)
		return
	}
	h.writeItem(w, http.StatusOK, entity)
}

// HandlePatch merges the request body into the stored entity.
func (h *Handler[T]) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "resource not found")
		return
	}

	entity, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		WriteRepositoryError(w, h.log, err, "patch "+h.opts.Rel)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(entity); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.repo.Replace(r.Context(), id, entity); err != nil {
		WriteRepositoryError(w, h.log, err, "patch "+h.opts.Rel)
		return
	}
	h.writeItem(w, http.StatusOK, entity)
}

func (h *Handler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(r)
	if !ok {
		WriteError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.repo.DeleteByID(r.Context(), id); err != nil {
		WriteRepositoryError(w, h.log, err, "delete "+h.opts.Rel)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Represent renders entity as a JSON object. The primary key is kept only
// when the policy exposes ids for the entity type.
func (h *Handler[T]) Represent(entity *T) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	doc := make(map[string]any)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	id := fmt.Sprint(doc[h.entity.IDField])
	if !h.policy.ExposesID(h.entity.Type) {
		delete(doc, h.entity.IDField)
	}
	doc["_links"] = map[string]Link{
		"self": {Href: h.opts.Path + "/" + id},
	}
	return doc, nil
}

func (h *Handler[T]) writeItem(w http.ResponseWriter, status int, entity *T) {
	doc, err := h.Represent(entity)
	if err != nil {
		h.log.WithError(err).Error("Failed to render entity")
		WriteError(w, http.StatusInternalServerError, "failed to render response")
		return
	}
	WriteJSON(w, status, doc)
}

// WritePage renders a page of entities in the collection envelope.
func (h *Handler[T]) WritePage(w http.ResponseWriter, r *http.Request, page models.Page[T]) {
	items := make([]map[string]any, 0, len(page.Content))
	for i := range page.Content {
		doc, err := h.Represent(&page.Content[i])
		if err != nil {
			h.log.WithError(err).Error("Failed to render entity")
			WriteError(w, http.StatusInternalServerError, "failed to render response")
			return
		}
		items = append(items, doc)
	}

	WriteJSON(w, http.StatusOK, CollectionResponse{
		Embedded: map[string][]map[string]any{h.opts.Rel: items},
		Links: map[string]Link{
			"self": {Href: r.URL.RequestURI()},
		},
		Page: PageMetadata{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages(),
			Number:        page.Number,
		},
	})
}
