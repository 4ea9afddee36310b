package catalog

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"meraki/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the read-only catalog API.
type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// ListProducts handles GET /api/products with pagination and filter params.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page := utils.ParseIntQuery(r, "page", 1, 1)
	limit := utils.ParseIntQuery(r, "limit", 10, 1)

	q := r.URL.Query()
	filter := Filter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		SearchTerm:  q.Get("search"),
		Sort:        q.Get("sort"),
	}

	products, total, pages, err := h.Store.List(ctx, filter, page, limit)
	if err != nil {
		log.Println("ListProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products": products,
		"total":    total,
		"pages":    pages,
	})
}

// GetProduct handles GET /api/products/:id where :id is a numeric id or a handle.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := ps.ByName("id")

	var err error
	var product interface{}
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		product, err = h.Store.GetByID(ctx, id)
	} else {
		product, err = h.Store.GetByHandle(ctx, key)
	}

	if errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("GetProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categories, err := h.Store.Categories(ctx)
	if err != nil {
		log.Println("ListCategories error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}
