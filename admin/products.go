package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meraki/models"
	"meraki/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// validateProduct returns the first inline validation error, or "".
func validateProduct(p models.Product) string {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return "Title is required"
	case strings.TrimSpace(p.Handle) == "":
		return "Handle is required"
	case strings.TrimSpace(p.Category) == "":
		return "Category is required"
	case p.Price < 0:
		return "Price must not be negative"
	}
	return ""
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateProduct(product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// Handles are unique across the catalog.
	count, err := h.Store.Products.CountDocuments(ctx, bson.M{"handle": product.Handle})
	if err != nil {
		log.Println("CreateProduct handle check error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Handle already in use")
		return
	}

	product.ID, err = h.nextProductID(ctx)
	if err != nil {
		log.Println("CreateProduct id error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	if product.Highlights == nil {
		product.Highlights = []string{}
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := h.Store.Products.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.Catalog.InvalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateProduct(product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// The handle must stay unique, but may stay on the same product.
	count, err := h.Store.Products.CountDocuments(ctx, bson.M{"handle": product.Handle, "_id": bson.M{"$ne": id}})
	if err != nil {
		log.Println("UpdateProduct handle check error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Handle already in use")
		return
	}

	product.ID = id
	product.UpdatedAt = time.Now()

	result, err := h.Store.Products.ReplaceOne(ctx, bson.M{"_id": id}, product)
	if err != nil {
		log.Println("UpdateProduct replace error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.Catalog.InvalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	result, err := h.Store.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.Catalog.InvalidateCache(ctx)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) nextProductID(ctx context.Context) (int64, error) {
	var last models.Product
	opts := options.FindOne().SetSort(bson.M{"_id": -1})
	err := h.Store.Products.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID + 1, nil
}
