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

// CreateCategory handles POST /api/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(category.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	id, err := h.nextCategoryID(ctx)
	if err != nil {
		log.Println("CreateCategory id error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	category.ID = id

	if _, err := h.Store.Categories.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/categories/:id.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(category.Name) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	update := bson.M{"$set": bson.M{"name": category.Name, "description": category.Description}}
	result, err := h.Store.Categories.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		log.Println("UpdateCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	category.ID = id
	utils.RespondWithJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id. A category still holding
// products cannot be removed.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var category models.Category
	err = h.Store.Categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Println("DeleteCategory lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	count, err := h.Store.Products.CountDocuments(ctx, bson.M{"category": category.Name})
	if err != nil {
		log.Println("DeleteCategory count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Category still has products")
		return
	}

	if _, err := h.Store.Categories.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Println("DeleteCategory error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func (h *Handler) nextCategoryID(ctx context.Context) (int64, error) {
	var last models.Category
	opts := options.FindOne().SetSort(bson.M{"_id": -1})
	err := h.Store.Categories.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.ID + 1, nil
}
