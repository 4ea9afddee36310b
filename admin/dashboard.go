package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"meraki/models"
	"meraki/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stats handles GET /api/dashboard/stats: aggregate counts plus the most
// recent tracked purchases.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	totalProducts, err := h.Store.Products.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("Stats products count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	totalCategories, err := h.Store.Categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("Stats categories count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	totalPurchases, err := h.Store.Purchases.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("Stats purchases count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(5)
	cursor, err := h.Store.Purchases.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("Stats recent purchases error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	defer cursor.Close(ctx)

	var recent []models.Purchase
	if err := cursor.All(ctx, &recent); err != nil {
		log.Println("Stats recent decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	if recent == nil {
		recent = []models.Purchase{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalProducts":   totalProducts,
		"totalCategories": totalCategories,
		"totalPurchases":  totalPurchases,
		"recentPurchases": recent,
	})
}

// ListPurchases handles GET /api/admin/purchases with pagination.
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page := utils.ParseIntQuery(r, "page", 1, 1)
	limit := utils.ParseIntQuery(r, "limit", 10, 1)

	total, err := h.Store.Purchases.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("ListPurchases count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := h.Store.Purchases.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("ListPurchases find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		log.Println("ListPurchases decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}

	pages := (int(total) + limit - 1) / limit
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"purchases": purchases,
		"total":     total,
		"pages":     pages,
	})
}
