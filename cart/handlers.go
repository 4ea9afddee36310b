package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"meraki/catalog"
	"meraki/utils"

	"github.com/julienschmidt/httprouter"
)

// SessionHeader carries the shopper scope id on every cart/checkout call.
const SessionHeader = "X-Session-ID"

// Handler exposes the cart API. The shopper's scope travels in the
// X-Session-ID header; a missing header gets a fresh scope minted and echoed
// back so the client can stick with it.
type Handler struct {
	Manager *Manager
	Catalog *catalog.Store
}

func NewHandler(manager *Manager, cat *catalog.Store) *Handler {
	return &Handler{Manager: manager, Catalog: cat}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *Session {
	scope := r.Header.Get(SessionHeader)
	if scope == "" {
		scope = h.Manager.NewScope()
	}
	w.Header().Set(SessionHeader, scope)
	return h.Manager.Get(scope)
}

// GetCart handles GET /api/cart. Totals are the order composer's job; the
// checkout summary endpoint serves them.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state := h.session(w, r).Snapshot(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": state.Items})
}

// AddItem handles POST /api/cart/items with {"productId": n, "quantity": n}.
// Quantity defaults to 1; an existing line for the product accumulates.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if payload.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	product, err := h.Catalog.GetByID(ctx, payload.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Println("AddItem lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	state := h.session(w, r).AddItem(ctx, product, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"items": state.Items})
}

// UpdateQuantity handles PUT /api/cart/items/:productid with {"quantity": n}.
// The quantity overwrites; zero or less removes the line.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID, err := strconv.ParseInt(ps.ByName("productid"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	state := h.session(w, r).UpdateQuantity(ctx, productID, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": state.Items})
}

// RemoveItem handles DELETE /api/cart/items/:productid.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID, err := strconv.ParseInt(ps.ByName("productid"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	state := h.session(w, r).RemoveItem(ctx, productID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": state.Items})
}

// ClearCart handles DELETE /api/cart. Purchase history stays intact.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	h.session(w, r).ClearCart(ctx)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// GetPurchases handles GET /api/cart/purchases.
func (h *Handler) GetPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state := h.session(w, r).Snapshot(ctx)
	utils.RespondWithJSON(w, http.StatusOK, state.Purchases)
}

// ClearPurchases handles DELETE /api/cart/purchases.
func (h *Handler) ClearPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	h.session(w, r).ClearPurchases(ctx)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
