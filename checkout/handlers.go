package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"meraki/cart"
	"meraki/db"
	"meraki/models"
	"meraki/notify"
	"meraki/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler composes orders from cart snapshots and hands them off to WhatsApp.
type Handler struct {
	Manager *cart.Manager
	Store   *db.Store
	Hub     *notify.Hub
	Tracker *Tracker
	Phone   string // supplier WhatsApp number
}

func NewHandler(manager *cart.Manager, store *db.Store, hub *notify.Hub, tracker *Tracker, phone string) *Handler {
	return &Handler{Manager: manager, Store: store, Hub: hub, Tracker: tracker, Phone: phone}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *cart.Session {
	scope := r.Header.Get(cart.SessionHeader)
	if scope == "" {
		scope = h.Manager.NewScope()
	}
	w.Header().Set(cart.SessionHeader, scope)
	return h.Manager.Get(scope)
}

// Summary handles GET /api/checkout/summary: current items, totals, and the
// message that would be sent.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state := h.session(w, r).Snapshot(ctx)
	totals := ComputeTotals(state.Items)
	message := ComposeOrderMessage(state.Items, totals.Total)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":       state.Items,
		"totals":      totals,
		"message":     message,
		"whatsappUrl": WhatsAppLink(h.Phone, message),
	})
}

// PlaceOrder handles POST /api/checkout. It archives the cart as a purchase
// in one atomic transition, fires the best-effort tracking call, and returns
// the WhatsApp hand-off link. An empty cart is rejected.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session := h.session(w, r)
	state := session.Snapshot(ctx)
	if len(state.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	totals := ComputeTotals(state.Items)
	purchase := session.CompletePurchase(ctx, totals.Total)

	// Best effort; checkout succeeds regardless.
	h.Tracker.Track(purchase)

	message := ComposeOrderMessage(purchase.Items, purchase.Total)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"purchase":    purchase,
		"totals":      totals,
		"message":     message,
		"whatsappUrl": WhatsAppLink(h.Phone, message),
	})
}

// OrderQR handles GET /api/checkout/qr: a PNG QR of the WhatsApp deep link
// for the current cart, for scan-to-order from another device.
func (h *Handler) OrderQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state := h.session(w, r).Snapshot(ctx)
	if len(state.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	totals := ComputeTotals(state.Items)
	link := WhatsAppLink(h.Phone, ComposeOrderMessage(state.Items, totals.Total))

	png, err := qrEncode(link)
	if err != nil {
		log.Println("OrderQR encode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// TrackPurchase handles POST /api/track-purchase: persists the purchase and
// pushes it to connected admin dashboards. Callers treat this as fire-and-
// forget, so the response body is informational only.
func (h *Handler) TrackPurchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var purchase models.Purchase
	if err := json.NewDecoder(r.Body).Decode(&purchase); err != nil {
		log.Println("TrackPurchase decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid purchase payload")
		return
	}
	if purchase.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Purchase id is required")
		return
	}
	if purchase.Timestamp.IsZero() {
		purchase.Timestamp = time.Now()
	}

	if _, err := h.Store.Purchases.InsertOne(ctx, purchase); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "purchaseId": purchase.ID})
			return
		}
		log.Println("TrackPurchase insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to track purchase")
		return
	}

	h.Hub.BroadcastPurchase(purchase)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"message":    "Purchase tracked successfully",
		"purchaseId": purchase.ID,
	})
}

// Receipt handles GET /api/purchases/:id/receipt, serving a PDF for a
// tracked purchase.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var purchase models.Purchase
	err := h.Store.Purchases.FindOne(ctx, bson.M{"_id": id}).Decode(&purchase)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Purchase not found")
		return
	}
	if err != nil {
		log.Println("Receipt lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchase")
		return
	}

	pdf, err := ReceiptPDF(purchase)
	if err != nil {
		log.Println("Receipt render error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=receipt-"+id+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
