package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"meraki/globals"
	"meraki/middleware"
	"meraki/models"
	"meraki/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Login handles POST /api/admin/login, issuing a signed bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	var admin models.Admin
	err := h.Store.Admins.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		log.Println("Login lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := middleware.Claims{
		Email:   admin.Email,
		AdminID: admin.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token": token,
		"admin": utils.M{"id": admin.ID, "email": admin.Email, "name": admin.Name},
	})
}
