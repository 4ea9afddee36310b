package admin

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"meraki/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const maxUploadBytes = 10 << 20 // 10 MB

// UploadImage handles POST /api/admin/upload: stores a product image and a
// 300px-wide thumbnail, returning both paths for the product form.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		log.Println("UploadImage decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	imageDir := filepath.Join(h.UploadDir, "products")
	thumbDir := filepath.Join(imageDir, "thumbs")
	if err := utils.EnsureDir(thumbDir); err != nil {
		log.Println("UploadImage mkdir error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	name := utils.GenerateRandomString(16) + ".jpg"
	originalPath := filepath.Join(imageDir, name)
	thumbnailPath := filepath.Join(thumbDir, name)

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbnailPath); err != nil {
		log.Println("UploadImage thumbnail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store thumbnail")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image":     fmt.Sprintf("/uploads/products/%s", name),
		"thumbnail": fmt.Sprintf("/uploads/products/thumbs/%s", name),
	})
}
