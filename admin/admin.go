package admin

import (
	"meraki/catalog"
	"meraki/db"
)

// Handler owns the authenticated dashboard API: product and category CRUD,
// stats, uploads. Catalog writes invalidate the cached catalog snapshot.
type Handler struct {
	Store     *db.Store
	Catalog   *catalog.Store
	UploadDir string
}

func NewHandler(store *db.Store, cat *catalog.Store, uploadDir string) *Handler {
	return &Handler{Store: store, Catalog: cat, UploadDir: uploadDir}
}
