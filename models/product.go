package models

import "time"

// Product is a catalog entry. The cart always holds a value copy, never a live
// reference, so later catalog edits do not alter cart contents.
type Product struct {
	ID             int64     `json:"id" bson:"_id"`
	Handle         string    `json:"handle" bson:"handle"` // unique URL slug
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	Image          string    `json:"image" bson:"image"`
	Price          int64     `json:"price" bson:"price"` // minor currency units, >= 0
	Category       string    `json:"category" bson:"category"`
	Subcategory    string    `json:"subcategory" bson:"subcategory"`
	Highlights     []string  `json:"highlights" bson:"highlights"`
	Tags           []string  `json:"tags" bson:"tags"`
	Brand          string    `json:"brand" bson:"brand"`
	Condition      string    `json:"condition" bson:"condition"`
	Inventory      int       `json:"inventory" bson:"inventory"`
	SeoTitle       string    `json:"seo_title,omitempty" bson:"seoTitle,omitempty"`
	SeoDescription string    `json:"seo_description,omitempty" bson:"seoDescription,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Category groups products for browsing and the admin dashboard.
type Category struct {
	ID           int64  `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	ProductCount int64  `json:"productCount" bson:"-"`
}
